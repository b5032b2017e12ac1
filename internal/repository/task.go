package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/jmoiron/sqlx"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskRepository interface {
	Create(task *model.Task) error
	ByID(householdID, taskID string) (*model.Task, error)
	Tasks(householdID string) ([]*model.Task, error)
	Update(task *model.Task) error
	Delete(householdID, taskID string) error
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *model.Task) error {
	query := `INSERT INTO tasks (id, household_id, title, notes, assigned_to, completed, due_date, created_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		task.ID,
		task.HouseholdID,
		task.Title,
		task.Notes,
		task.AssignedTo,
		task.Completed,
		task.DueDate,
		task.CreatedBy,
		task.CreatedAt,
		task.UpdatedAt,
	)

	return err
}

func (r *taskRepository) ByID(householdID, taskID string) (*model.Task, error) {
	task := &model.Task{}
	query := `SELECT * FROM tasks WHERE id = $1 AND household_id = $2`

	err := r.db.Get(task, query, taskID, householdID)
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}

	return task, err
}

func (r *taskRepository) Tasks(householdID string) ([]*model.Task, error) {
	var tasks []*model.Task
	query := `SELECT * FROM tasks WHERE household_id = $1 ORDER BY completed ASC, created_at DESC`

	err := r.db.Select(&tasks, query, householdID)
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) Update(task *model.Task) error {
	query := `UPDATE tasks
	          SET title = $1, notes = $2, assigned_to = $3, completed = $4, due_date = $5, updated_at = $6
	          WHERE id = $7 AND household_id = $8`

	result, err := r.db.Exec(query,
		task.Title,
		task.Notes,
		task.AssignedTo,
		task.Completed,
		task.DueDate,
		time.Now(),
		task.ID,
		task.HouseholdID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTaskNotFound
	}

	return nil
}

func (r *taskRepository) Delete(householdID, taskID string) error {
	result, err := r.db.Exec(`DELETE FROM tasks WHERE id = $1 AND household_id = $2`, taskID, householdID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrTaskNotFound
	}

	return nil
}
