package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGoalNotFound      = errors.New("goal not found")
	ErrPartyGoalNotFound = errors.New("party goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(userID, goalID string) (*model.Goal, error)
	Goals(userID string) ([]*model.Goal, error)
	Update(goal *model.Goal) error
	Delete(userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, description, status, progress, target_date, category_id, timeframe_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Status,
		goal.Progress,
		goal.TargetDate,
		goal.CategoryID,
		goal.TimeframeID,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) Goals(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY updated_at DESC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, description = $2, status = $3, progress = $4, target_date = $5, category_id = $6, timeframe_id = $7, updated_at = $8
	          WHERE id = $9 AND user_id = $10`

	result, err := r.db.Exec(query,
		goal.Title,
		goal.Description,
		goal.Status,
		goal.Progress,
		goal.TargetDate,
		goal.CategoryID,
		goal.TimeframeID,
		time.Now(),
		goal.ID,
		goal.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(userID, goalID string) error {
	result, err := r.db.Exec(`DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

type PartyGoalRepository interface {
	// Upsert inserts a party goal keyed by goal_id, updating the bonus when a
	// row for the goal already exists.
	Upsert(partyGoal *model.PartyGoal) error
	ByGoalID(goalID string) (*model.PartyGoal, error)
	List() ([]*model.PartyGoal, error)
	Delete(goalID string) error
}

type partyGoalRepository struct {
	db *sqlx.DB
}

func NewPartyGoalRepository(db *sqlx.DB) PartyGoalRepository {
	return &partyGoalRepository{db: db}
}

func (r *partyGoalRepository) Upsert(partyGoal *model.PartyGoal) error {
	query := `INSERT INTO party_goals (id, goal_id, xp_bonus, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (goal_id) DO UPDATE SET xp_bonus = excluded.xp_bonus`

	_, err := r.db.Exec(query,
		partyGoal.ID,
		partyGoal.GoalID,
		partyGoal.XPBonus,
		partyGoal.CreatedBy,
		partyGoal.CreatedAt,
	)

	return err
}

func (r *partyGoalRepository) ByGoalID(goalID string) (*model.PartyGoal, error) {
	partyGoal := &model.PartyGoal{}
	query := `SELECT * FROM party_goals WHERE goal_id = $1`

	err := r.db.Get(partyGoal, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrPartyGoalNotFound
	}

	return partyGoal, err
}

func (r *partyGoalRepository) List() ([]*model.PartyGoal, error) {
	var partyGoals []*model.PartyGoal
	query := `SELECT * FROM party_goals ORDER BY created_at DESC`

	err := r.db.Select(&partyGoals, query)
	if err != nil {
		return nil, err
	}

	return partyGoals, nil
}

func (r *partyGoalRepository) Delete(goalID string) error {
	result, err := r.db.Exec(`DELETE FROM party_goals WHERE goal_id = $1`, goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPartyGoalNotFound
	}

	return nil
}
