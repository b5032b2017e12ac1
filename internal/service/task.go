package service

import (
	"fmt"
	"time"

	"github.com/desperadoclub/desperado/internal/model"
	"github.com/desperadoclub/desperado/internal/repository"
	"github.com/google/uuid"
)

type TaskService struct {
	repo repository.TaskRepository
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(householdID, userID, title, notes string, assignedTo *string, dueDate *time.Time) (*model.Task, error) {
	now := time.Now()
	task := &model.Task{
		ID:          uuid.New().String(),
		HouseholdID: householdID,
		Title:       title,
		Notes:       notes,
		AssignedTo:  assignedTo,
		Completed:   false,
		DueDate:     dueDate,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.Create(task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

func (s *TaskService) Tasks(householdID string) ([]*model.Task, error) {
	return s.repo.Tasks(householdID)
}

func (s *TaskService) Update(householdID, taskID, title, notes string, assignedTo *string, completed bool, dueDate *time.Time) (*model.Task, error) {
	task, err := s.repo.ByID(householdID, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Notes = notes
	task.AssignedTo = assignedTo
	task.Completed = completed
	task.DueDate = dueDate
	task.UpdatedAt = time.Now()

	err = s.repo.Update(task)
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Delete(householdID, taskID string) error {
	return s.repo.Delete(householdID, taskID)
}
