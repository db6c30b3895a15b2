package application

import (
	"context"
	"strings"
	"time"

	"campus/contexts/learning/classroom-service/domain/entities"
	domainerrors "campus/contexts/learning/classroom-service/domain/errors"
)

// TaskInput carries the mutable task fields.
type TaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
}

// CreateTask adds a task to a classroom.
func (s Service) CreateTask(ctx context.Context, classroomID string, input TaskInput) (entities.Task, error) {
	if strings.TrimSpace(input.Title) == "" || input.DueDate.IsZero() {
		return entities.Task{}, domainerrors.ErrInvalidRequest
	}
	_, found, err := s.Classrooms.GetClassroom(ctx, classroomID)
	if err != nil {
		return entities.Task{}, err
	}
	if !found {
		return entities.Task{}, domainerrors.ErrClassroomNotFound
	}

	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Task{}, err
	}
	task := entities.Task{
		ID:          id,
		ClassroomID: classroomID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		DueDate:     input.DueDate,
		CreatedAt:   s.Clock.Now(),
	}
	if err := s.Tasks.CreateTask(ctx, task); err != nil {
		return entities.Task{}, err
	}

	s.logger().Info("task created",
		"event", "task_created",
		"module", "learning/classroom-service",
		"layer", "application",
		"classroom_id", classroomID,
		"task_id", task.ID,
	)
	return task, nil
}

// GetTask returns one task.
func (s Service) GetTask(ctx context.Context, taskID string) (entities.Task, error) {
	task, found, err := s.Tasks.GetTask(ctx, taskID)
	if err != nil {
		return entities.Task{}, err
	}
	if !found {
		return entities.Task{}, domainerrors.ErrTaskNotFound
	}
	return task, nil
}

// ListTasks returns a classroom's tasks.
func (s Service) ListTasks(ctx context.Context, classroomID string) ([]entities.Task, error) {
	_, found, err := s.Classrooms.GetClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainerrors.ErrClassroomNotFound
	}
	return s.Tasks.ListTasksByClassroom(ctx, classroomID)
}

// UpdateTask replaces a task's mutable fields.
func (s Service) UpdateTask(ctx context.Context, taskID string, input TaskInput) (entities.Task, error) {
	if strings.TrimSpace(input.Title) == "" || input.DueDate.IsZero() {
		return entities.Task{}, domainerrors.ErrInvalidRequest
	}
	task, found, err := s.Tasks.GetTask(ctx, taskID)
	if err != nil {
		return entities.Task{}, err
	}
	if !found {
		return entities.Task{}, domainerrors.ErrTaskNotFound
	}

	task.Title = strings.TrimSpace(input.Title)
	task.Description = input.Description
	task.DueDate = input.DueDate
	updated, err := s.Tasks.UpdateTask(ctx, task)
	if err != nil {
		return entities.Task{}, err
	}
	if !updated {
		return entities.Task{}, domainerrors.ErrTaskNotFound
	}
	return task, nil
}

// DeleteTask removes a task after deleting its submissions and their files.
func (s Service) DeleteTask(ctx context.Context, taskID string) error {
	_, found, err := s.Tasks.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrTaskNotFound
	}
	if err := s.purgeTask(ctx, taskID); err != nil {
		return err
	}

	s.logger().Info("task deleted",
		"event", "task_deleted",
		"module", "learning/classroom-service",
		"layer", "application",
		"task_id", taskID,
	)
	return nil
}
