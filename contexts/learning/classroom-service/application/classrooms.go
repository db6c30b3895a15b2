package application

import (
	"context"
	"strings"

	"campus/contexts/learning/classroom-service/domain/entities"
	domainerrors "campus/contexts/learning/classroom-service/domain/errors"
)

const (
	roleProfessor = "professor"
	roleStudent   = "student"
	roleAdmin     = "admin"
)

// CreateClassroom creates an empty classroom owned by the given professor.
// The owner must exist and hold the professor role before assignment.
func (s Service) CreateClassroom(ctx context.Context, name string, professorID string) (entities.Classroom, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(professorID) == "" {
		return entities.Classroom{}, domainerrors.ErrInvalidRequest
	}

	professor, found, err := s.Accounts.GetAccount(ctx, professorID)
	if err != nil {
		return entities.Classroom{}, err
	}
	if !found {
		return entities.Classroom{}, domainerrors.ErrUserNotFound
	}
	if professor.Role != roleProfessor {
		return entities.Classroom{}, domainerrors.ErrRoleMismatch
	}

	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Classroom{}, err
	}
	classroom := entities.Classroom{
		ID:          id,
		Name:        strings.TrimSpace(name),
		ProfessorID: professorID,
		StudentIDs:  []string{},
		CreatedAt:   s.Clock.Now(),
	}
	if err := s.Classrooms.CreateClassroom(ctx, classroom); err != nil {
		return entities.Classroom{}, err
	}

	s.logger().Info("classroom created",
		"event", "classroom_created",
		"module", "learning/classroom-service",
		"layer", "application",
		"classroom_id", classroom.ID,
		"professor_id", professorID,
	)
	return classroom, nil
}

// GetClassroom returns one classroom.
func (s Service) GetClassroom(ctx context.Context, classroomID string) (entities.Classroom, error) {
	classroom, found, err := s.Classrooms.GetClassroom(ctx, classroomID)
	if err != nil {
		return entities.Classroom{}, err
	}
	if !found {
		return entities.Classroom{}, domainerrors.ErrClassroomNotFound
	}
	return classroom, nil
}

// ListClassroomsFor returns the classrooms visible to the caller: all for
// admins, owned for professors, enrolled for students.
func (s Service) ListClassroomsFor(ctx context.Context, userID string, role string) ([]entities.Classroom, error) {
	switch role {
	case roleAdmin:
		return s.Classrooms.ListClassrooms(ctx)
	case roleProfessor:
		return s.Classrooms.ListClassroomsByProfessor(ctx, userID)
	case roleStudent:
		return s.Classrooms.ListClassroomsByStudent(ctx, userID)
	default:
		return nil, domainerrors.ErrInvalidRequest
	}
}

// DeleteClassroom removes the classroom and everything under it. Cascade
// order: submissions (with their files) → tasks → materials (with their
// files) → classroom, so no child ever outlives its parent reference. Every
// step is a delete-by-id no-op on missing ids, so a re-run after a partial
// failure completes cleanly.
func (s Service) DeleteClassroom(ctx context.Context, classroomID string) error {
	_, found, err := s.Classrooms.GetClassroom(ctx, classroomID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrClassroomNotFound
	}

	tasks, err := s.Tasks.ListTasksByClassroom(ctx, classroomID)
	if err != nil {
		return err
	}
	for _, task := range tasks {
		if err := s.purgeTask(ctx, task.ID); err != nil {
			return err
		}
	}

	materials, err := s.Materials.ListMaterialsByClassroom(ctx, classroomID)
	if err != nil {
		return err
	}
	for _, material := range materials {
		if material.FileRef != "" {
			if err := s.Blobs.Delete(ctx, material.FileRef); err != nil {
				return err
			}
		}
		if _, err := s.Materials.DeleteMaterial(ctx, material.ID); err != nil {
			return err
		}
	}

	if _, err := s.Classrooms.DeleteClassroom(ctx, classroomID); err != nil {
		return err
	}

	s.logger().Info("classroom deleted",
		"event", "classroom_deleted",
		"module", "learning/classroom-service",
		"layer", "application",
		"classroom_id", classroomID,
		"task_count", len(tasks),
		"material_count", len(materials),
	)
	return nil
}

// purgeTask deletes a task's submissions (and their files) before the task
// record itself.
func (s Service) purgeTask(ctx context.Context, taskID string) error {
	submissions, err := s.Submissions.ListSubmissionsByTask(ctx, taskID)
	if err != nil {
		return err
	}
	for _, submission := range submissions {
		if submission.FileRef != "" {
			if err := s.Blobs.Delete(ctx, submission.FileRef); err != nil {
				return err
			}
		}
		if _, err := s.Submissions.DeleteSubmission(ctx, submission.ID); err != nil {
			return err
		}
	}
	_, err = s.Tasks.DeleteTask(ctx, taskID)
	return err
}
