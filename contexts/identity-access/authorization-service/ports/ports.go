package ports

import (
	"context"
	"time"

	"campus/contexts/identity-access/authorization-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// UserRecord is the directory read model for principal resolution.
type UserRecord struct {
	ID    string
	Email string
	Role  entities.Role
}

// ClassroomRecord carries the fields ownership checks read.
type ClassroomRecord struct {
	ID          string
	ProfessorID string
	StudentIDs  []string
}

// TaskRecord carries the fields the task existence guard reads.
type TaskRecord struct {
	ID          string
	ClassroomID string
}

// SubmissionRecord carries the fields submission ownership reads.
type SubmissionRecord struct {
	ID        string
	TaskID    string
	StudentID string
}

// MaterialRecord carries the fields material possession reads.
type MaterialRecord struct {
	ID          string
	ClassroomID string
	ProfessorID string
}

// UserDirectory resolves token subjects to user records. The boolean is false
// when no user carries the email; that case must surface as the same external
// failure as a bad token.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (UserRecord, bool, error)
}

// ClassroomDirectory loads classroom state for ownership evaluation.
type ClassroomDirectory interface {
	GetClassroom(ctx context.Context, classroomID string) (ClassroomRecord, bool, error)
}

// TaskDirectory loads task state for the existence guard.
type TaskDirectory interface {
	GetTask(ctx context.Context, taskID string) (TaskRecord, bool, error)
}

// SubmissionDirectory loads submission state for ownership evaluation.
type SubmissionDirectory interface {
	GetSubmission(ctx context.Context, submissionID string) (SubmissionRecord, bool, error)
}

// MaterialDirectory loads material state for possession evaluation.
type MaterialDirectory interface {
	GetMaterial(ctx context.Context, materialID string) (MaterialRecord, bool, error)
}
