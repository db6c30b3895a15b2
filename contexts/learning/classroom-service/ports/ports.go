package ports

import (
	"context"
	"time"

	"campus/contexts/learning/classroom-service/domain/entities"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// AccountRecord is the read model for referenced users.
type AccountRecord struct {
	ID   string
	Role string
}

// AccountDirectory verifies existence and role of users referenced by
// classroom operations (owner assignment, roster membership).
type AccountDirectory interface {
	GetAccount(ctx context.Context, userID string) (AccountRecord, bool, error)
}

// ClassroomRepository is the classroom persistence boundary. AddStudent and
// RemoveStudent are single atomic set operations on the backing store; the
// membership check and the write must not be separable steps.
type ClassroomRepository interface {
	CreateClassroom(ctx context.Context, classroom entities.Classroom) error
	GetClassroom(ctx context.Context, classroomID string) (entities.Classroom, bool, error)
	ListClassrooms(ctx context.Context) ([]entities.Classroom, error)
	ListClassroomsByProfessor(ctx context.Context, professorID string) ([]entities.Classroom, error)
	ListClassroomsByStudent(ctx context.Context, studentID string) ([]entities.Classroom, error)
	DeleteClassroom(ctx context.Context, classroomID string) (bool, error)
	// AddStudent reports false when the student was already enrolled.
	AddStudent(ctx context.Context, classroomID string, studentID string) (bool, error)
	// RemoveStudent reports false when the student was not enrolled.
	RemoveStudent(ctx context.Context, classroomID string, studentID string) (bool, error)
	// RemoveStudentFromAll pulls the student from every roster in one
	// operation, not read-modify-write per classroom.
	RemoveStudentFromAll(ctx context.Context, studentID string) error
}

// TaskRepository is the task persistence boundary. Deletes by id are no-ops
// on missing ids so cascade re-runs stay safe.
type TaskRepository interface {
	CreateTask(ctx context.Context, task entities.Task) error
	GetTask(ctx context.Context, taskID string) (entities.Task, bool, error)
	ListTasksByClassroom(ctx context.Context, classroomID string) ([]entities.Task, error)
	UpdateTask(ctx context.Context, task entities.Task) (bool, error)
	DeleteTask(ctx context.Context, taskID string) (bool, error)
}

// SubmissionRepository is the submission persistence boundary. CreateSubmission
// reports false when a submission for the (task, student) pair already exists;
// the uniqueness check and the insert are one atomic operation.
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, submission entities.Submission) (bool, error)
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, bool, error)
	ListSubmissionsByTask(ctx context.Context, taskID string) ([]entities.Submission, error)
	ListSubmissionsByStudent(ctx context.Context, studentID string) ([]entities.Submission, error)
	SetGrade(ctx context.Context, submissionID string, grade string) (bool, error)
	DeleteSubmission(ctx context.Context, submissionID string) (bool, error)
}

// MaterialRepository is the material persistence boundary.
type MaterialRepository interface {
	CreateMaterial(ctx context.Context, material entities.Material) error
	GetMaterial(ctx context.Context, materialID string) (entities.Material, bool, error)
	ListMaterialsByClassroom(ctx context.Context, classroomID string) ([]entities.Material, error)
	DeleteMaterial(ctx context.Context, materialID string) (bool, error)
}

// BlobStore is the opaque binary store for submission and material files.
// Delete on a missing ref is a no-op so cascades can be re-run.
type BlobStore interface {
	Store(ctx context.Context, data []byte) (string, error)
	Fetch(ctx context.Context, ref string) ([]byte, bool, error)
	Delete(ctx context.Context, ref string) error
}
