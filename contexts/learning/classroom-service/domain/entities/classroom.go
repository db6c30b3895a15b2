package entities

import "time"

// Classroom is the root of the learning resource tree. ProfessorID is the
// single owner; StudentIDs is a set (no duplicates, order irrelevant)
// maintained exclusively through the roster operations.
type Classroom struct {
	ID          string
	Name        string
	ProfessorID string
	StudentIDs  []string
	CreatedAt   time.Time
}

// Task belongs to exactly one classroom and does not outlive it.
type Task struct {
	ID          string
	ClassroomID string
	Title       string
	Description string
	DueDate     time.Time
	CreatedAt   time.Time
}

// Submission is a student's answer to a task: at most one per
// (TaskID, StudentID), author immutable after creation.
type Submission struct {
	ID          string
	TaskID      string
	StudentID   string
	FileRef     string
	FileName    string
	SubmittedAt time.Time
	Grade       *string
}

// Material is a file a professor shared with a classroom. The uploader is the
// classroom's professor at time of creation; there is no transfer.
type Material struct {
	ID          string
	ClassroomID string
	ProfessorID string
	Title       string
	FileRef     string
	FileName    string
	UploadedAt  time.Time
}
