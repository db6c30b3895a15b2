package httptransport

import "time"

type CreateClassroomRequest struct {
	Name        string `json:"name"`
	ProfessorID string `json:"professor_id"`
}

type ClassroomDTO struct {
	ClassroomID string    `json:"classroom_id"`
	Name        string    `json:"name"`
	ProfessorID string    `json:"professor_id"`
	StudentIDs  []string  `json:"student_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListClassroomsResponse struct {
	Classrooms []ClassroomDTO `json:"classrooms"`
}

// TaskRequest carries the mutable task fields for both create and update.
type TaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
}

type TaskDTO struct {
	TaskID      string    `json:"task_id"`
	ClassroomID string    `json:"classroom_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListTasksResponse struct {
	Tasks []TaskDTO `json:"tasks"`
}

type SubmissionDTO struct {
	SubmissionID string    `json:"submission_id"`
	TaskID       string    `json:"task_id"`
	StudentID    string    `json:"student_id"`
	FileName     string    `json:"file_name"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Grade        *string   `json:"grade,omitempty"`
}

type ListSubmissionsResponse struct {
	Submissions []SubmissionDTO `json:"submissions"`
}

type GradeSubmissionRequest struct {
	Grade string `json:"grade"`
}

type MaterialDTO struct {
	MaterialID  string    `json:"material_id"`
	ClassroomID string    `json:"classroom_id"`
	ProfessorID string    `json:"professor_id"`
	Title       string    `json:"title"`
	FileName    string    `json:"file_name"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type ListMaterialsResponse struct {
	Materials []MaterialDTO `json:"materials"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
