package application

import (
	"log/slog"

	"campus/contexts/learning/classroom-service/ports"
)

// Service implements classroom, task, submission and material operations.
// Authorization runs in the route guard before any method here executes;
// this layer owns business rules (due dates, uniqueness, cascades) only.
type Service struct {
	Classrooms  ports.ClassroomRepository
	Tasks       ports.TaskRepository
	Submissions ports.SubmissionRepository
	Materials   ports.MaterialRepository
	Blobs       ports.BlobStore
	Accounts    ports.AccountDirectory
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
