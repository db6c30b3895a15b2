package application

import (
	"context"
	"strings"

	"campus/contexts/learning/classroom-service/domain/entities"
	domainerrors "campus/contexts/learning/classroom-service/domain/errors"
)

// CreateSubmission stores the file and records the submission. The uniqueness
// of (task, student) is enforced by the repository insert itself; on a
// duplicate the just-stored blob is released again.
func (s Service) CreateSubmission(ctx context.Context, taskID string, studentID string, fileName string, data []byte) (entities.Submission, error) {
	if strings.TrimSpace(fileName) == "" || len(data) == 0 {
		return entities.Submission{}, domainerrors.ErrInvalidRequest
	}
	task, found, err := s.Tasks.GetTask(ctx, taskID)
	if err != nil {
		return entities.Submission{}, err
	}
	if !found {
		return entities.Submission{}, domainerrors.ErrTaskNotFound
	}

	now := s.Clock.Now()
	if now.After(task.DueDate) {
		return entities.Submission{}, domainerrors.ErrDueDatePassed
	}

	fileRef, err := s.Blobs.Store(ctx, data)
	if err != nil {
		return entities.Submission{}, err
	}
	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Submission{}, err
	}
	submission := entities.Submission{
		ID:          id,
		TaskID:      taskID,
		StudentID:   studentID,
		FileRef:     fileRef,
		FileName:    fileName,
		SubmittedAt: now,
	}
	created, err := s.Submissions.CreateSubmission(ctx, submission)
	if err != nil {
		return entities.Submission{}, err
	}
	if !created {
		if err := s.Blobs.Delete(ctx, fileRef); err != nil {
			s.logger().Warn("orphan blob after duplicate submission",
				"event", "submission_blob_orphaned",
				"module", "learning/classroom-service",
				"layer", "application",
				"file_ref", fileRef,
				"error", err.Error(),
			)
		}
		return entities.Submission{}, domainerrors.ErrDuplicateSubmission
	}

	s.logger().Info("submission created",
		"event", "submission_created",
		"module", "learning/classroom-service",
		"layer", "application",
		"task_id", taskID,
		"submission_id", submission.ID,
	)
	return submission, nil
}

// GetSubmission returns one submission.
func (s Service) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	submission, found, err := s.Submissions.GetSubmission(ctx, submissionID)
	if err != nil {
		return entities.Submission{}, err
	}
	if !found {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return submission, nil
}

// ListSubmissions returns a task's submissions.
func (s Service) ListSubmissions(ctx context.Context, taskID string) ([]entities.Submission, error) {
	_, found, err := s.Tasks.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainerrors.ErrTaskNotFound
	}
	return s.Submissions.ListSubmissionsByTask(ctx, taskID)
}

// DeleteSubmission removes a submission and releases its file. After the task
// due date the submission is locked in and can no longer be withdrawn.
func (s Service) DeleteSubmission(ctx context.Context, submissionID string) error {
	submission, found, err := s.Submissions.GetSubmission(ctx, submissionID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrSubmissionNotFound
	}

	task, found, err := s.Tasks.GetTask(ctx, submission.TaskID)
	if err != nil {
		return err
	}
	if found && s.Clock.Now().After(task.DueDate) {
		return domainerrors.ErrDueDatePassed
	}

	if submission.FileRef != "" {
		if err := s.Blobs.Delete(ctx, submission.FileRef); err != nil {
			return err
		}
	}
	if _, err := s.Submissions.DeleteSubmission(ctx, submissionID); err != nil {
		return err
	}

	s.logger().Info("submission deleted",
		"event", "submission_deleted",
		"module", "learning/classroom-service",
		"layer", "application",
		"submission_id", submissionID,
	)
	return nil
}

// GradeSubmission records the professor's grade.
func (s Service) GradeSubmission(ctx context.Context, submissionID string, grade string) (entities.Submission, error) {
	if strings.TrimSpace(grade) == "" {
		return entities.Submission{}, domainerrors.ErrInvalidRequest
	}
	graded, err := s.Submissions.SetGrade(ctx, submissionID, strings.TrimSpace(grade))
	if err != nil {
		return entities.Submission{}, err
	}
	if !graded {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}

	s.logger().Info("submission graded",
		"event", "submission_graded",
		"module", "learning/classroom-service",
		"layer", "application",
		"submission_id", submissionID,
	)
	return s.GetSubmission(ctx, submissionID)
}

// DownloadSubmission returns the stored file bytes and name.
func (s Service) DownloadSubmission(ctx context.Context, submissionID string) ([]byte, string, error) {
	submission, found, err := s.Submissions.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", domainerrors.ErrSubmissionNotFound
	}
	data, found, err := s.Blobs.Fetch(ctx, submission.FileRef)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, "", domainerrors.ErrFileMissing
	}
	return data, submission.FileName, nil
}
