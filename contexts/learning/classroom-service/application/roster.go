package application

import (
	"context"

	domainerrors "campus/contexts/learning/classroom-service/domain/errors"
)

// AddStudent enrolls a student. The membership check and the write are one
// atomic set-add on the repository, so concurrent adds of the same student
// cannot produce a duplicate roster entry.
func (s Service) AddStudent(ctx context.Context, classroomID string, studentID string) error {
	_, found, err := s.Classrooms.GetClassroom(ctx, classroomID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrClassroomNotFound
	}

	student, found, err := s.Accounts.GetAccount(ctx, studentID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrUserNotFound
	}
	if student.Role != roleStudent {
		return domainerrors.ErrRoleMismatch
	}

	added, err := s.Classrooms.AddStudent(ctx, classroomID, studentID)
	if err != nil {
		return err
	}
	if !added {
		return domainerrors.ErrAlreadyEnrolled
	}

	s.logger().Info("student enrolled",
		"event", "roster_student_added",
		"module", "learning/classroom-service",
		"layer", "application",
		"classroom_id", classroomID,
		"student_id", studentID,
	)
	return nil
}

// RemoveStudent unenrolls a student. Classroom absence and non-membership are
// both not-found conditions, checked in that order.
func (s Service) RemoveStudent(ctx context.Context, classroomID string, studentID string) error {
	_, found, err := s.Classrooms.GetClassroom(ctx, classroomID)
	if err != nil {
		return err
	}
	if !found {
		return domainerrors.ErrClassroomNotFound
	}

	removed, err := s.Classrooms.RemoveStudent(ctx, classroomID, studentID)
	if err != nil {
		return err
	}
	if !removed {
		return domainerrors.ErrNotEnrolled
	}

	s.logger().Info("student unenrolled",
		"event", "roster_student_removed",
		"module", "learning/classroom-service",
		"layer", "application",
		"classroom_id", classroomID,
		"student_id", studentID,
	)
	return nil
}

// RemoveStudentFromAllClassrooms is the bulk variant used when a student
// account is deleted: a single set-pull across all classrooms rather than a
// read-modify-write per classroom.
func (s Service) RemoveStudentFromAllClassrooms(ctx context.Context, studentID string) error {
	return s.Classrooms.RemoveStudentFromAll(ctx, studentID)
}

// DeleteSubmissionsByStudent removes a deleted student's submissions and
// releases their files. Part of the account-deletion cleanup contract.
func (s Service) DeleteSubmissionsByStudent(ctx context.Context, studentID string) error {
	submissions, err := s.Submissions.ListSubmissionsByStudent(ctx, studentID)
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
	return nil
}
