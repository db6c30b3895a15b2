package errors

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrClassroomNotFound  = errors.New("classroom not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrMaterialNotFound   = errors.New("material not found")
	ErrUserNotFound       = errors.New("user not found")
	// ErrRoleMismatch rejects wiring a user into a slot their role cannot
	// fill, e.g. a student as classroom owner.
	ErrRoleMismatch = errors.New("user role does not fit the requested assignment")
	// ErrAlreadyEnrolled means the student is already on the roster.
	ErrAlreadyEnrolled = errors.New("student already enrolled")
	// ErrNotEnrolled means the student is not on the roster.
	ErrNotEnrolled = errors.New("student not enrolled")
	// ErrDuplicateSubmission enforces one submission per (task, student).
	ErrDuplicateSubmission = errors.New("submission already exists for this task")
	// ErrDueDatePassed rejects creating or deleting a submission after the
	// task due date. A business rule, surfaced with forbidden semantics.
	ErrDueDatePassed = errors.New("task due date has passed")
	ErrFileMissing   = errors.New("stored file is missing")
)
