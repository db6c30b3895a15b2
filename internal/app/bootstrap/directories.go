package bootstrap

import (
	"context"

	accountports "campus/contexts/identity-access/account-service/ports"
	authzports "campus/contexts/identity-access/authorization-service/ports"
	classroomports "campus/contexts/learning/classroom-service/ports"
)

// Cross-context adapters live here, in the composition root, so the bounded
// contexts never import each other. Each adapter narrows one context's
// repository to the read model another context's ports declare.

// userDirectory adapts the account repository to principal resolution.
type userDirectory struct {
	repo accountports.Repository
}

func (d userDirectory) FindByEmail(ctx context.Context, email string) (authzports.UserRecord, bool, error) {
	user, found, err := d.repo.GetUserByEmail(ctx, email)
	if err != nil || !found {
		return authzports.UserRecord{}, false, err
	}
	return authzports.UserRecord{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	}, true, nil
}

// accountDirectory adapts the account repository to the classroom service's
// existence/role lookups.
type accountDirectory struct {
	repo accountports.Repository
}

func (d accountDirectory) GetAccount(ctx context.Context, userID string) (classroomports.AccountRecord, bool, error) {
	user, found, err := d.repo.GetUser(ctx, userID)
	if err != nil || !found {
		return classroomports.AccountRecord{}, false, err
	}
	return classroomports.AccountRecord{
		ID:   user.ID,
		Role: string(user.Role),
	}, true, nil
}

// resourceDirectory adapts the classroom repositories to the ownership
// oracle's read models.
type resourceDirectory struct {
	classrooms  classroomports.ClassroomRepository
	tasks       classroomports.TaskRepository
	submissions classroomports.SubmissionRepository
	materials   classroomports.MaterialRepository
}

func (d resourceDirectory) GetClassroom(ctx context.Context, classroomID string) (authzports.ClassroomRecord, bool, error) {
	classroom, found, err := d.classrooms.GetClassroom(ctx, classroomID)
	if err != nil || !found {
		return authzports.ClassroomRecord{}, false, err
	}
	return authzports.ClassroomRecord{
		ID:          classroom.ID,
		ProfessorID: classroom.ProfessorID,
		StudentIDs:  classroom.StudentIDs,
	}, true, nil
}

func (d resourceDirectory) GetTask(ctx context.Context, taskID string) (authzports.TaskRecord, bool, error) {
	task, found, err := d.tasks.GetTask(ctx, taskID)
	if err != nil || !found {
		return authzports.TaskRecord{}, false, err
	}
	return authzports.TaskRecord{
		ID:          task.ID,
		ClassroomID: task.ClassroomID,
	}, true, nil
}

func (d resourceDirectory) GetSubmission(ctx context.Context, submissionID string) (authzports.SubmissionRecord, bool, error) {
	submission, found, err := d.submissions.GetSubmission(ctx, submissionID)
	if err != nil || !found {
		return authzports.SubmissionRecord{}, false, err
	}
	return authzports.SubmissionRecord{
		ID:        submission.ID,
		TaskID:    submission.TaskID,
		StudentID: submission.StudentID,
	}, true, nil
}

func (d resourceDirectory) GetMaterial(ctx context.Context, materialID string) (authzports.MaterialRecord, bool, error) {
	material, found, err := d.materials.GetMaterial(ctx, materialID)
	if err != nil || !found {
		return authzports.MaterialRecord{}, false, err
	}
	return authzports.MaterialRecord{
		ID:          material.ID,
		ClassroomID: material.ClassroomID,
		ProfessorID: material.ProfessorID,
	}, true, nil
}
