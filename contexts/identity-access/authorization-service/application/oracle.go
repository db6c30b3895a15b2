package application

import (
	"context"
	"log/slog"

	"campus/contexts/identity-access/authorization-service/domain/entities"
	domainerrors "campus/contexts/identity-access/authorization-service/domain/errors"
	"campus/contexts/identity-access/authorization-service/ports"
)

// PathParams carries the resource identifiers extracted from the request path.
// Empty fields mean the route does not reference that resource.
type PathParams struct {
	ClassroomID  string
	TaskID       string
	SubmissionID string
	MaterialID   string
}

// ResolvedResources holds the records loaded for one authorization decision.
// Nil pointers mean the route did not reference that resource.
type ResolvedResources struct {
	Classroom  *ports.ClassroomRecord
	Task       *ports.TaskRecord
	Submission *ports.SubmissionRecord
	Material   *ports.MaterialRecord
}

// OwnershipOracle decides, for a principal already cleared by the role policy,
// whether access to the referenced resources is permitted. Resolution order is
// fixed: Resolve establishes existence and containment of every referenced
// resource (404 on any miss), then Evaluate applies ownership predicates (403).
// Existence always runs first so a 404 is returned before any role or
// ownership branch can leak information through differing status codes.
type OwnershipOracle struct {
	Classrooms  ports.ClassroomDirectory
	Tasks       ports.TaskDirectory
	Submissions ports.SubmissionDirectory
	Materials   ports.MaterialDirectory
	Logger      *slog.Logger
}

// Resolve loads every resource named in the path and verifies the containment
// chain: task belongs to the path classroom, submission belongs to the path
// task, material belongs to the path classroom. Any missing record or broken
// link is ErrNotFound.
func (o OwnershipOracle) Resolve(ctx context.Context, params PathParams) (ResolvedResources, error) {
	var resolved ResolvedResources

	if params.ClassroomID != "" {
		classroom, found, err := o.Classrooms.GetClassroom(ctx, params.ClassroomID)
		if err != nil {
			return ResolvedResources{}, err
		}
		if !found {
			return ResolvedResources{}, domainerrors.ErrNotFound
		}
		resolved.Classroom = &classroom
	}

	if params.TaskID != "" {
		task, found, err := o.Tasks.GetTask(ctx, params.TaskID)
		if err != nil {
			return ResolvedResources{}, err
		}
		if !found {
			return ResolvedResources{}, domainerrors.ErrNotFound
		}
		if resolved.Classroom != nil && task.ClassroomID != resolved.Classroom.ID {
			return ResolvedResources{}, domainerrors.ErrNotFound
		}
		resolved.Task = &task
	}

	if params.SubmissionID != "" {
		submission, found, err := o.Submissions.GetSubmission(ctx, params.SubmissionID)
		if err != nil {
			return ResolvedResources{}, err
		}
		if !found {
			return ResolvedResources{}, domainerrors.ErrNotFound
		}
		if resolved.Task != nil && submission.TaskID != resolved.Task.ID {
			return ResolvedResources{}, domainerrors.ErrNotFound
		}
		resolved.Submission = &submission
	}

	if params.MaterialID != "" {
		material, found, err := o.Materials.GetMaterial(ctx, params.MaterialID)
		if err != nil {
			return ResolvedResources{}, err
		}
		if !found {
			return ResolvedResources{}, domainerrors.ErrNotFound
		}
		if resolved.Classroom != nil && material.ClassroomID != resolved.Classroom.ID {
			return ResolvedResources{}, domainerrors.ErrNotFound
		}
		resolved.Material = &material
	}

	return resolved, nil
}

// Evaluate applies one resource check against already-resolved records. It is
// pure: all reads happened in Resolve.
func (o OwnershipOracle) Evaluate(principal entities.Principal, check entities.ResourceCheck, resources ResolvedResources) error {
	switch check {
	case entities.CheckClassroomAccess:
		if resources.Classroom == nil {
			return domainerrors.ErrNotFound
		}
		if !CanAccessClassroom(principal, *resources.Classroom) {
			return domainerrors.ErrForbidden
		}
		return nil

	case entities.CheckClassroomOwner:
		if resources.Classroom == nil {
			return domainerrors.ErrNotFound
		}
		if principal.Role == entities.RoleAdmin {
			return nil
		}
		if principal.Role == entities.RoleProfessor && principal.UserID == resources.Classroom.ProfessorID {
			return nil
		}
		return domainerrors.ErrForbidden

	case entities.CheckTaskInClassroom:
		// Containment was verified during Resolve; only existence remains.
		if resources.Task == nil {
			return domainerrors.ErrNotFound
		}
		return nil

	case entities.CheckSubmissionOwner:
		if resources.Submission == nil {
			return domainerrors.ErrNotFound
		}
		// Admins and professors reach submissions only through classroom
		// access, which an earlier check in the spec has already proven.
		if principal.Role != entities.RoleStudent {
			return nil
		}
		if resources.Submission.StudentID != principal.UserID {
			return domainerrors.ErrForbidden
		}
		return nil

	case entities.CheckMaterialOwner:
		if resources.Material == nil {
			return domainerrors.ErrNotFound
		}
		if principal.Role == entities.RoleAdmin {
			return nil
		}
		if principal.Role == entities.RoleProfessor && principal.UserID == resources.Material.ProfessorID {
			return nil
		}
		return domainerrors.ErrForbidden

	default:
		return domainerrors.ErrForbidden
	}
}

// CanAccessClassroom is the classroom access truth table: admins always,
// the owning professor, and enrolled students.
func CanAccessClassroom(principal entities.Principal, classroom ports.ClassroomRecord) bool {
	if principal.Role == entities.RoleAdmin {
		return true
	}
	if principal.Role == entities.RoleProfessor {
		return principal.UserID == classroom.ProfessorID
	}
	for _, studentID := range classroom.StudentIDs {
		if studentID == principal.UserID {
			return true
		}
	}
	return false
}
