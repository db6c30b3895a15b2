package application

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"campus/contexts/identity-access/account-service/adapters/memory"
	domainerrors "campus/contexts/identity-access/account-service/domain/errors"
	authzentities "campus/contexts/identity-access/authorization-service/domain/entities"
)

type staticTokens struct{}

func (staticTokens) Issue(subject string) (string, error) { return "token-for-" + subject, nil }

type recordingCleanup struct {
	rosterPulls []string
	submissions []string
}

func (r *recordingCleanup) RemoveStudentFromAllClassrooms(_ context.Context, studentID string) error {
	r.rosterPulls = append(r.rosterPulls, studentID)
	return nil
}

func (r *recordingCleanup) DeleteSubmissionsByStudent(_ context.Context, studentID string) error {
	r.submissions = append(r.submissions, studentID)
	return nil
}

func newTestService() (Service, *memory.Store, *recordingCleanup) {
	store := memory.NewStore()
	cleanup := &recordingCleanup{}
	service := Service{
		Repo:        store,
		Cleanup:     cleanup,
		Tokens:      staticTokens{},
		Clock:       store,
		IDGenerator: store,
		BcryptCost:  bcrypt.MinCost,
	}
	return service, store, cleanup
}

func register(t *testing.T, service Service, email string, role authzentities.Role) string {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		Email:    email,
		FullName: "Test Account",
		Password: "hunter2!",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", email, err)
	}
	return user.ID
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _ := newTestService()
	register(t, service, "dup@campus.edu", authzentities.RoleStudent)

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "Dup@campus.edu",
		FullName: "Other",
		Password: "pw",
		Role:     authzentities.RoleStudent,
	})
	if !errors.Is(err, domainerrors.ErrEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}
}

func TestLoginFailureIsUniform(t *testing.T) {
	service, _, _ := newTestService()
	register(t, service, "alice@campus.edu", authzentities.RoleProfessor)

	_, wrongPassword := service.Login(context.Background(), "alice@campus.edu", "not-the-password")
	_, unknownEmail := service.Login(context.Background(), "ghost@campus.edu", "hunter2!")
	if !errors.Is(wrongPassword, domainerrors.ErrInvalidLogin) || !errors.Is(unknownEmail, domainerrors.ErrInvalidLogin) {
		t.Fatalf("expected uniform invalid login, got %v / %v", wrongPassword, unknownEmail)
	}

	result, err := service.Login(context.Background(), "ALICE@campus.edu ", "hunter2!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token != "token-for-alice@campus.edu" {
		t.Fatalf("unexpected token %q", result.Token)
	}
}

func TestSetupOnlyOnce(t *testing.T) {
	service, _, _ := newTestService()

	if _, err := service.Setup(context.Background(), RegisterInput{Email: "root@campus.edu", FullName: "Root", Password: "pw"}); err != nil {
		t.Fatalf("first setup failed: %v", err)
	}
	_, err := service.Setup(context.Background(), RegisterInput{Email: "second@campus.edu", FullName: "Second", Password: "pw"})
	if !errors.Is(err, domainerrors.ErrAdminExists) {
		t.Fatalf("expected admin exists, got %v", err)
	}
}

func TestLastAdminCannotBeDeleted(t *testing.T) {
	service, _, _ := newTestService()
	soleAdmin := register(t, service, "admin1@campus.edu", authzentities.RoleAdmin)

	err := service.Delete(context.Background(), soleAdmin)
	if !errors.Is(err, domainerrors.ErrLastAdmin) {
		t.Fatalf("expected last admin rejection, got %v", err)
	}

	secondAdmin := register(t, service, "admin2@campus.edu", authzentities.RoleAdmin)
	if err := service.Delete(context.Background(), secondAdmin); err != nil {
		t.Fatalf("deleting a non-last admin should succeed: %v", err)
	}
	// Back to one admin; the invariant re-arms.
	if err := service.Delete(context.Background(), soleAdmin); !errors.Is(err, domainerrors.ErrLastAdmin) {
		t.Fatalf("expected last admin rejection after count dropped, got %v", err)
	}
}

func TestDeleteStudentPullsRosterAndSubmissions(t *testing.T) {
	service, _, cleanup := newTestService()
	studentID := register(t, service, "student@campus.edu", authzentities.RoleStudent)

	if err := service.Delete(context.Background(), studentID); err != nil {
		t.Fatalf("delete student failed: %v", err)
	}
	if len(cleanup.rosterPulls) != 1 || cleanup.rosterPulls[0] != studentID {
		t.Fatalf("expected one roster pull for %s, got %v", studentID, cleanup.rosterPulls)
	}
	if len(cleanup.submissions) != 1 || cleanup.submissions[0] != studentID {
		t.Fatalf("expected one submission cleanup for %s, got %v", studentID, cleanup.submissions)
	}
}

func TestDeleteUnknownUser(t *testing.T) {
	service, _, _ := newTestService()
	if err := service.Delete(context.Background(), "nope"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}
