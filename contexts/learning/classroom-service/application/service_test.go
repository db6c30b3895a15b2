package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus/contexts/learning/classroom-service/adapters/memory"
	domainerrors "campus/contexts/learning/classroom-service/domain/errors"
	"campus/contexts/learning/classroom-service/ports"
	"campus/internal/platform/blob"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type fakeAccounts struct {
	accounts map[string]ports.AccountRecord
}

func (f fakeAccounts) GetAccount(_ context.Context, userID string) (ports.AccountRecord, bool, error) {
	record, ok := f.accounts[userID]
	return record, ok, nil
}

func newTestService(t *testing.T) (Service, *memory.Store, *blob.MemoryStore, *fixedClock) {
	t.Helper()
	store := memory.NewStore()
	blobs := blob.NewMemoryStore()
	clock := &fixedClock{now: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)}
	service := Service{
		Classrooms:  store,
		Tasks:       store,
		Submissions: store,
		Materials:   store,
		Blobs:       blobs,
		Accounts: fakeAccounts{accounts: map[string]ports.AccountRecord{
			"prof-1":    {ID: "prof-1", Role: "professor"},
			"prof-2":    {ID: "prof-2", Role: "professor"},
			"student-1": {ID: "student-1", Role: "student"},
			"student-2": {ID: "student-2", Role: "student"},
			"admin-1":   {ID: "admin-1", Role: "admin"},
		}},
		Clock:       clock,
		IDGenerator: store,
	}
	return service, store, blobs, clock
}

func TestCreateClassroomRequiresProfessorOwner(t *testing.T) {
	service, _, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := service.CreateClassroom(ctx, "Algebra", "ghost"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("unknown owner: got %v, want ErrUserNotFound", err)
	}
	if _, err := service.CreateClassroom(ctx, "Algebra", "student-1"); !errors.Is(err, domainerrors.ErrRoleMismatch) {
		t.Fatalf("student owner: got %v, want ErrRoleMismatch", err)
	}

	classroom, err := service.CreateClassroom(ctx, "  Algebra  ", "prof-1")
	if err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	if classroom.Name != "Algebra" {
		t.Fatalf("name not trimmed: %q", classroom.Name)
	}
	if len(classroom.StudentIDs) != 0 {
		t.Fatalf("new classroom roster not empty: %v", classroom.StudentIDs)
	}
}

func TestRosterEnrollmentLifecycle(t *testing.T) {
	service, _, _, _ := newTestService(t)
	ctx := context.Background()

	classroom, err := service.CreateClassroom(ctx, "Algebra", "prof-1")
	if err != nil {
		t.Fatalf("create classroom: %v", err)
	}

	if err := service.AddStudent(ctx, classroom.ID, "ghost"); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("enroll unknown user: got %v, want ErrUserNotFound", err)
	}
	if err := service.AddStudent(ctx, classroom.ID, "prof-2"); !errors.Is(err, domainerrors.ErrRoleMismatch) {
		t.Fatalf("enroll professor: got %v, want ErrRoleMismatch", err)
	}
	if err := service.AddStudent(ctx, "missing", "student-1"); !errors.Is(err, domainerrors.ErrClassroomNotFound) {
		t.Fatalf("enroll into missing classroom: got %v, want ErrClassroomNotFound", err)
	}

	if err := service.AddStudent(ctx, classroom.ID, "student-1"); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := service.AddStudent(ctx, classroom.ID, "student-1"); !errors.Is(err, domainerrors.ErrAlreadyEnrolled) {
		t.Fatalf("double enroll: got %v, want ErrAlreadyEnrolled", err)
	}

	if err := service.RemoveStudent(ctx, classroom.ID, "student-1"); err != nil {
		t.Fatalf("unenroll: %v", err)
	}
	if err := service.RemoveStudent(ctx, classroom.ID, "student-1"); !errors.Is(err, domainerrors.ErrNotEnrolled) {
		t.Fatalf("double unenroll: got %v, want ErrNotEnrolled", err)
	}
}

func TestListClassroomsForRoles(t *testing.T) {
	service, _, _, _ := newTestService(t)
	ctx := context.Background()

	first, err := service.CreateClassroom(ctx, "Algebra", "prof-1")
	if err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	if _, err := service.CreateClassroom(ctx, "Biology", "prof-2"); err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	if err := service.AddStudent(ctx, first.ID, "student-1"); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	all, err := service.ListClassroomsFor(ctx, "admin-1", "admin")
	if err != nil {
		t.Fatalf("list as admin: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin sees %d classrooms, want 2", len(all))
	}

	owned, err := service.ListClassroomsFor(ctx, "prof-1", "professor")
	if err != nil {
		t.Fatalf("list as professor: %v", err)
	}
	if len(owned) != 1 || owned[0].ID != first.ID {
		t.Fatalf("professor list wrong: %+v", owned)
	}

	enrolled, err := service.ListClassroomsFor(ctx, "student-1", "student")
	if err != nil {
		t.Fatalf("list as student: %v", err)
	}
	if len(enrolled) != 1 || enrolled[0].ID != first.ID {
		t.Fatalf("student list wrong: %+v", enrolled)
	}

	if _, err := service.ListClassroomsFor(ctx, "x", "auditor"); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("unknown role: got %v, want ErrInvalidRequest", err)
	}
}

func TestSubmissionDueDateRules(t *testing.T) {
	service, _, blobs, clock := newTestService(t)
	ctx := context.Background()

	classroom, err := service.CreateClassroom(ctx, "Algebra", "prof-1")
	if err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	due := clock.now.Add(24 * time.Hour)
	task, err := service.CreateTask(ctx, classroom.ID, TaskInput{Title: "Homework 1", DueDate: due})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	clock.now = due.Add(time.Minute)
	if _, err := service.CreateSubmission(ctx, task.ID, "student-1", "late.pdf", []byte("late")); !errors.Is(err, domainerrors.ErrDueDatePassed) {
		t.Fatalf("late submission: got %v, want ErrDueDatePassed", err)
	}
	if blobs.Len() != 0 {
		t.Fatalf("late submission stored a blob")
	}

	clock.now = due.Add(-time.Hour)
	submission, err := service.CreateSubmission(ctx, task.ID, "student-1", "work.pdf", []byte("answers"))
	if err != nil {
		t.Fatalf("create submission: %v", err)
	}
	if blobs.Len() != 1 {
		t.Fatalf("blob count after submit: %d, want 1", blobs.Len())
	}

	// The duplicate insert loses atomically; its just-stored blob is released.
	if _, err := service.CreateSubmission(ctx, task.ID, "student-1", "again.pdf", []byte("again")); !errors.Is(err, domainerrors.ErrDuplicateSubmission) {
		t.Fatalf("duplicate submission: got %v, want ErrDuplicateSubmission", err)
	}
	if blobs.Len() != 1 {
		t.Fatalf("blob count after duplicate: %d, want 1", blobs.Len())
	}

	clock.now = due.Add(time.Minute)
	if err := service.DeleteSubmission(ctx, submission.ID); !errors.Is(err, domainerrors.ErrDueDatePassed) {
		t.Fatalf("withdraw after due date: got %v, want ErrDueDatePassed", err)
	}

	clock.now = due.Add(-time.Minute)
	if err := service.DeleteSubmission(ctx, submission.ID); err != nil {
		t.Fatalf("withdraw before due date: %v", err)
	}
	if blobs.Len() != 0 {
		t.Fatalf("blob not released on withdraw: %d left", blobs.Len())
	}
}

func TestGradeSubmission(t *testing.T) {
	service, _, _, clock := newTestService(t)
	ctx := context.Background()

	classroom, err := service.CreateClassroom(ctx, "Algebra", "prof-1")
	if err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	task, err := service.CreateTask(ctx, classroom.ID, TaskInput{Title: "Homework 1", DueDate: clock.now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	submission, err := service.CreateSubmission(ctx, task.ID, "student-1", "work.pdf", []byte("answers"))
	if err != nil {
		t.Fatalf("create submission: %v", err)
	}

	if _, err := service.GradeSubmission(ctx, submission.ID, "   "); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("blank grade: got %v, want ErrInvalidRequest", err)
	}
	if _, err := service.GradeSubmission(ctx, "missing", "A"); !errors.Is(err, domainerrors.ErrSubmissionNotFound) {
		t.Fatalf("grade missing submission: got %v, want ErrSubmissionNotFound", err)
	}

	graded, err := service.GradeSubmission(ctx, submission.ID, " A- ")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if graded.Grade == nil || *graded.Grade != "A-" {
		t.Fatalf("grade not recorded: %+v", graded.Grade)
	}
}

func TestDeleteClassroomCascade(t *testing.T) {
	service, store, blobs, clock := newTestService(t)
	ctx := context.Background()

	classroom, err := service.CreateClassroom(ctx, "Algebra", "prof-1")
	if err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	due := clock.now.Add(time.Hour)
	first, err := service.CreateTask(ctx, classroom.ID, TaskInput{Title: "Homework 1", DueDate: due})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	second, err := service.CreateTask(ctx, classroom.ID, TaskInput{Title: "Homework 2", DueDate: due})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := service.CreateSubmission(ctx, first.ID, "student-1", "a.pdf", []byte("a")); err != nil {
		t.Fatalf("create submission: %v", err)
	}
	if _, err := service.CreateSubmission(ctx, first.ID, "student-2", "b.pdf", []byte("b")); err != nil {
		t.Fatalf("create submission: %v", err)
	}
	if _, err := service.CreateSubmission(ctx, second.ID, "student-1", "c.pdf", []byte("c")); err != nil {
		t.Fatalf("create submission: %v", err)
	}
	if _, err := service.UploadMaterial(ctx, classroom.ID, "Syllabus", "syllabus.pdf", []byte("s")); err != nil {
		t.Fatalf("upload material: %v", err)
	}

	if err := service.DeleteClassroom(ctx, classroom.ID); err != nil {
		t.Fatalf("delete classroom: %v", err)
	}

	if _, err := service.GetClassroom(ctx, classroom.ID); !errors.Is(err, domainerrors.ErrClassroomNotFound) {
		t.Fatalf("classroom survived cascade: %v", err)
	}
	if _, err := service.GetTask(ctx, first.ID); !errors.Is(err, domainerrors.ErrTaskNotFound) {
		t.Fatalf("task survived cascade: %v", err)
	}
	orphans, err := store.ListSubmissionsByStudent(ctx, "student-1")
	if err != nil {
		t.Fatalf("list submissions: %v", err)
	}
	if len(orphans) != 0 {
		t.Fatalf("submissions survived cascade: %d left", len(orphans))
	}
	if blobs.Len() != 0 {
		t.Fatalf("blobs survived cascade: %d left", blobs.Len())
	}
	if blobs.Deletes() != 4 {
		t.Fatalf("cascade released %d blobs, want 4", blobs.Deletes())
	}

	if err := service.DeleteClassroom(ctx, classroom.ID); !errors.Is(err, domainerrors.ErrClassroomNotFound) {
		t.Fatalf("second delete: got %v, want ErrClassroomNotFound", err)
	}
}

func TestStudentCleanupAcrossClassrooms(t *testing.T) {
	service, store, blobs, clock := newTestService(t)
	ctx := context.Background()

	algebra, err := service.CreateClassroom(ctx, "Algebra", "prof-1")
	if err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	biology, err := service.CreateClassroom(ctx, "Biology", "prof-2")
	if err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	for _, id := range []string{algebra.ID, biology.ID} {
		if err := service.AddStudent(ctx, id, "student-1"); err != nil {
			t.Fatalf("enroll: %v", err)
		}
	}
	if err := service.AddStudent(ctx, algebra.ID, "student-2"); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	task, err := service.CreateTask(ctx, algebra.ID, TaskInput{Title: "Homework 1", DueDate: clock.now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := service.CreateSubmission(ctx, task.ID, "student-1", "a.pdf", []byte("a")); err != nil {
		t.Fatalf("create submission: %v", err)
	}
	if _, err := service.CreateSubmission(ctx, task.ID, "student-2", "b.pdf", []byte("b")); err != nil {
		t.Fatalf("create submission: %v", err)
	}

	if err := service.RemoveStudentFromAllClassrooms(ctx, "student-1"); err != nil {
		t.Fatalf("remove from all: %v", err)
	}
	if err := service.DeleteSubmissionsByStudent(ctx, "student-1"); err != nil {
		t.Fatalf("delete submissions: %v", err)
	}

	enrolled, err := service.ListClassroomsFor(ctx, "student-1", "student")
	if err != nil {
		t.Fatalf("list enrolled: %v", err)
	}
	if len(enrolled) != 0 {
		t.Fatalf("student still enrolled in %d classrooms", len(enrolled))
	}
	left, err := store.ListSubmissionsByStudent(ctx, "student-1")
	if err != nil {
		t.Fatalf("list submissions: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("submissions survived cleanup: %d left", len(left))
	}

	// The other student's work is untouched.
	kept, err := store.ListSubmissionsByStudent(ctx, "student-2")
	if err != nil {
		t.Fatalf("list submissions: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("other student's submissions affected: %d left", len(kept))
	}
	if blobs.Len() != 1 {
		t.Fatalf("blob count after cleanup: %d, want 1", blobs.Len())
	}
}

func TestMaterialDownloadMissingFile(t *testing.T) {
	service, _, blobs, _ := newTestService(t)
	ctx := context.Background()

	classroom, err := service.CreateClassroom(ctx, "Algebra", "prof-1")
	if err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	material, err := service.UploadMaterial(ctx, classroom.ID, "Syllabus", "syllabus.pdf", []byte("s"))
	if err != nil {
		t.Fatalf("upload material: %v", err)
	}
	if material.ProfessorID != "prof-1" {
		t.Fatalf("material owner: %q, want prof-1", material.ProfessorID)
	}

	data, name, err := service.DownloadMaterial(ctx, material.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if name != "syllabus.pdf" || string(data) != "s" {
		t.Fatalf("download returned %q/%q", name, data)
	}

	if err := blobs.Delete(ctx, material.FileRef); err != nil {
		t.Fatalf("drop blob: %v", err)
	}
	if _, _, err := service.DownloadMaterial(ctx, material.ID); !errors.Is(err, domainerrors.ErrFileMissing) {
		t.Fatalf("download without blob: got %v, want ErrFileMissing", err)
	}
}
