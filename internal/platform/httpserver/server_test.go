package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	account "campus/contexts/identity-access/account-service"
	accountmemory "campus/contexts/identity-access/account-service/adapters/memory"
	accountapp "campus/contexts/identity-access/account-service/application"
	authorization "campus/contexts/identity-access/authorization-service"
	authzentities "campus/contexts/identity-access/authorization-service/domain/entities"
	authzports "campus/contexts/identity-access/authorization-service/ports"
	classroom "campus/contexts/learning/classroom-service"
	classroommemory "campus/contexts/learning/classroom-service/adapters/memory"
	classroomports "campus/contexts/learning/classroom-service/ports"
	"campus/internal/platform/blob"
)

type testEnv struct {
	t          *testing.T
	server     *Server
	accounts   account.Module
	classrooms classroom.Module
	auth       authorization.Module
	blobs      *blob.MemoryStore
}

type testUserDirectory struct {
	store *accountmemory.Store
}

func (d testUserDirectory) FindByEmail(ctx context.Context, email string) (authzports.UserRecord, bool, error) {
	user, found, err := d.store.GetUserByEmail(ctx, email)
	if err != nil || !found {
		return authzports.UserRecord{}, false, err
	}
	return authzports.UserRecord{ID: user.ID, Email: user.Email, Role: user.Role}, true, nil
}

type testAccountDirectory struct {
	store *accountmemory.Store
}

func (d testAccountDirectory) GetAccount(ctx context.Context, userID string) (classroomports.AccountRecord, bool, error) {
	user, found, err := d.store.GetUser(ctx, userID)
	if err != nil || !found {
		return classroomports.AccountRecord{}, false, err
	}
	return classroomports.AccountRecord{ID: user.ID, Role: string(user.Role)}, true, nil
}

type testResourceDirectory struct {
	store *classroommemory.Store
}

func (d testResourceDirectory) GetClassroom(ctx context.Context, classroomID string) (authzports.ClassroomRecord, bool, error) {
	classroom, found, err := d.store.GetClassroom(ctx, classroomID)
	if err != nil || !found {
		return authzports.ClassroomRecord{}, false, err
	}
	return authzports.ClassroomRecord{ID: classroom.ID, ProfessorID: classroom.ProfessorID, StudentIDs: classroom.StudentIDs}, true, nil
}

func (d testResourceDirectory) GetTask(ctx context.Context, taskID string) (authzports.TaskRecord, bool, error) {
	task, found, err := d.store.GetTask(ctx, taskID)
	if err != nil || !found {
		return authzports.TaskRecord{}, false, err
	}
	return authzports.TaskRecord{ID: task.ID, ClassroomID: task.ClassroomID}, true, nil
}

func (d testResourceDirectory) GetSubmission(ctx context.Context, submissionID string) (authzports.SubmissionRecord, bool, error) {
	submission, found, err := d.store.GetSubmission(ctx, submissionID)
	if err != nil || !found {
		return authzports.SubmissionRecord{}, false, err
	}
	return authzports.SubmissionRecord{ID: submission.ID, TaskID: submission.TaskID, StudentID: submission.StudentID}, true, nil
}

func (d testResourceDirectory) GetMaterial(ctx context.Context, materialID string) (authzports.MaterialRecord, bool, error) {
	material, found, err := d.store.GetMaterial(ctx, materialID)
	if err != nil || !found {
		return authzports.MaterialRecord{}, false, err
	}
	return authzports.MaterialRecord{ID: material.ID, ClassroomID: material.ClassroomID, ProfessorID: material.ProfessorID}, true, nil
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()

	accountStore := accountmemory.NewStore()
	classroomStore := classroommemory.NewStore()
	blobs := blob.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	resources := testResourceDirectory{store: classroomStore}
	authModule := authorization.NewModule(authorization.Dependencies{
		TokenSecret: []byte("test-secret"),
		TokenIssuer: "campus-test",
		Clock:       accountStore,
		Users:       testUserDirectory{store: accountStore},
		Classrooms:  resources,
		Tasks:       resources,
		Submissions: resources,
		Materials:   resources,
		Logger:      logger,
	})
	classroomModule := classroom.NewModule(classroom.Dependencies{
		Classrooms:  classroomStore,
		Tasks:       classroomStore,
		Submissions: classroomStore,
		Materials:   classroomStore,
		Blobs:       blobs,
		Accounts:    testAccountDirectory{store: accountStore},
		Clock:       classroomStore,
		IDGenerator: classroomStore,
		Logger:      logger,
	})
	accountModule := account.NewModule(account.Dependencies{
		Repository:  accountStore,
		Cleanup:     classroomModule.Service,
		Tokens:      authModule.Codec,
		Clock:       accountStore,
		IDGenerator: accountStore,
		BcryptCost:  bcrypt.MinCost,
		Logger:      logger,
	})

	return &testEnv{
		t:          t,
		server:     New(accountModule, classroomModule, authModule, logger, ":0"),
		accounts:   accountModule,
		classrooms: classroomModule,
		auth:       authModule,
		blobs:      blobs,
	}
}

// register creates an account directly through the service layer and returns
// (user id, bearer token).
func (e *testEnv) register(role authzentities.Role, email string) (string, string) {
	e.t.Helper()
	user, err := e.accounts.Service.Register(context.Background(), accountapp.RegisterInput{
		Email:    email,
		FullName: "Test User",
		Password: "password1",
		Role:     role,
	})
	if err != nil {
		e.t.Fatalf("register %s: %v", email, err)
	}
	token, err := e.auth.Codec.Issue(user.Email)
	if err != nil {
		e.t.Fatalf("issue token for %s: %v", email, err)
	}
	return user.ID, token
}

func (e *testEnv) do(method string, path string, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

// upload POSTs a multipart form with one file field and optional extra fields.
func (e *testEnv) upload(path string, token string, fileName string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			e.t.Fatalf("write form field %s: %v", key, err)
		}
	}
	part, err := form.CreateFormFile("file", fileName)
	if err != nil {
		e.t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		e.t.Fatalf("write form file: %v", err)
	}
	if err := form.Close(); err != nil {
		e.t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return out
}
