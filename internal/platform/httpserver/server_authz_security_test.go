package httpserver

import (
	"net/http"
	"testing"

	accounthttp "campus/contexts/identity-access/account-service/transport/http"
	authzentities "campus/contexts/identity-access/authorization-service/domain/entities"
)

func TestProtectedRoutesRequireBearerToken(t *testing.T) {
	env := newTestServer(t)

	if rec := env.do(http.MethodGet, "/api/v1/classrooms", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: got %d, want 401", rec.Code)
	}
	if rec := env.do(http.MethodGet, "/api/v1/classrooms", "not-a-token", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: got %d, want 401", rec.Code)
	}

	// A well-formed token whose subject no longer exists is rejected the same
	// way as a bad token.
	orphan, err := env.auth.Codec.Issue("ghost@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if rec := env.do(http.MethodGet, "/api/v1/classrooms", orphan, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("orphan subject: got %d, want 401", rec.Code)
	}
}

func TestSetupAndLoginFlow(t *testing.T) {
	env := newTestServer(t)

	setup := accounthttp.SetupRequest{
		Email:    "root@example.com",
		FullName: "Root Admin",
		Password: "password1",
	}
	if rec := env.do(http.MethodPost, "/api/v1/setup", "", setup); rec.Code != http.StatusCreated {
		t.Fatalf("setup: got %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if rec := env.do(http.MethodPost, "/api/v1/setup", "", setup); rec.Code != http.StatusConflict {
		t.Fatalf("second setup: got %d, want 409", rec.Code)
	}

	bad := accounthttp.LoginRequest{Email: "root@example.com", Password: "wrong"}
	if rec := env.do(http.MethodPost, "/api/v1/auth/login", "", bad); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: got %d, want 401", rec.Code)
	}

	rec := env.do(http.MethodPost, "/api/v1/auth/login", "", accounthttp.LoginRequest{
		Email:    "Root@Example.com",
		Password: "password1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got %d, want 200: %s", rec.Code, rec.Body.String())
	}
	login := decodeBody[accounthttp.LoginResponse](t, rec)
	if login.Token == "" {
		t.Fatalf("login returned no token")
	}
	if login.User.Role != "admin" {
		t.Fatalf("setup created role %q, want admin", login.User.Role)
	}

	if rec := env.do(http.MethodGet, "/api/v1/accounts", login.Token, nil); rec.Code != http.StatusOK {
		t.Fatalf("list accounts with login token: got %d, want 200", rec.Code)
	}
}

func TestAccountRoutesAreAdminOnly(t *testing.T) {
	env := newTestServer(t)
	_, profToken := env.register(authzentities.RoleProfessor, "prof@example.com")
	studentID, studentToken := env.register(authzentities.RoleStudent, "student@example.com")

	if rec := env.do(http.MethodGet, "/api/v1/accounts", profToken, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("professor lists accounts: got %d, want 403", rec.Code)
	}
	if rec := env.do(http.MethodDelete, "/api/v1/accounts/"+studentID, studentToken, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("student deletes account: got %d, want 403", rec.Code)
	}
}

func TestLastAdminDeleteRejectedOverHTTP(t *testing.T) {
	env := newTestServer(t)
	adminID, adminToken := env.register(authzentities.RoleAdmin, "admin@example.com")

	if rec := env.do(http.MethodDelete, "/api/v1/accounts/"+adminID, adminToken, nil); rec.Code != http.StatusConflict {
		t.Fatalf("delete last admin: got %d, want 409", rec.Code)
	}

	env.register(authzentities.RoleAdmin, "second@example.com")
	if rec := env.do(http.MethodDelete, "/api/v1/accounts/"+adminID, adminToken, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete admin with another remaining: got %d, want 204", rec.Code)
	}
}
