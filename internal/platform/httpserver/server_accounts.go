package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	accounterrors "campus/contexts/identity-access/account-service/domain/errors"
	accounthttp "campus/contexts/identity-access/account-service/transport/http"
	authzentities "campus/contexts/identity-access/authorization-service/domain/entities"
)

func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccountError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.accounts.Handler.SetupHandler(r.Context(), req)
	if err != nil {
		writeAccountDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req accounthttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccountError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.accounts.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeAccountDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	var req accounthttp.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAccountError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.accounts.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		writeAccountDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	resp, err := s.accounts.Handler.ListUsersHandler(r.Context())
	if err != nil {
		writeAccountDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	resp, err := s.accounts.Handler.GetUserHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeAccountDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	if err := s.accounts.Handler.DeleteUserHandler(r.Context(), r.PathValue("user_id")); err != nil {
		writeAccountDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeAccountDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accounterrors.ErrInvalidRequest):
		writeAccountError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, accounterrors.ErrInvalidLogin):
		writeAccountError(w, http.StatusUnauthorized, "invalid_login", err.Error())
	case errors.Is(err, accounterrors.ErrUserNotFound):
		writeAccountError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, accounterrors.ErrEmailTaken):
		writeAccountError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, accounterrors.ErrLastAdmin):
		writeAccountError(w, http.StatusConflict, "last_admin", err.Error())
	case errors.Is(err, accounterrors.ErrAdminExists):
		writeAccountError(w, http.StatusConflict, "admin_exists", err.Error())
	default:
		writeAccountError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAccountError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, accounthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
