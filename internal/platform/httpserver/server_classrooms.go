package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	authzentities "campus/contexts/identity-access/authorization-service/domain/entities"
	classroomerrors "campus/contexts/learning/classroom-service/domain/errors"
	classroomhttp "campus/contexts/learning/classroom-service/transport/http"
)

func (s *Server) handleCreateClassroom(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	var req classroomhttp.CreateClassroomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClassroomError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.classrooms.Handler.CreateClassroomHandler(r.Context(), req)
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListClassrooms(w http.ResponseWriter, r *http.Request, principal authzentities.Principal) {
	resp, err := s.classrooms.Handler.ListClassroomsHandler(r.Context(), principal.UserID, string(principal.Role))
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetClassroom(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	resp, err := s.classrooms.Handler.GetClassroomHandler(r.Context(), r.PathValue("classroom_id"))
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteClassroom(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	if err := s.classrooms.Handler.DeleteClassroomHandler(r.Context(), r.PathValue("classroom_id")); err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEnrollStudent(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	err := s.classrooms.Handler.EnrollStudentHandler(r.Context(), r.PathValue("classroom_id"), r.PathValue("student_id"))
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnenrollStudent(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	err := s.classrooms.Handler.UnenrollStudentHandler(r.Context(), r.PathValue("classroom_id"), r.PathValue("student_id"))
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeClassroomDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, classroomerrors.ErrInvalidRequest):
		writeClassroomError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, classroomerrors.ErrClassroomNotFound),
		errors.Is(err, classroomerrors.ErrTaskNotFound),
		errors.Is(err, classroomerrors.ErrSubmissionNotFound),
		errors.Is(err, classroomerrors.ErrMaterialNotFound),
		errors.Is(err, classroomerrors.ErrUserNotFound),
		errors.Is(err, classroomerrors.ErrNotEnrolled),
		errors.Is(err, classroomerrors.ErrFileMissing):
		writeClassroomError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, classroomerrors.ErrRoleMismatch):
		writeClassroomError(w, http.StatusUnprocessableEntity, "role_mismatch", err.Error())
	case errors.Is(err, classroomerrors.ErrAlreadyEnrolled):
		writeClassroomError(w, http.StatusConflict, "already_enrolled", err.Error())
	case errors.Is(err, classroomerrors.ErrDuplicateSubmission):
		writeClassroomError(w, http.StatusConflict, "duplicate_submission", err.Error())
	case errors.Is(err, classroomerrors.ErrDueDatePassed):
		writeClassroomError(w, http.StatusForbidden, "due_date_passed", err.Error())
	default:
		writeClassroomError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeClassroomError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, classroomhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
