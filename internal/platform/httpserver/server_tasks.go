package httpserver

import (
	"encoding/json"
	"io"
	"net/http"

	authzentities "campus/contexts/identity-access/authorization-service/domain/entities"
	classroomhttp "campus/contexts/learning/classroom-service/transport/http"
)

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	var req classroomhttp.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClassroomError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.classrooms.Handler.CreateTaskHandler(r.Context(), r.PathValue("classroom_id"), req)
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	resp, err := s.classrooms.Handler.ListTasksHandler(r.Context(), r.PathValue("classroom_id"))
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	resp, err := s.classrooms.Handler.GetTaskHandler(r.Context(), r.PathValue("task_id"))
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	var req classroomhttp.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClassroomError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.classrooms.Handler.UpdateTaskHandler(r.Context(), r.PathValue("task_id"), req)
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	if err := s.classrooms.Handler.DeleteTaskHandler(r.Context(), r.PathValue("task_id")); err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request, principal authzentities.Principal) {
	fileName, data, ok := readUpload(w, r)
	if !ok {
		return
	}
	resp, err := s.classrooms.Handler.CreateSubmissionHandler(r.Context(), r.PathValue("task_id"), principal.UserID, fileName, data)
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request, principal authzentities.Principal) {
	resp, err := s.classrooms.Handler.ListSubmissionsHandler(r.Context(), r.PathValue("task_id"))
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	// Students see only their own row; professors and admins see the task's
	// full set.
	if principal.Role == authzentities.RoleStudent {
		own := resp.Submissions[:0:0]
		for _, submission := range resp.Submissions {
			if submission.StudentID == principal.UserID {
				own = append(own, submission)
			}
		}
		resp.Submissions = own
		if resp.Submissions == nil {
			resp.Submissions = []classroomhttp.SubmissionDTO{}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	resp, err := s.classrooms.Handler.GetSubmissionHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteSubmission(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	if err := s.classrooms.Handler.DeleteSubmissionHandler(r.Context(), r.PathValue("submission_id")); err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGradeSubmission(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	var req classroomhttp.GradeSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeClassroomError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.classrooms.Handler.GradeSubmissionHandler(r.Context(), r.PathValue("submission_id"), req)
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDownloadSubmission(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	data, fileName, err := s.classrooms.Handler.DownloadSubmissionHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeFile(w, fileName, data)
}

// readUpload extracts the uploaded file from a multipart form. Reports
// completion through its ok result; the error response is already written on
// failure.
func readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeClassroomError(w, http.StatusBadRequest, "invalid_upload", "request must be a multipart form")
		return "", nil, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeClassroomError(w, http.StatusBadRequest, "invalid_upload", "file field is required")
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeClassroomError(w, http.StatusBadRequest, "invalid_upload", "could not read uploaded file")
		return "", nil, false
	}
	return header.Filename, data, true
}

func writeFile(w http.ResponseWriter, fileName string, data []byte) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
