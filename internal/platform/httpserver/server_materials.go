package httpserver

import (
	"net/http"
	"strings"

	authzentities "campus/contexts/identity-access/authorization-service/domain/entities"
)

func (s *Server) handleUploadMaterial(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	fileName, data, ok := readUpload(w, r)
	if !ok {
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	resp, err := s.classrooms.Handler.UploadMaterialHandler(r.Context(), r.PathValue("classroom_id"), title, fileName, data)
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMaterials(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	resp, err := s.classrooms.Handler.ListMaterialsHandler(r.Context(), r.PathValue("classroom_id"))
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMaterial(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	resp, err := s.classrooms.Handler.GetMaterialHandler(r.Context(), r.PathValue("material_id"))
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteMaterial(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	if err := s.classrooms.Handler.DeleteMaterialHandler(r.Context(), r.PathValue("material_id")); err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDownloadMaterial(w http.ResponseWriter, r *http.Request, _ authzentities.Principal) {
	data, fileName, err := s.classrooms.Handler.DownloadMaterialHandler(r.Context(), r.PathValue("material_id"))
	if err != nil {
		writeClassroomDomainError(w, err)
		return
	}
	writeFile(w, fileName, data)
}
