package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	account "campus/contexts/identity-access/account-service"
	authorization "campus/contexts/identity-access/authorization-service"
	authzapp "campus/contexts/identity-access/authorization-service/application"
	authzentities "campus/contexts/identity-access/authorization-service/domain/entities"
	authzerrors "campus/contexts/identity-access/authorization-service/domain/errors"
	authzhttp "campus/contexts/identity-access/authorization-service/transport/http"
	classroom "campus/contexts/learning/classroom-service"

	httpSwagger "github.com/swaggo/http-swagger"
)

// maxUploadBytes caps multipart request bodies for submission and material
// uploads.
const maxUploadBytes = 32 << 20

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	accounts      account.Module
	classrooms    classroom.Module
	authorization authorization.Module
}

func New(
	accounts account.Module,
	classrooms classroom.Module,
	authorizationModule authorization.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		accounts:      accounts,
		classrooms:    classrooms,
		authorization: authorizationModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// route builds the declarative authorization contract of one protected
// endpoint: the capability the caller's role must hold plus the ordered
// ownership checks the guard runs after resolving every path resource.
func route(capability authzentities.Capability, checks ...authzentities.ResourceCheck) authzentities.RouteSpec {
	return authzentities.RouteSpec{Capability: capability, Checks: checks}
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /swagger/doc.json", s.handleSwaggerDoc)

	// Allow-listed: these run before any principal exists.
	s.mux.HandleFunc("POST /api/v1/setup", s.handleSetup)
	s.mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	s.mux.HandleFunc("POST /api/v1/accounts",
		s.protected(route(authzentities.CapabilityManageAccounts), s.handleCreateAccount))
	s.mux.HandleFunc("GET /api/v1/accounts",
		s.protected(route(authzentities.CapabilityManageAccounts), s.handleListAccounts))
	s.mux.HandleFunc("GET /api/v1/accounts/{user_id}",
		s.protected(route(authzentities.CapabilityManageAccounts), s.handleGetAccount))
	s.mux.HandleFunc("DELETE /api/v1/accounts/{user_id}",
		s.protected(route(authzentities.CapabilityManageAccounts), s.handleDeleteAccount))

	s.mux.HandleFunc("POST /api/v1/classrooms",
		s.protected(route(authzentities.CapabilityCreateClassroom), s.handleCreateClassroom))
	s.mux.HandleFunc("GET /api/v1/classrooms",
		s.protected(route(authzentities.CapabilityReadClassroom), s.handleListClassrooms))
	s.mux.HandleFunc("GET /api/v1/classrooms/{classroom_id}",
		s.protected(route(authzentities.CapabilityReadClassroom, authzentities.CheckClassroomAccess), s.handleGetClassroom))
	s.mux.HandleFunc("DELETE /api/v1/classrooms/{classroom_id}",
		s.protected(route(authzentities.CapabilityDeleteClassroom, authzentities.CheckClassroomOwner), s.handleDeleteClassroom))

	s.mux.HandleFunc("POST /api/v1/classrooms/{classroom_id}/students/{student_id}",
		s.protected(route(authzentities.CapabilityManageRoster, authzentities.CheckClassroomOwner), s.handleEnrollStudent))
	s.mux.HandleFunc("DELETE /api/v1/classrooms/{classroom_id}/students/{student_id}",
		s.protected(route(authzentities.CapabilityManageRoster, authzentities.CheckClassroomOwner), s.handleUnenrollStudent))

	s.mux.HandleFunc("POST /api/v1/classrooms/{classroom_id}/tasks",
		s.protected(route(authzentities.CapabilityManageTask, authzentities.CheckClassroomOwner), s.handleCreateTask))
	s.mux.HandleFunc("GET /api/v1/classrooms/{classroom_id}/tasks",
		s.protected(route(authzentities.CapabilityReadClassroom, authzentities.CheckClassroomAccess), s.handleListTasks))
	s.mux.HandleFunc("GET /api/v1/classrooms/{classroom_id}/tasks/{task_id}",
		s.protected(route(authzentities.CapabilityReadClassroom, authzentities.CheckClassroomAccess, authzentities.CheckTaskInClassroom), s.handleGetTask))
	s.mux.HandleFunc("PATCH /api/v1/classrooms/{classroom_id}/tasks/{task_id}",
		s.protected(route(authzentities.CapabilityManageTask, authzentities.CheckClassroomOwner, authzentities.CheckTaskInClassroom), s.handleUpdateTask))
	s.mux.HandleFunc("DELETE /api/v1/classrooms/{classroom_id}/tasks/{task_id}",
		s.protected(route(authzentities.CapabilityManageTask, authzentities.CheckClassroomOwner, authzentities.CheckTaskInClassroom), s.handleDeleteTask))

	s.mux.HandleFunc("POST /api/v1/classrooms/{classroom_id}/tasks/{task_id}/submissions",
		s.protected(route(authzentities.CapabilityCreateSubmission, authzentities.CheckClassroomAccess, authzentities.CheckTaskInClassroom), s.handleCreateSubmission))
	s.mux.HandleFunc("GET /api/v1/classrooms/{classroom_id}/tasks/{task_id}/submissions",
		s.protected(route(authzentities.CapabilityReadSubmission, authzentities.CheckClassroomAccess, authzentities.CheckTaskInClassroom), s.handleListSubmissions))
	s.mux.HandleFunc("GET /api/v1/classrooms/{classroom_id}/tasks/{task_id}/submissions/{submission_id}",
		s.protected(route(authzentities.CapabilityReadSubmission, authzentities.CheckClassroomAccess, authzentities.CheckTaskInClassroom, authzentities.CheckSubmissionOwner), s.handleGetSubmission))
	s.mux.HandleFunc("DELETE /api/v1/classrooms/{classroom_id}/tasks/{task_id}/submissions/{submission_id}",
		s.protected(route(authzentities.CapabilityDeleteOwnSubmission, authzentities.CheckClassroomAccess, authzentities.CheckTaskInClassroom, authzentities.CheckSubmissionOwner), s.handleDeleteSubmission))
	s.mux.HandleFunc("GET /api/v1/classrooms/{classroom_id}/tasks/{task_id}/submissions/{submission_id}/file",
		s.protected(route(authzentities.CapabilityReadSubmission, authzentities.CheckClassroomAccess, authzentities.CheckTaskInClassroom, authzentities.CheckSubmissionOwner), s.handleDownloadSubmission))
	s.mux.HandleFunc("PUT /api/v1/classrooms/{classroom_id}/tasks/{task_id}/submissions/{submission_id}/grade",
		s.protected(route(authzentities.CapabilityGradeSubmission, authzentities.CheckClassroomOwner, authzentities.CheckTaskInClassroom), s.handleGradeSubmission))

	s.mux.HandleFunc("POST /api/v1/classrooms/{classroom_id}/materials",
		s.protected(route(authzentities.CapabilityManageMaterial, authzentities.CheckClassroomOwner), s.handleUploadMaterial))
	s.mux.HandleFunc("GET /api/v1/classrooms/{classroom_id}/materials",
		s.protected(route(authzentities.CapabilityReadMaterial, authzentities.CheckClassroomAccess), s.handleListMaterials))
	s.mux.HandleFunc("GET /api/v1/classrooms/{classroom_id}/materials/{material_id}",
		s.protected(route(authzentities.CapabilityReadMaterial, authzentities.CheckClassroomAccess), s.handleGetMaterial))
	s.mux.HandleFunc("DELETE /api/v1/classrooms/{classroom_id}/materials/{material_id}",
		s.protected(route(authzentities.CapabilityManageMaterial, authzentities.CheckClassroomOwner, authzentities.CheckMaterialOwner), s.handleDeleteMaterial))
	s.mux.HandleFunc("GET /api/v1/classrooms/{classroom_id}/materials/{material_id}/file",
		s.protected(route(authzentities.CapabilityReadMaterial, authzentities.CheckClassroomAccess), s.handleDownloadMaterial))
}

type guardedHandler func(w http.ResponseWriter, r *http.Request, principal authzentities.Principal)

// protected authenticates the request and runs the route's authorization
// contract before the handler. Existence of every path resource is established
// first, then the role capability, then the ownership checks in order; the
// handler never runs after a denial.
func (s *Server) protected(spec authzentities.RouteSpec, next guardedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := s.authorization.Resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			writeAuthzDomainError(w, err)
			return
		}

		params := authzapp.PathParams{
			ClassroomID:  r.PathValue("classroom_id"),
			TaskID:       r.PathValue("task_id"),
			SubmissionID: r.PathValue("submission_id"),
			MaterialID:   r.PathValue("material_id"),
		}
		if err := s.authorization.Guard.Authorize(r.Context(), principal, spec, params); err != nil {
			writeAuthzDomainError(w, err)
			return
		}

		next(w, r.WithContext(authzapp.ContextWithPrincipal(r.Context(), principal)), principal)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeAuthzDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authzerrors.ErrMissingCredential),
		errors.Is(err, authzerrors.ErrAuthenticationFailed):
		writeAuthzError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, authzerrors.ErrNotFound):
		writeAuthzError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, authzerrors.ErrForbidden):
		writeAuthzError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeAuthzError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAuthzError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, authzhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
