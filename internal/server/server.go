// Package server assembles the chi router for the operator command
// surface. Everything except login and health sits behind bearer auth.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/personaliz/agentd/internal/auth"
	"github.com/personaliz/agentd/internal/server/handler"
)

type Server struct {
	router *chi.Mux
	logger *zap.Logger

	authValidator auth.TokenValidator

	authHandler     *handler.AuthHandler     // /auth/token
	agentHandler    *handler.AgentHandler    // /v1/agents
	approvalHandler *handler.ApprovalHandler // /v1/approvals
	settingsHandler *handler.SettingsHandler // /v1/settings
	llmHandler      *handler.LLMHandler      // /v1/llm
	logsHandler     *handler.LogsHandler     // /v1/logs
}

func New(
	logger *zap.Logger,
	validator auth.TokenValidator,
	authH *handler.AuthHandler,
	agentH *handler.AgentHandler,
	approvalH *handler.ApprovalHandler,
	settingsH *handler.SettingsHandler,
	llmH *handler.LLMHandler,
	logsH *handler.LogsHandler,
) *Server {
	s := &Server{
		router:          chi.NewRouter(),
		logger:          logger.Named("api"),
		authValidator:   validator,
		authHandler:     authH,
		agentHandler:    agentH,
		approvalHandler: approvalH,
		settingsHandler: settingsH,
		llmHandler:      llmH,
		logsHandler:     logsH,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Public routes: login and liveness.
	r.Group(func(r chi.Router) {
		r.Post("/auth/token", s.authHandler.Login)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	// Protected perimeter.
	r.Group(func(r chi.Router) {
		r.Use(auth.NewMiddleware(s.authValidator, s.logger))

		r.Route("/v1/agents", func(r chi.Router) {
			r.Get("/", s.agentHandler.List)
			r.Post("/", s.agentHandler.Register)
			r.Post("/{name}/trigger", s.agentHandler.TriggerNow)
			r.Post("/{id}/enabled", s.agentHandler.SetEnabled)
		})

		r.Route("/v1/approvals", func(r chi.Router) {
			r.Get("/", s.approvalHandler.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.approvalHandler.GetDetails)
				r.Post("/decide", s.approvalHandler.Decide)
			})
		})

		r.Route("/v1/settings", func(r chi.Router) {
			r.Get("/", s.settingsHandler.Get)
			r.Put("/credential", s.settingsHandler.PutCredential)
			r.Delete("/credential", s.settingsHandler.DeleteCredential)
		})

		r.Post("/v1/llm/generate", s.llmHandler.Generate)
		r.Get("/v1/logs", s.logsHandler.GetLogs)
	})
}

// ServeHTTP lets the Server plug in as a standard http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
