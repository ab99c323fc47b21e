// ABOUTME: HTTP server wiring routes to the HCS and credit services
// ABOUTME: JSON helpers and error-to-status mapping live here

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/terraledger/terraledger/internal/credits"
	"github.com/terraledger/terraledger/internal/hcs"
)

// Version reported by the root endpoint.
const Version = "0.1.0"

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	hcs      *hcs.Service
	credits  *credits.Service
	verifier *JWTVerifier
	logger   *slog.Logger
}

// NewServer creates the API server. jwtSecret may be empty, which
// disables authentication.
func NewServer(hcsSvc *hcs.Service, creditSvc *credits.Service, jwtSecret string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		hcs:     hcsSvc,
		credits: creditSvc,
		logger:  logger.With("component", "api"),
	}
	if jwtSecret != "" {
		s.verifier = NewJWTVerifier([]byte(jwtSecret))
	}
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /api/v1/hcs/topics", s.handleCreateTopic)
	apiMux.HandleFunc("POST /api/v1/hcs/topics/{topicID}/messages", s.handleSubmitMessage)
	apiMux.HandleFunc("POST /api/v1/hcs/agent/initialize", s.handleInitializeAgent)
	apiMux.HandleFunc("GET /api/v1/hcs/agent/status", s.handleAgentStatus)
	apiMux.HandleFunc("POST /api/v1/hcs/connections", s.handleCreateConnection)
	apiMux.HandleFunc("POST /api/v1/hcs/connections/messages", s.handleSendMessage)
	apiMux.HandleFunc("POST /api/v1/hcs/connections/transaction-approval", s.handleTransactionApproval)

	apiMux.HandleFunc("POST /api/v1/carbon-credits", s.handleCreateCredit)
	apiMux.HandleFunc("GET /api/v1/carbon-credits", s.handleListCredits)
	apiMux.HandleFunc("GET /api/v1/carbon-credits/{creditID}", s.handleGetCredit)
	apiMux.HandleFunc("PUT /api/v1/carbon-credits/{creditID}", s.handleUpdateCredit)
	apiMux.HandleFunc("POST /api/v1/carbon-credits/{creditID}/verify", s.handleVerifyCredit)
	apiMux.HandleFunc("POST /api/v1/carbon-credits/{creditID}/retire", s.handleRetireCredit)

	mux.Handle("/api/v1/", requireAuth(s.verifier, apiMux))
	return mux
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to TerraLedger Carbon Exchange API",
		"status":  "online",
		"version": Version,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError emits the standard error body.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// serviceError maps domain errors onto HTTP statuses. Unexpected errors
// become a 500 carrying the original message rather than a crash.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, credits.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, credits.ErrNotRetirable),
		errors.Is(err, hcs.ErrClientNotInitialized),
		errors.Is(err, hcs.ErrAgentNotReady),
		errors.Is(err, hcs.ErrMalformedMemo),
		errors.Is(err, hcs.ErrTopicCreateFailed),
		errors.Is(err, hcs.ErrSubmitFailed):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeBody parses a JSON request body into dst, reporting a 400 on
// malformed input. Returns false when the response was already written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
