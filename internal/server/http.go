package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/alfredjeanlab/intake/internal/intake"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 4 << 20

// NewHTTPHandler returns an http.Handler with all routes registered, wrapped
// in request logging.
func (s *IntakeServer) NewHTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/tools", s.handleListTools)
	mux.HandleFunc("POST /v1/tools/{name}", s.handleCallTool)
	mux.HandleFunc("POST /v1/consumption", s.handleLogConsumption)
	mux.HandleFunc("GET /v1/consumption", s.handleListConsumption)
	mux.HandleFunc("GET /v1/consumption/summary", s.handleSummarizeIntake)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return LoggingMiddleware(mux)
}

// handleHealth handles GET /v1/health.
func (s *IntakeServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListTools handles GET /v1/tools.
func (s *IntakeServer) handleListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": intake.Tools})
}

// handleCallTool handles POST /v1/tools/{name}. The body is the operation's
// arguments object.
func (s *IntakeServer) handleCallTool(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, r.PathValue("name"))
}

// handleLogConsumption handles POST /v1/consumption.
func (s *IntakeServer) handleLogConsumption(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, intake.OpLogConsumption)
}

// handleListConsumption handles GET /v1/consumption.
func (s *IntakeServer) handleListConsumption(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.ListConsumption(r.Context(), queryFromURL(r))
	if err != nil {
		writeError(w, httpStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSummarizeIntake handles GET /v1/consumption/summary.
func (s *IntakeServer) handleSummarizeIntake(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.SummarizeIntake(r.Context(), queryFromURL(r))
	if err != nil {
		writeError(w, httpStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *IntakeServer) dispatch(w http.ResponseWriter, r *http.Request, name string) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(body) > 0 && !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.svc.Dispatch(r.Context(), name, body)
	if err != nil {
		writeError(w, httpStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func queryFromURL(r *http.Request) *intake.QueryRequest {
	q := r.URL.Query()
	return &intake.QueryRequest{
		UserID: q.Get("user_id"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
