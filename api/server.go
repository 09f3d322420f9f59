package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"weather-widget/geo"
	"weather-widget/render"
	"weather-widget/widget"

	"github.com/gorilla/mux"
)

// Server represents the widget HTTP server
type Server struct {
	sessions *SessionStore
	router   *mux.Router
	server   *http.Server
}

// NewServer creates a new widget server listening on port
func NewServer(sessions *SessionStore, port int) *Server {
	router := mux.NewRouter()

	server := &Server{
		sessions: sessions,
		router:   router,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}

	router.HandleFunc("/", server.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/api/health", server.handleHealthCheck).Methods(http.MethodGet)

	router.HandleFunc("/api/sessions/{id}", server.handleGetSession).Methods(http.MethodGet)
	router.HandleFunc("/api/sessions/{id}/cities", server.handleAddCity).Methods(http.MethodPost)
	router.HandleFunc("/api/sessions/{id}/location", server.handleAddLocation).Methods(http.MethodPost)

	return server
}

// Router exposes the handler for tests and embedding
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins the API server
func (s *Server) Start() error {
	log.Printf("Starting widget server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// addResponse is the outcome of one add: a new card, a notification, or neither
type addResponse struct {
	Card         *render.Card `json:"card,omitempty"`
	HTML         string       `json:"html,omitempty"`
	Notification string       `json:"notification,omitempty"`
}

type cityRequest struct {
	Name string `json:"name"`
}

// locationRequest carries the browser's geolocation outcome.
// Error is "denied" or "unsupported" when no position was obtained.
type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     string   `json:"error"`
}

func (req locationRequest) locator() (geo.Locator, error) {
	switch req.Error {
	case "denied":
		return geo.Denied(), nil
	case "unsupported":
		return geo.Unsupported(), nil
	case "":
	default:
		return nil, fmt.Errorf("unknown geolocation error %q", req.Error)
	}
	if req.Latitude == nil || req.Longitude == nil {
		return nil, errors.New("latitude and longitude are required")
	}
	return geo.Static(*req.Latitude, *req.Longitude), nil
}

// handleAddCity runs the add workflow for a typed city name
func (s *Server) handleAddCity(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var req cityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// a started fetch runs to completion even if the client goes away
	card, err := session.Controller.Add(context.WithoutCancel(r.Context()), req.Name)
	s.writeOutcome(w, card, err)
}

// handleAddLocation runs the geolocation workflow with the browser's result
func (s *Server) handleAddLocation(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	var req locationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	locator, err := req.locator()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := session.Controller.AddCurrentLocation(context.WithoutCancel(r.Context()), locator)
	s.writeOutcome(w, card, err)
}

// handleGetSession returns the session's locations and cards
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.session(w, r)
	if !ok {
		return
	}

	cards, loading := session.Cards()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":        session.ID,
		"locations": session.Controller.Session().Keys(),
		"cards":     cards,
		"state":     session.Controller.State().String(),
		"loading":   loading,
	})
}

// handleIndex starts a new session and serves the widget page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	session := s.sessions.Create()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, pageData{SessionID: session.ID}); err != nil {
		log.Printf("Error rendering page: %v", err)
	}
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"sessions":  s.sessions.Count(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id := mux.Vars(r)["id"]
	session, exists := s.sessions.Get(id)
	if !exists {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown session: %s", id))
	}
	return session, exists
}

func (s *Server) writeOutcome(w http.ResponseWriter, card *render.Card, err error) {
	var resp addResponse
	if err != nil {
		var failure *widget.Failure
		if !errors.As(err, &failure) {
			log.Printf("Unexpected add error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		log.Printf("Add failed: %v", err)
		resp.Notification = failure.Message
	}
	if card != nil {
		html, err := render.HTML(*card)
		if err != nil {
			log.Printf("Error rendering card: %v", err)
		}
		resp.Card = card
		resp.HTML = html
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
