// Package fakeapi is an in-memory stand-in for the climbing backend. It keeps
// one session per user per day and lets callers inject failures per route.
package fakeapi

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"crux/internal/contract"
	"crux/internal/platform/clock"
)

// Route names accepted by Fail.
const (
	RouteStart    = "start"
	RouteEnd      = "end"
	RouteGet      = "get"
	RouteClimbs   = "climbs"
	RouteGenerate = "generate"
	RouteAuth     = "auth"
)

// Failure replaces the normal answer of one route. A zero Status with a Body
// answers 200 with that body, which is how malformed payloads are simulated.
type Failure struct {
	Delay  time.Duration
	Status int
	Body   string
}

type climb struct {
	status contract.ClimbStatus
}

type session struct {
	date      string
	startedAt *time.Time
	endedAt   *time.Time
	climbs    []climb
}

type Server struct {
	clock clock.Clock

	mu       sync.Mutex
	sessions map[string]*session
	failures map[string]Failure
	calls    map[string]int
	uploads  [][]byte
}

func New(clk clock.Clock) *Server {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Server{
		clock:    clk,
		sessions: map[string]*session{},
		failures: map[string]Failure{},
		calls:    map[string]int{},
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/api/users/{userID}/sessions/today", func(r chi.Router) {
		r.Get("/", s.wrap(RouteGet, s.handleGet))
		r.Post("/start", s.wrap(RouteStart, s.handleStart))
		r.Post("/end", s.wrap(RouteEnd, s.handleEnd))
		r.Post("/climbs", s.wrap(RouteClimbs, s.handleClimb))
	})
	r.Post("/api/auth/google", s.wrap(RouteAuth, s.handleAuth))
	r.Post("/boulder/generate", s.wrap(RouteGenerate, s.handleGenerate))
	return r
}

// Fail injects f into every later call of route until Recover.
func (s *Server) Fail(route string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = f
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// Calls counts requests that reached route, failed ones included.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// Uploads returns the bytes of every received /boulder/generate file part.
func (s *Server) Uploads() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.uploads...)
}

func (s *Server) wrap(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[route]++
		failure, failing := s.failures[route]
		s.mu.Unlock()

		if !failing {
			next(w, r)
			return
		}
		if failure.Delay > 0 {
			select {
			case <-time.After(failure.Delay):
			case <-r.Context().Done():
				return
			}
		}
		status := failure.Status
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, failure.Body)
	}
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	s.mu.Lock()
	now := s.clock.Now()
	sess := s.today(userID, now)
	if sess.startedAt == nil {
		sess.startedAt = &now
		sess.endedAt = nil
	}
	stats := s.stats(sess, now)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	s.mu.Lock()
	now := s.clock.Now()
	sess := s.today(userID, now)
	if sess.startedAt == nil {
		sess.startedAt = &now
	}
	sess.endedAt = &now
	stats := s.stats(sess, now)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	s.mu.Lock()
	now := s.clock.Now()
	stats := s.stats(s.today(userID, now), now)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleClimb(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	var body struct {
		Status          *string `json:"status"`
		Attempts        *int    `json:"attempts"`
		DurationSeconds *int    `json:"durationSeconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == nil || body.Attempts == nil || body.DurationSeconds == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid climb event"})
		return
	}
	s.mu.Lock()
	now := s.clock.Now()
	sess := s.today(userID, now)
	if sess.startedAt == nil {
		sess.startedAt = &now
	}
	sess.endedAt = nil
	sess.climbs = append(sess.climbs, climb{status: contract.ClimbStatus(*body.Status)})
	stats := s.stats(sess, now)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	var body contract.GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.IDToken) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid token payload"})
		return
	}
	resp := contract.AuthResponse{
		User: contract.AuthUser{
			ID:        "user-" + body.IDToken,
			Email:     body.IDToken + "@example.com",
			FirstName: "Demo",
			LastName:  "Climber",
		},
		Token:     "token-" + body.IDToken,
		IsNewUser: true,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid image file"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid image file"})
		return
	}
	defer file.Close()
	if ct := header.Header.Get("Content-Type"); ct != "image/jpeg" && ct != "image/png" {
		writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{"detail": "Unsupported file type"})
		return
	}
	payload, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid image file"})
		return
	}
	s.mu.Lock()
	s.uploads = append(s.uploads, payload)
	s.mu.Unlock()

	overlay, err := renderOverlay(payload)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid image file"})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(overlay)
}

// renderOverlay re-encodes the upload as PNG with a marker in the corner.
func renderOverlay(payload []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	marker := color.RGBA{R: 0xff, A: 0xff}
	for y := b.Min.Y; y < b.Min.Y+4 && y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Min.X+4 && x < b.Max.X; x++ {
			dst.Set(x, y, marker)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// today returns the user's session for the current UTC date, starting a new
// one when the date rolled over. Caller holds s.mu.
func (s *Server) today(userID string, now time.Time) *session {
	date := now.UTC().Format("2006-01-02")
	sess, ok := s.sessions[userID]
	if !ok || sess.date != date {
		sess = &session{date: date}
		s.sessions[userID] = sess
	}
	return sess
}

func (s *Server) stats(sess *session, now time.Time) contract.TodaySessionResponse {
	out := contract.TodaySessionResponse{Climbs: len(sess.climbs)}
	for _, c := range sess.climbs {
		if c.status.IsSend() {
			out.Sends++
		}
	}
	if sess.startedAt != nil {
		end := now
		if sess.endedAt != nil {
			end = *sess.endedAt
		}
		if elapsed := int(end.Sub(*sess.startedAt).Seconds()); elapsed > 0 {
			out.ElapsedSeconds = elapsed
		}
	}
	out.IsActive = sess.startedAt != nil && sess.endedAt == nil
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
