package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/chordex/constants"
	"github.com/jsphweid/chordex/detector"
	"github.com/jsphweid/chordex/key"
	"github.com/jsphweid/chordex/logging"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/velocity"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrLengthMismatch  = errors.New("velocities must match notes")
)

type session struct {
	mu  sync.Mutex
	det *detector.Detector
}

// Server exposes stateless detection plus detector sessions that keep note
// state between requests.
type Server struct {
	cfg velocity.Config

	mu       sync.RWMutex
	sessions map[string]*session

	log *logrus.Entry
}

func New(cfg velocity.Config) (*Server, error) {
	if _, err := velocity.New(cfg); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	return &Server{
		cfg:      cfg,
		sessions: make(map[string]*session),
		log:      logging.For("server"),
	}, nil
}

// Handler routes every endpoint and allows cross origin requests.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/detect", s.HandleDetect).Methods(http.MethodPost)
	router.HandleFunc("/sessions", s.handleCreateSession).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods(http.MethodDelete)
	router.HandleFunc("/sessions/{id}/notes", s.handleNote).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}/key", s.handleSetKey).Methods(http.MethodPut)
	router.HandleFunc("/sessions/{id}/key", s.handleClearKey).Methods(http.MethodDelete)
	router.HandleFunc("/sessions/{id}/chord", s.handleChord).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	})
	return c.Handler(router)
}

func (s *Server) ListenAndServe(addr string) error {
	s.log.WithField("addr", addr).Info("serving")
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) newDetector() *detector.Detector {
	d, err := detector.New(s.cfg, detector.WithLogger(s.log.WithField("component", "detector")))
	if err != nil {
		// config was validated in New
		panic(err)
	}
	return d
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func respond(d *detector.Detector, maxCount int, detailed bool) model.DetectResponse {
	var res []model.Candidate
	if detailed {
		res = d.DetectDetailed(maxCount)
	} else {
		res = d.DetectAlternatives(maxCount)
	}
	out := model.DetectResponse{
		Mask:       d.CurrentMask().String(),
		Candidates: make([]model.Candidate, 0, len(res)),
	}
	out.Candidates = append(out.Candidates, res...)
	if len(res) > 0 {
		best := res[0]
		out.Best = &best
	}
	return out
}

// HandleDetect names the chord in a single request body without keeping
// any state.
func (s *Server) HandleDetect(w http.ResponseWriter, r *http.Request) {
	var input model.DetectRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode request body: %w", err))
		return
	}
	if len(input.Velocities) > 0 && len(input.Velocities) != len(input.Notes) {
		writeError(w, http.StatusBadRequest, ErrLengthMismatch)
		return
	}

	d := s.newDetector()
	for i, note := range input.Notes {
		vel := 80
		if len(input.Velocities) > 0 {
			vel = input.Velocities[i]
		}
		if err := d.NoteOn(note, vel); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if input.Key != "" {
		k, err := key.Parse(input.Key)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		d.SetKey(k)
	}
	d.SetSlashChordDetection(!input.NoSlash)

	maxCount := input.Max
	if maxCount <= 0 {
		maxCount = constants.DefaultMaxCandidates
	}
	writeJSON(w, http.StatusOK, respond(d, maxCount, input.Detailed))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	s.mu.Lock()
	s.sessions[id] = &session{det: s.newDetector()}
	s.mu.Unlock()
	s.log.WithField("session", id).Debug("session created")
	writeJSON(w, http.StatusCreated, model.SessionResponse{Id: id})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := mux.Vars(r)["id"]
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", ErrSessionNotFound, id))
	}
	return sess, ok
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.lookup(w, r); !ok {
		return
	}
	s.mu.Lock()
	delete(s.sessions, mux.Vars(r)["id"])
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var input model.NoteRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode request body: %w", err))
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	var err error
	if input.On {
		err = sess.det.NoteOn(input.Note, input.Velocity)
	} else {
		err = sess.det.NoteOff(input.Note)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	sess.det.Reset()
	sess.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetKey(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var input model.KeyRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode request body: %w", err))
		return
	}
	k, err := key.Parse(input.Key)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sess.mu.Lock()
	sess.det.SetKey(k)
	sess.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearKey(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	sess.mu.Lock()
	sess.det.ClearKeyContext()
	sess.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChord(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	maxCount := constants.DefaultMaxCandidates
	if v := r.URL.Query().Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid max: %q", v))
			return
		}
		maxCount = n
	}
	detailed, _ := strconv.ParseBool(r.URL.Query().Get("detailed"))

	sess.mu.Lock()
	res := respond(sess.det, maxCount, detailed)
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, res)
}
