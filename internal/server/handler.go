package server

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/FNXDOOM/AniMind/internal/apperrors"
	"github.com/FNXDOOM/AniMind/internal/models"
	"github.com/FNXDOOM/AniMind/internal/prefs"
	"github.com/FNXDOOM/AniMind/internal/progress"
	"github.com/FNXDOOM/AniMind/internal/subtitles"
)

// Handler exposes the subtitle track set, playback progress, and preferences
// over HTTP for the web client.
type Handler struct {
	library     *subtitles.Library
	records     *progress.Records
	preferences *prefs.Preferences
	logger      zerolog.Logger
}

// NewHandler creates a Handler over the given collaborators.
func NewHandler(library *subtitles.Library, records *progress.Records, preferences *prefs.Preferences, logger zerolog.Logger) *Handler {
	return &Handler{
		library:     library,
		records:     records,
		preferences: preferences,
		logger:      logger,
	}
}

// Router builds the chi router with logging and metrics middleware applied.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestLogger(h.logger))
	r.Use(RequestMetrics)

	r.Get("/healthz", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/tracks", h.ListTracks)
		r.Get("/tracks/{id}/cues", h.GetCues)
		r.Get("/tracks/{id}/active", h.GetActiveCue)

		r.Route("/users/{user}", func(r chi.Router) {
			r.Get("/progress/{subject}/{episode}", h.GetProgress)
			r.Put("/progress/{subject}/{episode}", h.PutProgress)
			r.Get("/prefs/{key}", h.GetPreference)
			r.Put("/prefs/{key}", h.PutPreference)
		})
	})

	return r
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTracks handles GET /v1/tracks.
func (h *Handler) ListTracks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.library.Tracks())
}

// GetCues handles GET /v1/tracks/{id}/cues.
func (h *Handler) GetCues(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cues, err := h.library.Cues(id)
	if err != nil {
		if errors.Is(err, &apperrors.ErrNotFound{}) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("track_id", id).Msg("Failed to load cues")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if cues == nil {
		cues = models.CueList{}
	}
	writeJSON(w, http.StatusOK, cues)
}

// GetActiveCue handles GET /v1/tracks/{id}/active?t=<seconds>.
// Responds 204 when no cue covers t.
func (h *Handler) GetActiveCue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := strconv.ParseFloat(r.URL.Query().Get("t"), 64)
	if err != nil || math.IsNaN(t) || math.IsInf(t, 0) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	cue, ok, err := h.library.ActiveAt(id, t)
	if err != nil {
		if errors.Is(err, &apperrors.ErrNotFound{}) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.logger.Error().Err(err).Str("track_id", id).Msg("Active cue lookup failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, cue)
}

// progressBody is the PUT /progress request and GET /progress response payload.
type progressBody struct {
	Position float64 `json:"positionSeconds"`
}

// GetProgress handles GET /v1/users/{user}/progress/{subject}/{episode}.
// A key never saved reads as position zero.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	key, ok := progressKeyFromRequest(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, progressBody{Position: h.records.Load(key)})
}

// PutProgress handles PUT /v1/users/{user}/progress/{subject}/{episode}.
// Invalid positions are clamped to zero before persisting, never written as-is.
func (h *Handler) PutProgress(w http.ResponseWriter, r *http.Request) {
	key, ok := progressKeyFromRequest(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var body progressBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Debug().Err(err).Msg("Invalid progress body")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.records.Save(key, body.Position); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// preferenceBody is the prefs payload in both directions.
type preferenceBody struct {
	Value string `json:"value"`
}

// GetPreference handles GET /v1/users/{user}/prefs/{key}?default=<value>.
func (h *Handler) GetPreference(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user")
	key := chi.URLParam(r, "key")
	def := r.URL.Query().Get("default")

	writeJSON(w, http.StatusOK, preferenceBody{Value: h.preferences.Get(userID, key, def)})
}

// PutPreference handles PUT /v1/users/{user}/prefs/{key}.
func (h *Handler) PutPreference(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user")
	key := chi.URLParam(r, "key")

	var body preferenceBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.preferences.Set(userID, key, body.Value); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// progressKeyFromRequest builds the composite progress key from path params.
func progressKeyFromRequest(r *http.Request) (models.ProgressKey, bool) {
	userID := chi.URLParam(r, "user")
	subjectID := chi.URLParam(r, "subject")
	episode, err := strconv.Atoi(chi.URLParam(r, "episode"))
	if userID == "" || subjectID == "" || err != nil || episode < 0 {
		return models.ProgressKey{}, false
	}
	return models.ProgressKey{UserID: userID, SubjectID: subjectID, Episode: episode}, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
