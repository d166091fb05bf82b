package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/replan/internal/models"
	"github.com/claude/replan/internal/storage"
)

// userID resolves the acting user. Single-tenant deployments omit the
// header and everything lands under "default".
func userID(r *http.Request) string {
	if v := r.Header.Get("X-User-ID"); v != "" {
		return v
	}
	return "default"
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var plan models.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	plan.UpdatedAt = time.Now().UTC()

	if err := s.db.InsertPlan(r.Context(), userID(r), &plan); err != nil {
		s.log.Error("create plan", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.db.ListPlans(r.Context(), userID(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := parsePlanID(w, r)
	if !ok {
		return
	}
	plan, err := s.db.GetPlan(r.Context(), planID, userID(r))
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := parsePlanID(w, r)
	if !ok {
		return
	}
	deleted, err := s.db.DeletePlan(r.Context(), planID, userID(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type feedbackRequest struct {
	Feedback string `json:"feedback"`
}

func (s *Server) handleAdjustPlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := parsePlanID(w, r)
	if !ok {
		return
	}
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Feedback == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "feedback is required"})
		return
	}

	result, err := s.adjust.Adjust(r.Context(), planID, userID(r), req.Feedback)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	if errors.Is(err, storage.ErrConflict) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "plan was modified concurrently, retry"})
		return
	}
	if err != nil {
		s.log.Error("adjust plan", "plan_id", planID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePreviewPlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := parsePlanID(w, r)
	if !ok {
		return
	}
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Feedback == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "feedback is required"})
		return
	}

	result, err := s.adjust.Preview(r.Context(), planID, userID(r), req.Feedback)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleValidatePlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := parsePlanID(w, r)
	if !ok {
		return
	}
	result, err := s.adjust.Validate(r.Context(), planID, userID(r))
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handlePlanHistory(w http.ResponseWriter, r *http.Request) {
	planID, ok := parsePlanID(w, r)
	if !ok {
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = n
	}

	rows, err := s.db.QueryAdjustments(r.Context(), planID, userID(r), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleInterpretFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Feedback == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "feedback is required"})
		return
	}
	fb := s.adjust.Interpret(r.Context(), req.Feedback)
	writeJSON(w, http.StatusOK, fb)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	profile.UserID = chi.URLParam(r, "userID")

	if err := s.db.UpsertProfile(r.Context(), profile); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.db.GetProfile(r.Context(), chi.URLParam(r, "userID"))
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// handleHealth reports whether the server can reach its database. Load
// balancers poll this to take a degraded instance out of rotation.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parsePlanID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	planID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid plan ID"})
		return uuid.Nil, false
	}
	return planID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
