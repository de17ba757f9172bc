package server

import (
	"encoding/json"
	"net/http"

	"github.com/hyperjump/gluco/internal/cli"
	"github.com/hyperjump/gluco/internal/models"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type route struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

var routes = []route{
	{"POST", "/api/v1/chat", "Answer a question about diabetes"},
	{"POST", "/api/v1/predict", "Estimate diabetes risk from eight health measurements"},
	{"GET", "/api/v1/status", "Loaded corpus and model summary"},
	{"GET", "/health", "Liveness check"},
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"name":        "Gluco",
		"description": "Diabetes question answering and risk estimation",
		"version":     s.version,
		"routes":      routes,
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	resp := s.source.Current().Chat(req.Query)
	s.logger.Debug("chat request",
		zap.String("id", resp.ID),
		zap.String("query", req.Query),
		zap.Bool("matched", resp.Matched),
		zap.Float64("score", resp.Score),
	)
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req models.PredictRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	record, err := req.HealthRecord()
	if err == nil {
		err = record.ValidateRanges()
	}
	if err != nil {
		s.logger.Debug("predict rejected", zap.Error(err))
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := cli.BuildPredictResponse(s.source.Current().Classifier().PredictRecord(record))
	s.logger.Debug("predict request",
		zap.String("id", resp.ID),
		zap.String("risk", resp.Risk),
		zap.Float64("probability_high", resp.Prediction.ProbabilityHigh),
	)
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"version": s.version,
		"status":  s.source.Current().Status(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
