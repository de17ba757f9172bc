package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hyperjump/gluco/internal/models"
)

const (
	highRiskFormat = "Risiko Tinggi: Anda memiliki %.2f%% kemungkinan terkena diabetes."
	lowRiskFormat  = "Risiko Rendah: Anda memiliki %.2f%% kemungkinan bebas dari diabetes."
)

// Recommendations are shown with every high-risk verdict.
var Recommendations = []string{
	"Kurangi konsumsi gula dan karbohidrat sederhana.",
	"Tingkatkan aktivitas fisik, seperti berjalan kaki atau olahraga ringan.",
	"Perbanyak konsumsi sayuran, buah-buahan, dan makanan tinggi serat.",
	"Lakukan pemeriksaan kesehatan secara rutin untuk memantau kondisi tubuh Anda.",
}

// Verdict returns the user-facing message for p.
func Verdict(p models.Prediction) string {
	if p.HighRisk() {
		return fmt.Sprintf(highRiskFormat, p.ProbabilityHigh*100)
	}
	return fmt.Sprintf(lowRiskFormat, p.ProbabilityLow*100)
}

// BuildPredictResponse renders p with a fresh exchange ID.
func BuildPredictResponse(p models.Prediction) models.PredictResponse {
	resp := models.PredictResponse{
		ID:         uuid.New().String(),
		Prediction: p,
		Risk:       "low",
		Message:    Verdict(p),
	}
	if p.HighRisk() {
		resp.Risk = "high"
		resp.Recommendations = append([]string(nil), Recommendations...)
	}
	return resp
}
