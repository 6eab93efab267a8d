package http

import (
	"log/slog"
	"net/http"
)

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Service) healthz(w http.ResponseWriter, r *http.Request) error {
	healthy, err := s.healthChecker.IsHealthy(r.Context())
	if err != nil {
		s.logger.WarnContext(r.Context(), "database health check failed", slog.Any("error", err))
	}
	if !healthy {
		return writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
	}

	return writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
