package httpapi

import (
	"context"
	"net/http"
	"time"
)

type healthResponse struct {
	Status     string         `json:"status"`
	Components map[string]any `json:"components"`
}

// handleHealth reports the registry and every registered component.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := healthResponse{
		Status:     "healthy",
		Components: make(map[string]any),
	}

	all := s.reg.AllAuctions()
	active := 0
	for _, a := range all {
		if a.Active {
			active++
		}
	}
	health.Components["auction_registry"] = map[string]any{
		"auctions": len(all),
		"active":   active,
	}

	for name, check := range s.checks {
		info, err := check(ctx)
		if err != nil {
			health.Status = "unhealthy"
			health.Components[name] = map[string]string{
				"status": "error",
				"error":  err.Error(),
			}
			continue
		}
		health.Components[name] = info
	}

	status := http.StatusOK
	if health.Status == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health)
}
