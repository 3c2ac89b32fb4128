package httpx

import (
	"context"
	"net/http"
	"sort"
	"time"
)

// Pinger is the probe contract for /health. The database pool, the Redis
// client and the event bus all satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler probes every registered dependency with a shared 2s deadline.
// Any failing probe turns the response into 503 "degraded"; the body names
// each probe so operators can see which one is down.
func HealthHandler(probes map[string]Pinger) http.HandlerFunc {
	// Stable ordering keeps probe runs and log output deterministic.
	names := make([]string, 0, len(probes))
	for name := range probes {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := healthResponse{
			Status: "ok",
			Checks: make(map[string]string, len(probes)),
		}
		for _, name := range names {
			if err := probes[name].Ping(ctx); err != nil {
				resp.Status = "degraded"
				resp.Checks[name] = "unreachable"
				continue
			}
			resp.Checks[name] = "ok"
		}

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
