package http

import (
	"net/http"
	"time"

	"github.com/lodgepole/console/internal/console/store"
	"github.com/lodgepole/console/pkg/httpx"
)

type healthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// HealthHandler reports service health. It pings the store so a wedged
// database shows up as not-ok rather than a silent 200.
func HealthHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := healthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}

		if err := st.Ping(r.Context()); err != nil {
			response.Status = "degraded"
			httpx.WriteJSON(w, http.StatusServiceUnavailable, response)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
