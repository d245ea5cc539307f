package http

import (
	"net/http"

	"github.com/jobdesk/jobdesk/internal/auth/store"
	"github.com/jobdesk/jobdesk/pkg/authsdk"
	"github.com/jobdesk/jobdesk/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and a check for the database
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.ReadyzResponse	"status, checks"
//	@Failure		503	{object}	authsdk.ReadyzResponse	"status, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"database": "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks["database"] = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := authsdk.ReadyzResponse{
			Status: overallStatus,
			Checks: checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
