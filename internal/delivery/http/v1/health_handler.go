package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-cv-backend/internal/delivery/http/response"
	"go-cv-backend/pkg/apperror"
)

// HealthChecker reports per-dependency status and whether all are up.
type HealthChecker interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type HealthHandler struct {
	checker HealthChecker
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if h.checker == nil {
		response.Success(c, http.StatusOK, "System operational", gin.H{"status": "ok"})
		return
	}
	deps, ok := h.checker.Check(c.Request.Context())
	if !ok {
		response.Partial(c, http.StatusServiceUnavailable, "System degraded",
			gin.H{"status": "degraded", "dependencies": deps},
			response.ErrorBody{Kind: string(apperror.KindUnavailable)})
		return
	}
	response.Success(c, http.StatusOK, "System operational", gin.H{"status": "ok", "dependencies": deps})
}
