package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(api *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	api.GET("/health", handler.Check)
}

// Health godoc
// @Summary      Service health
// @Description  Pings the document store and redis when configured.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status, healthy := h.healthUC.Check(c.Request.Context())
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success: false,
			Error:   "Serviço temporariamente indisponível",
			Status:  status,
		})
		return
	}
	response.Success(c, http.StatusOK, "System operational", response.WithStatus(status))
}
