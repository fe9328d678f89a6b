package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type SavedHandler struct {
	savedUC domain.SavedUsecase
}

// NewSavedHandler mounts the saved-jobs routes under /users/:id. gin requires
// the user wildcard to share its name with the /users/:id routes.
func NewSavedHandler(api *gin.RouterGroup, savedUC domain.SavedUsecase) {
	handler := &SavedHandler{savedUC: savedUC}

	saved := api.Group("/users/:id/saved")
	{
		saved.GET("", handler.List)
		saved.POST("/:vagaId", handler.Add)
		saved.DELETE("/:vagaId", handler.Remove)
	}
}

// AddSaved godoc
// @Summary      Save a vaga for a user
// @Tags         saved
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Param        vagaId  path      string  true  "Vaga ID"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response  "Already saved"
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Router       /users/{userId}/saved/{vagaId} [post]
func (h *SavedHandler) Add(c *gin.Context) {
	if err := h.savedUC.AddSaved(c.Request.Context(), c.Param("id"), c.Param("vagaId")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vaga salva com sucesso")
}

// RemoveSaved godoc
// @Summary      Remove a saved vaga
// @Tags         saved
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Param        vagaId  path      string  true  "Vaga ID"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response  "Not saved"
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Router       /users/{userId}/saved/{vagaId} [delete]
func (h *SavedHandler) Remove(c *gin.Context) {
	if err := h.savedUC.RemoveSaved(c.Request.Context(), c.Param("id"), c.Param("vagaId")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vaga removida dos salvos com sucesso")
}

// ListSaved godoc
// @Summary      List a user's saved vagas
// @Description  Vagas deleted after being saved are omitted. Order is not guaranteed.
// @Tags         saved
// @Produce      json
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      500     {object}  response.Response
// @Router       /users/{userId}/saved [get]
func (h *SavedHandler) List(c *gin.Context) {
	vagas, err := h.savedUC.ListSaved(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.WithVagas(vagas))
}
