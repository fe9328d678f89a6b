package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type VagaHandler struct {
	vagaUC domain.VagaUsecase
}

func NewVagaHandler(api *gin.RouterGroup, vagaUC domain.VagaUsecase) {
	handler := &VagaHandler{vagaUC: vagaUC}

	vagas := api.Group("/vagas")
	{
		vagas.POST("", handler.Create)
		vagas.GET("", handler.List)
		vagas.GET("/:id", handler.Get)
		vagas.PUT("/:id", handler.Update)
		vagas.DELETE("/:id", handler.Delete)
	}
}

// CreateVaga godoc
// @Summary      Create a vaga
// @Tags         vagas
// @Accept       json
// @Produce      json
// @Param        vaga  body      domain.VagaInput  true  "Vaga JSON"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /vagas [post]
func (h *VagaHandler) Create(c *gin.Context) {
	var req domain.VagaInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	vaga, err := h.vagaUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Vaga criada com sucesso", response.WithVaga(vaga))
}

// ListVagas godoc
// @Summary      List vagas
// @Tags         vagas
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /vagas [get]
func (h *VagaHandler) List(c *gin.Context) {
	vagas, err := h.vagaUC.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.WithVagas(vagas))
}

// GetVaga godoc
// @Summary      Get a vaga
// @Tags         vagas
// @Produce      json
// @Param        id   path      string  true  "Vaga ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /vagas/{id} [get]
func (h *VagaHandler) Get(c *gin.Context) {
	vaga, err := h.vagaUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.WithVaga(vaga))
}

// UpdateVaga godoc
// @Summary      Update a vaga
// @Description  Partial update. Fields that are present must not be blank.
// @Tags         vagas
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Vaga ID"
// @Param        vaga  body      domain.VagaPatch  true  "Fields to change"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /vagas/{id} [put]
func (h *VagaHandler) Update(c *gin.Context) {
	var req domain.VagaPatch
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	vaga, err := h.vagaUC.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vaga atualizada com sucesso", response.WithVaga(vaga))
}

// DeleteVaga godoc
// @Summary      Delete a vaga
// @Description  Users that saved the vaga keep its id; it is filtered out when listing saved vagas.
// @Tags         vagas
// @Produce      json
// @Param        id   path      string  true  "Vaga ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /vagas/{id} [delete]
func (h *VagaHandler) Delete(c *gin.Context) {
	if err := h.vagaUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Vaga excluída com sucesso")
}
