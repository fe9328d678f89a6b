package v1

import (
	"errors"
	"io"

	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// bindJSON decodes the request body into obj. An empty body decodes as {} so
// that missing fields surface as validation errors from the usecase.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindWith(obj, binding.JSON); err != nil && !errors.Is(err, io.EOF) {
		return apperror.BadRequest("Corpo da requisição inválido")
	}
	return nil
}
