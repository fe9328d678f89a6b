package v1

import (
	"net/http"
	"strings"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC      domain.UserUsecase
	tracker     *security.LoginTracker
	securityLog *security.SecurityLogger
}

func NewUserHandler(api *gin.RouterGroup, userUC domain.UserUsecase, tracker *security.LoginTracker, securityLog *security.SecurityLogger, loginLimit gin.HandlerFunc) {
	handler := &UserHandler{
		userUC:      userUC,
		tracker:     tracker,
		securityLog: securityLog,
	}

	api.POST("/login", loginLimit, handler.Login)

	users := api.Group("/users")
	{
		users.POST("", handler.Register)
		users.GET("", handler.List)
		users.GET("/:id", handler.Get)
		users.PUT("/:id", handler.Update)
		users.DELETE("/:id", handler.Delete)
	}
}

// Register godoc
// @Summary      Register a user
// @Description  Creates an account. The password is stored as a bcrypt digest and never returned.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      domain.RegisterInput  true  "User JSON"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req domain.RegisterInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	user, err := h.userUC.Register(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	h.securityLog.LogAccount(c.Request.Context(), security.EventAccountCreated, user.ID, user.Email, domain.RequestIDFrom(c.Request.Context()))
	response.Success(c, http.StatusCreated, "Usuário criado com sucesso", response.WithUser(user))
}

// Login godoc
// @Summary      Log in
// @Description  Verifies email and password. No token is issued.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        credentials  body      domain.LoginInput  true  "Credentials"
// @Success      200          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Failure      401          {object}  response.Response
// @Failure      429          {object}  response.Response
// @Failure      500          {object}  response.Response
// @Router       /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req domain.LoginInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	ip := c.ClientIP()
	ua := c.GetHeader("User-Agent")
	reqID := domain.RequestIDFrom(c.Request.Context())
	tracked := strings.TrimSpace(req.Email) != ""

	if tracked {
		blocked, err := h.tracker.IsBlocked(ctx, req.Email)
		if err != nil {
			// fail open: a redis outage must not lock everyone out
			logger.Log.Warn("login block check failed", "error", err, "request_id", reqID)
		}
		if blocked {
			h.securityLog.LogLoginBlocked(ctx, req.Email, ip, ua, reqID)
			c.Error(apperror.TooManyRequests("Muitas tentativas de login. Tente novamente mais tarde."))
			return
		}
	}

	user, err := h.userUC.Authenticate(ctx, req)
	if err != nil {
		if tracked && (apperror.IsKind(err, apperror.KindNotFound) || apperror.IsKind(err, apperror.KindUnauthorized)) {
			if _, trackErr := h.tracker.RecordFailedAttempt(ctx, req.Email, ip, ua, reqID); trackErr != nil {
				logger.Log.Warn("failed to record login attempt", "error", trackErr, "request_id", reqID)
			}
		}
		c.Error(err)
		return
	}

	if err := h.tracker.ClearAttempts(ctx, req.Email); err != nil {
		logger.Log.Warn("failed to clear login attempts", "error", err, "request_id", reqID)
	}
	h.securityLog.LogLoginSuccess(ctx, user.ID, ip, ua, reqID)

	response.Success(c, http.StatusOK, "Login realizado com sucesso", response.WithUser(user))
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUC.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.WithUsers(users))
}

// GetUser godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", response.WithUser(user))
}

// UpdateUser godoc
// @Summary      Update a user
// @Description  Partial update. Empty or absent fields are left unchanged.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "User ID"
// @Param        user  body      domain.UpdateUserInput  true  "Fields to change"
// @Success      200   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req domain.UpdateUserInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	user, err := h.userUC.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Usuário atualizado com sucesso", response.WithUser(user))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.userUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	h.securityLog.LogAccount(c.Request.Context(), security.EventAccountDeleted, id, "", domain.RequestIDFrom(c.Request.Context()))
	response.Success(c, http.StatusOK, "Usuário excluído com sucesso")
}
