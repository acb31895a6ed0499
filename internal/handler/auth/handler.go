package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jidris-spec/patient360-health-dashboard/internal/handler"
	"github.com/jidris-spec/patient360-health-dashboard/internal/middleware"
	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/service/auth"
	"github.com/jidris-spec/patient360-health-dashboard/internal/service/user"
)

type Handler struct {
	svc     *auth.Service
	userSvc *user.Service
}

func NewHandler(svc *auth.Service, userSvc *user.Service) *Handler {
	return &Handler{svc: svc, userSvc: userSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	group := r.Group("/auth")
	{
		group.POST("/login", h.Login)
		group.POST("/signup", h.Signup)
		group.POST("/logout", authMW.Authenticate(), h.Logout)
		group.GET("/session", authMW.Authenticate(), h.Session)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

// Signup registers a patient account.
func (h *Handler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.userSvc.Register(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) Logout(c *gin.Context) {
	token := ""
	if parts := c.GetHeader("Authorization"); len(parts) > 7 {
		token = parts[7:] // strip "Bearer "
	}

	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("logged out"))
}

// Session returns the persisted session record, mirroring the boot-time
// auth restore of the dashboard clients.
func (h *Handler) Session(c *gin.Context) {
	user, err := h.svc.CurrentSession(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(user))
}
