package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jidris-spec/patient360-health-dashboard/internal/handler"
	"github.com/jidris-spec/patient360-health-dashboard/internal/middleware"
	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/service/user"
)

type Handler struct {
	svc *user.Service
}

func NewHandler(svc *user.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	doctorOnly := authMW.RequireRole(model.RoleDoctor)

	r.GET("/patients", authMW.Authenticate(), doctorOnly, h.ListPatients)
	r.GET("/doctors", authMW.Authenticate(), doctorOnly, h.ListDoctors)
	r.POST("/doctors", authMW.Authenticate(), doctorOnly, h.AddDoctor)
}

func (h *Handler) ListPatients(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	patients, err := h.svc.ListPatients(c.Request.Context(), actor)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	roster, err := h.svc.ListDoctors(c.Request.Context(), actor)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(roster))
}

func (h *Handler) AddDoctor(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	var req model.AddDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.svc.AddDoctor(c.Request.Context(), actor, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}
