package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jidris-spec/patient360-health-dashboard/internal/handler"
	"github.com/jidris-spec/patient360-health-dashboard/internal/middleware"
	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/service/appointment"
)

type Handler struct {
	svc *appointment.Service
}

func NewHandler(svc *appointment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	group := r.Group("/appointments", authMW.Authenticate())
	{
		group.POST("", h.CreateAppointment)
		group.GET("", h.ListAppointments)
		group.PATCH("/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), actor, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

// ListAppointments is role-scoped the same way as cases.
func (h *Handler) ListAppointments(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	var (
		appts []model.Appointment
		err   error
	)
	if actor.IsDoctor() {
		appts, err = h.svc.ListForDoctor(c.Request.Context(), actor, actor.UserID)
	} else {
		appts, err = h.svc.ListForPatient(c.Request.Context(), actor, actor.UserID)
	}
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appts))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.svc.SetStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}
