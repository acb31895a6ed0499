package medcase

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jidris-spec/patient360-health-dashboard/internal/handler"
	"github.com/jidris-spec/patient360-health-dashboard/internal/middleware"
	"github.com/jidris-spec/patient360-health-dashboard/internal/model"
	"github.com/jidris-spec/patient360-health-dashboard/internal/service/medcase"
)

type Handler struct {
	svc *medcase.Service
}

func NewHandler(svc *medcase.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	group := r.Group("/cases", authMW.Authenticate())
	{
		group.POST("", h.CreateCase)
		group.GET("", h.ListCases)
		group.GET("/:id", h.GetCase)
		group.PATCH("/:id/status", h.UpdateStatus)
		group.PATCH("/:id/notes", h.UpdateNotes)
		group.POST("/:id/attachments", h.AddAttachment)
		group.GET("/:id/attachments", h.ListAttachments)
	}
}

func (h *Handler) CreateCase(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	var req model.CreateCaseRequest
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

// ListCases is role-scoped: patients get their own cases, doctors get the
// cases assigned to them.
func (h *Handler) ListCases(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	var (
		cases []model.Case
		err   error
	)
	if actor.IsDoctor() {
		cases, err = h.svc.ListForDoctor(c.Request.Context(), actor, actor.UserID)
	} else {
		cases, err = h.svc.ListForPatient(c.Request.Context(), actor, actor.UserID)
	}
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(cases))
}

func (h *Handler) GetCase(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case ID"))
		return
	}

	found, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(found))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case ID"))
		return
	}

	var req model.UpdateCaseStatusRequest
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

func (h *Handler) UpdateNotes(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case ID"))
		return
	}

	var req model.UpdateCaseNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.svc.SetNotes(c.Request.Context(), actor, id, req.Notes)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) AddAttachment(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case ID"))
		return
	}

	var req model.AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.svc.AddAttachment(c.Request.Context(), actor, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(updated))
}

func (h *Handler) ListAttachments(c *gin.Context) {
	actor, _ := middleware.ActorFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid case ID"))
		return
	}

	found, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	attachments := found.Attachments
	if attachments == nil {
		attachments = []model.Attachment{}
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(attachments))
}
