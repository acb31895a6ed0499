package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/jidris-spec/patient360-health-dashboard/pkg/errors"
)

// Error writes the envelope for a service error using the shared
// error-to-status mapping.
func Error(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), NewErrorResponse(err.Error()))
}
