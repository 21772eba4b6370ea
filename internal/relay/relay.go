// Package relay maps campus API errors onto portal HTTP responses.
package relay

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/campus-events/portal/internal/gateway"
	"github.com/campus-events/portal/internal/workflow"
	"github.com/campus-events/portal/pkg/response"
)

// Error writes the HTTP response for a failed campus API call. Upstream
// application errors pass through with their original status and message;
// transport failures become 503.
func Error(c *gin.Context, logger *zap.Logger, err error) {
	if errors.Is(err, context.Canceled) {
		c.Abort()
		return
	}
	if errors.Is(err, gateway.ErrUnavailable) {
		response.ServiceUnavailable(c, "campus API is unavailable")
		return
	}
	if apiErr, ok := gateway.AsAPIError(err); ok {
		response.Status(c, apiErr.Status, apiErr.Message())
		return
	}
	logger.Error("unexpected upstream failure", zap.Error(err))
	response.Internal(c, "internal error")
}

// WorkflowError writes the HTTP response for a rejected workflow action
// before falling back to upstream error mapping.
func WorkflowError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, workflow.ErrCommentRequired),
		errors.Is(err, workflow.ErrConfirmationRequired):
		response.BadRequest(c, err.Error())
	case errors.Is(err, workflow.ErrNotAllowed):
		response.Forbidden(c, err.Error())
	default:
		var invalid *workflow.InvalidTransitionError
		if errors.As(err, &invalid) {
			response.Conflict(c, invalid.Error())
			return
		}
		if block, ok := workflow.AsBlock(err); ok {
			response.Conflict(c, block.Message)
			return
		}
		Error(c, logger, err)
	}
}
