package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront/libs/go/auth"
	"storefront/services/fitness/internal/application/command"
	"storefront/services/fitness/internal/application/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) errorStatus(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		if he.Message == nil {
			return he.Code, http.StatusText(he.Code)
		}
		return he.Code, fmt.Sprint(he.Message)
	case errors.Is(err, command.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, services.ErrInvalidState):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// HandleError is installed as the echo HTTPErrorHandler.
func (h *Handler) HandleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, msg := h.errorStatus(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.Error(err),
		)
	}

	var sendErr error
	if c.Request().Method == http.MethodHead {
		sendErr = c.NoContent(code)
	} else {
		sendErr = c.JSON(code, errorResponse{Error: msg})
	}
	if sendErr != nil {
		h.logger.Warn("write error response", zap.Error(sendErr))
	}
}
