package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"storefront/libs/go/auth"
)

const userIDKey = "userID"

// requireUser verifies the bearer token and stores its user id on the context.
func (h *Handler) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, sent, err := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return err
		}
		if !sent {
			return auth.ErrMissingToken
		}
		claims, err := h.jwt.Verify(token)
		if err != nil {
			return err
		}
		c.Set(userIDKey, claims.UserID)
		return next(c)
	}
}

func userID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

func (h *Handler) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.NamedError("cause", v.Error))
			}
			h.logger.Info("request", fields...)
			return nil
		},
	})
}

// NewServer builds the echo instance with middleware and routes installed.
func NewServer(h *Handler, requestTimeout time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = h.HandleError

	e.Use(middleware.RequestID())
	e.Use(h.requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))
	if requestTimeout > 0 {
		e.Use(middleware.ContextTimeout(requestTimeout))
	}

	h.Register(e)
	return e
}
