package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront/services/fitness/internal/application/command"
	"storefront/services/fitness/internal/application/query"
)

const maxWorkoutListLimit = 100

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *Handler) Health(c echo.Context) error {
	status := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	}
	if h.ping == nil {
		return c.JSON(http.StatusOK, status)
	}

	if err := h.ping(c.Request().Context()); err != nil {
		h.logger.Warn("database ping failed", zap.Error(err))
		status["status"] = "degraded"
		status["database"] = "down"
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	status["database"] = "up"
	return c.JSON(http.StatusOK, status)
}

func (h *Handler) Dashboard(c echo.Context) error {
	result, err := h.dashboard.Dashboard(c.Request().Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) LogActivity(c echo.Context) error {
	var cmd command.LogActivityCommand
	if err := c.Bind(&cmd); err != nil {
		return err
	}

	log, created, err := h.activity.Log(c.Request().Context(), userID(c), cmd)
	if err != nil {
		return err
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, toActivityLogResponse(log))
}

func (h *Handler) ListActivity(c echo.Context) error {
	r := query.ActivityRange{Start: c.QueryParam("start"), End: c.QueryParam("end")}
	logs, err := h.activity.List(c.Request().Context(), userID(c), r)
	if err != nil {
		return err
	}

	resp := make([]activityLogResponse, 0, len(logs))
	for i := range logs {
		resp = append(resp, toActivityLogResponse(&logs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) UpdateActivity(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var cmd command.UpdateActivityCommand
	if err := c.Bind(&cmd); err != nil {
		return err
	}

	log, err := h.activity.Update(c.Request().Context(), userID(c), id, cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityLogResponse(log))
}

func (h *Handler) CreateWorkout(c echo.Context) error {
	var cmd command.CreateWorkoutCommand
	if err := c.Bind(&cmd); err != nil {
		return err
	}

	workout, err := h.workouts.Create(c.Request().Context(), userID(c), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toWorkoutResponse(workout))
}

// ListWorkouts accepts an optional ?limit capped at maxWorkoutListLimit.
func (h *Handler) ListWorkouts(c echo.Context) error {
	limit := maxWorkoutListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = min(n, maxWorkoutListLimit)
	}

	workouts, err := h.workouts.List(c.Request().Context(), userID(c), limit)
	if err != nil {
		return err
	}

	resp := make([]workoutResponse, 0, len(workouts))
	for i := range workouts {
		resp = append(resp, toWorkoutResponse(&workouts[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetWorkout(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	workout, err := h.workouts.Get(c.Request().Context(), userID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkoutResponse(workout))
}

func (h *Handler) CompleteWorkout(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var cmd command.CompleteWorkoutCommand
	if err := c.Bind(&cmd); err != nil {
		return err
	}

	workout, err := h.workouts.Complete(c.Request().Context(), userID(c), id, cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkoutResponse(workout))
}
