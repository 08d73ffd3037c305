package handler

import "github.com/labstack/echo/v4"

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/api/health", h.Health)

	api := e.Group("/api", h.requireUser)
	api.GET("/dashboard", h.Dashboard)

	api.POST("/activity", h.LogActivity)
	api.GET("/activity", h.ListActivity)
	api.PATCH("/activity/:id", h.UpdateActivity)

	api.POST("/workouts", h.CreateWorkout)
	api.GET("/workouts", h.ListWorkouts)
	api.GET("/workouts/:id", h.GetWorkout)
	api.POST("/workouts/:id/complete", h.CompleteWorkout)
}
