package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/planner/api/handler"
)

type Handlers struct {
	Task       *apiHandler.TaskHandler
	Category   *apiHandler.CategoryHandler
	Analytics  *apiHandler.AnalyticsHandler
	Preference *apiHandler.PreferenceHandler
	Reminder   *apiHandler.ReminderHandler
	Health     *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Protected routes
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PATCH("/api/v1/tasks/{id}", authMiddleware(handlers.Task.UpdateTask))
	r.POST("/api/v1/tasks/{id}/toggle", authMiddleware(handlers.Task.ToggleTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	r.GET("/api/v1/categories", authMiddleware(handlers.Category.GetCategories))
	r.POST("/api/v1/categories", authMiddleware(handlers.Category.CreateCategory))
	r.DELETE("/api/v1/categories/{id}", authMiddleware(handlers.Category.DeleteCategory))

	r.GET("/api/v1/analytics", authMiddleware(handlers.Analytics.GetAnalytics))

	r.GET("/api/v1/preferences", authMiddleware(handlers.Preference.GetPreferences))
	r.PUT("/api/v1/preferences", authMiddleware(handlers.Preference.UpdatePreferences))
	r.POST("/api/v1/devices", authMiddleware(handlers.Preference.RegisterDevice))
	r.DELETE("/api/v1/devices", authMiddleware(handlers.Preference.UnregisterDevice))

	r.POST("/api/v1/reminders/scan", authMiddleware(handlers.Reminder.Scan))

	return r
}
