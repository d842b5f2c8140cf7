package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/workaholic/backend/api/handler"
)

type Handlers struct {
	Auth         *apiHandler.AuthHandler
	Task         *apiHandler.TaskHandler
	Notification *apiHandler.NotificationHandler
	Health       *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/signup", handlers.Auth.Signup)
	r.POST("/api/login", handlers.Auth.Login)
	r.POST("/api/logout", handlers.Auth.Logout)
	r.GET("/api/checklogin", authMiddleware(handlers.Auth.CheckLogin))

	// Task routes
	r.GET("/api/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/tasks", authMiddleware(handlers.Task.AddTask))
	r.PUT("/api/tasks/{id}", authMiddleware(handlers.Task.EditTask))
	r.DELETE("/api/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	// Notification routes
	r.POST("/api/send-notification", handlers.Notification.SendDirect)
	r.POST("/api/send-expo-notification", handlers.Notification.SendRelay)
	r.POST("/api/send-user-notification", authMiddleware(handlers.Notification.SendToUser))
	r.POST("/api/update-device-token", authMiddleware(handlers.Notification.UpdateDeviceToken))
	r.GET("/api/send-due-task-notifications", authMiddleware(handlers.Notification.SendDueTaskNotifications))

	return r
}
