package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prathameshp107/ClinLabOps-sub003/controllers"
)

type routeControllers struct {
	users         *controllers.UserController
	projects      *controllers.ProjectController
	tasks         *controllers.TaskController
	notifications *controllers.NotificationController
	admin         *controllers.AdminController
}

func SetupRoutes(router *gin.Engine, ctrl routeControllers, authMiddleware, adminMiddleware gin.HandlerFunc) {
	// Public routes
	router.POST("/signup", ctrl.users.Signup)
	router.POST("/login", ctrl.users.Login)
	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.PATCH("/me/preferences", ctrl.users.UpdatePreferences)

		protected.POST("/projects", ctrl.projects.CreateProject)
		protected.GET("/projects", ctrl.projects.ListProjects)
		protected.GET("/projects/:id", ctrl.projects.GetProject)

		protected.POST("/tasks", ctrl.tasks.CreateTask)
		protected.GET("/tasks", ctrl.tasks.ListTasks)
		protected.GET("/tasks/:id", ctrl.tasks.GetTask)

		protected.GET("/notifications", ctrl.notifications.ListNotifications)
	}

	// Admin routes
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/deadline-check", ctrl.admin.RunDeadlineCheck)
	}
}
