package http

import (
	"tasktracker/internal/adapter/http/handlers"
	"tasktracker/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Projects *handlers.ProjectHandler
	Tasks    *handlers.TaskHandler
	Subtasks *handlers.SubtaskHandler
	Comments *handlers.CommentHandler
	Files    *handlers.FileHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, authenticator middleware.Authenticator) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
		api.POST("/auth/login", h.Auth.Login)
	}

	secured := api.Group("")
	secured.Use(middleware.AuthMiddleware(authenticator))
	{
		secured.GET("/users/me", h.Users.Me)
		secured.GET("/users", h.Users.ListUsers)
		secured.GET("/users/stats", h.Users.MemberStats)
		secured.GET("/users/:id", h.Users.GetUser)
		secured.POST("/users", h.Users.CreateUser)
		secured.PUT("/users/:id", h.Users.UpdateUser)
		secured.DELETE("/users/:id", h.Users.DeleteUser)

		secured.GET("/projects", h.Projects.ListActiveProjects)
		secured.GET("/projects/all", h.Projects.ListAllProjects)
		secured.GET("/projects/:id", h.Projects.GetProject)
		secured.POST("/projects", h.Projects.CreateProject)
		secured.PUT("/projects/:id", h.Projects.UpdateProject)
		secured.DELETE("/projects/:id", h.Projects.DeleteProject)
		secured.POST("/projects/:id/restore", h.Projects.RestoreProject)
		secured.GET("/projects/:id/files", h.Files.ListProjectFiles)
		secured.POST("/projects/:id/files", h.Files.UploadProjectFile)
		secured.DELETE("/projects/files/:id", h.Files.DeleteProjectFile)

		secured.GET("/tasks", h.Tasks.ListTasks)
		secured.GET("/tasks/mine", h.Tasks.MyTasks)
		secured.GET("/tasks/calendar", h.Tasks.Calendar)
		secured.GET("/tasks/:id", h.Tasks.GetTask)
		secured.POST("/tasks", h.Tasks.CreateTask)
		secured.PUT("/tasks/:id", h.Tasks.UpdateTask)
		secured.PATCH("/tasks/:id/status", h.Tasks.MoveTask)
		secured.DELETE("/tasks/:id", h.Tasks.DeleteTask)

		secured.POST("/tasks/:id/subtasks", h.Subtasks.AddSubtask)
		secured.PATCH("/subtasks/:id/toggle", h.Subtasks.ToggleSubtask)
		secured.DELETE("/subtasks/:id", h.Subtasks.DeleteSubtask)

		secured.GET("/tasks/:id/comments", h.Comments.ListComments)
		secured.POST("/tasks/:id/comments", h.Comments.AddComment)
		secured.DELETE("/comments/:id", h.Comments.DeleteComment)

		secured.POST("/tasks/:id/files", h.Files.UploadTaskFile)
		secured.GET("/files/:id/download", h.Files.Download)
		secured.DELETE("/files/:id", h.Files.DeleteFile)
	}
}
