package http

import (
	"github.com/gin-gonic/gin"

	"devflow/internal/adapter/http/handlers"
	"devflow/internal/adapter/http/middleware"
	"devflow/internal/core/ports"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Tasks  *handlers.TaskHandler
	Notes  *handlers.NoteHandler
	Users  *handlers.UserHandler
}

func RegisterRoutes(r *gin.Engine, authenticator ports.Authenticator, h Handlers) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/signin", h.Auth.SignIn)
		api.POST("/auth/telegram", h.Auth.SignInWithTelegram)
	}

	private := api.Group("")
	private.Use(middleware.RequireSession(authenticator))
	{
		private.GET("/auth/session", h.Auth.CurrentSession)
		private.POST("/auth/signout", h.Auth.SignOut)

		private.GET("/tasks", h.Tasks.ListTasks)
		private.POST("/tasks", h.Tasks.CreateTask)
		private.GET("/tasks/:id", h.Tasks.GetTask)
		private.PUT("/tasks/:id", h.Tasks.UpdateTask)
		private.PATCH("/tasks/:id", h.Tasks.PatchTask)
		private.DELETE("/tasks/:id", h.Tasks.DeleteTask)

		private.GET("/notes", h.Notes.ListNotes)
		private.POST("/notes", h.Notes.CreateNote)
		private.GET("/notes/:id", h.Notes.GetNote)
		private.PUT("/notes/:id", h.Notes.UpdateNote)
		private.PATCH("/notes/:id", h.Notes.UpdateNote)
		private.DELETE("/notes/:id", h.Notes.DeleteNote)

		private.GET("/users/search", h.Users.SearchUsers)
		private.GET("/users/friends", h.Users.ListFriends)
		private.GET("/users/friend-requests", h.Users.ListFriendRequests)
		private.POST("/users/friend-requests/send", h.Users.SendFriendRequest)
		private.PATCH("/users/friend-requests/respond", h.Users.RespondFriendRequest)
	}
}
