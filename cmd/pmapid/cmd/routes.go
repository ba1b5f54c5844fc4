package cmd

import (
	"github.com/labstack/echo/v4"
	"github.com/project-mosaic/mosaic/pkg/authz"
	"github.com/project-mosaic/mosaic/pkg/pmapid/webapi"
	"github.com/project-mosaic/mosaic/pkg/pmapid/webapi/apimiddleware"
	"github.com/project-mosaic/mosaic/pkg/pmdb/stor"
)

type RouteOpts struct {
	Stors      *stor.Stors
	Authorizer *authz.Authorizer
}

func setupRoutes(e *echo.Echo, opts RouteOpts) {
	authController := webapi.NewAuthController(opts.Stors.UserStor)

	public := e.Group("/api/auth")
	public.POST("/register", authController.Register)
	public.POST("/login", authController.Login)

	g := e.Group("/api")
	g.Use(apimiddleware.APIKeyAuth(apimiddleware.APIKeyConfig{
		Keyname:         "apikey",
		GetUserByAPIKey: opts.Stors.UserStor.GetUserByAPIToken,
	}))

	g.GET("/auth/me", authController.Me)

	userController := webapi.NewUserController(opts.Stors.UserStor)
	g.GET("/users/by-email", userController.GetUserByEmail)

	teamController := webapi.NewTeamController(opts.Stors.TeamStor, opts.Stors.UserStor, opts.Authorizer)
	g.POST("/teams", teamController.CreateTeam)
	g.GET("/teams", teamController.ListTeams)
	g.GET("/teams/:id", teamController.GetTeam)
	g.PUT("/teams/:id", teamController.UpdateTeam)
	g.DELETE("/teams/:id", teamController.DeleteTeam)
	g.POST("/teams/:id/members", teamController.AddMemberByEmail)
	g.DELETE("/teams/:id/members/:user_id", teamController.RemoveMember)

	projectController := webapi.NewProjectController(opts.Stors.ProjectStor, opts.Stors.TeamStor, opts.Stors.UserStor, opts.Authorizer)
	g.POST("/projects", projectController.CreateProject)
	g.GET("/projects", projectController.ListProjects)
	g.GET("/projects/:id", projectController.GetProject)
	g.PUT("/projects/:id", projectController.UpdateProject)
	g.DELETE("/projects/:id", projectController.DeleteProject)
	g.POST("/projects/:id/members/:user_id", projectController.AddMember)
	g.POST("/teams/:id/projects", projectController.CreateTeamProject)

	taskController := webapi.NewTaskController(opts.Stors.TaskStor, opts.Stors.ProjectStor, opts.Stors.UserStor, opts.Authorizer)

	projectAccess := apimiddleware.ProjectAccessAuth(apimiddleware.ProjectAccessConfig{
		AuthorizeProject: opts.Authorizer.AuthorizeProjectMembership,
	})

	g.POST("/projects/:id/tasks", taskController.CreateTask, projectAccess)
	g.GET("/projects/:id/tasks", taskController.ListProjectTasks, projectAccess)
	g.POST("/projects/:id/tasks/bulk", taskController.BulkCreateTasks)

	g.GET("/tasks/:id", taskController.GetTask)
	g.PUT("/tasks/:id", taskController.UpdateTask)
	g.DELETE("/tasks/:id", taskController.DeleteTask)
	g.PUT("/tasks/:id/assign", taskController.AssignTask)
	g.PUT("/tasks/:id/status", taskController.UpdateStatus)
	g.POST("/tasks/:id/comments", taskController.AddComment)
	g.DELETE("/tasks/:id/comments", taskController.RemoveComment)
	g.DELETE("/tasks/:id/comments/:comment_id", taskController.RemoveComment)
}
