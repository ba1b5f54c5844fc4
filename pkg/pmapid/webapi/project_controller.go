package webapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/project-mosaic/mosaic/pkg/authz"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmdb/stor"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
)

type ProjectController struct {
	projectStor stor.ProjectStor
	teamStor    stor.TeamStor
	userStor    stor.UserStor
	authorizer  *authz.Authorizer
}

func NewProjectController(projectStor stor.ProjectStor, teamStor stor.TeamStor, userStor stor.UserStor, authorizer *authz.Authorizer) *ProjectController {
	return &ProjectController{
		projectStor: projectStor,
		teamStor:    teamStor,
		userStor:    userStor,
		authorizer:  authorizer,
	}
}

// projectResponse annotates a project with its resolved team name.
type projectResponse struct {
	pmmodel.Project
	TeamName string `json:"team_name"`
}

func (c *ProjectController) annotate(project pmmodel.Project) projectResponse {
	resp := projectResponse{Project: project, TeamName: "No Team"}
	if project.TeamID == nil {
		return resp
	}

	if team, err := c.teamStor.GetTeamByID(*project.TeamID); err == nil {
		resp.TeamName = team.Name
	}

	return resp
}

func (c *ProjectController) CreateProject(ctx echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		TeamID      *int   `json:"team_id"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if req.Name == "" {
		return validationError("project name is required")
	}

	user := userFromContext(ctx)

	if req.TeamID != nil {
		err := c.authorizer.AuthorizeTeam(user.ID, *req.TeamID,
			pmmodel.TeamRoleOwner, pmmodel.TeamRoleAdmin)
		if err != nil {
			return toHTTPError(err)
		}
	}

	project := &pmmodel.Project{
		Name:        req.Name,
		Description: req.Description,
		TeamID:      req.TeamID,
		OwnerID:     user.ID,
	}

	project, err := c.projectStor.CreateProject(project, []int{user.ID})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, c.annotate(*project))
}

// CreateTeamProject creates a project under a team, seeding the member set
// with all of the team's current members. The member set is a snapshot;
// users who join the team later do not gain access to this project.
func (c *ProjectController) CreateTeamProject(ctx echo.Context) error {
	teamID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid team id")
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if req.Name == "" {
		return validationError("project name is required")
	}

	user := userFromContext(ctx)
	err = c.authorizer.AuthorizeTeam(user.ID, teamID,
		pmmodel.TeamRoleOwner, pmmodel.TeamRoleAdmin)
	if err != nil {
		return toHTTPError(err)
	}

	team, err := c.teamStor.GetTeamByID(teamID)
	if err != nil {
		return toHTTPError(err)
	}

	memberIDs := make([]int, 0, len(team.Members))
	for _, m := range team.Members {
		memberIDs = append(memberIDs, m.UserID)
	}

	project := &pmmodel.Project{
		Name:        req.Name,
		Description: req.Description,
		TeamID:      &team.ID,
		OwnerID:     user.ID,
	}

	project, err = c.projectStor.CreateProject(project, memberIDs)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, c.annotate(*project))
}

func (c *ProjectController) GetProject(ctx echo.Context) error {
	projectID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}

	user := userFromContext(ctx)
	if err := c.authorizer.AuthorizeProjectMembership(user.ID, projectID); err != nil {
		return toHTTPError(err)
	}

	project, err := c.projectStor.GetProjectByID(projectID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, c.annotate(*project))
}

func (c *ProjectController) ListProjects(ctx echo.Context) error {
	user := userFromContext(ctx)

	projects, err := c.projectStor.GetProjectsForUser(user.ID)
	if err != nil {
		return toHTTPError(err)
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, c.annotate(p))
	}

	return ctx.JSON(http.StatusOK, resp)
}

func (c *ProjectController) UpdateProject(ctx echo.Context) error {
	projectID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	project, err := c.projectStor.GetProjectByID(projectID)
	if err != nil {
		return toHTTPError(err)
	}

	user := userFromContext(ctx)
	if project.OwnerID != user.ID {
		return toHTTPError(errors.Wrap(pmerr.ErrForbidden, "only the project owner can update the project"))
	}

	name := project.Name
	if req.Name != nil {
		name = *req.Name
	}
	if name == "" {
		return validationError("project name cannot be empty")
	}

	description := project.Description
	if req.Description != nil {
		description = *req.Description
	}

	project, err = c.projectStor.UpdateProject(project, name, description)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, c.annotate(*project))
}

func (c *ProjectController) DeleteProject(ctx echo.Context) error {
	projectID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}

	project, err := c.projectStor.GetProjectByID(projectID)
	if err != nil {
		return toHTTPError(err)
	}

	user := userFromContext(ctx)
	if project.OwnerID != user.ID {
		return toHTTPError(errors.Wrap(pmerr.ErrForbidden, "only the project owner can delete the project"))
	}

	if err := c.projectStor.DeleteProject(project); err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"status": "success"})
}

func (c *ProjectController) AddMember(ctx echo.Context) error {
	projectID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}

	targetID, err := strconv.Atoi(ctx.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	project, err := c.projectStor.GetProjectByID(projectID)
	if err != nil {
		return toHTTPError(err)
	}

	user := userFromContext(ctx)
	if project.OwnerID != user.ID {
		return toHTTPError(errors.Wrap(pmerr.ErrForbidden, "only the project owner can add members"))
	}

	target, err := c.userStor.GetUserByID(targetID)
	if err != nil {
		return toHTTPError(err)
	}

	if err := c.projectStor.AddMemberToProject(project, target); err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"status": "success"})
}
