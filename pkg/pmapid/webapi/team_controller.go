package webapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/project-mosaic/mosaic/pkg/authz"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmdb/stor"
)

type TeamController struct {
	teamStor   stor.TeamStor
	userStor   stor.UserStor
	authorizer *authz.Authorizer
}

func NewTeamController(teamStor stor.TeamStor, userStor stor.UserStor, authorizer *authz.Authorizer) *TeamController {
	return &TeamController{teamStor: teamStor, userStor: userStor, authorizer: authorizer}
}

func (c *TeamController) CreateTeam(ctx echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if req.Name == "" {
		return validationError("team name is required")
	}

	user := userFromContext(ctx)
	team := &pmmodel.Team{Name: req.Name, Description: req.Description}

	team, err := c.teamStor.CreateTeam(team, user)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, team)
}

func (c *TeamController) GetTeam(ctx echo.Context) error {
	teamID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid team id")
	}

	user := userFromContext(ctx)
	if err := c.authorizer.AuthorizeTeam(user.ID, teamID); err != nil {
		return toHTTPError(err)
	}

	team, err := c.teamStor.GetTeamByID(teamID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, team)
}

func (c *TeamController) ListTeams(ctx echo.Context) error {
	user := userFromContext(ctx)

	teams, err := c.teamStor.GetTeamsForUser(user.ID)
	if err != nil {
		return toHTTPError(err)
	}

	if teams == nil {
		teams = []pmmodel.Team{}
	}

	return ctx.JSON(http.StatusOK, teams)
}

func (c *TeamController) UpdateTeam(ctx echo.Context) error {
	teamID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid team id")
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	user := userFromContext(ctx)
	if err := c.authorizer.AuthorizeTeam(user.ID, teamID, pmmodel.TeamRoleOwner); err != nil {
		return toHTTPError(err)
	}

	team, err := c.teamStor.GetTeamByID(teamID)
	if err != nil {
		return toHTTPError(err)
	}

	name := team.Name
	if req.Name != nil {
		name = *req.Name
	}
	if name == "" {
		return validationError("team name cannot be empty")
	}

	description := team.Description
	if req.Description != nil {
		description = *req.Description
	}

	team, err = c.teamStor.UpdateTeam(team, name, description)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, team)
}

func (c *TeamController) DeleteTeam(ctx echo.Context) error {
	teamID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid team id")
	}

	user := userFromContext(ctx)
	if err := c.authorizer.AuthorizeTeam(user.ID, teamID, pmmodel.TeamRoleOwner); err != nil {
		return toHTTPError(err)
	}

	team, err := c.teamStor.GetTeamByID(teamID)
	if err != nil {
		return toHTTPError(err)
	}

	if err := c.teamStor.DeleteTeam(team); err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"status": "success"})
}

// AddMemberByEmail adds an existing user to the team. Only the owner may
// manage membership.
func (c *TeamController) AddMemberByEmail(ctx echo.Context) error {
	teamID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid team id")
	}

	var req struct {
		Email string          `json:"email"`
		Role  pmmodel.TeamRole `json:"role"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if req.Email == "" {
		return validationError("email is required")
	}

	if req.Role == "" {
		req.Role = pmmodel.TeamRoleMember
	}
	if !req.Role.Valid() {
		return validationError("invalid role")
	}

	user := userFromContext(ctx)
	if err := c.authorizer.AuthorizeTeam(user.ID, teamID, pmmodel.TeamRoleOwner); err != nil {
		return toHTTPError(err)
	}

	team, err := c.teamStor.GetTeamByID(teamID)
	if err != nil {
		return toHTTPError(err)
	}

	target, err := c.userStor.GetUserByEmail(req.Email)
	if err != nil {
		return toHTTPError(err)
	}

	member, err := c.teamStor.AddMember(team, target, req.Role)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, member)
}

func (c *TeamController) RemoveMember(ctx echo.Context) error {
	teamID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid team id")
	}

	targetID, err := strconv.Atoi(ctx.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	user := userFromContext(ctx)
	if err := c.authorizer.AuthorizeTeam(user.ID, teamID, pmmodel.TeamRoleOwner); err != nil {
		return toHTTPError(err)
	}

	team, err := c.teamStor.GetTeamByID(teamID)
	if err != nil {
		return toHTTPError(err)
	}

	if err := c.teamStor.RemoveMember(team, targetID); err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"status": "success"})
}
