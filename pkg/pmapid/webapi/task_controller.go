package webapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/project-mosaic/mosaic/pkg/authz"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmdb/stor"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
)

type TaskController struct {
	taskStor    stor.TaskStor
	projectStor stor.ProjectStor
	userStor    stor.UserStor
	authorizer  *authz.Authorizer
}

func NewTaskController(taskStor stor.TaskStor, projectStor stor.ProjectStor, userStor stor.UserStor, authorizer *authz.Authorizer) *TaskController {
	return &TaskController{
		taskStor:    taskStor,
		projectStor: projectStor,
		userStor:    userStor,
		authorizer:  authorizer,
	}
}

type taskCreateRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  *int       `json:"assignee_id"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Labels      []string   `json:"labels"`
}

func (r *taskCreateRequest) toTask(projectID, reporterID int) (*pmmodel.Task, error) {
	if r.Title == "" {
		return nil, errors.Wrap(pmerr.ErrValidation, "task title is required")
	}

	if r.Status != "" && !pmmodel.TaskStatus(r.Status).Valid() {
		return nil, errors.Wrapf(pmerr.ErrValidation, "invalid status: %s", r.Status)
	}

	if r.Priority != "" && !pmmodel.TaskPriority(r.Priority).Valid() {
		return nil, errors.Wrapf(pmerr.ErrValidation, "invalid priority: %s", r.Priority)
	}

	task := &pmmodel.Task{
		Title:       r.Title,
		Description: r.Description,
		ProjectID:   projectID,
		AssigneeID:  r.AssigneeID,
		ReporterID:  reporterID,
		Status:      pmmodel.TaskStatus(r.Status),
		Priority:    pmmodel.TaskPriority(r.Priority),
		DueDate:     r.DueDate,
	}

	if len(r.Labels) != 0 {
		if err := task.SetLabels(r.Labels); err != nil {
			return nil, err
		}
	}

	return task, nil
}

// CreateTask runs behind the project access middleware: any project member
// may create tasks.
func (c *TaskController) CreateTask(ctx echo.Context) error {
	projectID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}

	var req taskCreateRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	user := userFromContext(ctx)
	task, err := req.toTask(projectID, user.ID)
	if err != nil {
		return toHTTPError(err)
	}

	task, err = c.taskStor.CreateTask(task)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, task)
}

// BulkCreateTasks clones one task per target assignee. Only owners/admins
// may bulk-create.
func (c *TaskController) BulkCreateTasks(ctx echo.Context) error {
	projectID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}

	var req struct {
		taskCreateRequest
		AssignToAll bool  `json:"assign_to_all"`
		MemberIDs   []int `json:"member_ids"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	user := userFromContext(ctx)
	err = c.authorizer.AuthorizeProject(user.ID, projectID,
		pmmodel.TeamRoleOwner, pmmodel.TeamRoleAdmin)
	if err != nil {
		return toHTTPError(err)
	}

	project, err := c.projectStor.GetProjectByID(projectID)
	if err != nil {
		return toHTTPError(err)
	}

	var targets []int
	switch {
	case req.AssignToAll:
		for _, m := range project.Members {
			targets = append(targets, m.ID)
		}
	default:
		for _, id := range req.MemberIDs {
			if !project.HasMember(id) {
				return toHTTPError(errors.Wrapf(pmerr.ErrValidation,
					"user %d is not a member of project %d", id, projectID))
			}
		}
		targets = req.MemberIDs
	}

	if len(targets) == 0 {
		return validationError("no assignees given")
	}

	tasks := make([]pmmodel.Task, 0, len(targets))
	for _, assigneeID := range targets {
		task, err := req.toTask(projectID, user.ID)
		if err != nil {
			return toHTTPError(err)
		}

		id := assigneeID
		task.AssigneeID = &id

		task, err = c.taskStor.CreateTask(task)
		if err != nil {
			return toHTTPError(err)
		}
		tasks = append(tasks, *task)
	}

	return ctx.JSON(http.StatusCreated, tasks)
}

func (c *TaskController) ListProjectTasks(ctx echo.Context) error {
	projectID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}

	tasks, err := c.taskStor.GetTasksForProject(projectID)
	if err != nil {
		return toHTTPError(err)
	}

	if tasks == nil {
		tasks = []pmmodel.Task{}
	}

	return ctx.JSON(http.StatusOK, tasks)
}

func (c *TaskController) GetTask(ctx echo.Context) error {
	taskID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	user := userFromContext(ctx)
	if err := c.authorizer.AuthorizeTask(user.ID, taskID); err != nil {
		return toHTTPError(err)
	}

	task, err := c.taskStor.GetTaskByID(taskID)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, task)
}

// UpdateTask applies a partial update. Owners/admins may set any field; the
// assignee may set only status; everyone else is denied.
func (c *TaskController) UpdateTask(ctx echo.Context) error {
	taskID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		AssigneeID  *int       `json:"assignee_id"`
		Status      *string    `json:"status"`
		Priority    *string    `json:"priority"`
		DueDate     *time.Time `json:"due_date"`
		Labels      []string   `json:"labels"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	task, err := c.taskStor.GetTaskByID(taskID)
	if err != nil {
		return toHTTPError(err)
	}

	updates := map[string]interface{}{}
	var fields []string

	if req.Title != nil {
		if *req.Title == "" {
			return validationError("task title cannot be empty")
		}
		fields = append(fields, "title")
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		fields = append(fields, "description")
		updates["description"] = *req.Description
	}
	if req.AssigneeID != nil {
		fields = append(fields, "assignee_id")
		updates["assignee_id"] = *req.AssigneeID
	}
	if req.Status != nil {
		if !pmmodel.TaskStatus(*req.Status).Valid() {
			return validationError("invalid status: " + *req.Status)
		}
		fields = append(fields, "status")
		updates["status"] = pmmodel.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		if !pmmodel.TaskPriority(*req.Priority).Valid() {
			return validationError("invalid priority: " + *req.Priority)
		}
		fields = append(fields, "priority")
		updates["priority"] = pmmodel.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		fields = append(fields, "due_date")
		updates["due_date"] = *req.DueDate
	}
	if req.Labels != nil {
		scratch := pmmodel.Task{}
		if err := scratch.SetLabels(req.Labels); err != nil {
			return toHTTPError(err)
		}
		fields = append(fields, "labels")
		updates["labels"] = scratch.Labels
	}

	if len(fields) == 0 {
		return validationError("no fields to update")
	}

	user := userFromContext(ctx)
	if err := c.authorizer.AuthorizeTaskMutation(user.ID, task, fields); err != nil {
		return toHTTPError(err)
	}

	task, err = c.taskStor.UpdateTask(task, updates)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, task)
}

// DeleteTask is restricted to the project owner.
func (c *TaskController) DeleteTask(ctx echo.Context) error {
	taskID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	task, err := c.taskStor.GetTaskByID(taskID)
	if err != nil {
		return toHTTPError(err)
	}

	project, err := c.projectStor.GetProjectByID(task.ProjectID)
	if err != nil {
		return toHTTPError(err)
	}

	user := userFromContext(ctx)
	if project.OwnerID != user.ID {
		return toHTTPError(errors.Wrap(pmerr.ErrForbidden, "only the project owner can delete tasks"))
	}

	if err := c.taskStor.DeleteTask(task); err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"status": "success"})
}

// AssignTask is restricted to owners/admins; the assignee must exist.
func (c *TaskController) AssignTask(ctx echo.Context) error {
	taskID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	var req struct {
		AssigneeID int `json:"assignee_id"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	task, err := c.taskStor.GetTaskByID(taskID)
	if err != nil {
		return toHTTPError(err)
	}

	user := userFromContext(ctx)
	err = c.authorizer.AuthorizeProject(user.ID, task.ProjectID,
		pmmodel.TeamRoleOwner, pmmodel.TeamRoleAdmin)
	if err != nil {
		return toHTTPError(err)
	}

	if _, err := c.userStor.GetUserByID(req.AssigneeID); err != nil {
		return toHTTPError(err)
	}

	task, err = c.taskStor.UpdateTask(task, map[string]interface{}{"assignee_id": req.AssigneeID})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, task)
}

// UpdateStatus is open to any authorized project member.
func (c *TaskController) UpdateStatus(ctx echo.Context) error {
	taskID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	var req struct {
		Status string `json:"status"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if !pmmodel.TaskStatus(req.Status).Valid() {
		return validationError("invalid status: " + req.Status)
	}

	task, err := c.taskStor.GetTaskByID(taskID)
	if err != nil {
		return toHTTPError(err)
	}

	user := userFromContext(ctx)
	if err := c.authorizer.AuthorizeProject(user.ID, task.ProjectID); err != nil {
		return toHTTPError(err)
	}

	task, err = c.taskStor.UpdateTask(task, map[string]interface{}{"status": pmmodel.TaskStatus(req.Status)})
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, task)
}

func (c *TaskController) AddComment(ctx echo.Context) error {
	taskID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	var req struct {
		Text string `json:"text"`
	}

	if err := ctx.Bind(&req); err != nil {
		return err
	}

	if req.Text == "" {
		return validationError("comment text is required")
	}

	user := userFromContext(ctx)
	if err := c.authorizer.AuthorizeTask(user.ID, taskID); err != nil {
		return toHTTPError(err)
	}

	task, err := c.taskStor.GetTaskByID(taskID)
	if err != nil {
		return toHTTPError(err)
	}

	comment, err := c.taskStor.AddComment(task, user.ID, req.Text)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusCreated, comment)
}

// RemoveComment removes a comment by its UUID. When no UUID path parameter
// is present it falls back to matching on exact text from the query string,
// the legacy behavior; duplicate-text comments are then removed
// indiscriminately.
func (c *TaskController) RemoveComment(ctx echo.Context) error {
	taskID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}

	user := userFromContext(ctx)
	if err := c.authorizer.AuthorizeTask(user.ID, taskID); err != nil {
		return toHTTPError(err)
	}

	task, err := c.taskStor.GetTaskByID(taskID)
	if err != nil {
		return toHTTPError(err)
	}

	if commentUUID := ctx.Param("comment_id"); commentUUID != "" {
		if err := c.taskStor.RemoveCommentByUUID(task, commentUUID); err != nil {
			return toHTTPError(err)
		}
		return ctx.JSON(http.StatusOK, echo.Map{"status": "success"})
	}

	text := ctx.QueryParam("text")
	if text == "" {
		return validationError("comment id or text is required")
	}

	if err := c.taskStor.RemoveCommentByText(task, text); err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{"status": "success"})
}
