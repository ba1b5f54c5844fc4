package stor

import (
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"gorm.io/gorm"
)

type UserStor interface {
	CreateUser(user *pmmodel.User) (*pmmodel.User, error)
	GetUserByID(userID int) (*pmmodel.User, error)
	GetUserByEmail(email string) (*pmmodel.User, error)
	GetUserByAPIToken(apitoken string) (*pmmodel.User, error)
	UpdateAPIToken(user *pmmodel.User, apitoken string) (*pmmodel.User, error)
}

type TeamStor interface {
	CreateTeam(team *pmmodel.Team, creator *pmmodel.User) (*pmmodel.Team, error)
	GetTeamByID(teamID int) (*pmmodel.Team, error)
	GetTeamsForUser(userID int) ([]pmmodel.Team, error)
	UpdateTeam(team *pmmodel.Team, name, description string) (*pmmodel.Team, error)
	DeleteTeam(team *pmmodel.Team) error
	AddMember(team *pmmodel.Team, user *pmmodel.User, role pmmodel.TeamRole) (*pmmodel.TeamMember, error)
	RemoveMember(team *pmmodel.Team, userID int) error
}

type ProjectStor interface {
	CreateProject(project *pmmodel.Project, memberIDs []int) (*pmmodel.Project, error)
	GetProjectByID(projectID int) (*pmmodel.Project, error)
	GetProjectsForUser(userID int) ([]pmmodel.Project, error)
	UpdateProject(project *pmmodel.Project, name, description string) (*pmmodel.Project, error)
	DeleteProject(project *pmmodel.Project) error
	AddMemberToProject(project *pmmodel.Project, user *pmmodel.User) error
}

type TaskStor interface {
	CreateTask(task *pmmodel.Task) (*pmmodel.Task, error)
	GetTaskByID(taskID int) (*pmmodel.Task, error)
	GetTasksForProject(projectID int) ([]pmmodel.Task, error)
	UpdateTask(task *pmmodel.Task, updates map[string]interface{}) (*pmmodel.Task, error)
	DeleteTask(task *pmmodel.Task) error
	AddComment(task *pmmodel.Task, authorID int, text string) (*pmmodel.TaskComment, error)
	RemoveCommentByUUID(task *pmmodel.Task, commentUUID string) error
	RemoveCommentByText(task *pmmodel.Task, text string) error
}

type Stors struct {
	UserStor    UserStor
	TeamStor    TeamStor
	ProjectStor ProjectStor
	TaskStor    TaskStor
}

func NewGormStors(db *gorm.DB) *Stors {
	return &Stors{
		UserStor:    NewGormUserStor(db),
		TeamStor:    NewGormTeamStor(db),
		ProjectStor: NewGormProjectStor(db),
		TaskStor:    NewGormTaskStor(db),
	}
}
