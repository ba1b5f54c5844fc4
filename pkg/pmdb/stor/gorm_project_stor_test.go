package stor

import (
	"testing"

	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectSeedsMemberSet(t *testing.T) {
	db := newTestDB(t)
	users := NewGormUserStor(db)
	projects := NewGormProjectStor(db)

	owner := createTestUser(t, users, "Jane Dev", "jane@example.com")
	m1 := createTestUser(t, users, "Sam Ops", "sam@example.com")
	m2 := createTestUser(t, users, "Kim QA", "kim@example.com")

	// The owner is seeded whether or not it appears in memberIDs, and
	// duplicates collapse.
	project, err := projects.CreateProject(&pmmodel.Project{
		Name:    "Road Map",
		OwnerID: owner.ID,
	}, []int{m1.ID, m2.ID, m1.ID})
	require.NoError(t, err)
	require.NotZero(t, project.ID)
	require.NotEmpty(t, project.UUID)
	require.Equal(t, "road-map", project.Slug)

	found, err := projects.GetProjectByID(project.ID)
	require.NoError(t, err)
	require.Len(t, found.Members, 3)
	require.True(t, found.HasMember(owner.ID))
	require.True(t, found.HasMember(m1.ID))
	require.True(t, found.HasMember(m2.ID))
}

func TestCreateProjectSlugCollision(t *testing.T) {
	db := newTestDB(t)
	users := NewGormUserStor(db)
	projects := NewGormProjectStor(db)

	owner := createTestUser(t, users, "Jane Dev", "jane@example.com")

	first, err := projects.CreateProject(&pmmodel.Project{Name: "Road Map", OwnerID: owner.ID}, nil)
	require.NoError(t, err)
	require.Equal(t, "road-map", first.Slug)

	second, err := projects.CreateProject(&pmmodel.Project{Name: "Road Map", OwnerID: owner.ID}, nil)
	require.NoError(t, err)
	require.Equal(t, "road-map-1", second.Slug)
}

func TestAddMemberToProjectIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	users := NewGormUserStor(db)
	projects := NewGormProjectStor(db)

	owner := createTestUser(t, users, "Jane Dev", "jane@example.com")
	other := createTestUser(t, users, "Sam Ops", "sam@example.com")

	project, err := projects.CreateProject(&pmmodel.Project{Name: "Road Map", OwnerID: owner.ID}, nil)
	require.NoError(t, err)

	require.NoError(t, projects.AddMemberToProject(project, other))
	require.NoError(t, projects.AddMemberToProject(project, other))

	found, err := projects.GetProjectByID(project.ID)
	require.NoError(t, err)
	require.Len(t, found.Members, 2)
}

func TestGetProjectsForUser(t *testing.T) {
	db := newTestDB(t)
	users := NewGormUserStor(db)
	projects := NewGormProjectStor(db)

	owner := createTestUser(t, users, "Jane Dev", "jane@example.com")
	member := createTestUser(t, users, "Sam Ops", "sam@example.com")
	outsider := createTestUser(t, users, "Kim QA", "kim@example.com")

	p1, err := projects.CreateProject(&pmmodel.Project{Name: "First", OwnerID: owner.ID},
		[]int{member.ID})
	require.NoError(t, err)

	_, err = projects.CreateProject(&pmmodel.Project{Name: "Second", OwnerID: owner.ID}, nil)
	require.NoError(t, err)

	owned, err := projects.GetProjectsForUser(owner.ID)
	require.NoError(t, err)
	require.Len(t, owned, 2)

	// A member appears exactly once even though both the owner clause and
	// the membership clause could match overlapping projects.
	mine, err := projects.GetProjectsForUser(member.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, p1.ID, mine[0].ID)

	none, err := projects.GetProjectsForUser(outsider.ID)
	require.NoError(t, err)
	require.Len(t, none, 0)
}

func TestUpdateProject(t *testing.T) {
	db := newTestDB(t)
	users := NewGormUserStor(db)
	projects := NewGormProjectStor(db)

	owner := createTestUser(t, users, "Jane Dev", "jane@example.com")

	project, err := projects.CreateProject(&pmmodel.Project{Name: "Road Map", OwnerID: owner.ID}, nil)
	require.NoError(t, err)

	project, err = projects.UpdateProject(project, "Roadmap 2026", "the plan")
	require.NoError(t, err)

	found, err := projects.GetProjectByID(project.ID)
	require.NoError(t, err)
	require.Equal(t, "Roadmap 2026", found.Name)
	require.Equal(t, "the plan", found.Description)

	// The slug is assigned at creation and updates never touch it.
	require.Equal(t, "road-map", found.Slug)
}

func TestDeleteProjectCascades(t *testing.T) {
	db := newTestDB(t)
	users := NewGormUserStor(db)
	projects := NewGormProjectStor(db)
	tasks := NewGormTaskStor(db)

	owner := createTestUser(t, users, "Jane Dev", "jane@example.com")

	project, err := projects.CreateProject(&pmmodel.Project{Name: "Road Map", OwnerID: owner.ID}, nil)
	require.NoError(t, err)

	task, err := tasks.CreateTask(&pmmodel.Task{
		Title:      "write it",
		ProjectID:  project.ID,
		ReporterID: owner.ID,
	})
	require.NoError(t, err)

	_, err = tasks.AddComment(task, owner.ID, "looks good")
	require.NoError(t, err)

	require.NoError(t, projects.DeleteProject(project))

	_, err = projects.GetProjectByID(project.ID)
	require.ErrorIs(t, err, pmerr.ErrNotFound)

	_, err = tasks.GetTaskByID(task.ID)
	require.ErrorIs(t, err, pmerr.ErrNotFound)
}
