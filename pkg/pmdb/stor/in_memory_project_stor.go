package stor

import (
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
)

type InMemoryProjectStor struct {
	projects []pmmodel.Project
	nextID   int
}

func NewInMemoryProjectStor(projects []pmmodel.Project) *InMemoryProjectStor {
	nextID := 1
	for _, p := range projects {
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}
	return &InMemoryProjectStor{projects: projects, nextID: nextID}
}

func (s *InMemoryProjectStor) CreateProject(project *pmmodel.Project, memberIDs []int) (*pmmodel.Project, error) {
	project.ID = s.nextID
	s.nextID++
	project.UUID, _ = uuid.GenerateUUID()
	project.Slug = slug.Make(project.Name)

	seen := map[int]bool{project.OwnerID: true}
	project.Members = []pmmodel.User{{ID: project.OwnerID}}
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		project.Members = append(project.Members, pmmodel.User{ID: id})
	}

	s.projects = append(s.projects, *project)
	return project, nil
}

func (s *InMemoryProjectStor) GetProjectByID(projectID int) (*pmmodel.Project, error) {
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			return &s.projects[i], nil
		}
	}
	return nil, errors.Wrapf(pmerr.ErrNotFound, "no such project: %d", projectID)
}

func (s *InMemoryProjectStor) GetProjectsForUser(userID int) ([]pmmodel.Project, error) {
	var projects []pmmodel.Project
	for _, p := range s.projects {
		if p.OwnerID == userID || p.HasMember(userID) {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (s *InMemoryProjectStor) UpdateProject(project *pmmodel.Project, name, description string) (*pmmodel.Project, error) {
	p, err := s.GetProjectByID(project.ID)
	if err != nil {
		return nil, err
	}

	p.Name = name
	p.Description = description
	project.Name = name
	project.Description = description
	return project, nil
}

func (s *InMemoryProjectStor) DeleteProject(project *pmmodel.Project) error {
	for i := range s.projects {
		if s.projects[i].ID == project.ID {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			return nil
		}
	}
	return errors.Wrapf(pmerr.ErrNotFound, "no such project: %d", project.ID)
}

func (s *InMemoryProjectStor) AddMemberToProject(project *pmmodel.Project, user *pmmodel.User) error {
	p, err := s.GetProjectByID(project.ID)
	if err != nil {
		return err
	}

	if p.HasMember(user.ID) {
		return nil
	}

	p.Members = append(p.Members, *user)
	project.Members = p.Members
	return nil
}
