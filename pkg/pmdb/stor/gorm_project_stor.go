package stor

import (
	"fmt"

	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
	"gorm.io/gorm"
)

type GormProjectStor struct {
	db *gorm.DB
}

func NewGormProjectStor(db *gorm.DB) *GormProjectStor {
	return &GormProjectStor{db: db}
}

// CreateProject creates the project with the given member set. The member
// set is a snapshot taken now; it is never resynced with team membership.
// The owner is always included whether or not it appears in memberIDs.
func (s *GormProjectStor) CreateProject(project *pmmodel.Project, memberIDs []int) (*pmmodel.Project, error) {
	var err error

	if project.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	slugOfName := slug.Make(project.Name)
	project.Slug = slugOfName
	slugNext := 1

	seen := map[int]bool{project.OwnerID: true}
	project.Members = []pmmodel.User{{ID: project.OwnerID}}
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		project.Members = append(project.Members, pmmodel.User{ID: id})
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
	CreateLoop:
		for {
			err = tx.Create(project).Error
			switch {
			case err == nil:
				break CreateLoop
			case errors.Is(err, gorm.ErrDuplicatedKey):
				// Assume a collision on the slug. Add an incrementing
				// integer to the slug name and try again.
				project.Slug = fmt.Sprintf("%s-%d", slugOfName, slugNext)
				slugNext = slugNext + 1
			default:
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return project, nil
}

func (s *GormProjectStor) GetProjectByID(projectID int) (*pmmodel.Project, error) {
	var project pmmodel.Project
	if err := s.db.Preload("Members").First(&project, projectID).Error; err != nil {
		return nil, errors.Wrapf(pmerr.ErrNotFound, "no such project: %d", projectID)
	}

	return &project, nil
}

func (s *GormProjectStor) GetProjectsForUser(userID int) ([]pmmodel.Project, error) {
	var projects []pmmodel.Project

	err := s.db.Preload("Members").
		Where("owner_id = ?", userID).
		Or("id in (select project_id from project2member where user_id = ?)", userID).
		Find(&projects).Error
	return projects, err
}

func (s *GormProjectStor) UpdateProject(project *pmmodel.Project, name, description string) (*pmmodel.Project, error) {
	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(project).Updates(map[string]interface{}{
			"name":        name,
			"description": description,
		}).Error
	})

	if err != nil {
		return nil, err
	}

	project.Name = name
	project.Description = description
	return project, nil
}

func (s *GormProjectStor) DeleteProject(project *pmmodel.Project) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("task_id in (select id from tasks where project_id = ?)", project.ID).
			Delete(&pmmodel.TaskComment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", project.ID).Delete(&pmmodel.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Model(project).Association("Members").Clear(); err != nil {
			return err
		}

		return tx.Delete(project).Error
	})
}

// AddMemberToProject is idempotent: appending a user who is already a member
// leaves the member set unchanged.
func (s *GormProjectStor) AddMemberToProject(project *pmmodel.Project, user *pmmodel.User) error {
	if project.HasMember(user.ID) {
		return nil
	}

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(project).Association("Members").Append(user)
	})

	if err != nil {
		return err
	}

	project.Members = append(project.Members, *user)
	return nil
}
