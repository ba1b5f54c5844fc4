package stor

import (
	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
	"gorm.io/gorm"
)

type GormTeamStor struct {
	db *gorm.DB
}

func NewGormTeamStor(db *gorm.DB) *GormTeamStor {
	return &GormTeamStor{db: db}
}

// CreateTeam creates the team with the creator as its owner: the explicit
// owner column is set and a membership row with role owner is written in
// the same transaction.
func (s *GormTeamStor) CreateTeam(team *pmmodel.Team, creator *pmmodel.User) (*pmmodel.Team, error) {
	var err error

	if team.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	team.OwnerID = creator.ID

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		owner := pmmodel.TeamMember{
			TeamID:   team.ID,
			UserID:   creator.ID,
			Role:     pmmodel.TeamRoleOwner,
			UserName: creator.Name,
		}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}

		team.Members = []pmmodel.TeamMember{owner}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return team, nil
}

func (s *GormTeamStor) GetTeamByID(teamID int) (*pmmodel.Team, error) {
	var team pmmodel.Team
	if err := s.db.Preload("Members").First(&team, teamID).Error; err != nil {
		return nil, errors.Wrapf(pmerr.ErrNotFound, "no such team: %d", teamID)
	}

	return &team, nil
}

func (s *GormTeamStor) GetTeamsForUser(userID int) ([]pmmodel.Team, error) {
	var teams []pmmodel.Team

	err := s.db.Preload("Members").
		Where("id in (select team_id from team_members where user_id = ?)", userID).
		Find(&teams).Error
	return teams, err
}

func (s *GormTeamStor) UpdateTeam(team *pmmodel.Team, name, description string) (*pmmodel.Team, error) {
	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(team).Updates(map[string]interface{}{
			"name":        name,
			"description": description,
		}).Error
	})

	if err != nil {
		return nil, err
	}

	team.Name = name
	team.Description = description
	return team, nil
}

func (s *GormTeamStor) DeleteTeam(team *pmmodel.Team) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", team.ID).Delete(&pmmodel.TeamMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(team).Error
	})
}

// AddMember adds the user with the given role. Adding a user who is already
// a member is a conflict.
func (s *GormTeamStor) AddMember(team *pmmodel.Team, user *pmmodel.User, role pmmodel.TeamRole) (*pmmodel.TeamMember, error) {
	var count int64
	s.db.Model(&pmmodel.TeamMember{}).
		Where("team_id = ?", team.ID).
		Where("user_id = ?", user.ID).
		Count(&count)

	if count != 0 {
		return nil, errors.Wrapf(pmerr.ErrConflict, "user %d is already a member of team %d", user.ID, team.ID)
	}

	member := pmmodel.TeamMember{
		TeamID:   team.ID,
		UserID:   user.ID,
		Role:     role,
		UserName: user.Name,
	}

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(&member).Error
	})

	if err != nil {
		return nil, err
	}

	team.Members = append(team.Members, member)
	return &member, nil
}

// RemoveMember removes the user's membership. The owner can never be
// removed, regardless of team size.
func (s *GormTeamStor) RemoveMember(team *pmmodel.Team, userID int) error {
	var member pmmodel.TeamMember
	err := s.db.Where("team_id = ?", team.ID).
		Where("user_id = ?", userID).
		First(&member).Error
	if err != nil {
		return errors.Wrapf(pmerr.ErrNotFound, "user %d is not a member of team %d", userID, team.ID)
	}

	if member.Role == pmmodel.TeamRoleOwner {
		return errors.Wrap(pmerr.ErrInvalidOperation, "cannot remove the team owner")
	}

	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Delete(&member).Error
	})
}
