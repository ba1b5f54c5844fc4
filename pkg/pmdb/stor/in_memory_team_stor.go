package stor

import (
	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
)

type InMemoryTeamStor struct {
	teams        []pmmodel.Team
	nextID       int
	nextMemberID int
}

func NewInMemoryTeamStor(teams []pmmodel.Team) *InMemoryTeamStor {
	nextID := 1
	for _, t := range teams {
		if t.ID >= nextID {
			nextID = t.ID + 1
		}
	}
	return &InMemoryTeamStor{teams: teams, nextID: nextID, nextMemberID: 1000}
}

func (s *InMemoryTeamStor) CreateTeam(team *pmmodel.Team, creator *pmmodel.User) (*pmmodel.Team, error) {
	team.ID = s.nextID
	s.nextID++
	team.UUID, _ = uuid.GenerateUUID()
	team.OwnerID = creator.ID
	team.Members = []pmmodel.TeamMember{{
		ID:       s.nextMemberID,
		TeamID:   team.ID,
		UserID:   creator.ID,
		Role:     pmmodel.TeamRoleOwner,
		UserName: creator.Name,
	}}
	s.nextMemberID++
	s.teams = append(s.teams, *team)
	return team, nil
}

func (s *InMemoryTeamStor) GetTeamByID(teamID int) (*pmmodel.Team, error) {
	for i := range s.teams {
		if s.teams[i].ID == teamID {
			return &s.teams[i], nil
		}
	}
	return nil, errors.Wrapf(pmerr.ErrNotFound, "no such team: %d", teamID)
}

func (s *InMemoryTeamStor) GetTeamsForUser(userID int) ([]pmmodel.Team, error) {
	var teams []pmmodel.Team
	for _, t := range s.teams {
		if _, ok := t.Member(userID); ok {
			teams = append(teams, t)
		}
	}
	return teams, nil
}

func (s *InMemoryTeamStor) UpdateTeam(team *pmmodel.Team, name, description string) (*pmmodel.Team, error) {
	t, err := s.GetTeamByID(team.ID)
	if err != nil {
		return nil, err
	}

	t.Name = name
	t.Description = description
	team.Name = name
	team.Description = description
	return team, nil
}

func (s *InMemoryTeamStor) DeleteTeam(team *pmmodel.Team) error {
	for i := range s.teams {
		if s.teams[i].ID == team.ID {
			s.teams = append(s.teams[:i], s.teams[i+1:]...)
			return nil
		}
	}
	return errors.Wrapf(pmerr.ErrNotFound, "no such team: %d", team.ID)
}

func (s *InMemoryTeamStor) AddMember(team *pmmodel.Team, user *pmmodel.User, role pmmodel.TeamRole) (*pmmodel.TeamMember, error) {
	t, err := s.GetTeamByID(team.ID)
	if err != nil {
		return nil, err
	}

	if _, ok := t.Member(user.ID); ok {
		return nil, errors.Wrapf(pmerr.ErrConflict, "user %d is already a member of team %d", user.ID, team.ID)
	}

	member := pmmodel.TeamMember{
		ID:       s.nextMemberID,
		TeamID:   t.ID,
		UserID:   user.ID,
		Role:     role,
		UserName: user.Name,
	}
	s.nextMemberID++
	t.Members = append(t.Members, member)
	team.Members = t.Members
	return &member, nil
}

func (s *InMemoryTeamStor) RemoveMember(team *pmmodel.Team, userID int) error {
	t, err := s.GetTeamByID(team.ID)
	if err != nil {
		return err
	}

	for i, m := range t.Members {
		if m.UserID != userID {
			continue
		}
		if m.Role == pmmodel.TeamRoleOwner {
			return errors.Wrap(pmerr.ErrInvalidOperation, "cannot remove the team owner")
		}
		t.Members = append(t.Members[:i], t.Members[i+1:]...)
		team.Members = t.Members
		return nil
	}

	return errors.Wrapf(pmerr.ErrNotFound, "user %d is not a member of team %d", userID, team.ID)
}
