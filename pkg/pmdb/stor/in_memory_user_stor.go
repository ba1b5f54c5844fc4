package stor

import (
	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
)

type InMemoryUserStor struct {
	users  []pmmodel.User
	nextID int
}

func NewInMemoryUserStor(users []pmmodel.User) *InMemoryUserStor {
	nextID := 1
	for _, u := range users {
		if u.ID >= nextID {
			nextID = u.ID + 1
		}
	}
	return &InMemoryUserStor{users: users, nextID: nextID}
}

func (s *InMemoryUserStor) CreateUser(user *pmmodel.User) (*pmmodel.User, error) {
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, errors.Wrapf(pmerr.ErrConflict, "user with email %s already exists", user.Email)
		}
	}

	user.ID = s.nextID
	s.nextID++
	user.UUID, _ = uuid.GenerateUUID()
	s.users = append(s.users, *user)
	return user, nil
}

func (s *InMemoryUserStor) GetUserByID(userID int) (*pmmodel.User, error) {
	for i := range s.users {
		if s.users[i].ID == userID {
			return &s.users[i], nil
		}
	}
	return nil, errors.Wrapf(pmerr.ErrNotFound, "no such user: %d", userID)
}

func (s *InMemoryUserStor) GetUserByEmail(email string) (*pmmodel.User, error) {
	for i := range s.users {
		if s.users[i].Email == email {
			return &s.users[i], nil
		}
	}
	return nil, errors.Wrapf(pmerr.ErrNotFound, "no such user: %s", email)
}

func (s *InMemoryUserStor) GetUserByAPIToken(apitoken string) (*pmmodel.User, error) {
	for i := range s.users {
		if s.users[i].APIToken == apitoken && apitoken != "" {
			return &s.users[i], nil
		}
	}
	return nil, errors.Wrap(pmerr.ErrNotFound, "no user for token")
}

func (s *InMemoryUserStor) UpdateAPIToken(user *pmmodel.User, apitoken string) (*pmmodel.User, error) {
	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i].APIToken = apitoken
			user.APIToken = apitoken
			return user, nil
		}
	}
	return nil, errors.Wrapf(pmerr.ErrNotFound, "no such user: %d", user.ID)
}
