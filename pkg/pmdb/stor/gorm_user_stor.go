package stor

import (
	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
	"gorm.io/gorm"
)

type GormUserStor struct {
	db *gorm.DB
}

func NewGormUserStor(db *gorm.DB) *GormUserStor {
	return &GormUserStor{db: db}
}

// CreateUser creates a new user. Email is unique; a duplicate is a conflict.
func (s *GormUserStor) CreateUser(user *pmmodel.User) (*pmmodel.User, error) {
	var err error

	var existing pmmodel.User
	if err = s.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return nil, errors.Wrapf(pmerr.ErrConflict, "user with email %s already exists", user.Email)
	}

	if user.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	user.Slug = slug.Make(user.Name)

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *GormUserStor) GetUserByID(userID int) (*pmmodel.User, error) {
	var user pmmodel.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, errors.Wrapf(pmerr.ErrNotFound, "no such user: %d", userID)
	}

	return &user, nil
}

func (s *GormUserStor) GetUserByEmail(email string) (*pmmodel.User, error) {
	var user pmmodel.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.Wrapf(pmerr.ErrNotFound, "no such user: %s", email)
	}

	return &user, nil
}

func (s *GormUserStor) GetUserByAPIToken(apitoken string) (*pmmodel.User, error) {
	var user pmmodel.User
	if err := s.db.Where("api_token = ?", apitoken).First(&user).Error; err != nil {
		return nil, errors.Wrap(pmerr.ErrNotFound, "no user for token")
	}

	return &user, nil
}

func (s *GormUserStor) UpdateAPIToken(user *pmmodel.User, apitoken string) (*pmmodel.User, error) {
	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(user).Update("api_token", apitoken).Error
	})

	if err != nil {
		return nil, err
	}

	user.APIToken = apitoken
	return user, nil
}
