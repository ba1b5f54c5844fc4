package pmdb

import (
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date for all models.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&pmmodel.User{},
		&pmmodel.Team{},
		&pmmodel.TeamMember{},
		&pmmodel.Project{},
		&pmmodel.Task{},
		&pmmodel.TaskComment{},
	)
}
