package stor

import (
	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
	"gorm.io/gorm"
)

type GormTaskStor struct {
	db *gorm.DB
}

func NewGormTaskStor(db *gorm.DB) *GormTaskStor {
	return &GormTaskStor{db: db}
}

// CreateTask creates the task, filling in defaults for status, priority and
// labels when the caller left them unset.
func (s *GormTaskStor) CreateTask(task *pmmodel.Task) (*pmmodel.Task, error) {
	var err error

	if task.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	if task.Status == "" {
		task.Status = pmmodel.TaskStatusTodo
	}

	if task.Priority == "" {
		task.Priority = pmmodel.TaskPriorityMedium
	}

	if task.Labels == "" {
		task.Labels = "[]"
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(task).Error
	})

	if err != nil {
		return nil, err
	}

	return task, nil
}

func (s *GormTaskStor) GetTaskByID(taskID int) (*pmmodel.Task, error) {
	var task pmmodel.Task
	if err := s.db.Preload("Comments").First(&task, taskID).Error; err != nil {
		return nil, errors.Wrapf(pmerr.ErrNotFound, "no such task: %d", taskID)
	}

	return &task, nil
}

func (s *GormTaskStor) GetTasksForProject(projectID int) ([]pmmodel.Task, error) {
	var tasks []pmmodel.Task

	err := s.db.Preload("Comments").
		Where("project_id = ?", projectID).
		Find(&tasks).Error
	return tasks, err
}

// UpdateTask applies a partial field update and returns the reloaded task.
func (s *GormTaskStor) UpdateTask(task *pmmodel.Task, updates map[string]interface{}) (*pmmodel.Task, error) {
	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Model(task).Updates(updates).Error
	})

	if err != nil {
		return nil, err
	}

	return s.GetTaskByID(task.ID)
}

func (s *GormTaskStor) DeleteTask(task *pmmodel.Task) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&pmmodel.TaskComment{}).Error; err != nil {
			return err
		}

		return tx.Delete(task).Error
	})
}

// AddComment appends a comment with a freshly generated UUID so it can be
// removed unambiguously later.
func (s *GormTaskStor) AddComment(task *pmmodel.Task, authorID int, text string) (*pmmodel.TaskComment, error) {
	commentUUID, err := uuid.GenerateUUID()
	if err != nil {
		return nil, err
	}

	comment := pmmodel.TaskComment{
		UUID:     commentUUID,
		TaskID:   task.ID,
		AuthorID: authorID,
		Text:     text,
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Create(&comment).Error
	})

	if err != nil {
		return nil, err
	}

	task.Comments = append(task.Comments, comment)
	return &comment, nil
}

func (s *GormTaskStor) RemoveCommentByUUID(task *pmmodel.Task, commentUUID string) error {
	result := s.db.Where("task_id = ?", task.ID).
		Where("uuid = ?", commentUUID).
		Delete(&pmmodel.TaskComment{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.Wrapf(pmerr.ErrNotFound, "no such comment on task %d: %s", task.ID, commentUUID)
	}

	return nil
}

// RemoveCommentByText is the compatibility path for clients that do not
// track comment UUIDs. It matches on exact text, so duplicate-text comments
// are removed indiscriminately.
//
// Deprecated: use RemoveCommentByUUID.
func (s *GormTaskStor) RemoveCommentByText(task *pmmodel.Task, text string) error {
	result := s.db.Where("task_id = ?", task.ID).
		Where("text = ?", text).
		Delete(&pmmodel.TaskComment{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.Wrapf(pmerr.ErrNotFound, "no comment with matching text on task %d", task.ID)
	}

	return nil
}
