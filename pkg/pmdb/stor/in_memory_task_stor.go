package stor

import (
	"time"

	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
	"github.com/project-mosaic/mosaic/pkg/pmdb/pmmodel"
	"github.com/project-mosaic/mosaic/pkg/pmerr"
)

type InMemoryTaskStor struct {
	tasks         []pmmodel.Task
	nextID        int
	nextCommentID int
}

func NewInMemoryTaskStor(tasks []pmmodel.Task) *InMemoryTaskStor {
	nextID := 1
	for _, t := range tasks {
		if t.ID >= nextID {
			nextID = t.ID + 1
		}
	}
	return &InMemoryTaskStor{tasks: tasks, nextID: nextID, nextCommentID: 1000}
}

func (s *InMemoryTaskStor) CreateTask(task *pmmodel.Task) (*pmmodel.Task, error) {
	task.ID = s.nextID
	s.nextID++
	task.UUID, _ = uuid.GenerateUUID()

	if task.Status == "" {
		task.Status = pmmodel.TaskStatusTodo
	}

	if task.Priority == "" {
		task.Priority = pmmodel.TaskPriorityMedium
	}

	if task.Labels == "" {
		task.Labels = "[]"
	}

	task.CreatedAt = time.Now()
	s.tasks = append(s.tasks, *task)
	return task, nil
}

func (s *InMemoryTaskStor) GetTaskByID(taskID int) (*pmmodel.Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			return &s.tasks[i], nil
		}
	}
	return nil, errors.Wrapf(pmerr.ErrNotFound, "no such task: %d", taskID)
}

func (s *InMemoryTaskStor) GetTasksForProject(projectID int) ([]pmmodel.Task, error) {
	var tasks []pmmodel.Task
	for _, t := range s.tasks {
		if t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *InMemoryTaskStor) UpdateTask(task *pmmodel.Task, updates map[string]interface{}) (*pmmodel.Task, error) {
	t, err := s.GetTaskByID(task.ID)
	if err != nil {
		return nil, err
	}

	for field, value := range updates {
		switch field {
		case "title":
			t.Title = value.(string)
		case "description":
			t.Description = value.(string)
		case "status":
			t.Status = value.(pmmodel.TaskStatus)
		case "priority":
			t.Priority = value.(pmmodel.TaskPriority)
		case "assignee_id":
			id := value.(int)
			t.AssigneeID = &id
		case "due_date":
			due := value.(time.Time)
			t.DueDate = &due
		case "labels":
			t.Labels = value.(string)
		}
	}

	t.UpdatedAt = time.Now()
	return t, nil
}

func (s *InMemoryTaskStor) DeleteTask(task *pmmodel.Task) error {
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return errors.Wrapf(pmerr.ErrNotFound, "no such task: %d", task.ID)
}

func (s *InMemoryTaskStor) AddComment(task *pmmodel.Task, authorID int, text string) (*pmmodel.TaskComment, error) {
	t, err := s.GetTaskByID(task.ID)
	if err != nil {
		return nil, err
	}

	commentUUID, _ := uuid.GenerateUUID()
	comment := pmmodel.TaskComment{
		ID:        s.nextCommentID,
		UUID:      commentUUID,
		TaskID:    t.ID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	s.nextCommentID++
	t.Comments = append(t.Comments, comment)
	task.Comments = t.Comments
	return &comment, nil
}

func (s *InMemoryTaskStor) RemoveCommentByUUID(task *pmmodel.Task, commentUUID string) error {
	t, err := s.GetTaskByID(task.ID)
	if err != nil {
		return err
	}

	for i, c := range t.Comments {
		if c.UUID == commentUUID {
			t.Comments = append(t.Comments[:i], t.Comments[i+1:]...)
			task.Comments = t.Comments
			return nil
		}
	}

	return errors.Wrapf(pmerr.ErrNotFound, "no such comment on task %d: %s", task.ID, commentUUID)
}

func (s *InMemoryTaskStor) RemoveCommentByText(task *pmmodel.Task, text string) error {
	t, err := s.GetTaskByID(task.ID)
	if err != nil {
		return err
	}

	var kept []pmmodel.TaskComment
	removed := false
	for _, c := range t.Comments {
		if c.Text == text {
			removed = true
			continue
		}
		kept = append(kept, c)
	}

	if !removed {
		return errors.Wrapf(pmerr.ErrNotFound, "no comment with matching text on task %d", task.ID)
	}

	t.Comments = kept
	task.Comments = t.Comments
	return nil
}
