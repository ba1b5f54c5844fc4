package pmmodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTaskLabels(t *testing.T) {
	var task Task

	require.NoError(t, task.SetLabels([]string{"backend", "urgent"}))
	require.Equal(t, `["backend","urgent"]`, task.Labels)

	labels, err := task.GetLabels()
	require.NoError(t, err)
	require.Equal(t, []string{"backend", "urgent"}, labels)

	require.NoError(t, task.SetLabels(nil))
	labels, err = task.GetLabels()
	require.NoError(t, err)
	require.Len(t, labels, 0)
}

func TestTaskIsAssignedTo(t *testing.T) {
	var task Task
	require.False(t, task.IsAssignedTo(1))

	assignee := 1
	task.AssigneeID = &assignee
	require.True(t, task.IsAssignedTo(1))
	require.False(t, task.IsAssignedTo(2))
}

func TestTaskStatusValid(t *testing.T) {
	for _, status := range []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone} {
		require.True(t, status.Valid())
	}
	require.False(t, TaskStatus("cancelled").Valid())
	require.False(t, TaskStatus("").Valid())
}

func TestTaskPriorityValid(t *testing.T) {
	for _, priority := range []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical} {
		require.True(t, priority.Valid())
	}
	require.False(t, TaskPriority("urgent").Valid())
}
