// Package progress aggregates subtask completion into a task percentage.
package progress

import "tasktracker/internal/core/domain"

// Compute returns the share of completed subtasks as a percentage rounded
// half up. A task without subtasks has 0 progress.
func Compute(subtasks []domain.Subtask) int {
	total := len(subtasks)
	if total == 0 {
		return 0
	}

	done := 0
	for _, subtask := range subtasks {
		if subtask.Completed {
			done++
		}
	}

	return Ratio(done, total)
}

// Ratio is Compute for pre-aggregated counts.
func Ratio(done, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*done + total) / (2 * total)
}

// Display is the value shown for a task: done tasks always read 100.
func Display(status domain.TaskStatus, subtasks []domain.Subtask) int {
	if status == domain.TaskStatusDone {
		return 100
	}
	return Compute(subtasks)
}

// Apply fills the derived progress fields of task from its loaded subtasks.
func Apply(task *domain.Task) {
	task.SubtaskProgress = Compute(task.Subtasks)
	task.Progress = Display(task.Status, task.Subtasks)
}
