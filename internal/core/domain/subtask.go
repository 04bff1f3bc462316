package domain

import "time"

type Subtask struct {
	ID          uint64
	TaskID      uint64
	Title       string
	Completed   bool
	CompletedBy *uint64
	CreatedAt   time.Time

	CompletedByName string
}

// Toggle flips completion and records who completed it.
func (s *Subtask) Toggle(by uint64) {
	s.Completed = !s.Completed
	if s.Completed {
		s.CompletedBy = &by
		return
	}
	s.CompletedBy = nil
}

// SubtaskChange is returned by subtask mutations so that callers can refresh
// a task's progress without refetching it.
type SubtaskChange struct {
	Subtask  *Subtask
	TaskID   uint64
	Progress int
}
