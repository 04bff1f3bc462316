package domain

import "time"

type MemberStats struct {
	User           User
	TaskCount      int
	CompletedCount int
	OnTimeCount    int
	LateCount      int
}

// Add counts task into the member's statistics. A done task is on time when
// it has no due date or was completed on or before its due date; dates are
// compared by calendar day.
func (s *MemberStats) Add(task Task) {
	s.TaskCount++
	if task.Status != TaskStatusDone {
		return
	}
	s.CompletedCount++

	if task.DueDate == nil {
		s.OnTimeCount++
		return
	}
	if task.CompletedAt == nil || !dayOf(*task.CompletedAt).After(dayOf(*task.DueDate)) {
		s.OnTimeCount++
		return
	}
	s.LateCount++
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
