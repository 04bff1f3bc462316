package domain

import "time"

type Comment struct {
	ID        uint64
	TaskID    uint64
	UserID    uint64
	Content   string
	CreatedAt time.Time

	AuthorName string
}
