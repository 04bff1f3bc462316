package dto

type UserItem struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email,max=255"`
	FullName string `json:"full_name" binding:"required,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,max=16"`
}

// UpdateUserRequest keeps the current password when Password is empty and
// the current role when Role is empty.
type UpdateUserRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email,max=255"`
	FullName string `json:"full_name" binding:"required,max=255"`
	Password string `json:"password" binding:"omitempty,min=6,max=72"`
	Role     string `json:"role" binding:"omitempty,max=16"`
}

type MemberStatsItem struct {
	UserID         uint64 `json:"user_id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	TaskCount      int    `json:"task_count"`
	CompletedCount int    `json:"completed_count"`
	OnTimeCount    int    `json:"ontime_count"`
	LateCount      int    `json:"late_count"`
}
