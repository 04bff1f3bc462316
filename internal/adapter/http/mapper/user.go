package mapper

import (
	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

func ToUserItems(users []domain.User) []dto.UserItem {
	items := make([]dto.UserItem, 0, len(users))
	for _, user := range users {
		items = append(items, ToUserItem(user))
	}
	return items
}

func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Format(dateTimeLayout),
	}
}

func ToMemberStatsItems(stats []domain.MemberStats) []dto.MemberStatsItem {
	items := make([]dto.MemberStatsItem, 0, len(stats))
	for _, s := range stats {
		items = append(items, dto.MemberStatsItem{
			UserID:         s.User.ID,
			Username:       s.User.Username,
			FullName:       s.User.FullName,
			Role:           string(s.User.Role),
			TaskCount:      s.TaskCount,
			CompletedCount: s.CompletedCount,
			OnTimeCount:    s.OnTimeCount,
			LateCount:      s.LateCount,
		})
	}
	return items
}

func ToLoginResponse(result domain.LoginResult) dto.LoginResponse {
	return dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(dateTimeLayout),
		User:      ToUserItem(result.User),
	}
}
