package memory

import (
	"context"
	"sort"
	"strings"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.store.write(ctx, func(t *tables) error {
		user.ID = t.nextID("users")
		user.CreatedAt = r.store.now()
		t.users[user.ID] = *user
		return nil
	})
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (domain.User, error) {
	var user domain.User
	err := r.store.read(ctx, func(t *tables) error {
		found, ok := t.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		user = found
		return nil
	})
	return user, err
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	var user domain.User
	err := r.store.read(ctx, func(t *tables) error {
		for _, candidate := range t.users {
			if candidate.Username == username {
				user = candidate
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	return user, err
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID uint64) (bool, error) {
	exists := false
	err := r.store.read(ctx, func(t *tables) error {
		for _, candidate := range t.users {
			if candidate.ID == excludeID {
				continue
			}
			if candidate.Username == username || strings.EqualFold(candidate.Email, email) {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.users[user.ID]; !ok {
			return domain.ErrUserNotFound
		}
		t.users[user.ID] = user
		return nil
	})
}

// Delete unassigns the user's tasks, clears their subtask completions and
// removes their comments.
func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	return r.store.write(ctx, func(t *tables) error {
		if _, ok := t.users[id]; !ok {
			return domain.ErrUserNotFound
		}
		delete(t.users, id)

		for taskID, task := range t.tasks {
			if task.AssigneeID != nil && *task.AssigneeID == id {
				task.AssigneeID = nil
				t.tasks[taskID] = task
			}
		}
		for subtaskID, subtask := range t.subtasks {
			if subtask.CompletedBy != nil && *subtask.CompletedBy == id {
				subtask.CompletedBy = nil
				t.subtasks[subtaskID] = subtask
			}
		}
		for commentID, comment := range t.comments {
			if comment.UserID == id {
				delete(t.comments, commentID)
			}
		}
		return nil
	})
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	err := r.store.read(ctx, func(t *tables) error {
		for _, user := range t.users {
			users = append(users, user)
		}
		return nil
	})

	sort.Slice(users, func(i, j int) bool {
		if users[i].FullName != users[j].FullName {
			return users[i].FullName < users[j].FullName
		}
		return users[i].ID < users[j].ID
	})
	return users, err
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.store.read(ctx, func(t *tables) error {
		count = len(t.users)
		return nil
	})
	return count, err
}

var _ ports.UserRepository = (*UserRepository)(nil)
