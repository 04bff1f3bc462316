package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/policy"
	"tasktracker/internal/core/ports"
)

type UserService struct {
	deps   Deps
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
}

func NewUserService(deps Deps, hasher ports.PasswordHasher, tokens ports.TokenIssuer) *UserService {
	return &UserService{deps: deps, hasher: hasher, tokens: tokens}
}

func (s *UserService) Login(ctx context.Context, username, password string) (domain.LoginResult, error) {
	user, err := s.deps.Users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.LoginResult{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResult{}, domain.StorageError(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return domain.LoginResult{}, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.Principal())
	if err != nil {
		return domain.LoginResult{}, err
	}

	return domain.LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Authenticate resolves a bearer token to a principal. The role is read from
// the stored user so that role changes apply to existing tokens.
func (s *UserService) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	claimed, err := s.tokens.Verify(token)
	if err != nil {
		return domain.Principal{}, domain.ErrUnauthenticated
	}

	user, err := s.deps.Users.GetByID(ctx, claimed.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Principal{}, domain.ErrUnauthenticated
		}
		return domain.Principal{}, domain.StorageError(err)
	}
	return user.Principal(), nil
}

func (s *UserService) CurrentUser(ctx context.Context, p domain.Principal) (domain.User, error) {
	user, err := s.deps.Users.GetByID(ctx, p.UserID)
	if err != nil {
		return domain.User{}, domain.StorageError(err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, _ domain.Principal) ([]domain.User, error) {
	users, err := s.deps.Users.List(ctx)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, p domain.Principal, id uint64) (domain.User, error) {
	if err := policy.Authorize(policy.CanViewUser(p, id)); err != nil {
		return domain.User{}, err
	}

	user, err := s.deps.Users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, domain.StorageError(err)
	}
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, p domain.Principal, input domain.CreateUserInput) (domain.User, error) {
	if err := policy.Authorize(policy.CanManageUsers(p)); err != nil {
		return domain.User{}, err
	}
	return s.create(ctx, input)
}

// UpdateUser keeps the current password when none is given. Managers cannot
// change their own role.
func (s *UserService) UpdateUser(ctx context.Context, p domain.Principal, id uint64, input domain.UpdateUserInput) (domain.User, error) {
	if err := policy.Authorize(policy.CanManageUsers(p)); err != nil {
		return domain.User{}, err
	}

	var updated domain.User
	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.deps.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}

		username := strings.TrimSpace(input.Username)
		email := strings.TrimSpace(input.Email)
		fullName := strings.TrimSpace(input.FullName)
		if username == "" || email == "" || fullName == "" {
			return domain.ErrUserFieldsRequired
		}

		role := input.Role
		if role == "" {
			role = user.Role
		}
		if !role.Valid() {
			return domain.ErrInvalidRole
		}
		if id == p.UserID && role != user.Role {
			return domain.ErrOwnRoleChange
		}

		exists, err := s.deps.Users.ExistsByUsernameOrEmail(ctx, username, email, id)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateUser
		}

		if input.Password != "" {
			hash, err := s.hasher.Hash(input.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}

		user.Username = username
		user.Email = email
		user.FullName = fullName
		user.Role = role
		updated = user
		return s.deps.Users.Update(ctx, user)
	})
	if err != nil {
		return domain.User{}, domain.StorageError(err)
	}
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, p domain.Principal, id uint64) error {
	if err := policy.Authorize(policy.CanManageUsers(p)); err != nil {
		return err
	}
	if id == p.UserID {
		return domain.ErrSelfDeletion
	}

	err := s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.deps.Users.GetByID(ctx, id); err != nil {
			return err
		}
		return s.deps.Users.Delete(ctx, id)
	})
	return domain.StorageError(err)
}

// MemberStats counts every user's assigned tasks. Members come first, then
// managers, each group by full name.
func (s *UserService) MemberStats(ctx context.Context, p domain.Principal) ([]domain.MemberStats, error) {
	if err := policy.Authorize(policy.CanViewMemberStats(p)); err != nil {
		return nil, err
	}

	users, err := s.deps.Users.List(ctx)
	if err != nil {
		return nil, domain.StorageError(err)
	}

	tasks, err := s.deps.Tasks.List(ctx, domain.TaskFilter{})
	if err != nil {
		return nil, domain.StorageError(err)
	}

	stats := make([]domain.MemberStats, len(users))
	index := make(map[uint64]int, len(users))
	for i, user := range users {
		stats[i].User = user
		index[user.ID] = i
	}
	for _, task := range tasks {
		if task.AssigneeID == nil {
			continue
		}
		if i, ok := index[*task.AssigneeID]; ok {
			stats[i].Add(task)
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].User.Role != stats[j].User.Role {
			return stats[i].User.Role == domain.RoleMember
		}
		return stats[i].User.FullName < stats[j].User.FullName
	})
	return stats, nil
}

// EnsureBootstrapManager creates the given manager account when the system
// has no users yet, so that somebody can log in and create the others.
func (s *UserService) EnsureBootstrapManager(ctx context.Context, input domain.CreateUserInput) (bool, error) {
	count, err := s.deps.Users.Count(ctx)
	if err != nil {
		return false, domain.StorageError(err)
	}
	if count > 0 {
		return false, nil
	}

	input.Role = domain.RoleManager
	user, err := s.create(ctx, input)
	if err != nil {
		return false, err
	}

	zap.L().Info("created bootstrap manager", zap.Uint64("user_id", user.ID), zap.String("username", user.Username))
	return true, nil
}

func (s *UserService) create(ctx context.Context, input domain.CreateUserInput) (domain.User, error) {
	user := domain.User{
		Username: strings.TrimSpace(input.Username),
		Email:    strings.TrimSpace(input.Email),
		FullName: strings.TrimSpace(input.FullName),
		Role:     input.Role,
	}
	if user.Username == "" || user.Email == "" || user.FullName == "" || input.Password == "" {
		return domain.User{}, domain.ErrUserFieldsRequired
	}
	if user.Role == "" {
		user.Role = domain.RoleMember
	}
	if !user.Role.Valid() {
		return domain.User{}, domain.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, err
	}
	user.PasswordHash = hash

	err = s.deps.Tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.deps.Users.ExistsByUsernameOrEmail(ctx, user.Username, user.Email, 0)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateUser
		}
		return s.deps.Users.Create(ctx, &user)
	})
	if err != nil {
		return domain.User{}, domain.StorageError(err)
	}
	return user, nil
}

var _ ports.UserService = (*UserService)(nil)
