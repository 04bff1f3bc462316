package validation

import (
	"encoding/json"
	"errors"
	"strings"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

var ErrInvalidUserPayload = errors.New("invalid user payload")

func BuildCreateUserInput(req dto.CreateUserRequest) domain.CreateUserInput {
	return domain.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Role:     domain.Role(strings.TrimSpace(req.Role)),
	}
}

// BuildUpdateUserInput refuses a payload that sends the password field with
// only whitespace, which would otherwise be taken as a new password.
func BuildUpdateUserInput(req dto.UpdateUserRequest, raw map[string]json.RawMessage) (domain.UpdateUserInput, error) {
	if hasJSONField(raw, "password") && req.Password != "" && strings.TrimSpace(req.Password) == "" {
		return domain.UpdateUserInput{}, ErrInvalidUserPayload
	}
	return domain.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Role:     domain.Role(strings.TrimSpace(req.Role)),
	}, nil
}
