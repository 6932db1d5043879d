package user

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"courtbook/models"
	"courtbook/utils"

	"go.uber.org/zap"
)

// Register creates an account on the remote API. It does not sign the user in.
func (s *DefaultUserService) Register(ctx context.Context, form models.RegisterRequest) (*models.User, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Number = strings.TrimSpace(form.Number)

	var missing []string
	for field, value := range map[string]string{
		"name": form.Name, "email": form.Email, "number": form.Number,
		"password": form.Password, "confirmPassword": form.ConfirmPassword,
	} {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, utils.NewAppError(utils.KindValidation, "All fields are required", fmt.Errorf("missing: %s", strings.Join(missing, ", ")))
	}
	if form.Password != form.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	account, err := s.API.Register(ctx, form)
	if err != nil {
		s.Logger.Warn("Registration failed", zap.String("email", form.Email), zap.Error(err))
		return nil, fmt.Errorf("register: %w", err)
	}
	s.Logger.Info("User registered", zap.String("email", form.Email))
	return account, nil
}
