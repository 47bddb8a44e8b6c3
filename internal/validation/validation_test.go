package validation

import (
	"errors"
	"strings"
	"testing"

	"threadly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
	Text     string `json:"text" validate:"max=5"`
	Secret   string `json:"secret" validate:"omitempty,bcryptlen"`
}

func TestStruct(t *testing.T) {
	valid := sample{Name: "Alice", Email: "a@example.com", Password: "secret", Text: "hi"}

	tests := []struct {
		name    string
		mutate  func(*sample)
		message string
	}{
		{name: "Valid", mutate: func(*sample) {}},
		{name: "Blank name", mutate: func(s *sample) { s.Name = "   " }, message: "name is required"},
		{name: "Bad email", mutate: func(s *sample) { s.Email = "nope" }, message: "email must be a valid email"},
		{name: "Short password", mutate: func(s *sample) { s.Password = "123" }, message: "password must be at least 6 characters long"},
		{name: "Long text", mutate: func(s *sample) { s.Text = "toolong" }, message: "text must be at most 5 characters long"},
		{name: "Multibyte text within limit", mutate: func(s *sample) { s.Text = strings.Repeat("é", 5) }},
		{name: "Secret at byte limit", mutate: func(s *sample) { s.Secret = strings.Repeat("é", 36) }},
		{name: "Secret over byte limit", mutate: func(s *sample) { s.Secret = strings.Repeat("é", 37) }, message: "secret must be at most 72 bytes long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := Struct(in)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}

			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, models.CodeValidation, appErr.Code)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}
