package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantField string
		wantMsg   string
	}{
		{
			name:  "valid user",
			input: CreateUserRequest{Name: "Asha", Mobile: "9876543210", Email: "asha@example.com", Password: "longenough"},
		},
		{
			name:      "missing name",
			input:     CreateUserRequest{Mobile: "9876543210", Email: "asha@example.com", Password: "longenough"},
			wantField: "name",
			wantMsg:   "name is required",
		},
		{
			name:      "bad email",
			input:     CreateUserRequest{Name: "Asha", Mobile: "9876543210", Email: "nope", Password: "longenough"},
			wantField: "email",
			wantMsg:   "email must be a valid email address",
		},
		{
			name:      "bad role",
			input:     CreateUserRequest{Name: "Asha", Mobile: "9876543210", Email: "asha@example.com", Password: "longenough", Role: "ADMIN"},
			wantField: "role",
			wantMsg:   "role must be one of: USER VENDOR",
		},
		{
			name:      "media type",
			input:     CreateMediaRequest{ProductID: 1, Name: "a.gif", Type: "GIF"},
			wantField: "type",
			wantMsg:   "type must be one of: IMAGE VIDEO PDF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var vf *ValidationFailure
			require.ErrorAs(t, err, &vf)
			assert.Equal(t, tt.wantField, vf.Field)
			assert.Equal(t, tt.wantMsg, vf.Message)
		})
	}
}
