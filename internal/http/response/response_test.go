package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	type request struct {
		Email    string `validate:"required,email"`
		Priority string `validate:"omitempty,oneof=low normal high"`
		Password string `validate:"omitempty,min=6"`
		UserID   string `validate:"omitempty,uuid"`
	}

	tests := []struct {
		name string
		req  request
		want string
	}{
		{name: "required", req: request{}, want: "field Email is a required field"},
		{name: "email", req: request{Email: "bad"}, want: "field Email must be a valid email"},
		{name: "oneof", req: request{Email: "a@b.co", Priority: "urgent"}, want: "field Priority must be one of [low normal high]"},
		{name: "min", req: request{Email: "a@b.co", Password: "123"}, want: "field Password must be at least 6"},
		{name: "uuid", req: request{Email: "a@b.co", UserID: "42"}, want: "field UserID can contain only uuid"},
	}
	v := validator.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			require.Error(t, err)
			resp := ValidationError(err.(validator.ValidationErrors))
			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.want, resp.Error)
		})
	}
}

func TestErrorWithDetails(t *testing.T) {
	resp := ErrorWithDetails("failed to create reminder", "user not found")
	assert.Equal(t, ErrorResponse{Status: StatusError, Error: "failed to create reminder", Details: "user not found"}, resp)
	assert.Empty(t, Error("x").Details)
}
