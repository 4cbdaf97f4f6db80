package sl_test

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/gym-manager/internal/lib/sl"
)

func TestErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "plain error", err: errors.New("something went wrong"), want: "something went wrong"},
		{name: "wrapped error", err: fmt.Errorf("storage.GetUser: %w", errors.New("not found")), want: "storage.GetUser: not found"},
		{name: "nil error", err: nil, want: "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := sl.Err(tt.err)
			assert.Equal(t, "error", attr.Key)
			assert.Equal(t, slog.StringValue(tt.want), attr.Value)
		})
	}
}

func TestOp(t *testing.T) {
	attr := sl.Op("services.membership.Assign")
	assert.Equal(t, "op", attr.Key)
	assert.Equal(t, "services.membership.Assign", attr.Value.String())
}
