package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edgard/tezbot/internal/apperr"
)

func TestKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind string
	}{
		{"network", apperr.NewNetworkError("boom", errors.New("refused")), apperr.KindNetwork},
		{"api format", apperr.NewAPIFormatError("bad body", nil), apperr.KindAPIFormat},
		{"validation", apperr.NewValidationError("no address"), apperr.KindValidation},
		{"arithmetic", apperr.NewArithmeticError("zero price"), apperr.KindArithmetic},
		{"plain error", errors.New("plain"), apperr.KindUnknown},
		{"nil cause unwraps clean", apperr.NewValidationError("x"), apperr.KindValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.kind, apperr.Kind(tc.err))
		})
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", apperr.NewAPIFormatError("missing field", nil))

	require.Equal(t, apperr.KindAPIFormat, apperr.Kind(err))
	require.True(t, apperr.IsKind(err, apperr.KindAPIFormat))
	require.False(t, apperr.IsKind(err, apperr.KindNetwork))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.NewNetworkError("request failed", cause)

	require.Contains(t, err.Error(), "request failed")
	require.Contains(t, err.Error(), "connection refused")
	require.ErrorIs(t, err, cause)
}
