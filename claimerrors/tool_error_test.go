package claimerrors_test

import (
	"errors"
	"testing"

	"github.com/clarion-insurance/claims-orchestrator/claimerrors"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsEmptyMessage(t *testing.T) {
	err := claimerrors.New("")
	require.Equal(t, "tool error", err.Error())
}

func TestNewWithCauseChain(t *testing.T) {
	root := errors.New("connection refused")
	wrapped := claimerrors.NewWithCause("fetch failed", root)

	require.Equal(t, "fetch failed", wrapped.Error())
	require.NotNil(t, wrapped.Cause)
	require.Equal(t, "connection refused", wrapped.Cause.Error())
	require.True(t, errors.Is(wrapped, wrapped.Cause))
}

func TestFromErrorPreservesExistingToolError(t *testing.T) {
	original := claimerrors.New("already structured")
	require.Same(t, original, claimerrors.FromError(original))
}

func TestFromErrorNil(t *testing.T) {
	require.Nil(t, claimerrors.FromError(nil))
}

func TestErrorfFormats(t *testing.T) {
	err := claimerrors.Errorf("agent %q unavailable", "risk_analyst")
	require.Equal(t, `agent "risk_analyst" unavailable`, err.Error())
}

func TestNilToolErrorError(t *testing.T) {
	var e *claimerrors.ToolError
	require.Equal(t, "", e.Error())
	require.Nil(t, e.Unwrap())
}
