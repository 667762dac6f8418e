package specialists_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarion-insurance/claims-orchestrator/specialists"
)

func TestRunFallbackPipelineFallsBackToDemoDataWhenNotConfigured(t *testing.T) {
	out := specialists.RunFallbackPipeline(context.Background(), nil, "CLAIMANT-1", "Theft", "CA", "Jordan Lee")
	require.Contains(t, out, "Demo Data Mode")
}

func TestRunFallbackPipelineFallsBackOnSQLError(t *testing.T) {
	fb := specialists.NewSQLFallback(nil)
	out := specialists.RunFallbackPipeline(context.Background(), fb, "CLAIMANT-1", "Theft", "CA", "Jordan Lee")
	require.Contains(t, out, "Demo Data Mode")
}

func TestWithQueryHeaderPrependsQuery(t *testing.T) {
	out := specialists.WithQueryHeader("show claims for X", "body content")
	require.Contains(t, out, "show claims for X")
	require.Contains(t, out, "body content")
	require.Contains(t, out, "Fabric Query")
}
