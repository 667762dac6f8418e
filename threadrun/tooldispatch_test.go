package threadrun

import (
	"context"
	"errors"
	"testing"

	"github.com/clarion-insurance/claims-orchestrator/agentregistry"
	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/stretchr/testify/require"
)

func TestDispatchToolUnregisteredFunction(t *testing.T) {
	out := dispatchTool(context.Background(), nil, claim.ToolCall{FunctionName: "missing"})
	require.Equal(t, "function not registered", out)
}

func TestDispatchToolCallableError(t *testing.T) {
	functions := map[string]agentregistry.ToolFunc{
		"lookup_policy": func(ctx context.Context, args map[string]any) (string, error) {
			return "", errors.New("policy service unavailable")
		},
	}
	out := dispatchTool(context.Background(), functions, claim.ToolCall{FunctionName: "lookup_policy", Arguments: []byte(`{}`)})
	require.Equal(t, "Error executing lookup_policy: policy service unavailable", out)
}

func TestDispatchToolBareStringArguments(t *testing.T) {
	var captured map[string]any
	functions := map[string]agentregistry.ToolFunc{
		"echo": func(ctx context.Context, args map[string]any) (string, error) {
			captured = args
			return "ok", nil
		},
	}
	out := dispatchTool(context.Background(), functions, claim.ToolCall{FunctionName: "echo", Arguments: []byte(`"hello"`)})
	require.Equal(t, "ok", out)
	require.Equal(t, "hello", captured["input"])
}

func TestDispatchToolMalformedArguments(t *testing.T) {
	functions := map[string]agentregistry.ToolFunc{
		"echo": func(ctx context.Context, args map[string]any) (string, error) { return "ok", nil },
	}
	out := dispatchTool(context.Background(), functions, claim.ToolCall{FunctionName: "echo", Arguments: []byte(`{not valid json`)})
	require.Contains(t, out, "Error executing echo: invalid arguments")
}

func TestParseArgumentsEmpty(t *testing.T) {
	args, err := parseArguments(nil)
	require.NoError(t, err)
	require.Empty(t, args)
}
