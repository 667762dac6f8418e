package threadrun

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clarion-insurance/claims-orchestrator/agentregistry"
	"github.com/clarion-insurance/claims-orchestrator/claim"
	"github.com/clarion-insurance/claims-orchestrator/claimerrors"
)

// dispatchTool invokes the local callable backing call, applying the tool
// dispatch rules from spec.md §4.2:
//   - arguments arriving as a JSON string are parsed once; a parse failure
//     yields an error string rather than aborting the run
//   - the callable receives keyword arguments unpacked from the parsed JSON
//     object, or {"input": <string>} when arguments were a bare string
//   - the callable's string result is submitted as is
//   - a panic-free error from the callable is formatted as
//     "Error executing <name>: <message>" and submitted so the run
//     continues
func dispatchTool(ctx context.Context, functions map[string]agentregistry.ToolFunc, call claim.ToolCall) string {
	fn, ok := functions[call.FunctionName]
	if !ok {
		return "function not registered"
	}

	args, err := parseArguments(call.Arguments)
	if err != nil {
		toolErr := &claimerrors.ToolInvocationError{ToolName: call.FunctionName, Cause: fmt.Errorf("invalid arguments: %w", err)}
		return toolErr.Error()
	}

	result, err := fn(ctx, args)
	if err != nil {
		toolErr := &claimerrors.ToolInvocationError{ToolName: call.FunctionName, Cause: err}
		return toolErr.Error()
	}
	return result
}

// parseArguments decodes a tool call's raw arguments into a keyword map. A
// bare JSON string argument ("hello") is not itself valid keyword input, so
// it is wrapped under a conventional "input" key; a JSON object argument is
// unpacked directly.
func parseArguments(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return map[string]any{"input": str}, nil
	}

	return nil, fmt.Errorf("arguments are neither a JSON object nor a JSON string")
}
