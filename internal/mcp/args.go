package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	mcputils "github.com/mvp-joe/ubidoc/internal/mcp-utils"
)

// argsOf returns the arguments of a tool call. A call without arguments
// yields an empty map.
func argsOf(request mcp.CallToolRequest) (map[string]interface{}, error) {
	if request.Params.Arguments == nil {
		return map[string]interface{}{}, nil
	}
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid arguments format")
	}
	return argsMap, nil
}

// parseStringArg extracts a string argument from an MCP arguments map.
// Returns an error if the argument is required but missing or invalid.
func parseStringArg(argsMap map[string]interface{}, key string, required bool) (string, error) {
	val, ok := argsMap[key]
	if !ok {
		if required {
			return "", fmt.Errorf("%s parameter is required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}

	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}

	return str, nil
}

// toolOptions holds the optional numeric and boolean tool arguments.
// Clients may send them as strings.
type toolOptions struct {
	Limit      *int `json:"limit"`
	Visibility bool `json:"visibility"`
}

func parseOptions(request mcp.CallToolRequest) (toolOptions, error) {
	var opts toolOptions
	if err := mcputils.BindArguments(request, &opts); err != nil {
		return opts, fmt.Errorf("invalid arguments: %w", err)
	}
	return opts, nil
}

// limit returns the requested limit clamped to [1, upper], or def when no
// limit was given.
func (o toolOptions) limit(def, upper int) int {
	if o.Limit == nil {
		return def
	}
	return min(max(*o.Limit, 1), upper)
}
