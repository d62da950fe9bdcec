package mcp

import (
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for argument parsing:
// - argsOf accepts a map, treats missing arguments as empty, rejects other shapes
// - parseStringArg enforces required, non-empty string values
// - parseOptions binds limit and visibility from native or string values
// - limit falls back to the default when absent and clamps given values

func TestArgsOf(t *testing.T) {
	t.Parallel()

	t.Run("map arguments", func(t *testing.T) {
		args, err := argsOf(mcp.CallToolRequest{Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{"keyword": "order"},
		}})
		require.NoError(t, err)
		assert.Equal(t, "order", args["keyword"])
	})

	t.Run("missing arguments", func(t *testing.T) {
		args, err := argsOf(mcp.CallToolRequest{})
		require.NoError(t, err)
		assert.Empty(t, args)
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := argsOf(mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: []string{"order"}}})
		assert.ErrorContains(t, err, "invalid arguments format")
	})
}

func TestParseStringArg(t *testing.T) {
	t.Parallel()

	t.Run("required string present", func(t *testing.T) {
		argsMap := map[string]interface{}{
			"query": "refund policy",
		}
		result, err := parseStringArg(argsMap, "query", true)
		require.NoError(t, err)
		assert.Equal(t, "refund policy", result)
	})

	t.Run("required string missing", func(t *testing.T) {
		argsMap := map[string]interface{}{}
		result, err := parseStringArg(argsMap, "query", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query parameter is required")
		assert.Empty(t, result)
	})

	t.Run("required string empty", func(t *testing.T) {
		argsMap := map[string]interface{}{
			"query": "",
		}
		result, err := parseStringArg(argsMap, "query", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query cannot be empty")
		assert.Empty(t, result)
	})

	t.Run("optional string missing", func(t *testing.T) {
		argsMap := map[string]interface{}{}
		result, err := parseStringArg(argsMap, "query", false)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("optional string empty", func(t *testing.T) {
		argsMap := map[string]interface{}{
			"query": "",
		}
		result, err := parseStringArg(argsMap, "query", false)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("wrong type", func(t *testing.T) {
		argsMap := map[string]interface{}{
			"query": 42,
		}
		result, err := parseStringArg(argsMap, "query", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query must be a string")
		assert.Empty(t, result)
	})
}

func TestParseOptions(t *testing.T) {
	t.Parallel()

	request := func(args any) mcp.CallToolRequest {
		return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
	}

	t.Run("missing", func(t *testing.T) {
		opts, err := parseOptions(request(nil))
		require.NoError(t, err)
		assert.Nil(t, opts.Limit)
		assert.False(t, opts.Visibility)
		assert.Equal(t, 10, opts.limit(10, 100))
	})

	t.Run("numbers and strings", func(t *testing.T) {
		opts, err := parseOptions(request(map[string]interface{}{"limit": float64(42), "visibility": true}))
		require.NoError(t, err)
		assert.Equal(t, 42, opts.limit(10, 100))
		assert.True(t, opts.Visibility)

		opts, err = parseOptions(request(map[string]interface{}{"limit": "7", "visibility": "true"}))
		require.NoError(t, err)
		assert.Equal(t, 7, opts.limit(10, 100))
		assert.True(t, opts.Visibility)
	})

	t.Run("clamped", func(t *testing.T) {
		opts, err := parseOptions(request(map[string]interface{}{"limit": float64(-5)}))
		require.NoError(t, err)
		assert.Equal(t, 1, opts.limit(10, 100))

		opts, err = parseOptions(request(map[string]interface{}{"limit": float64(0)}))
		require.NoError(t, err)
		assert.Equal(t, 1, opts.limit(10, 100))

		opts, err = parseOptions(request(map[string]interface{}{"limit": float64(1000)}))
		require.NoError(t, err)
		assert.Equal(t, 100, opts.limit(10, 100))
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := parseOptions(request(map[string]interface{}{"limit": "lots"}))
		assert.ErrorContains(t, err, "invalid arguments")
	})
}
