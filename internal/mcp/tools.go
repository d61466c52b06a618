package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/antojo/antojo/internal/catalog"
	"github.com/antojo/antojo/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeEmptyText     = -32001 // Text parameter is empty
	ErrorCodeBadQuery      = -32002 // Query object could not be decoded
)

// handleParseQuery handles the parse_query tool invocation
func (s *Server) handleParseQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok || text == "" {
		return nil, newMCPError(ErrorCodeEmptyText, "text parameter is required and cannot be empty", map[string]interface{}{
			"param":  "text",
			"reason": "missing or empty",
		})
	}

	res := s.orch.Parse(ctx, text)
	return mcp.NewToolResultText(formatJSON(res)), nil
}

// handleSearchDishes handles the search_dishes tool invocation
func (s *Server) handleSearchDishes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	limit := getIntDefault(args, "limit", 10)
	if limit < 1 || limit > 50 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 50", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	var q types.Query
	switch {
	case args["query"] != nil:
		decoded, err := decodeQuery(args["query"])
		if err != nil {
			return nil, newMCPError(ErrorCodeBadQuery, "query object could not be decoded", map[string]interface{}{
				"error": err.Error(),
			})
		}
		q = decoded
	default:
		text, _ := args["text"].(string)
		if text == "" {
			return nil, newMCPError(ErrorCodeEmptyText, "either text or query is required", map[string]interface{}{
				"param":  "text",
				"reason": "missing or empty",
			})
		}
		q = s.orch.Parse(ctx, text).Query
	}

	resp, err := s.orch.Search(ctx, q)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "search failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if len(resp.Results) > limit {
		trimmed := *resp
		trimmed.Results = resp.Results[:limit]
		resp = &trimmed
	}
	return mcp.NewToolResultText(formatJSON(resp)), nil
}

// handleCatalogStatus handles the catalog_status tool invocation
func (s *Server) handleCatalogStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idx, err := catalog.NewIndex(s.dishes)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "catalog is empty", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"dishes":      len(s.dishes),
		"restaurants": len(catalog.RestaurantNames(s.dishes)),
		"price_ars": map[string]interface{}{
			"min": idx.PriceMin,
			"max": idx.PriceMax,
		},
		"eta_min": map[string]interface{}{
			"min": idx.ETAMin,
			"max": idx.ETAMax,
		},
		"remote_available": s.orch.RemoteAvailable(),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// decodeQuery converts a generic JSON object into a typed query
func decodeQuery(raw interface{}) (types.Query, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return types.Query{}, err
	}
	q := types.NewQuery("")
	if err := json.Unmarshal(data, &q); err != nil {
		return types.Query{}, err
	}
	return q, nil
}

// formatJSON formats a value as indented JSON
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}
