package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// parseQueryTool returns the tool definition for parse_query
func parseQueryTool() mcp.Tool {
	return mcp.Tool{
		Name:        "parse_query",
		Description: "Interpret a Spanish food-order request into a structured query with filters, weights and an explanation plan",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Free-form Spanish request, e.g. 'sushi vegano sin gluten cerca de palermo'",
				},
			},
			Required: []string{"text"},
		},
	}
}

// searchDishesTool returns the tool definition for search_dishes
func searchDishesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_dishes",
		Description: "Rank catalog dishes for a request. Provide either free text to interpret or a structured query object from parse_query",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Free-form Spanish request to interpret and search in one step",
				},
				"query": map[string]interface{}{
					"type":        "object",
					"description": "Structured query as returned by parse_query (takes precedence over text)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-50)",
					"default":     10,
					"minimum":     1,
					"maximum":     50,
				},
			},
		},
	}
}

// catalogStatusTool returns the tool definition for catalog_status
func catalogStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "catalog_status",
		Description: "Report catalog size, price and delivery-time ranges, and remote interpreter availability",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
