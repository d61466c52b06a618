// Package mcp implements the Model Context Protocol (MCP) server for Antojo.
//
// The MCP server exposes three tools to AI assistants:
//   - parse_query: Interpret a Spanish food-order request into a structured query
//   - search_dishes: Rank catalog dishes for a request (text or structured query)
//   - catalog_status: Report catalog size, ranges, and remote interpreter availability
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server communicates with MCP clients via standard input/output.
//
// # Tool: parse_query
//
//	Request:
//	{
//	  "name": "parse_query",
//	  "arguments": {
//	    "text": "sushi vegano sin gluten cerca de palermo"
//	  }
//	}
//
//	Response (ParseResult):
//	{
//	  "query": {
//	    "q": "sushi vegano sin gluten cerca de palermo",
//	    "filters": {
//	      "category_any": ["sushi"],
//	      "diet_must": ["gluten_free", "vegan"],
//	      "neighborhood_any": ["Palermo"],
//	      "available_only": true
//	    }
//	  },
//	  "plan": ["Categorias: [sushi]", "..."]
//	}
//
// # Tool: search_dishes
//
// Accepts either free text (interpreted first) or a structured query from
// parse_query:
//
//	Request:
//	{
//	  "name": "search_dishes",
//	  "arguments": {
//	    "text": "algo barato y rapido",
//	    "limit": 5
//	  }
//	}
//
//	Response (SearchResponse): ranked results with per-dish score reasons
//	plus the execution plan (hard filters, weights, rejected sample,
//	relaxation notes).
//
// # Tool: catalog_status
//
//	Response:
//	{
//	  "dishes": 24,
//	  "restaurants": 14,
//	  "price_ars": {"min": 2500, "max": 14500},
//	  "eta_min": {"min": 15, "max": 55},
//	  "remote_available": false
//	}
//
// # Error Handling
//
// The server returns standard JSON-RPC error responses. Error codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error
//   - -32001: Text parameter missing or empty
//   - -32002: Query object could not be decoded
//
// # Logging
//
// The MCP server logs to stderr (stdout is reserved for MCP protocol).
package mcp
