package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// decode round-trips a tool call's argument map through JSON into the
// request struct the handler expects. Absent fields come out as zero
// values; the operation layer validates those.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var in T
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return in, fmt.Errorf("marshal tool arguments: %w", err)
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, fmt.Errorf("decode tool arguments: %w", err)
	}
	return in, nil
}
