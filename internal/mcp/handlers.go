package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fitform/fitform/internal/config"
	"github.com/fitform/fitform/internal/errors"
	"github.com/fitform/fitform/internal/ops"
	"github.com/fitform/fitform/internal/synth"
	"github.com/fitform/fitform/internal/wardrobe"
)

// Handlers holds the single implicit try-on session the stdio server
// operates on.
type Handlers struct {
	studio *ops.Studio
}

// NewHandlers creates a Handlers instance with a fresh session.
func NewHandlers(catalog *wardrobe.Catalog, client synth.Client, cfg *config.Config) *Handlers {
	return &Handlers{studio: ops.NewStudio(catalog, client, cfg)}
}

// Request types for each tool

// CreateModelRequest represents the arguments for studio_create_model.
type CreateModelRequest struct {
	UserPhoto string `json:"user_photo"`
}

// ApplyGarmentRequest represents the arguments for studio_apply_garment.
type ApplyGarmentRequest struct {
	ItemID   string `json:"item_id,omitempty"`
	Name     string `json:"name,omitempty"`
	ImageRef string `json:"image_ref,omitempty"`
	Category string `json:"category,omitempty"`
}

// SelectPoseRequest represents the arguments for studio_select_pose.
type SelectPoseRequest struct {
	PoseIndex int `json:"pose_index"`
}

// HandleCreateModel handles the studio_create_model tool.
func (h *Handlers) HandleCreateModel(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateModelRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CreateModel(ctx, h.studio, ops.CreateModelInput{UserPhoto: input.UserPhoto})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleApplyGarment handles the studio_apply_garment tool.
func (h *Handlers) HandleApplyGarment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ApplyGarmentRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ApplyGarment(ctx, h.studio, ops.ApplyGarmentInput{
		ItemID:   input.ItemID,
		Name:     input.Name,
		ImageRef: input.ImageRef,
		Category: input.Category,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleRemoveGarment handles the studio_remove_garment tool.
func (h *Handlers) HandleRemoveGarment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.RemoveGarment(ctx, h.studio)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSelectPose handles the studio_select_pose tool.
func (h *Handlers) HandleSelectPose(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SelectPoseRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SelectPose(ctx, h.studio, ops.SelectPoseInput{PoseIndex: input.PoseIndex})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleNextPose handles the studio_next_pose tool.
func (h *Handlers) HandleNextPose(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.NextPose(ctx, h.studio)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandlePreviousPose handles the studio_previous_pose tool.
func (h *Handlers) HandlePreviousPose(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.PreviousPose(ctx, h.studio)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleUndo handles the studio_undo tool.
func (h *Handlers) HandleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Undo(ctx, h.studio)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleRedo handles the studio_redo tool.
func (h *Handlers) HandleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Redo(ctx, h.studio)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleState handles the studio_state tool.
func (h *Handlers) HandleState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.State(ctx, h.studio)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleWardrobe handles the studio_wardrobe tool.
func (h *Handlers) HandleWardrobe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ListWardrobe(ctx, h.studio)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleReset handles the studio_reset tool.
func (h *Handlers) HandleReset(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.Reset(ctx, h.studio)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// errorResult creates an MCP error result from a studio error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if sErr, ok := err.(*errors.StudioError); ok {
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": sErr.Message,
			"status":  sErr.Status,
		}
		if sErr.Code != errors.ErrInternal && sErr.Details != nil {
			errorObj["details"] = sErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
