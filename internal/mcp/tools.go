package mcp

import "github.com/mark3labs/mcp-go/mcp"

var createModelToolDef = mcp.NewTool("studio_create_model",
	mcp.WithDescription("Turn an uploaded photo into the session's fashion model. The photo is an inline data URL or an image URL. Fails if a model already exists; use studio_reset to start over."),
	mcp.WithString("user_photo",
		mcp.Required(),
		mcp.Description("The user's photo as a data URL or image URL"),
	),
)

var applyGarmentToolDef = mcp.NewTool("studio_apply_garment",
	mcp.WithDescription("Layer a garment onto the model. Address a wardrobe item by item_id, or provide name, image_ref and category to upload a new garment. Applying a category already worn replaces that layer and everything above it."),
	mcp.WithString("item_id",
		mcp.Description("ID of an existing wardrobe item"),
	),
	mcp.WithString("name",
		mcp.Description("Display name for an uploaded garment"),
	),
	mcp.WithString("image_ref",
		mcp.Description("Garment image as a data URL or image URL (uploads only)"),
	),
	mcp.WithString("category",
		mcp.Description("Garment category: shirt, outerwear, pants, shoes or hat (uploads only)"),
	),
)

var removeGarmentToolDef = mcp.NewTool("studio_remove_garment",
	mcp.WithDescription("Take off the top garment layer. The layer stays available: re-applying the same garment restores it without regenerating images."),
)

var selectPoseToolDef = mcp.NewTool("studio_select_pose",
	mcp.WithDescription("Jump to a specific pose by its index in the pose vocabulary. Poses already generated for the current outfit are reused; new ones cost a synthesis call."),
	mcp.WithNumber("pose_index",
		mcp.Required(),
		mcp.Description("Index into the pose vocabulary, 0-based"),
	),
)

var nextPoseToolDef = mcp.NewTool("studio_next_pose",
	mcp.WithDescription("Cycle forward to the next pose: through already-generated poses first, then the first pose not yet generated."),
)

var previousPoseToolDef = mcp.NewTool("studio_previous_pose",
	mcp.WithDescription("Cycle back through the poses already generated for the current outfit. Never generates a new image."),
)

var undoToolDef = mcp.NewTool("studio_undo",
	mcp.WithDescription("Step back one styling action. No-op when already at the oldest state."),
)

var redoToolDef = mcp.NewTool("studio_redo",
	mcp.WithDescription("Step forward one styling action. No-op when already at the newest state."),
)

var stateToolDef = mcp.NewTool("studio_state",
	mcp.WithDescription("Return the current session state: display image, active garments, pose, and what undo/redo/remove can do."),
)

var wardrobeToolDef = mcp.NewTool("studio_wardrobe",
	mcp.WithDescription("List every selectable garment: the default wardrobe plus uploads from this session."),
)

var resetToolDef = mcp.NewTool("studio_reset",
	mcp.WithDescription("Discard the model and all styling history, returning the session to empty. Uploaded garments stay in the wardrobe."),
)
