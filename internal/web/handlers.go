package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fitform/fitform/internal/config"
	"github.com/fitform/fitform/internal/errors"
	"github.com/fitform/fitform/internal/ops"
	"github.com/fitform/fitform/internal/outfit"
	"github.com/fitform/fitform/internal/share"
)

// Handlers contains HTTP route handlers for the studio API.
type Handlers struct {
	registry *Registry
	cfg      *config.Config
	renderer *Renderer
	log      zerolog.Logger
}

// HandleGuide handles GET / — the rendered usage guide.
func (h *Handlers) HandleGuide(w http.ResponseWriter, _ *http.Request) {
	h.renderer.renderGuide(w)
}

// HandlePing handles GET /ping — liveness probe.
func (h *Handlers) HandlePing(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": h.registry.Len()})
}

// HandleCreateSession handles POST /api/sessions — mint a new session.
func (h *Handlers) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	id, st, err := h.registry.Create()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	state, err := ops.State(r.Context(), st)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	renderJSON(w, http.StatusCreated, map[string]any{
		"session_id": id,
		"state":      state,
	})
}

// HandleGetState handles GET /api/sessions/{id} — the current projection.
func (h *Handlers) HandleGetState(w http.ResponseWriter, r *http.Request) {
	st, err := h.session(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	state, err := ops.State(r.Context(), st)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, state)
}

// HandleDeleteSession handles DELETE /api/sessions/{id}.
func (h *Handlers) HandleDeleteSession(w http.ResponseWriter, r *http.Request) {
	h.registry.Delete(r.PathValue("id"))
	renderJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// HandleCreateModel handles POST /api/sessions/{id}/model — upload a photo
// and finalize the fashion model. Accepts a multipart "photo" file or a
// JSON body with an inline data URL.
func (h *Handlers) HandleCreateModel(w http.ResponseWriter, r *http.Request) {
	st, err := h.session(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var photo string
	if isMultipart(r) {
		photo, err = h.readImageDataURL(w, r, "photo")
		if err != nil {
			h.fail(w, r, err)
			return
		}
	} else {
		var body struct {
			UserPhoto string `json:"user_photo"`
		}
		if err := decodeJSON(r, &body); err != nil {
			h.fail(w, r, err)
			return
		}
		photo = body.UserPhoto
	}

	out, err := ops.CreateModel(r.Context(), st, ops.CreateModelInput{UserPhoto: photo})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleApplyGarment handles POST /api/sessions/{id}/garments — layer a
// wardrobe item or an uploaded garment onto the model. Accepts JSON with an
// item_id or inline fields, or a multipart form with a "garment" file plus
// "name" and "category" fields.
func (h *Handlers) HandleApplyGarment(w http.ResponseWriter, r *http.Request) {
	st, err := h.session(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var input ops.ApplyGarmentInput
	if isMultipart(r) {
		imageRef, err := h.readImageDataURL(w, r, "garment")
		if err != nil {
			h.fail(w, r, err)
			return
		}
		input = ops.ApplyGarmentInput{
			Name:     r.FormValue("name"),
			Category: r.FormValue("category"),
			ImageRef: imageRef,
		}
	} else {
		var body struct {
			ItemID   string `json:"item_id"`
			Name     string `json:"name"`
			ImageRef string `json:"image_ref"`
			Category string `json:"category"`
		}
		if err := decodeJSON(r, &body); err != nil {
			h.fail(w, r, err)
			return
		}
		input = ops.ApplyGarmentInput{
			ItemID:   body.ItemID,
			Name:     body.Name,
			ImageRef: body.ImageRef,
			Category: body.Category,
		}
	}

	out, err := ops.ApplyGarment(r.Context(), st, input)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleRemoveGarment handles DELETE /api/sessions/{id}/garments/last.
func (h *Handlers) HandleRemoveGarment(w http.ResponseWriter, r *http.Request) {
	h.runOp(w, r, ops.RemoveGarment)
}

// HandleSelectPose handles POST /api/sessions/{id}/poses — jump to an
// explicit master pose.
func (h *Handlers) HandleSelectPose(w http.ResponseWriter, r *http.Request) {
	st, err := h.session(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var body struct {
		PoseIndex int `json:"pose_index"`
	}
	if err := decodeJSON(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}

	out, err := ops.SelectPose(r.Context(), st, ops.SelectPoseInput{PoseIndex: body.PoseIndex})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleNextPose handles POST /api/sessions/{id}/poses/next.
func (h *Handlers) HandleNextPose(w http.ResponseWriter, r *http.Request) {
	h.runOp(w, r, ops.NextPose)
}

// HandlePreviousPose handles POST /api/sessions/{id}/poses/previous.
func (h *Handlers) HandlePreviousPose(w http.ResponseWriter, r *http.Request) {
	h.runOp(w, r, ops.PreviousPose)
}

// HandleUndo handles POST /api/sessions/{id}/undo.
func (h *Handlers) HandleUndo(w http.ResponseWriter, r *http.Request) {
	h.runOp(w, r, ops.Undo)
}

// HandleRedo handles POST /api/sessions/{id}/redo.
func (h *Handlers) HandleRedo(w http.ResponseWriter, r *http.Request) {
	h.runOp(w, r, ops.Redo)
}

// HandleReset handles POST /api/sessions/{id}/reset.
func (h *Handlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.runOp(w, r, ops.Reset)
}

// HandleShare handles GET /api/sessions/{id}/share — download the
// before/after composite.
func (h *Handlers) HandleShare(w http.ResponseWriter, r *http.Request) {
	st, err := h.session(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out, err := ops.Share(r.Context(), st)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="fitform-look.jpg"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out.Image)
}

// HandleWardrobe handles GET /api/wardrobe — list selectable garments.
func (h *Handlers) HandleWardrobe(w http.ResponseWriter, r *http.Request) {
	st := ops.NewStudio(h.registry.catalog, h.registry.synth, h.cfg)
	out, err := ops.ListWardrobe(r.Context(), st)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandlePoses handles GET /api/poses — the master pose vocabulary.
func (h *Handlers) HandlePoses(w http.ResponseWriter, _ *http.Request) {
	renderJSON(w, http.StatusOK, map[string]any{"poses": outfit.PoseLabels})
}

// runOp runs a body-less state operation against the request's session.
func (h *Handlers) runOp(w http.ResponseWriter, r *http.Request, op func(context.Context, *ops.Studio) (*ops.StateOutput, error)) {
	st, err := h.session(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out, err := op(r.Context(), st)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// session resolves the request's session from the {id} path segment.
func (h *Handlers) session(r *http.Request) (*ops.Studio, error) {
	id := r.PathValue("id")
	if id == "" {
		return nil, errors.NewInvalidRequest("session id is required")
	}
	return h.registry.Get(id)
}

// fail logs and renders an operation error.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Debug().Err(err).Str("path", r.URL.Path).Msg("request failed")
	renderError(w, err)
}

// decodeJSON decodes the request body into dst; an empty body decodes into
// the zero value.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}

// isMultipart reports whether the request carries a multipart form.
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// readImageDataURL reads a multipart image upload and converts it to an
// inline data URL, enforcing the configured size limit and rejecting files
// that are not images.
func (h *Handlers) readImageDataURL(w http.ResponseWriter, r *http.Request, field string) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		return "", errors.NewInvalidInput(fmt.Sprintf("upload too large or malformed: %v", err))
	}

	file, _, err := r.FormFile(field)
	if err != nil {
		return "", errors.NewInvalidRequest(fmt.Sprintf("missing %q file", field))
	}
	defer file.Close()

	return fileToDataURL(file)
}

// fileToDataURL sniffs the upload's content type and inlines it.
func fileToDataURL(file multipart.File) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", errors.NewInvalidInput(fmt.Sprintf("failed to read upload: %v", err))
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.NewInvalidInput(fmt.Sprintf("upload is %s, not an image", contentType))
	}

	return share.EncodeDataURL(contentType, data), nil
}
