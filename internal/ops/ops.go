// Package ops implements the studio operations shared by every surface
// (web, CLI, MCP). Each operation validates its input, drives the session
// state machine, and returns a plain output struct. Synthesis-backed
// operations hold the session's busy gate across the remote call, so a
// failure leaves history and wardrobe exactly as they were.
package ops

import (
	"github.com/fitform/fitform/internal/config"
	"github.com/fitform/fitform/internal/errors"
	"github.com/fitform/fitform/internal/outfit"
	"github.com/fitform/fitform/internal/synth"
	"github.com/fitform/fitform/internal/wardrobe"
)

// Studio bundles the collaborators one try-on session operates on.
type Studio struct {
	Session *outfit.Session
	Catalog *wardrobe.Catalog
	Synth   synth.Client
	Cfg     *config.Config
}

// NewStudio creates a Studio with a fresh Empty session.
func NewStudio(catalog *wardrobe.Catalog, client synth.Client, cfg *config.Config) *Studio {
	return &Studio{
		Session: outfit.NewSession(),
		Catalog: catalog,
		Synth:   client,
		Cfg:     cfg,
	}
}

// LayerView is the rendering projection of one active layer.
type LayerView struct {
	Garment   *wardrobe.Item `json:"garment,omitempty"`
	PoseCount int            `json:"pose_count"`
}

// StateOutput is the rendering projection of the current snapshot.
type StateOutput struct {
	Active          bool        `json:"active"`
	Busy            bool        `json:"busy"`
	DisplayImage    string      `json:"display_image,omitempty"`
	OutfitIndex     int         `json:"outfit_index"`
	PoseIndex       int         `json:"pose_index"`
	PoseLabel       string      `json:"pose_label,omitempty"`
	Layers          []LayerView `json:"layers,omitempty"`
	ActiveGarments  []string    `json:"active_garments,omitempty"`
	GeneratedPoses  []string    `json:"generated_poses,omitempty"`
	CanUndo         bool        `json:"can_undo"`
	CanRedo         bool        `json:"can_redo"`
	CanRemove       bool        `json:"can_remove_garment"`
	HistoryCursor   int         `json:"history_cursor"`
	HistoryLength   int         `json:"history_length"`
	PoseVocabulary  int         `json:"pose_vocabulary"`
}

// projectState builds the StateOutput for the session's current snapshot.
// Mutating operations still hold the busy gate when they project, and the
// gate drops as they return, so they pass busy=false rather than reading
// the flag they themselves raised. Only the read-only State operation
// reports the live flag.
func projectState(st *Studio, busy bool) *StateOutput {
	out := &StateOutput{
		Busy:           busy,
		PoseVocabulary: outfit.PoseCount(),
	}

	cur, ok := st.Session.Current()
	if !ok {
		return out
	}

	out.Active = true
	out.DisplayImage = st.Session.DisplayImage()
	out.OutfitIndex = cur.OutfitIndex
	out.PoseIndex = cur.PoseIndex
	out.PoseLabel = outfit.PoseLabelAt(cur.PoseIndex)
	out.ActiveGarments = cur.ActiveGarmentIDs()
	out.GeneratedPoses = cur.CurrentLayer().Poses.Labels()
	out.CanUndo = st.Session.CanUndo()
	out.CanRedo = st.Session.CanRedo()
	out.CanRemove = cur.OutfitIndex > 0
	out.HistoryCursor, out.HistoryLength = st.Session.HistoryCursor()

	for _, layer := range cur.ActiveLayers() {
		out.Layers = append(out.Layers, LayerView{
			Garment:   layer.Garment,
			PoseCount: layer.Poses.Len(),
		})
	}

	return out
}

// baseImageFor picks the image a synthesis call should start from: the
// layer's image for the given pose label, else its earliest-generated one.
func baseImageFor(layer *outfit.Layer, poseLabel string) (string, error) {
	if img, ok := layer.Poses.Get(poseLabel); ok {
		return img, nil
	}
	if _, img, ok := layer.Poses.First(); ok {
		return img, nil
	}
	return "", errors.NewPrecondition("layer has no image to synthesize from")
}
