package outfit

// State is one immutable snapshot of the try-on session: the maximal layer
// stack built along the current branch, how much of it is active, and which
// master pose is selected.
type State struct {
	// Layers is the full stack, index 0 being the base model layer. Layers
	// beyond OutfitIndex are kept to support redo.
	Layers []*Layer

	// OutfitIndex selects the active prefix: layers 0..OutfitIndex inclusive
	// are in effect.
	OutfitIndex int

	// PoseIndex indexes into the master pose list, not a per-layer list.
	PoseIndex int
}

// NewState builds a snapshot, copying the slice header so later truncation
// or append on the caller's slice cannot corrupt it.
func NewState(layers []*Layer, outfitIndex, poseIndex int) State {
	copied := make([]*Layer, len(layers))
	copy(copied, layers)
	return State{Layers: copied, OutfitIndex: outfitIndex, PoseIndex: poseIndex}
}

// ActiveLayers returns the active prefix of the stack.
func (s State) ActiveLayers() []*Layer {
	return s.Layers[:s.OutfitIndex+1]
}

// CurrentLayer returns the topmost active layer.
func (s State) CurrentLayer() *Layer {
	return s.Layers[s.OutfitIndex]
}

// ActiveGarmentIDs returns the garment ids among active layers, bottom-up.
// The base layer contributes nothing.
func (s State) ActiveGarmentIDs() []string {
	ids := make([]string, 0, s.OutfitIndex)
	for _, layer := range s.ActiveLayers() {
		if layer.Garment != nil {
			ids = append(ids, layer.Garment.ID)
		}
	}
	return ids
}

// DisplayImage resolves the image to show for this snapshot: the current
// layer's image for the selected pose, falling back to the layer's
// earliest-generated pose image.
func (s State) DisplayImage() (string, bool) {
	layer := s.CurrentLayer()
	if img, ok := layer.Poses.Get(PoseLabelAt(s.PoseIndex)); ok {
		return img, true
	}
	if _, img, ok := layer.Poses.First(); ok {
		return img, true
	}
	return "", false
}

// Equal reports whether two snapshots are the same state: identical indexes
// and the same layer objects in the same order. Layers are shared by
// pointer, so pointer identity is the right notion of sameness here.
func (s State) Equal(other State) bool {
	if s.OutfitIndex != other.OutfitIndex || s.PoseIndex != other.PoseIndex {
		return false
	}
	if len(s.Layers) != len(other.Layers) {
		return false
	}
	for i := range s.Layers {
		if s.Layers[i] != other.Layers[i] {
			return false
		}
	}
	return true
}
