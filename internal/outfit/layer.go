package outfit

import "github.com/fitform/fitform/internal/wardrobe"

// PoseCache holds the pose images generated for one layer, keyed by pose
// label. It remembers generation order, which pose navigation walks, and is
// append-only: once a pose image exists it is never evicted or overwritten.
type PoseCache struct {
	labels []string
	images map[string]string
}

// NewPoseCache creates an empty cache.
func NewPoseCache() *PoseCache {
	return &PoseCache{images: make(map[string]string)}
}

// Add stores an image for a pose label. Adding a label that already exists
// is a no-op; the original image wins.
func (p *PoseCache) Add(label, image string) {
	if _, ok := p.images[label]; ok {
		return
	}
	p.images[label] = image
	p.labels = append(p.labels, label)
}

// Get returns the image for a pose label.
func (p *PoseCache) Get(label string) (string, bool) {
	img, ok := p.images[label]
	return img, ok
}

// Has reports whether an image exists for the label.
func (p *PoseCache) Has(label string) bool {
	_, ok := p.images[label]
	return ok
}

// First returns the earliest-generated pose entry. This is the fallback
// shown when the exact current pose was never generated for this layer:
// insertion-order-first, not nearest-pose.
func (p *PoseCache) First() (label, image string, ok bool) {
	if len(p.labels) == 0 {
		return "", "", false
	}
	label = p.labels[0]
	return label, p.images[label], true
}

// Labels returns the generated pose labels in generation order.
func (p *PoseCache) Labels() []string {
	out := make([]string, len(p.labels))
	copy(out, p.labels)
	return out
}

// Len returns the number of generated poses.
func (p *PoseCache) Len() int { return len(p.labels) }

// Layer is one garment application step plus its cache of pose images.
// Layers are shared by pointer between snapshots, so a pose generated while
// visiting a layer stays available after undo and redo.
type Layer struct {
	// Garment is the applied wardrobe item. nil means the base model layer.
	Garment *wardrobe.Item

	// Poses maps pose labels to image references for this layer.
	Poses *PoseCache
}

// NewBaseLayer creates the garmentless base layer holding the model image
// under the first master pose.
func NewBaseLayer(modelImage string) *Layer {
	l := &Layer{Poses: NewPoseCache()}
	l.Poses.Add(PoseLabels[0], modelImage)
	return l
}

// NewGarmentLayer creates a layer for an applied garment with its first
// pose image.
func NewGarmentLayer(garment *wardrobe.Item, poseLabel, image string) *Layer {
	l := &Layer{Garment: garment, Poses: NewPoseCache()}
	l.Poses.Add(poseLabel, image)
	return l
}
