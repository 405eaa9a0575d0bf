package outfit

import "testing"

func TestPoseCache_AppendOnly(t *testing.T) {
	cache := NewPoseCache()
	cache.Add("A", "img-a")
	cache.Add("B", "img-b")

	// Re-adding an existing label keeps the original image.
	cache.Add("A", "img-a2")

	if cache.Len() != 2 {
		t.Fatalf("Len = %d, want 2", cache.Len())
	}
	if img, _ := cache.Get("A"); img != "img-a" {
		t.Errorf("Get(A) = %q, want original %q", img, "img-a")
	}
}

func TestPoseCache_GenerationOrder(t *testing.T) {
	cache := NewPoseCache()
	// Deliberately not master-list order
	cache.Add("C", "img-c")
	cache.Add("A", "img-a")

	labels := cache.Labels()
	if len(labels) != 2 || labels[0] != "C" || labels[1] != "A" {
		t.Errorf("Labels = %v, want [C A] (generation order)", labels)
	}

	label, img, ok := cache.First()
	if !ok || label != "C" || img != "img-c" {
		t.Errorf("First = (%q, %q, %v), want insertion-order-first entry C", label, img, ok)
	}
}

func TestPoseCache_Empty(t *testing.T) {
	cache := NewPoseCache()
	if _, _, ok := cache.First(); ok {
		t.Error("First on empty cache should report nothing")
	}
	if cache.Has("A") {
		t.Error("Has on empty cache should be false")
	}
}

func TestNewBaseLayer(t *testing.T) {
	layer := NewBaseLayer("model.png")

	if layer.Garment != nil {
		t.Error("base layer must have no garment")
	}
	img, ok := layer.Poses.Get(PoseLabels[0])
	if !ok || img != "model.png" {
		t.Errorf("base layer first pose = (%q, %v), want the model image", img, ok)
	}
}

func TestState_DisplayImageFallback(t *testing.T) {
	layer := NewBaseLayer("model.png")
	layer.Poses.Add(PoseLabels[3], "pose3.png")

	// Exact pose cached
	s := NewState([]*Layer{layer}, 0, 3)
	if img, ok := s.DisplayImage(); !ok || img != "pose3.png" {
		t.Errorf("DisplayImage = (%q, %v), want pose3.png", img, ok)
	}

	// Pose never generated: insertion-order-first fallback
	s = NewState([]*Layer{layer}, 0, 7)
	if img, ok := s.DisplayImage(); !ok || img != "model.png" {
		t.Errorf("DisplayImage fallback = (%q, %v), want model.png", img, ok)
	}
}
