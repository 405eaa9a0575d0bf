package outfit

// Pose navigation over the master pose list and the current layer's
// generated subset. Arrow navigation prefers poses that already exist for
// the layer (free cursor moves) before spending a synthesis call on a new
// one; moving backward never needs synthesis since everything behind the
// cursor was generated already.

// NextPoseIndex computes the master pose index "next" should land on, given
// the current layer's cache and the current master pose index.
//
// Walk forward through the generated subset in generation order first; once
// the subset is exhausted, pick the first master-list label not yet
// generated. If every master pose is generated, wrap to the subset's first
// entry. If the current label was never generated for this layer (first
// visit), fall back to plain index arithmetic.
func NextPoseIndex(cache *PoseCache, current int) int {
	labels := cache.Labels()
	pos := indexOf(labels, PoseLabelAt(current))
	if pos < 0 {
		return (current + 1) % len(PoseLabels)
	}

	if pos+1 < len(labels) {
		return PoseIndexOf(labels[pos+1])
	}

	// Generated subset exhausted: first master label not yet generated.
	for i, label := range PoseLabels {
		if !cache.Has(label) {
			return i
		}
	}

	// Everything generated: wrap within the subset.
	return PoseIndexOf(labels[0])
}

// PrevPoseIndex computes the master pose index "previous" should land on.
// It walks backward through the generated subset only, wrapping within it,
// so it never requires synthesis. First visit to a layer falls back to
// plain index arithmetic.
func PrevPoseIndex(cache *PoseCache, current int) int {
	labels := cache.Labels()
	pos := indexOf(labels, PoseLabelAt(current))
	if pos < 0 {
		return (current - 1 + len(PoseLabels)) % len(PoseLabels)
	}

	prev := pos - 1
	if prev < 0 {
		prev = len(labels) - 1
	}
	return PoseIndexOf(labels[prev])
}

func indexOf(labels []string, label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}
