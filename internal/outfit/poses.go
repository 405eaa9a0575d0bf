package outfit

// PoseLabels is the fixed master pose vocabulary, in master-list order.
// Pose indexes throughout the package refer to positions in this list.
var PoseLabels = []string{
	"Full frontal view, hands on hips",
	"Slightly turned, 3/4 view",
	"Side profile view",
	"Back view",
	"Walking towards camera",
	"Leaning against a wall",
	"Jumping mid-air, casual",
	"Sitting on a stool",
	"Arms crossed, confident stance",
	"Hands in pockets, relaxed",
	"Looking over shoulder",
	"Mid-stride, candid street style",
	"One hand raised, waving",
	"Crouching, low angle",
	"Twirling, motion blur",
	"Seated on the floor, legs crossed",
	"Stretching upwards, arms overhead",
	"Head tilted, playful",
	"Power pose, wide stance",
	"Casual lean with ankles crossed",
}

// PoseCount is the number of master poses.
func PoseCount() int { return len(PoseLabels) }

// PoseLabelAt returns the label for a master pose index, or "" if the index
// is out of range.
func PoseLabelAt(index int) string {
	if index < 0 || index >= len(PoseLabels) {
		return ""
	}
	return PoseLabels[index]
}

// PoseIndexOf returns the master-list index for a label, or -1 if unknown.
func PoseIndexOf(label string) int {
	for i, l := range PoseLabels {
		if l == label {
			return i
		}
	}
	return -1
}
