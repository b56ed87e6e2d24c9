package domain

// ClusterColors is the display palette cycled by cluster index.
var ClusterColors = []string{
	"#A855F7", // purple-500
	"#22C55E", // green-500
	"#F97316", // orange-500
	"#3B82F6", // blue-500
	"#EF4444", // red-500
}

// ColorFor returns palette[index mod len(palette)], falling back to
// ClusterColors when palette is empty.
func ColorFor(palette []string, index int) string {
	if len(palette) == 0 {
		palette = ClusterColors
	}
	return palette[index%len(palette)]
}
