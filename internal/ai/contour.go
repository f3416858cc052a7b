package ai

// ContourDetector finds layout panels locally with OpenCV. Panels are the
// outer contours of everything darker than Threshold on a light background.
type ContourDetector struct {
	// Threshold is the grey level separating background from content. Zero
	// means 240.
	Threshold float64
	// MinAreaRatio drops contours smaller than this fraction of the image.
	// Zero means 0.01.
	MinAreaRatio float64
}

func (d ContourDetector) threshold() float64 {
	if d.Threshold <= 0 {
		return 240
	}
	return d.Threshold
}

func (d ContourDetector) minArea(imageArea int) float64 {
	r := d.MinAreaRatio
	if r <= 0 {
		r = 0.01
	}
	return float64(imageArea) * r
}
