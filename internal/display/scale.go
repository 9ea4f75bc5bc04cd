package display

// NextScale decides the display scale after a render, given the width
// available to the display and the width its text actually took at scale 1.
// It shrinks to fit when the text overflows and restores 1 once the text
// fits again; ok is false when the current scale should be kept.
func NextScale(current float64, containerWidth, contentWidth int) (scale float64, ok bool) {
	if containerWidth <= 0 || contentWidth <= 0 {
		return current, false
	}
	needed := float64(containerWidth) / float64(contentWidth)
	switch {
	case needed == current:
		return current, false
	case needed < 1:
		return needed, true
	case current < 1:
		return 1, true
	}
	return current, false
}
