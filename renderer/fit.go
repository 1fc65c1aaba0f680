package renderer

// fitRect computes the viewport rectangle that letterboxes an image of
// natural size imgW x imgH into a framebuffer of fbW x fbH, preserving
// the image aspect ratio. Degenerate sizes fall back to the full
// framebuffer so a zero-size box never divides by zero.
func fitRect(fbW, fbH, imgW, imgH int) (x, y, w, h int32) {
	if fbW <= 0 || fbH <= 0 || imgW <= 0 || imgH <= 0 {
		return 0, 0, int32(max(fbW, 0)), int32(max(fbH, 0))
	}

	fbAspect := float64(fbW) / float64(fbH)
	imgAspect := float64(imgW) / float64(imgH)

	if fbAspect > imgAspect {
		// Pillarbox: full height, centered horizontally.
		h = int32(fbH)
		w = int32(float64(fbH) * imgAspect)
		x = (int32(fbW) - w) / 2
		y = 0
	} else {
		// Letterbox: full width, centered vertically.
		w = int32(fbW)
		h = int32(float64(fbW) / imgAspect)
		x = 0
		y = (int32(fbH) - h) / 2
	}
	return x, y, w, h
}
