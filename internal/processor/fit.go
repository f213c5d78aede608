package processor

import "math"

// FitWithin computes target dimensions that fit inside the requested bounds
// while preserving the original aspect ratio. A zero target means "no
// constraint on that axis"; with no constraints the original dimensions come
// back unchanged, and callers skip the resize when the result equals the
// original. Rounding is standard half-away-from-zero, applied after the
// ratio arithmetic.
func FitWithin(origWidth, origHeight, targetWidth, targetHeight int) (int, int) {
	if targetWidth == 0 && targetHeight == 0 {
		return origWidth, origHeight
	}

	aspect := float64(origWidth) / float64(origHeight)

	if targetWidth > 0 && targetHeight > 0 {
		// fit the relatively longer axis, derive the other
		if aspect > float64(targetWidth)/float64(targetHeight) {
			return targetWidth, int(math.Round(float64(targetWidth) / aspect))
		}
		return int(math.Round(float64(targetHeight) * aspect)), targetHeight
	}

	if targetWidth > 0 {
		return targetWidth, int(math.Round(float64(targetWidth) / aspect))
	}

	return int(math.Round(float64(targetHeight) * aspect)), targetHeight
}
