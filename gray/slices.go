package gray

// ImageSlice contains indexes representing a band of rows of an image
type ImageSlice struct {
	XStart int
	XEnd   int
	YStart int
	YEnd   int
}

// SlicesByRow divides an image into at most 'numSlices' bands of consecutive rows.
// The last band picks up the remaining rows. Never returns an empty band.
// @img: image to be divided
// @numSlices: number of slices to divide the image into; values < 1 are treated as 1
func SlicesByRow(img *Image, numSlices int) []ImageSlice {
	nRows := img.Height
	if numSlices < 1 {
		numSlices = 1
	}
	if numSlices > nRows {
		numSlices = nRows
	}
	// ceil(nRows / numSlices)
	rowsPerSlice := (nRows + numSlices - 1) / numSlices

	slices := make([]ImageSlice, 0, numSlices)
	for start := 0; start < nRows; start += rowsPerSlice {
		end := start + rowsPerSlice
		if end > nRows {
			end = nRows
		}
		slices = append(slices, ImageSlice{XStart: 0, XEnd: img.Width, YStart: start, YEnd: end})
	}
	return slices
}
