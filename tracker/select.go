/*
DESCRIPTION
  select.go picks the dominant contour of a frame and turns it into a
  detected region, clamping the size of oversized blobs.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tracker

import (
	"math"
)

// Selector chooses the largest contour of a frame and classifies it against
// the configured area limits.
type Selector struct {
	minArea float64 // Contours with area at or below this are noise.
	maxArea float64 // Contours with area at or above this are clamped.
}

// NewSelector returns a Selector using the given area limits.
func NewSelector(minArea, maxArea float64) *Selector {
	return &Selector{minArea: minArea, maxArea: maxArea}
}

// Select returns the detected region for this frame and whether a valid
// detection was found. prev is the current smoothed region, or nil if there
// is no track. Contours at or beyond the maximum area keep the size of prev
// (or a square of side sqrt(maxArea) without a track) and are recentred on
// the contour's bounding rectangle.
func (s *Selector) Select(contours []Contour, prev *Region) (Region, bool) {
	if len(contours) == 0 {
		return Region{}, false
	}

	largest := contours[0]
	for _, c := range contours[1:] {
		if c.Area > largest.Area {
			largest = c
		}
	}

	if largest.Area <= s.minArea {
		return Region{}, false
	}

	box := RegionFromRect(largest.Bounds)
	if largest.Area < s.maxArea {
		return box, true
	}

	var w, h int
	if prev != nil {
		w, h = prev.W, prev.H
	} else {
		side := int(math.Sqrt(s.maxArea))
		w, h = side, side
	}
	c := box.Centroid()
	return Region{
		X: int(float64(c.X) - float64(w)/2),
		Y: int(float64(c.Y) - float64(h)/2),
		W: w,
		H: h,
	}, true
}
