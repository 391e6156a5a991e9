/*
DESCRIPTION
  region.go provides the geometric types shared by the tracking stages:
  candidate contours, detected and smoothed regions, and frames.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tracker

import (
	"fmt"
	"image"
)

// Frame is a single decoded video frame. Implementations are provided by the
// video device package; a Frame is only valid until the next read from its
// source.
type Frame interface {
	Size() image.Point
}

// Contour describes one connected foreground component found in a
// conditioned mask.
type Contour struct {
	Bounds image.Rectangle // Axis aligned bounding rectangle.
	Area   float64         // Area enclosed by the boundary contour.
}

// Region is an axis aligned rectangle in pixel coordinates. It is used both
// for this frame's detection and for the smoothed track estimate.
type Region struct {
	X, Y, W, H int
}

// RegionFromRect returns the Region covering r.
func RegionFromRect(r image.Rectangle) Region {
	return Region{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Area returns the width multiplied by the height.
func (r Region) Area() int { return r.W * r.H }

// Centroid returns the integer centre of the region.
func (r Region) Centroid() image.Point {
	return image.Pt(int(float64(r.X)+float64(r.W)/2), int(float64(r.Y)+float64(r.H)/2))
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}
