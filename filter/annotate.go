//go:build withcv
// +build withcv

/*
DESCRIPTION
  annotate.go draws the smoothed track and motion state onto frames.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package filter

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ausocean/cliptrack/tracker"
)

var (
	green = color.RGBA{0, 255, 0, 0}
	red   = color.RGBA{255, 0, 0, 0}
)

// Annotator implements tracker.Annotator.
type Annotator struct{}

// NewAnnotator returns a new Annotator.
func NewAnnotator() *Annotator { return &Annotator{} }

// Annotate draws the box in green with its centroid in red, and the motion
// state in the top left corner. Only the state is drawn if box is nil.
func (a *Annotator) Annotate(f tracker.Frame, box *tracker.Region, state tracker.MotionState) error {
	img, err := matOf(f)
	if err != nil {
		return err
	}

	if box != nil {
		gocv.Rectangle(img, box.Rect(), green, 2)
		gocv.Circle(img, box.Centroid(), 5, red, -1)
	}

	text, c := "Vehicle Moving", green
	if state == tracker.Stopped {
		text, c = "Vehicle Stopped", red
	}
	gocv.PutText(img, text, image.Pt(50, 50), gocv.FontHersheySimplex, 1, c, 2)
	return nil
}
