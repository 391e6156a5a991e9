//go:build !debug && withcv
// +build !debug,withcv

/*
DESCRIPTION
  Replaces the segmenter debug windows in release builds.

AUTHORS
  Scott Barnard <scott@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package filter

import (
	"gocv.io/x/gocv"

	"github.com/ausocean/cliptrack/tracker"
)

// debugWindows is used for displaying the frame and foreground mask.
type debugWindows struct{}

// close frees resources used by gocv.
func (d *debugWindows) close() error { return nil }

// newWindows creates debugging windows for the segmenter.
func newWindows(name string) debugWindows { return debugWindows{} }

// show displays the frame with every contour outlined, and the mask. It
// returns the key pressed while the windows were shown, or -1.
func (d *debugWindows) show(img, mask gocv.Mat, contours []tracker.Contour, text ...string) int {
	return -1
}
