//go:build debug && withcv
// +build debug,withcv

/*
DESCRIPTION
  Displays debug information for the segmenter.

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
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ausocean/cliptrack/tracker"
)

// debugWindows is used for displaying the frame and foreground mask.
type debugWindows struct {
	windows []*gocv.Window
}

// close frees resources used by gocv.
func (d *debugWindows) close() error {
	for _, window := range d.windows {
		err := window.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// newWindows creates debugging windows for the segmenter.
func newWindows(name string) debugWindows {
	return debugWindows{
		windows: []*gocv.Window{
			gocv.NewWindow(name + ": Frame"),
			gocv.NewWindow(name + ": Foreground Mask"),
		},
	}
}

// show displays the frame with every contour outlined, and the mask. It
// returns the key pressed while the windows were shown, or -1.
func (d *debugWindows) show(img, mask gocv.Mat, contours []tracker.Contour, text ...string) int {
	var lhtRed = color.RGBA{191, 31, 31, 0}
	var drkRed = color.RGBA{191, 0, 0, 0}

	im := img.Clone()
	defer im.Close()

	for _, c := range contours {
		gocv.Rectangle(&im, c.Bounds, lhtRed, 1)
	}
	for i, str := range text {
		gocv.PutText(&im, str, image.Pt(32, 32*(i+1)), gocv.FontHersheyPlain, 2.0, drkRed, 2)
	}

	d.windows[0].IMShow(im)
	d.windows[1].IMShow(mask)
	return d.windows[0].WaitKey(1)
}
