//go:build withcv
// +build withcv

/*
DESCRIPTION
  contour.go enumerates the connected foreground components of a mask.

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

// Contours returns the outer contours of the non-zero regions of mask with
// their enclosed areas and upright bounding rectangles.
func Contours(mask gocv.Mat) []tracker.Contour {
	pv := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer pv.Close()

	contours := make([]tracker.Contour, 0, pv.Size())
	for i := 0; i < pv.Size(); i++ {
		c := pv.At(i)
		contours = append(contours, tracker.Contour{
			Bounds: gocv.BoundingRect(c),
			Area:   gocv.ContourArea(c),
		})
	}
	return contours
}
