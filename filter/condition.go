//go:build withcv
// +build withcv

/*
DESCRIPTION
  condition.go provides morphological clean up of foreground masks.

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

	"gocv.io/x/gocv"
)

const (
	defaultKernel    = 3
	defaultDilations = 5
)

// Conditioner removes speckle noise from a foreground mask with an opening
// and then merges the fragments of one vehicle by repeated dilation.
type Conditioner struct {
	knl       gocv.Mat
	dilations int
}

// NewConditioner returns a Conditioner using an elliptical structuring
// element of the given size. Zero values select the defaults.
func NewConditioner(kernel, dilations uint) *Conditioner {
	if kernel == 0 {
		kernel = defaultKernel
	}
	if dilations == 0 {
		dilations = defaultDilations
	}
	return &Conditioner{
		knl:       gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(int(kernel), int(kernel))),
		dilations: int(dilations),
	}
}

// Condition writes the conditioned form of mask to dst. dst has the
// dimensions of mask. mask and dst may be the same matrix.
func (c *Conditioner) Condition(mask gocv.Mat, dst *gocv.Mat) {
	gocv.MorphologyEx(mask, dst, gocv.MorphOpen, c.knl)
	for i := 0; i < c.dilations; i++ {
		gocv.Dilate(*dst, dst, c.knl)
	}
}

// Close frees the structuring element.
func (c *Conditioner) Close() error {
	return c.knl.Close()
}
