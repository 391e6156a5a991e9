//go:build withcv
// +build withcv

/*
DESCRIPTION
  mog.go provides the background model used to separate moving vehicles from
  the static scene. The model is a Mixture of Gaussians (MoG) maintained per
  pixel.

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

	"github.com/ausocean/cliptrack/tracker/config"
)

const (
	defaultMOGThreshold = 250.0
	defaultMOGHistory   = 5000
)

// MOG is an adaptive background model. MoG is short for Mixture of Gaussians.
type MOG struct {
	bs *gocv.BackgroundSubtractorMOG2
}

// NewMOG returns a new MOG using the history, variance threshold and shadow
// settings of c. Shadow pixels are marked with 127 in the mask unless
// IgnoreShadows is set.
func NewMOG(c config.Config) *MOG {
	// Validate parameters.
	if c.MotionThreshold <= 0 {
		c.LogInvalidField("MotionThreshold", defaultMOGThreshold)
		c.MotionThreshold = defaultMOGThreshold
	}
	if c.MotionHistory == 0 {
		c.LogInvalidField("MotionHistory", defaultMOGHistory)
		c.MotionHistory = defaultMOGHistory
	}

	bs := gocv.NewBackgroundSubtractorMOG2WithParams(int(c.MotionHistory), c.MotionThreshold, !c.IgnoreShadows)
	return &MOG{bs: &bs}
}

// Apply updates the model with img and writes the foreground mask to mask.
func (m *MOG) Apply(img gocv.Mat, mask *gocv.Mat) {
	m.bs.Apply(img, mask)
}

// Close frees resources used by gocv. It has to be done manually,
// due to gocv using c-go.
func (m *MOG) Close() error {
	return m.bs.Close()
}
