//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  Replaces the components that use the gocv package when building without
  OpenCV, as on CI machines that do not have a copy of OpenCV installed.

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
	"github.com/ausocean/cliptrack/tracker"
	"github.com/ausocean/cliptrack/tracker/config"
)

// NewSegmenterFactory returns a factory that always fails with ErrNoCV.
func NewSegmenterFactory(c config.Config, quit func()) tracker.SegmenterFactory {
	return func() (tracker.Segmenter, error) { return nil, ErrNoCV }
}

// Annotator is a stand-in that always fails with ErrNoCV.
type Annotator struct{}

// NewAnnotator returns a new Annotator.
func NewAnnotator() *Annotator { return &Annotator{} }

// Annotate implements tracker.Annotator.
func (a *Annotator) Annotate(f tracker.Frame, box *tracker.Region, state tracker.MotionState) error {
	return ErrNoCV
}
