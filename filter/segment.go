//go:build withcv
// +build withcv

/*
DESCRIPTION
  segment.go chains the background model, mask conditioning and contour
  enumeration into a tracker.Segmenter.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package filter

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/ausocean/cliptrack/tracker"
	"github.com/ausocean/cliptrack/tracker/config"
)

// Frame is a tracker.Frame backed by an OpenCV matrix.
type Frame interface {
	tracker.Frame
	Mat() *gocv.Mat
}

func matOf(f tracker.Frame) (*gocv.Mat, error) {
	mf, ok := f.(Frame)
	if !ok {
		return nil, fmt.Errorf("frame of type %T has no matrix", f)
	}
	return mf.Mat(), nil
}

// quitKey stops processing when pressed in a debug window.
const quitKey = 'q'

// Segmenter finds moving vehicle candidates in the frames of one video.
type Segmenter struct {
	debugging debugWindows
	mog       *MOG
	cond      *Conditioner
	mask      gocv.Mat

	// Quit, if not nil, is called when the quit key is pressed in a debug
	// window.
	Quit func()
}

// NewSegmenter returns a Segmenter with a fresh background model.
func NewSegmenter(c config.Config) *Segmenter {
	return &Segmenter{
		mog:       NewMOG(c),
		cond:      NewConditioner(c.MotionKernel, c.MotionDilations),
		mask:      gocv.NewMat(),
		debugging: newWindows("Tracker"),
	}
}

// NewSegmenterFactory returns a tracker.SegmenterFactory producing
// Segmenters configured by c. quit may be nil.
func NewSegmenterFactory(c config.Config, quit func()) tracker.SegmenterFactory {
	return func() (tracker.Segmenter, error) {
		s := NewSegmenter(c)
		s.Quit = quit
		return s, nil
	}
}

// Warm implements tracker.Segmenter.
func (s *Segmenter) Warm(f tracker.Frame) error {
	img, err := matOf(f)
	if err != nil {
		return err
	}
	s.mog.Apply(*img, &s.mask)
	return nil
}

// Segment implements tracker.Segmenter.
func (s *Segmenter) Segment(f tracker.Frame) ([]tracker.Contour, error) {
	img, err := matOf(f)
	if err != nil {
		return nil, err
	}
	s.mog.Apply(*img, &s.mask)
	s.cond.Condition(s.mask, &s.mask)
	contours := Contours(s.mask)
	s.key(s.debugging.show(*img, s.mask, contours))
	return contours, nil
}

// key handles a key pressed in the debug windows.
func (s *Segmenter) key(k int) {
	if k&0xff == quitKey && s.Quit != nil {
		s.Quit()
	}
}

// Close frees resources used by gocv.
func (s *Segmenter) Close() error {
	s.mog.Close()
	s.cond.Close()
	s.mask.Close()
	return s.debugging.close()
}
