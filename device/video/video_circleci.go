//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  video_circleci.go replaces the OpenCV video input and output when building
  without OpenCV.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package video

import (
	"image"

	"github.com/ausocean/cliptrack/tracker"
	"github.com/ausocean/utils/logging"
)

// Opener fails every open with ErrNoCV.
type Opener struct{}

// NewOpener returns a new Opener.
func NewOpener(l logging.Logger) *Opener { return &Opener{} }

// Open implements tracker.Opener.
func (o *Opener) Open(path string) (tracker.Source, error) { return nil, ErrNoCV }

// Writers fails every create with ErrNoCV.
type Writers struct{}

// NewWriters returns new Writers.
func NewWriters(codec string, l logging.Logger) *Writers { return &Writers{} }

// Create implements tracker.WriterFactory.
func (w *Writers) Create(path string, fps float64, size image.Point) (tracker.ClipWriter, error) {
	return nil, ErrNoCV
}
