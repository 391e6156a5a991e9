//go:build withcv
// +build withcv

/*
DESCRIPTION
  writer.go provides a tracker.WriterFactory that encodes clips to video
  files.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package video

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ausocean/cliptrack/tracker"
	"github.com/ausocean/utils/logging"
)

// Writers creates clip files encoded with a FourCC codec.
type Writers struct {
	codec string
	log   logging.Logger
}

// NewWriters returns Writers that encode with codec, e.g. "mp4v".
func NewWriters(codec string, l logging.Logger) *Writers {
	return &Writers{codec: codec, log: l}
}

// Create opens a colour clip at path.
func (w *Writers) Create(path string, fps float64, size image.Point) (tracker.ClipWriter, error) {
	vw, err := gocv.VideoWriterFile(path, w.codec, fps, size.X, size.Y, true)
	if err != nil {
		return nil, fmt.Errorf("could not create video writer: %w", err)
	}
	if !vw.IsOpened() {
		vw.Close()
		return nil, fmt.Errorf("%w: writer for %s with codec %s", ErrNotOpened, path, w.codec)
	}
	w.log.Debug("created clip writer", "path", path, "codec", w.codec, "fps", fps)
	return &clipWriter{vw: vw, size: size}, nil
}

type clipWriter struct {
	vw   *gocv.VideoWriter
	size image.Point
}

func (c *clipWriter) Write(f tracker.Frame) error {
	mf, ok := f.(interface{ Mat() *gocv.Mat })
	if !ok {
		return fmt.Errorf("frame of type %T has no matrix", f)
	}
	if f.Size() != c.size {
		return fmt.Errorf("frame is %v, clip is %v", f.Size(), c.size)
	}
	return c.vw.Write(*mf.Mat())
}

func (c *clipWriter) Close() error { return c.vw.Close() }
