//go:build withcv
// +build withcv

/*
DESCRIPTION
  file.go provides a tracker.Source that decodes frames from a video file.

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
	"io"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ausocean/cliptrack/tracker"
	"github.com/ausocean/utils/logging"
)

// Frame is a decoded frame. It implements tracker.Frame.
type Frame struct {
	mat gocv.Mat
}

// Size returns the width and height of the frame.
func (f *Frame) Size() image.Point { return image.Pt(f.mat.Cols(), f.mat.Rows()) }

// Mat returns the underlying matrix. Drawing onto it changes the frame.
func (f *Frame) Mat() *gocv.Mat { return &f.mat }

// Opener opens video files. It implements tracker.Opener.
type Opener struct {
	log logging.Logger
}

// NewOpener returns a new Opener.
func NewOpener(l logging.Logger) *Opener { return &Opener{log: l} }

// Open opens the video file at path.
func (o *Opener) Open(path string) (tracker.Source, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open video file: %w", err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotOpened, path)
	}
	return &File{vc: vc, path: path, frame: &Frame{mat: gocv.NewMat()}, log: o.log}, nil
}

// File is an open video file. Every Read decodes into the same Frame, so a
// frame is only valid until the next Read.
type File struct {
	vc    *gocv.VideoCapture
	path  string
	frame *Frame
	log   logging.Logger
	mu    sync.Mutex
}

// FPS returns the frame rate reported by the container, or 0 if unknown.
func (m *File) FPS() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vc.Get(gocv.VideoCaptureFPS)
}

// Read decodes the next frame. io.EOF is returned once no more frames can
// be decoded, whether from the end of the file or a corrupt frame.
func (m *File) Read() (tracker.Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vc == nil {
		return nil, fmt.Errorf("%w: %s is closed", ErrNotOpened, m.path)
	}
	if !m.vc.Read(&m.frame.mat) || m.frame.mat.Empty() {
		return nil, io.EOF
	}
	return m.frame, nil
}

// Rewind seeks back to the first frame.
func (m *File) Rewind() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vc == nil {
		return fmt.Errorf("%w: %s is closed", ErrNotOpened, m.path)
	}
	m.vc.Set(gocv.VideoCapturePosFrames, 0)
	m.log.Debug("rewound video", "path", m.path)
	return nil
}

// Close releases the decoder and frame buffer.
func (m *File) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vc == nil {
		return nil
	}
	err := m.vc.Close()
	m.vc = nil
	m.frame.mat.Close()
	return err
}
