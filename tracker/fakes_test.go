/*
DESCRIPTION
  fakes_test.go provides in memory sources, segmenters and clip writers for
  testing the recorder and driver without OpenCV.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tracker

import (
	"bytes"
	"errors"
	"image"
	"io"
	"sync"

	"github.com/ausocean/cliptrack/tracker/config"
	"github.com/ausocean/utils/logging"
)

var testSize = image.Pt(1280, 720)

func testLogger() logging.Logger {
	return logging.New(logging.Debug, &bytes.Buffer{}, true)
}

// testConfig returns a validated config writing below dir.
func testConfig(dir string) config.Config {
	c := config.Config{Logger: testLogger(), OutputPath: dir}
	c.Validate()
	return c
}

// fakeFrame is the n'th frame of a fake video.
type fakeFrame struct {
	n    int
	size image.Point
}

func (f *fakeFrame) Size() image.Point { return f.size }

// fakeSource yields frames 0 to len-1.
type fakeSource struct {
	len     int
	fps     float64
	pos     int
	errAt   int                 // Read fails with a non EOF error at this frame when > 0.
	sizeAt  map[int]image.Point // Per frame size overrides.
	closed  bool
	rewinds int
}

func (s *fakeSource) FPS() float64 { return s.fps }

func (s *fakeSource) Read() (Frame, error) {
	if s.pos >= s.len {
		return nil, io.EOF
	}
	if s.errAt > 0 && s.pos == s.errAt {
		return nil, errors.New("decode failure")
	}
	f := &fakeFrame{n: s.pos, size: testSize}
	if sz, ok := s.sizeAt[s.pos]; ok {
		f.size = sz
	}
	s.pos++
	return f, nil
}

func (s *fakeSource) Rewind() error {
	s.pos = 0
	s.rewinds++
	return nil
}

func (s *fakeSource) Close() error {
	s.closed = true
	return nil
}

// fakeOpener hands out sources by path.
type fakeOpener struct {
	sources map[string]*fakeSource
}

func (o *fakeOpener) Open(path string) (Source, error) {
	s, ok := o.sources[path]
	if !ok {
		return nil, errors.New("no such video")
	}
	return s, nil
}

// span is an inclusive range of frame indices.
type span struct{ first, last int }

// fakeSegmenter reports one vehicle sized contour for frames within spans.
type fakeSegmenter struct {
	spans  []span
	warmed []int
	onSeg  func(n int)
	closed bool
}

func (s *fakeSegmenter) Warm(f Frame) error {
	s.warmed = append(s.warmed, f.(*fakeFrame).n)
	return nil
}

func (s *fakeSegmenter) Segment(f Frame) ([]Contour, error) {
	n := f.(*fakeFrame).n
	if s.onSeg != nil {
		s.onSeg(n)
	}
	for _, sp := range s.spans {
		if n >= sp.first && n <= sp.last {
			return []Contour{
				{Bounds: image.Rect(0, 0, 10, 10), Area: 100},
				{Bounds: image.Rect(100+n, 100, 400+n, 350), Area: 75000},
			}, nil
		}
	}
	return nil, nil
}

func (s *fakeSegmenter) Close() error {
	s.closed = true
	return nil
}

// fakeWriter records the indices of written frames.
type fakeWriter struct {
	path   string
	fps    float64
	size   image.Point
	frames []int
	closed bool
}

func (w *fakeWriter) Write(f Frame) error {
	if w.closed {
		return errors.New("write after close")
	}
	w.frames = append(w.frames, f.(*fakeFrame).n)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

// fakeWriters creates fakeWriters and keeps them in creation order.
type fakeWriters struct {
	mu      sync.Mutex
	writers []*fakeWriter
	fail    bool
}

func (fw *fakeWriters) Create(path string, fps float64, size image.Point) (ClipWriter, error) {
	if fw.fail {
		return nil, errors.New("disk full")
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	w := &fakeWriter{path: path, fps: fps, size: size}
	fw.writers = append(fw.writers, w)
	return w, nil
}
