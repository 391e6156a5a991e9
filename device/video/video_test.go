//go:build withcv
// +build withcv

/*
DESCRIPTION
  video_test.go writes a clip and reads it back through the Opener.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package video

import (
	"errors"
	"image"
	"io"
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ausocean/utils/logging"
)

func TestWriteRead(t *testing.T) {
	const frames = 12
	size := image.Pt(320, 240)
	path := filepath.Join(t.TempDir(), "clip.avi")
	log := (*logging.TestLogger)(t)

	w, err := NewWriters("MJPG", log).Create(path, 10, size)
	if err != nil {
		t.Skipf("could not create writer, codec may be unavailable: %v", err)
	}
	f := &Frame{mat: gocv.NewMatWithSize(size.Y, size.X, gocv.MatTypeCV8UC3)}
	for i := 0; i < frames; i++ {
		err = w.Write(f)
		if err != nil {
			t.Fatalf("could not write frame %d: %v", i, err)
		}
	}
	f.mat.Close()
	err = w.Close()
	if err != nil {
		t.Fatalf("could not close writer: %v", err)
	}

	src, err := NewOpener(log).Open(path)
	if err != nil {
		t.Fatalf("could not open written clip: %v", err)
	}
	defer src.Close()

	if fps := src.FPS(); fps != 10 {
		t.Errorf("got fps %v, want 10", fps)
	}

	read := func() int {
		var n int
		for {
			fr, err := src.Read()
			if errors.Is(err, io.EOF) {
				return n
			}
			if err != nil {
				t.Fatalf("could not read frame %d: %v", n, err)
			}
			if fr.Size() != size {
				t.Fatalf("frame %d is %v, want %v", n, fr.Size(), size)
			}
			n++
		}
	}
	if n := read(); n != frames {
		t.Errorf("read %d frames, want %d", n, frames)
	}
	err = src.Rewind()
	if err != nil {
		t.Fatalf("could not rewind: %v", err)
	}
	if n := read(); n != frames {
		t.Errorf("read %d frames after rewind, want %d", n, frames)
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := NewOpener((*logging.TestLogger)(t)).Open(filepath.Join(t.TempDir(), "missing.mp4"))
	if err == nil {
		t.Error("expected error opening missing file")
	}
}

func TestWriteSizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.avi")
	w, err := NewWriters("MJPG", (*logging.TestLogger)(t)).Create(path, 10, image.Pt(320, 240))
	if err != nil {
		t.Skipf("could not create writer, codec may be unavailable: %v", err)
	}
	defer w.Close()
	f := &Frame{mat: gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)}
	defer f.mat.Close()
	if w.Write(f) == nil {
		t.Error("expected error writing frame of the wrong size")
	}
}
