/*
DESCRIPTION
  recorder.go provides the clip recorder, a two state machine that opens an
  output clip when a track appears and finalises it when the track is lost.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tracker

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

// ClipWriter is an open output clip.
type ClipWriter interface {
	Write(f Frame) error
	Close() error
}

// WriterFactory creates clip writers.
type WriterFactory interface {
	Create(path string, fps float64, size image.Point) (ClipWriter, error)
}

// Clip describes one finished clip session.
type Clip struct {
	Index  int    // 1 based, increasing per source video.
	Path   string // Output file.
	First  int    // Index of the first frame written.
	Last   int    // Index of the last frame written.
	Frames int    // Number of frames written.
}

// ClipName returns the file name of clip n of the video with base name base.
func ClipName(base string, n int, ext string) string {
	return fmt.Sprintf("%s_clip_%d.%s", base, n, ext)
}

// Recorder writes frames to a clip while a track is present. It is either
// idle or recording exactly one clip.
type Recorder struct {
	dir     string
	base    string
	ext     string
	fps     float64
	size    image.Point
	writers WriterFactory
	log     logging.Logger

	// OnClip, if not nil, is called with every finalised clip.
	OnClip func(Clip)

	w     ClipWriter // Nil while idle.
	cur   Clip
	index int
	clips []Clip
}

// NewRecorder returns an idle Recorder that writes clips named after base
// into dir.
func NewRecorder(dir, base, ext string, fps float64, size image.Point, writers WriterFactory, log logging.Logger) *Recorder {
	return &Recorder{
		dir:     dir,
		base:    base,
		ext:     ext,
		fps:     fps,
		size:    size,
		writers: writers,
		log:     log,
	}
}

// Update advances the state machine with frame f, the n'th frame of the
// video. present reports whether a track exists for this frame.
func (r *Recorder) Update(present bool, f Frame, n int) error {
	if !present {
		return r.Close()
	}

	if r.w == nil {
		r.index++
		path := filepath.Join(r.dir, ClipName(r.base, r.index, r.ext))
		w, err := r.writers.Create(path, r.fps, r.size)
		if err != nil {
			return errors.Wrapf(err, "could not create clip %s", path)
		}
		r.w = w
		r.cur = Clip{Index: r.index, Path: path, First: n}
		r.log.Info("started recording clip", "path", path, "index", r.index, "frame", n)
	}

	err := r.w.Write(f)
	if err != nil {
		return errors.Wrapf(err, "could not write frame %d to %s", n, r.cur.Path)
	}
	r.cur.Last = n
	r.cur.Frames++
	return nil
}

// Recording reports whether a clip is open.
func (r *Recorder) Recording() bool { return r.w != nil }

// Close finalises the open clip, if any. It is safe to call when idle.
func (r *Recorder) Close() error {
	if r.w == nil {
		return nil
	}
	err := r.w.Close()
	r.w = nil
	clip := r.cur
	r.cur = Clip{}
	r.clips = append(r.clips, clip)
	r.log.Info("stopped recording clip", "path", clip.Path, "index", clip.Index, "frames", clip.Frames)
	if err != nil {
		return errors.Wrapf(err, "could not finalise clip %s", clip.Path)
	}
	if r.OnClip != nil {
		r.OnClip(clip)
	}
	return nil
}

// Clips returns the clips finalised so far.
func (r *Recorder) Clips() []Clip { return r.clips }
