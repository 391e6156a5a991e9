/*
DESCRIPTION
  driver.go provides the frame driver, which runs one source video through
  segmentation, contour selection, smoothing, stop classification and clip
  recording, frame by frame.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package tracker detects a single moving vehicle in surveillance video,
// tracks its smoothed bounding box, classifies it as moving or stopped and
// writes one clip per continuous span of the vehicle's presence.
package tracker

import (
	"context"
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	perrors "github.com/pkg/errors"

	"github.com/ausocean/cliptrack/tracker/config"
	"github.com/ausocean/utils/logging"
)

// Folder names used below the per video evidence folder.
const (
	ClipsDir  = "Clips"
	FramesDir = "Frames"
)

var (
	ErrEmptyVideo        = errors.New("video has no frames")
	ErrDimensionMismatch = errors.New("frame dimensions changed")
)

// Source is an open source video. Read returns io.EOF at the end of the
// stream.
type Source interface {
	FPS() float64
	Read() (Frame, error)
	Rewind() error
	Close() error
}

// Opener opens source videos.
type Opener interface {
	Open(path string) (Source, error)
}

// Segmenter turns frames into candidate contours. It holds the background
// model for a single video.
type Segmenter interface {
	// Warm updates the background model with f and discards the result.
	Warm(f Frame) error

	// Segment updates the background model with f and returns the connected
	// foreground components of the conditioned mask.
	Segment(f Frame) ([]Contour, error)

	Close() error
}

// SegmenterFactory returns a new Segmenter for each video.
type SegmenterFactory func() (Segmenter, error)

// Annotator draws the track onto a frame before it is recorded. box is nil
// when there is no track.
type Annotator interface {
	Annotate(f Frame, box *Region, state MotionState) error
}

// Step is the per frame state of the pipeline, reported to an Observer.
type Step struct {
	Index        int
	Contours     int
	Detected     bool
	Present      bool
	Box          Region
	Displacement float64
	Streak       int
	State        MotionState
	Recording    bool
}

// Observer receives every processed Step of one video.
type Observer interface {
	Observe(s Step)
	Close() error
}

// ObserverFactory returns an Observer for the video with the given base name.
type ObserverFactory func(video string) (Observer, error)

// Result summarises the processing of one video.
type Result struct {
	Video  string      // Base name of the source.
	FPS    float64     // Frame rate used for clips.
	Size   image.Point // Frame dimensions.
	Frames int         // Frames run through the tracker, excluding warm-up.
	Clips  []Clip
}

// Driver processes source videos one at a time. Each call to Process uses
// fresh tracking state.
type Driver struct {
	cfg        config.Config
	log        logging.Logger
	opener     Opener
	segmenters SegmenterFactory
	writers    WriterFactory

	// Annotator is optional and is not used if PlainClips is set.
	Annotator Annotator

	// Observers is optional.
	Observers ObserverFactory

	// OnClip, if not nil, is called for every finalised clip.
	OnClip func(video string, c Clip)
}

// NewDriver returns a new Driver. c must have been validated.
func NewDriver(c config.Config, o Opener, s SegmenterFactory, w WriterFactory) *Driver {
	return &Driver{cfg: c, log: c.Logger, opener: o, segmenters: s, writers: w}
}

// BaseName returns the file name of path without its extension.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Process runs the video at path through the tracker. Clips are written to
// OutputPath/<base>/Clips. Clips opened before an error or cancellation are
// finalised, and the returned Result describes them.
func (d *Driver) Process(ctx context.Context, path string) (*Result, error) {
	base := BaseName(path)
	res := &Result{Video: base}

	dir := filepath.Join(d.cfg.OutputPath, base, ClipsDir)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return res, perrors.Wrapf(err, "could not create clip directory for %s", base)
	}

	src, err := d.opener.Open(path)
	if err != nil {
		return res, perrors.Wrapf(err, "could not open %s", base)
	}
	defer func() {
		err := src.Close()
		if err != nil {
			d.log.Warning("could not close source", "video", base, "error", err.Error())
		}
	}()

	res.FPS = src.FPS()
	if res.FPS <= 0 {
		d.log.Info("source has no frame rate, defaulting", "video", base, "fps", d.cfg.DefaultFPS)
		res.FPS = d.cfg.DefaultFPS
	}

	first, err := src.Read()
	if err == io.EOF {
		return res, perrors.Wrapf(ErrEmptyVideo, "could not read first frame of %s", base)
	}
	if err != nil {
		return res, perrors.Wrapf(err, "could not read first frame of %s", base)
	}
	res.Size = first.Size()
	err = src.Rewind()
	if err != nil {
		return res, perrors.Wrapf(err, "could not rewind %s", base)
	}

	seg, err := d.segmenters()
	if err != nil {
		return res, perrors.Wrapf(err, "could not create segmenter for %s", base)
	}
	defer seg.Close()

	var obs Observer
	if d.Observers != nil {
		obs, err = d.Observers(base)
		if err != nil {
			d.log.Warning("could not create observer", "video", base, "error", err.Error())
			obs = nil
		} else {
			defer func() {
				err := obs.Close()
				if err != nil {
					d.log.Warning("could not close observer", "video", base, "error", err.Error())
				}
			}()
		}
	}

	d.log.Info("processing video", "video", base, "fps", res.FPS, "width", res.Size.X, "height", res.Size.Y)

	rec := NewRecorder(dir, base, d.cfg.ClipContainer, res.FPS, res.Size, d.writers, d.log)
	if d.OnClip != nil {
		rec.OnClip = func(c Clip) { d.OnClip(base, c) }
	}

	err = d.run(ctx, base, src, seg, rec, obs, res)
	cerr := rec.Close()
	res.Clips = rec.Clips()
	d.log.Info("finished video", "video", base, "frames", res.Frames, "clips", len(res.Clips))
	if err != nil {
		return res, err
	}
	return res, cerr
}

// run performs warm-up and then the per frame loop until the source ends,
// ctx is cancelled or a fatal error occurs.
func (d *Driver) run(ctx context.Context, base string, src Source, seg Segmenter, rec *Recorder, obs Observer, res *Result) error {
	var n int
	for ; n < int(d.cfg.WarmupFrames); n++ {
		f, err := src.Read()
		if err != nil {
			break
		}
		if f.Size() != res.Size {
			return perrors.Wrapf(ErrDimensionMismatch, "%s frame %d is %v, want %v", base, n, f.Size(), res.Size)
		}
		err = seg.Warm(f)
		if err != nil {
			return perrors.Wrapf(err, "could not warm up on %s frame %d", base, n)
		}
	}

	var (
		sel   = NewSelector(d.cfg.MinContourArea, d.cfg.MaxContourArea)
		sm    = NewSmoother(d.cfg.SmoothingFactor, int(d.cfg.LostThreshold))
		cls   = NewStopClassifier(int(d.cfg.CentroidHistory), d.cfg.StopThreshold, int(d.cfg.StopFrames))
		state = Moving
	)

	for ; ; n++ {
		select {
		case <-ctx.Done():
			d.log.Info("processing cancelled", "video", base, "frame", n)
			return ctx.Err()
		default:
		}

		f, err := src.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			d.log.Warning("could not read frame, ending video", "video", base, "frame", n, "error", err.Error())
			break
		}
		if f.Size() != res.Size {
			return perrors.Wrapf(ErrDimensionMismatch, "%s frame %d is %v, want %v", base, n, f.Size(), res.Size)
		}

		contours, err := seg.Segment(f)
		if err != nil {
			return perrors.Wrapf(err, "could not segment %s frame %d", base, n)
		}

		prev, had := sm.Box()
		var prevp *Region
		if had {
			prevp = &prev
		}
		det, found := sel.Select(contours, prevp)
		sm.Update(det, found)
		box, present := sm.Box()

		next := Moving
		if present {
			next = cls.Update(box.Centroid())
		} else {
			cls.Reset()
		}

		switch {
		case present && !had:
			d.log.Debug("track started", "video", base, "frame", n, "box", box.String())
		case !present && had:
			d.log.Debug("track lost", "video", base, "frame", n)
		}
		if next != state {
			d.log.Debug("motion state changed", "video", base, "frame", n, "state", next.String())
			state = next
		}

		if d.Annotator != nil && !d.cfg.PlainClips {
			var boxp *Region
			if present {
				boxp = &box
			}
			err = d.Annotator.Annotate(f, boxp, state)
			if err != nil {
				return perrors.Wrapf(err, "could not annotate %s frame %d", base, n)
			}
		}

		err = rec.Update(present, f, n)
		if err != nil {
			return perrors.Wrapf(err, "could not record %s", base)
		}
		res.Frames++

		if obs != nil {
			obs.Observe(Step{
				Index:        n,
				Contours:     len(contours),
				Detected:     found,
				Present:      present,
				Box:          box,
				Displacement: cls.Displacement(),
				Streak:       cls.Streak(),
				State:        state,
				Recording:    rec.Recording(),
			})
		}
	}
	return nil
}
