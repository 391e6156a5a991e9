/*
DESCRIPTION
  trace.go provides a tracker.Observer that records the per frame state of a
  video's track and plots its centroid displacement against the stop
  threshold.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package trace records track state over the frames of a video and saves it
// as a plot, for tuning the stop detection parameters.
package trace

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ausocean/cliptrack/tracker"
	"github.com/ausocean/utils/logging"
)

// Summary totals the steps of a trace.
type Summary struct {
	Frames    int // Frames observed.
	Present   int // Frames with a track.
	Stopped   int // Frames classified as stopped.
	Tracks    int // Distinct track spans.
	MaxStreak int // Longest run of still frames.
}

// Trace collects the steps of one video. It implements tracker.Observer.
type Trace struct {
	dir       string
	video     string
	id        string
	threshold float64
	log       logging.Logger

	mu    sync.Mutex
	steps []tracker.Step
}

// New returns a Trace for video that is saved below dir when closed. id
// distinguishes runs over the same video.
func New(dir, video, id string, threshold float64, log logging.Logger) *Trace {
	return &Trace{dir: dir, video: video, id: id, threshold: threshold, log: log}
}

// NewFactory returns a tracker.ObserverFactory creating a Trace per video.
func NewFactory(dir, id string, threshold float64, log logging.Logger) tracker.ObserverFactory {
	return func(video string) (tracker.Observer, error) {
		return New(dir, video, id, threshold, log), nil
	}
}

// Observe implements tracker.Observer.
func (t *Trace) Observe(s tracker.Step) {
	t.mu.Lock()
	t.steps = append(t.steps, s)
	t.mu.Unlock()
}

// Summary returns the totals of the steps observed so far.
func (t *Trace) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	var s Summary
	var was bool
	for _, st := range t.steps {
		s.Frames++
		if st.Present {
			s.Present++
			if !was {
				s.Tracks++
			}
		}
		if st.State == tracker.Stopped {
			s.Stopped++
		}
		if st.Streak > s.MaxStreak {
			s.MaxStreak = st.Streak
		}
		was = st.Present
	}
	return s
}

// Path returns the file the plot is saved to.
func (t *Trace) Path() string {
	return filepath.Join(t.dir, fmt.Sprintf("%s_%s.png", t.video, t.id))
}

// Close saves the plot. Nothing is saved if no steps were observed.
func (t *Trace) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.steps) == 0 {
		return nil
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - Centroid Displacement", t.video)
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Average displacement (px)"

	disp := make(plotter.XYs, 0, len(t.steps))
	stopped := make(plotter.XYs, 0, len(t.steps))
	for _, s := range t.steps {
		if !s.Present {
			continue
		}
		pt := plotter.XY{X: float64(s.Index), Y: s.Displacement}
		disp = append(disp, pt)
		if s.State == tracker.Stopped {
			stopped = append(stopped, pt)
		}
	}

	first, last := t.steps[0].Index, t.steps[len(t.steps)-1].Index
	thresh, err := plotter.NewLine(plotter.XYs{
		{X: float64(first), Y: t.threshold},
		{X: float64(last), Y: t.threshold},
	})
	if err != nil {
		return fmt.Errorf("could not create threshold line: %w", err)
	}
	thresh.Color = color.RGBA{R: 255, A: 255}
	thresh.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(thresh)
	p.Legend.Add("stop threshold", thresh)

	if len(disp) > 0 {
		sc, err := plotter.NewScatter(disp)
		if err != nil {
			return fmt.Errorf("could not create displacement points: %w", err)
		}
		sc.GlyphStyle.Radius = vg.Points(1.5)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
		p.Legend.Add("displacement", sc)
	}
	if len(stopped) > 0 {
		sc, err := plotter.NewScatter(stopped)
		if err != nil {
			return fmt.Errorf("could not create stopped points: %w", err)
		}
		sc.GlyphStyle.Color = color.RGBA{G: 160, A: 255}
		sc.GlyphStyle.Radius = vg.Points(2.5)
		sc.GlyphStyle.Shape = draw.BoxGlyph{}
		p.Add(sc)
		p.Legend.Add("stopped", sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	err = os.MkdirAll(t.dir, 0755)
	if err != nil {
		return fmt.Errorf("could not create trace folder: %w", err)
	}
	path := t.Path()
	err = p.Save(12*vg.Inch, 4*vg.Inch, path)
	if err != nil {
		return fmt.Errorf("could not save trace plot: %w", err)
	}
	t.log.Info("saved track trace", "video", t.video, "path", path, "frames", len(t.steps))
	return nil
}
