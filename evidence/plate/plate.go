/*
DESCRIPTION
  plate.go aggregates plate readings over the frames of a case and names the
  case folder after the agreed plate.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package plate identifies the vehicle of each evidence case by reading its
// licence plate in every extracted frame and taking the most common reading.
// Cases are renamed after their plate, or removed when they hold nothing to
// read.
package plate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/ausocean/cliptrack/tracker"
	"github.com/ausocean/utils/logging"
)

// Outcome is what happened to a case folder.
type Outcome int

const (
	Kept    Outcome = iota // Threshold not met.
	Renamed                // Renamed after its plate.
	Removed                // No frames or no plates recognised.
	Skipped                // No Frames folder.
)

func (o Outcome) String() string {
	switch o {
	case Renamed:
		return "renamed"
	case Removed:
		return "removed"
	case Skipped:
		return "skipped"
	default:
		return "kept"
	}
}

// Aggregate returns the most common of plates and the fraction of plates
// that agree with it. ok reports whether that fraction reaches threshold,
// a percentage. Ties go to the plate seen first.
func Aggregate(plates []string, threshold float64) (plate string, ratio float64, ok bool) {
	if len(plates) == 0 {
		return "", 0, false
	}
	counts := make(map[string]int)
	for _, p := range plates {
		counts[p]++
	}
	var best int
	for _, p := range plates {
		if counts[p] > best {
			best, plate = counts[p], p
		}
	}
	n := float64(len(plates))
	return plate, float64(best) / n, float64(best) >= threshold/100*n
}

// UniqueDir returns dir if nothing exists there, otherwise the first of
// dir_1, dir_2 and so on that does not exist.
func UniqueDir(dir string) (string, error) {
	for i := 0; ; i++ {
		name := dir
		if i > 0 {
			name = fmt.Sprintf("%s_%d", dir, i)
		}
		_, err := os.Stat(name)
		if errors.Is(err, os.ErrNotExist) {
			return name, nil
		}
		if err != nil {
			return "", fmt.Errorf("could not stat %s: %w", name, err)
		}
	}
}

// folderName makes a plate safe to use as a folder name.
func folderName(plate string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			return r
		}
		return -1
	}, plate)
}

// Case is the result of processing one case folder.
type Case struct {
	Path       string  // Folder after processing.
	Frames     int     // Images found.
	Recognized int     // Images with a plate.
	Plate      string  // Most common plate.
	Ratio      float64 // Share of recognised images agreeing with Plate.
	Outcome    Outcome
}

// Processor runs plate recognition over case folders.
type Processor struct {
	rec       Recognizer
	threshold float64
	delay     time.Duration
	log       logging.Logger
}

// NewProcessor returns a Processor renaming cases whose most common plate
// reaches threshold percent of readings, waiting delay between requests.
func NewProcessor(rec Recognizer, threshold float64, delay time.Duration, log logging.Logger) *Processor {
	return &Processor{rec: rec, threshold: threshold, delay: delay, log: log}
}

// images returns the png and jpeg files in dir.
func images(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

func (p *Processor) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ProcessCase reads the plates in the Frames folder of caseDir and renames
// caseDir to evidenceDir/PLATE when the threshold is met. A case with no
// frames, or none with a readable plate, is removed. Recognition failures
// for single frames are logged and not counted as readings.
func (p *Processor) ProcessCase(ctx context.Context, evidenceDir, caseDir string) (Case, error) {
	c := Case{Path: caseDir}
	frames := filepath.Join(caseDir, tracker.FramesDir)
	fi, err := os.Stat(frames)
	if err != nil || !fi.IsDir() {
		p.log.Info("no frames folder, skipping", "case", caseDir)
		c.Outcome = Skipped
		return c, nil
	}

	paths, err := images(frames)
	if err != nil {
		return c, fmt.Errorf("could not list frames: %w", err)
	}
	c.Frames = len(paths)

	var plates []string
	for i, path := range paths {
		if i > 0 {
			err = p.wait(ctx)
			if err != nil {
				return c, err
			}
		}
		plate, err := p.rec.Recognize(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return c, ctx.Err()
			}
			p.log.Warning("could not recognise plate", "frame", path, "error", err.Error())
			continue
		}
		plate = folderName(plate)
		if plate == "" {
			p.log.Debug("no plate detected", "frame", path)
			continue
		}
		p.log.Debug("plate detected", "frame", path, "plate", plate)
		plates = append(plates, plate)
	}
	c.Recognized = len(plates)

	if c.Frames == 0 || c.Recognized == 0 {
		p.log.Info("nothing recognised, removing case", "case", caseDir, "frames", c.Frames)
		err = os.RemoveAll(caseDir)
		if err != nil {
			return c, fmt.Errorf("could not remove case: %w", err)
		}
		c.Outcome = Removed
		return c, nil
	}

	plate, ratio, ok := Aggregate(plates, p.threshold)
	c.Plate, c.Ratio = plate, ratio
	p.log.Info("case plate", "case", caseDir, "plate", plate, "ratio", ratio, "recognised", c.Recognized, "threshold", p.threshold)
	if !ok {
		c.Outcome = Kept
		return c, nil
	}

	dst, err := UniqueDir(filepath.Join(evidenceDir, plate))
	if err != nil {
		return c, err
	}
	err = os.Rename(caseDir, dst)
	if err != nil {
		return c, fmt.Errorf("could not rename case: %w", err)
	}
	p.log.Info("renamed case", "from", caseDir, "to", dst)
	c.Path, c.Outcome = dst, Renamed
	return c, nil
}

// ProcessAll processes every case folder in evidenceDir. A case that fails
// is logged and skipped.
func (p *Processor) ProcessAll(ctx context.Context, evidenceDir string) ([]Case, error) {
	entries, err := os.ReadDir(evidenceDir)
	if err != nil {
		return nil, fmt.Errorf("could not read evidence folder: %w", err)
	}
	var cases []Case
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if ctx.Err() != nil {
			return cases, ctx.Err()
		}
		c, err := p.ProcessCase(ctx, evidenceDir, filepath.Join(evidenceDir, e.Name()))
		if ctx.Err() != nil {
			return cases, ctx.Err()
		}
		if err != nil {
			p.log.Error("could not process case", "case", e.Name(), "error", err.Error())
			continue
		}
		cases = append(cases, c)
	}
	return cases, nil
}
