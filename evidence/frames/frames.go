/*
DESCRIPTION
  frames.go extracts zoomed still frames from recorded clips using ffmpeg.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package frames samples still images from clips for plate recognition.
// Each still is scaled up about its centre and cropped back to the clip's
// dimensions, so that distant plates cover more pixels.
package frames

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/ausocean/cliptrack/tracker"
	"github.com/ausocean/utils/logging"
)

// DefaultCommand is the ffmpeg executable looked up in PATH.
const DefaultCommand = "ffmpeg"

// Extractor runs ffmpeg to write stills from clips.
type Extractor struct {
	fps  float64
	zoom float64
	log  logging.Logger

	// Command is the ffmpeg executable.
	Command string

	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewExtractor returns an Extractor sampling fps stills per second with
// centre zoom zoom, where 1 is no zoom.
func NewExtractor(fps, zoom float64, log logging.Logger) *Extractor {
	return &Extractor{fps: fps, zoom: zoom, log: log, Command: DefaultCommand, run: combinedOutput}
}

func combinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Filter returns the ffmpeg video filter that samples and zooms.
func (e *Extractor) Filter() string {
	r := strconv.FormatFloat(e.fps, 'f', -1, 64)
	z := strconv.FormatFloat(e.zoom, 'f', -1, 64)
	return fmt.Sprintf("fps=%s,scale=iw*%s:ih*%s,crop=iw/%s:ih/%s:(iw-iw/%s)/2:(ih-ih/%s)/2", r, z, z, z, z, z, z)
}

// Pattern returns the output file pattern for stills of clip in outDir.
func Pattern(clip, outDir string) string {
	return filepath.Join(outDir, tracker.BaseName(clip)+"_frame_%04d.png")
}

// Args returns the ffmpeg arguments extracting clip into outDir.
func (e *Extractor) Args(clip, outDir string) []string {
	return []string{"-i", clip, "-vf", e.Filter(), Pattern(clip, outDir)}
}

// Extract writes the stills of clip into outDir, creating it if needed.
func (e *Extractor) Extract(ctx context.Context, clip, outDir string) error {
	err := os.MkdirAll(outDir, 0755)
	if err != nil {
		return fmt.Errorf("could not create frame folder: %w", err)
	}
	e.log.Debug("extracting frames", "clip", clip, "dir", outDir)
	out, err := e.run(ctx, e.Command, e.Args(clip, outDir)...)
	if err != nil {
		return fmt.Errorf("could not extract frames from %s: %w (output: %s)", clip, err, tail(out))
	}
	return nil
}

// ExtractCase extracts every clip with extension ext in the Clips folder of
// caseDir into its Frames folder, which is created even if there are no
// clips. A clip that fails is logged and skipped.
// It returns the number of clips extracted.
func (e *Extractor) ExtractCase(ctx context.Context, caseDir, ext string) (int, error) {
	clips, err := tracker.ListVideos(filepath.Join(caseDir, tracker.ClipsDir), "."+ext)
	if err != nil {
		return 0, err
	}
	out := filepath.Join(caseDir, tracker.FramesDir)
	err = os.MkdirAll(out, 0755)
	if err != nil {
		return 0, fmt.Errorf("could not create frame folder: %w", err)
	}
	var n int
	for _, c := range clips {
		if ctx.Err() != nil {
			return n, ctx.Err()
		}
		err := e.Extract(ctx, c, out)
		if err != nil {
			e.log.Warning("could not extract clip", "clip", c, "error", err.Error())
			continue
		}
		n++
	}
	e.log.Info("extracted frames", "case", caseDir, "clips", n)
	return n, nil
}

// ExtractAll runs ExtractCase over every folder in evidenceDir that has a
// Clips folder, including cases whose video failed before recording a clip.
// A case that fails is logged and skipped. It returns the case folders
// visited.
func (e *Extractor) ExtractAll(ctx context.Context, evidenceDir, ext string) ([]string, error) {
	entries, err := os.ReadDir(evidenceDir)
	if err != nil {
		return nil, fmt.Errorf("could not read evidence folder: %w", err)
	}
	var cases []string
	for _, ent := range entries {
		if !ent.IsDir() {
			continue
		}
		dir := filepath.Join(evidenceDir, ent.Name())
		fi, err := os.Stat(filepath.Join(dir, tracker.ClipsDir))
		if err != nil || !fi.IsDir() {
			continue
		}
		if ctx.Err() != nil {
			return cases, ctx.Err()
		}
		_, err = e.ExtractCase(ctx, dir, ext)
		if ctx.Err() != nil {
			return cases, ctx.Err()
		}
		if err != nil {
			e.log.Warning("could not extract case", "case", dir, "error", err.Error())
			continue
		}
		cases = append(cases, dir)
	}
	return cases, nil
}

// tail returns the last few hundred bytes of ffmpeg's output, where the
// error is reported.
func tail(b []byte) string {
	const keep = 512
	if len(b) > keep {
		b = b[len(b)-keep:]
	}
	return string(b)
}
