/*
DESCRIPTION
  pipeline.go runs the tracking, frame extraction and plate recognition
  stages over source videos.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ausocean/cliptrack/device/video"
	"github.com/ausocean/cliptrack/evidence/frames"
	"github.com/ausocean/cliptrack/evidence/plate"
	"github.com/ausocean/cliptrack/filter"
	"github.com/ausocean/cliptrack/trace"
	"github.com/ausocean/cliptrack/tracker"
	"github.com/ausocean/cliptrack/tracker/config"
	"github.com/ausocean/utils/logging"
)

// pipeline holds the stages for one run.
type pipeline struct {
	cfg       config.Config
	log       logging.Logger
	driver    *tracker.Driver
	extractor *frames.Extractor // Nil if extraction is disabled.
	plates    *plate.Processor  // Nil if recognition is disabled.
}

// newPipeline returns the stages configured by cfg. quit, if not nil, is
// called when the quit key is pressed in a debug window.
func newPipeline(cfg config.Config, runID string, extract, plates bool, quit func()) *pipeline {
	log := cfg.Logger
	d := tracker.NewDriver(
		cfg,
		video.NewOpener(log),
		filter.NewSegmenterFactory(cfg, quit),
		video.NewWriters(cfg.ClipCodec, log),
	)
	d.Annotator = filter.NewAnnotator()
	if cfg.TracePath != "" {
		d.Observers = trace.NewFactory(cfg.TracePath, runID, cfg.StopThreshold, log)
	}

	p := &pipeline{cfg: cfg, log: log, driver: d}
	if extract {
		p.extractor = frames.NewExtractor(cfg.ExtractFPS, cfg.ZoomFactor, log)
	}
	if !plates {
		return p
	}
	if cfg.PlateToken == "" {
		// Unauthenticated requests are refused, which would remove every case.
		log.Warning("no plate recognition token, skipping plate recognition")
		return p
	}
	rec := plate.NewClient(cfg.PlateURL, cfg.PlateToken, strings.Split(cfg.PlateRegion, ",")...)
	p.plates = plate.NewProcessor(rec, cfg.PlateThreshold, cfg.PlateDelay, log)
	return p
}

// caseDir returns the evidence folder of the video with base name base.
func (p *pipeline) caseDir(base string) string {
	return filepath.Join(p.cfg.OutputPath, base)
}

// batch processes every video in the input folder, then extracts frames
// from every case folder with clips, failed videos included, and recognises the plates of every case in the evidence
// folder.
func (p *pipeline) batch(ctx context.Context) error {
	paths, err := tracker.ListVideos(p.cfg.InputPath, p.cfg.InputExt)
	if err != nil {
		return err
	}
	p.log.Info("found videos", "folder", p.cfg.InputPath, "count", len(paths))

	results, err := p.driver.Batch(ctx, paths)
	if err != nil {
		return err
	}
	p.log.Info("tracked videos", "succeeded", len(results), "total", len(paths))

	if p.extractor != nil {
		cases, err := p.extractor.ExtractAll(ctx, p.cfg.OutputPath, p.cfg.ClipContainer)
		if err != nil {
			return err
		}
		p.log.Info("extracted cases", "count", len(cases))
	}

	if p.plates != nil {
		cases, err := p.plates.ProcessAll(ctx, p.cfg.OutputPath)
		if err != nil {
			return err
		}
		for _, c := range cases {
			p.log.Info("case processed", "path", c.Path, "outcome", c.Outcome.String(), "plate", c.Plate)
		}
	}
	return nil
}

// video runs all stages for the single video at path.
func (p *pipeline) video(ctx context.Context, path string) error {
	res, err := p.driver.Process(ctx, path)
	if err != nil {
		return err
	}
	dir := p.caseDir(res.Video)

	if p.extractor == nil {
		return nil
	}
	_, err = p.extractor.ExtractCase(ctx, dir, p.cfg.ClipContainer)
	if err != nil {
		return err
	}

	if p.plates == nil {
		return nil
	}
	c, err := p.plates.ProcessCase(ctx, p.cfg.OutputPath, dir)
	if err != nil {
		return err
	}
	p.log.Info("case processed", "path", c.Path, "outcome", c.Outcome.String(), "plate", c.Plate)
	return nil
}
