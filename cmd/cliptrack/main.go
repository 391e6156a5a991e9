/*
DESCRIPTION
  cliptrack finds vehicles in a folder of surveillance videos, writes a clip
  of each continuous appearance, extracts zoomed stills from the clips and
  names each video's evidence folder after the vehicle's licence plate.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// cliptrack is a batch command for vehicle clip extraction. OpenCV support
// requires building with the withcv tag.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/cliptrack/tracker/config"
	"github.com/ausocean/utils/logging"
)

// Current software version.
const version = "v0.3.0"

// Logging configuration.
const (
	logMaxSize   = 100 // MB
	logMaxBackup = 10
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

// Plate agreement percentage used unless configured otherwise.
const defaultPlateThreshold = "10"

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version")
		cfgPath     = flag.String("config", "", "path of a Key=Value configuration file")
		logPath     = flag.String("logfile", "cliptrack.log", "path of the rotated log file")
		inPath      = flag.String("in", "", "folder of source videos (InputPath)")
		outPath     = flag.String("out", "", "evidence folder (OutputPath)")
		ext         = flag.String("ext", "", "source video extension (InputExt)")
		level       = flag.String("log", "", "log level: Debug, Info, Warning, Error or Fatal")
		tracePath   = flag.String("trace", "", "folder for track displacement plots (TracePath)")
		threshold   = flag.String("threshold", "", "plate agreement percentage needed to rename a case (PlateThreshold)")
		token       = flag.String("token", "", "plate recognition API token (PlateToken)")
		plain       = flag.Bool("plain", false, "record clips without the track overlay (PlainClips)")
		watch       = flag.Bool("watch", false, "after the batch, keep processing videos added to the input folder")
		noExtract   = flag.Bool("no-extract", false, "skip frame extraction")
		noPlates    = flag.Bool("no-plates", false, "skip plate recognition")
	)
	flag.Parse()
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Create lumberjack logger to handle logging to file.
	fileLog := &lumberjack.Logger{
		Filename:   *logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	defer fileLog.Close()
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	runID := uuid.NewString()
	log.Info("starting cliptrack", "version", version, "run", runID)

	vars := map[string]string{config.KeyPlateThreshold: defaultPlateThreshold}
	if *cfgPath != "" {
		fileVars, err := readConfig(*cfgPath)
		if err != nil {
			log.Fatal("could not read config file", "path", *cfgPath, "error", err.Error())
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for k, v := range map[string]string{
		config.KeyInputPath:      *inPath,
		config.KeyOutputPath:     *outPath,
		config.KeyInputExt:       *ext,
		config.KeyLogging:        *level,
		config.KeyTracePath:      *tracePath,
		config.KeyPlateThreshold: *threshold,
		config.KeyPlateToken:     *token,
	} {
		if v != "" {
			vars[k] = v
		}
	}
	if *plain {
		vars[config.KeyPlainClips] = "true"
	}

	cfg := config.Config{Logger: log, LogLevel: logVerbosity}
	cfg.Update(vars)
	err := cfg.Validate()
	if err != nil {
		log.Fatal("invalid configuration", "error", err.Error())
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	p := newPipeline(cfg, runID, !*noExtract, !*noPlates, quit)
	err = p.batch(ctx)
	if err != nil && ctx.Err() == nil {
		log.Error("batch failed", "error", err.Error())
	}
	if *watch && ctx.Err() == nil {
		err = p.watch(ctx)
		if err != nil && ctx.Err() == nil {
			log.Error("watch failed", "error", err.Error())
		}
	}
	if ctx.Err() != nil {
		log.Info("stopped early", "run", runID)
		return
	}
	log.Info("finished", "run", runID)
}
