/*
NAME
  config.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package config contains the configuration settings for the tracker.
package config

import (
	"time"

	"github.com/ausocean/utils/logging"
)

// Config provides parameters relevant to tracking and clip segmentation. A
// zero Config is valid once Validate has been called; unset fields take the
// defaults defined in variables.go.
type Config struct {
	// InputPath is the folder holding the source videos.
	InputPath string

	// InputExt is the extension, including the dot, of videos in InputPath
	// that will be processed. Matching is case insensitive.
	InputExt string

	// OutputPath is the evidence folder. Clips for video v are written to
	// OutputPath/v/Clips and extracted frames to OutputPath/v/Frames.
	OutputPath string

	// Logger holds an implementation of the Logger interface. This must be set
	// for the tracker to work correctly.
	Logger logging.Logger

	// LogLevel is the logging verbosity level.
	// Valid values are defined by enums from the logger package: logging.Debug,
	// logging.Info, logging.Warning logging.Error, logging.Fatal.
	LogLevel int8

	WarmupFrames uint // Frames fed to the background model before its output is used.

	MotionHistory   uint    // Length of the background model's history.
	MotionThreshold float64 // Variance threshold of the background model.
	IgnoreShadows   bool    // Do not mark shadow pixels in the foreground mask.
	MotionKernel    uint    // Size of the elliptical structuring element used for conditioning.
	MotionDilations uint    // Dilation iterations used to merge mask fragments.

	MinContourArea float64 // Largest contour area still considered noise.
	MaxContourArea float64 // Contour area from which the detected box is clamped.

	SmoothingFactor float64 // Weight of each new detection in the smoothed box, in (0, 1].
	LostThreshold   uint    // Consecutive frames without detection that end a track.

	CentroidHistory uint    // Number of recent centroids used for stop detection.
	StopThreshold   float64 // Average centroid displacement in pixels below which a frame is still.
	StopFrames      uint    // Consecutive still frames needed to report a stop.

	// DefaultFPS is used when a source does not report a frame rate.
	DefaultFPS float64

	ClipContainer string // Clip file extension, without the dot.
	ClipCodec     string // FourCC of the clip encoder.

	// PlainClips disables drawing of the smoothed box, centroid and motion
	// state onto recorded frames.
	PlainClips bool

	// TracePath, if set, is a folder that receives a plot of each video's
	// track displacement.
	TracePath string

	ExtractFPS  float64 // Frames per second extracted from each clip.
	ZoomFactor  float64 // Centre zoom applied to extracted frames; 1 is no zoom.
	PlateURL    string  // Plate recognition endpoint.
	PlateToken  string  // Plate recognition API token.
	PlateRegion string  // Plate recognition region hint.

	// PlateThreshold is the percentage of recognised frames that must agree on
	// a plate before a case folder is renamed.
	PlateThreshold float64

	// PlateDelay is the pause between recognition requests.
	PlateDelay time.Duration
}

// Validate checks for any errors in the config fields and defaults settings
// if particular parameters have not been defined.
func (c *Config) Validate() error {
	for _, v := range Variables {
		if v.Validate != nil {
			v.Validate(c)
		}
	}
	return nil
}

// Update takes a map of configuration variable names and their corresponding
// values, parses the string values and converting into correct type, and then
// sets the config struct fields as appropriate.
func (c *Config) Update(vars map[string]string) {
	for _, value := range Variables {
		if v, ok := vars[value.Name]; ok && value.Update != nil {
			value.Update(c, v)
		}
	}
}

func (c *Config) LogInvalidField(name string, def interface{}) {
	c.Logger.Info(name+" bad or unset, defaulting", name, def)
}
