/*
DESCRIPTION
  variables.go contains a list of structs that provide a variable Name, type in
  a string format, a function for updating the variable in the Config struct
  from a string, and finally, a validation function to check the validity of the
  corresponding field value in the Config.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ausocean/utils/logging"
)

// Config map Keys.
const (
	KeyCentroidHistory = "CentroidHistory"
	KeyClipCodec       = "ClipCodec"
	KeyClipContainer   = "ClipContainer"
	KeyDefaultFPS      = "DefaultFPS"
	KeyExtractFPS      = "ExtractFPS"
	KeyIgnoreShadows   = "IgnoreShadows"
	KeyInputExt        = "InputExt"
	KeyInputPath       = "InputPath"
	KeyLogging         = "logging"
	KeyLostThreshold   = "LostThreshold"
	KeyMaxContourArea  = "MaxContourArea"
	KeyMinContourArea  = "MinContourArea"
	KeyMotionDilations = "MotionDilations"
	KeyMotionHistory   = "MotionHistory"
	KeyMotionKernel    = "MotionKernel"
	KeyMotionThreshold = "MotionThreshold"
	KeyOutputPath      = "OutputPath"
	KeyPlainClips      = "PlainClips"
	KeyPlateDelay      = "PlateDelay"
	KeyPlateRegion     = "PlateRegion"
	KeyPlateThreshold  = "PlateThreshold"
	KeyPlateToken      = "PlateToken"
	KeyPlateURL        = "PlateURL"
	KeySmoothingFactor = "SmoothingFactor"
	KeyStopFrames      = "StopFrames"
	KeyStopThreshold   = "StopThreshold"
	KeyTracePath       = "TracePath"
	KeyWarmupFrames    = "WarmupFrames"
	KeyZoomFactor      = "ZoomFactor"
)

// Config map parameter types.
const (
	typeString   = "string"
	typeUint     = "uint"
	typeBool     = "bool"
	typeFloat    = "float"
	typeDuration = "duration"
)

// Default variable values.
const (
	// General defaults.
	defaultInputPath  = "Footage"
	defaultInputExt   = ".mp4"
	defaultOutputPath = "Evidence"
	defaultVerbosity  = logging.Info
	defaultFPS        = 30.0

	// Background model and conditioning defaults.
	defaultWarmupFrames    = 5
	defaultMotionHistory   = 5000
	defaultMotionThreshold = 250.0
	defaultMotionKernel    = 3
	defaultMotionDilations = 5

	// Contour selection defaults (px²).
	defaultMinContourArea = 60000.0
	defaultMaxContourArea = 150000.0

	// Tracking defaults.
	defaultSmoothingFactor = 0.15
	defaultLostThreshold   = 10
	defaultCentroidHistory = 10
	defaultStopThreshold   = 3.0
	defaultStopFrames      = 15

	// Clip defaults.
	defaultClipContainer = "mp4"
	defaultClipCodec     = "mp4v"

	// Evidence defaults.
	defaultExtractFPS     = 2.0
	defaultZoomFactor     = 1.7
	defaultPlateURL       = "https://api.platerecognizer.com/v1/plate-reader/"
	defaultPlateRegion    = "us-ia"
	defaultPlateThreshold = 80.0
	defaultPlateDelay     = time.Second
)

// Variables describes the variables that can be used for tracker control.
// These structs provide the name and type of variable, a function for updating
// this variable in a Config, and a function for validating the value of the variable.
var Variables = []struct {
	Name     string
	Type     string
	Update   func(*Config, string)
	Validate func(*Config)
}{
	{
		Name:   KeyCentroidHistory,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.CentroidHistory = parseUint(KeyCentroidHistory, v, c) },
		Validate: func(c *Config) {
			c.CentroidHistory = lessThanOrEqual(KeyCentroidHistory, c.CentroidHistory, 1, c, defaultCentroidHistory)
		},
	},
	{
		Name:   KeyClipCodec,
		Type:   typeString,
		Update: func(c *Config, v string) { c.ClipCodec = v },
		Validate: func(c *Config) {
			if len(c.ClipCodec) != 4 {
				c.LogInvalidField(KeyClipCodec, defaultClipCodec)
				c.ClipCodec = defaultClipCodec
			}
		},
	},
	{
		Name:   KeyClipContainer,
		Type:   "enum:mp4,avi,mkv,mov",
		Update: func(c *Config, v string) { c.ClipContainer = strings.TrimPrefix(strings.ToLower(v), ".") },
		Validate: func(c *Config) {
			if c.ClipContainer == "" {
				c.LogInvalidField(KeyClipContainer, defaultClipContainer)
				c.ClipContainer = defaultClipContainer
			}
		},
	},
	{
		Name:     KeyDefaultFPS,
		Type:     typeFloat,
		Update:   func(c *Config, v string) { c.DefaultFPS = parseFloat(KeyDefaultFPS, v, c) },
		Validate: func(c *Config) { c.DefaultFPS = positiveFloat(KeyDefaultFPS, c.DefaultFPS, c, defaultFPS) },
	},
	{
		Name:     KeyExtractFPS,
		Type:     typeFloat,
		Update:   func(c *Config, v string) { c.ExtractFPS = parseFloat(KeyExtractFPS, v, c) },
		Validate: func(c *Config) { c.ExtractFPS = positiveFloat(KeyExtractFPS, c.ExtractFPS, c, defaultExtractFPS) },
	},
	{
		Name:   KeyIgnoreShadows,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.IgnoreShadows = parseBool(KeyIgnoreShadows, v, c) },
	},
	{
		Name:   KeyInputExt,
		Type:   typeString,
		Update: func(c *Config, v string) { c.InputExt = v },
		Validate: func(c *Config) {
			if c.InputExt == "" {
				c.LogInvalidField(KeyInputExt, defaultInputExt)
				c.InputExt = defaultInputExt
			}
			if !strings.HasPrefix(c.InputExt, ".") {
				c.InputExt = "." + c.InputExt
			}
		},
	},
	{
		Name:   KeyInputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.InputPath = v },
		Validate: func(c *Config) {
			if c.InputPath == "" {
				c.LogInvalidField(KeyInputPath, defaultInputPath)
				c.InputPath = defaultInputPath
			}
		},
	},
	{
		Name: KeyLogging,
		Type: "enum:Debug,Info,Warning,Error,Fatal",
		Update: func(c *Config, v string) {
			switch v {
			case "Debug":
				c.LogLevel = logging.Debug
			case "Info":
				c.LogLevel = logging.Info
			case "Warning":
				c.LogLevel = logging.Warning
			case "Error":
				c.LogLevel = logging.Error
			case "Fatal":
				c.LogLevel = logging.Fatal
			default:
				c.Logger.Warning("invalid Logging param", "value", v)
			}
		},
		Validate: func(c *Config) {
			switch c.LogLevel {
			case logging.Debug, logging.Info, logging.Warning, logging.Error, logging.Fatal:
			default:
				c.LogInvalidField("LogLevel", defaultVerbosity)
				c.LogLevel = defaultVerbosity
			}
		},
	},
	{
		Name:     KeyLostThreshold,
		Type:     typeUint,
		Update:   func(c *Config, v string) { c.LostThreshold = parseUint(KeyLostThreshold, v, c) },
		Validate: func(c *Config) { c.LostThreshold = lessThanOrEqual(KeyLostThreshold, c.LostThreshold, 0, c, defaultLostThreshold) },
	},
	{
		Name:   KeyMaxContourArea,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.MaxContourArea = parseFloat(KeyMaxContourArea, v, c) },
		Validate: func(c *Config) {
			c.MaxContourArea = positiveFloat(KeyMaxContourArea, c.MaxContourArea, c, defaultMaxContourArea)
		},
	},
	{
		Name:   KeyMinContourArea,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.MinContourArea = parseFloat(KeyMinContourArea, v, c) },
		Validate: func(c *Config) {
			c.MinContourArea = positiveFloat(KeyMinContourArea, c.MinContourArea, c, defaultMinContourArea)
			if c.MinContourArea >= c.MaxContourArea && c.MaxContourArea > 0 {
				c.Logger.Warning("MinContourArea not below MaxContourArea, defaulting both", "min", c.MinContourArea, "max", c.MaxContourArea)
				c.MinContourArea = defaultMinContourArea
				c.MaxContourArea = defaultMaxContourArea
			}
		},
	},
	{
		Name:   KeyMotionDilations,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.MotionDilations = parseUint(KeyMotionDilations, v, c) },
		Validate: func(c *Config) {
			c.MotionDilations = lessThanOrEqual(KeyMotionDilations, c.MotionDilations, 0, c, defaultMotionDilations)
		},
	},
	{
		Name:   KeyMotionHistory,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.MotionHistory = parseUint(KeyMotionHistory, v, c) },
		Validate: func(c *Config) {
			c.MotionHistory = lessThanOrEqual(KeyMotionHistory, c.MotionHistory, 0, c, defaultMotionHistory)
		},
	},
	{
		Name:   KeyMotionKernel,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.MotionKernel = parseUint(KeyMotionKernel, v, c) },
		Validate: func(c *Config) {
			c.MotionKernel = lessThanOrEqual(KeyMotionKernel, c.MotionKernel, 0, c, defaultMotionKernel)
		},
	},
	{
		Name:   KeyMotionThreshold,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.MotionThreshold = parseFloat(KeyMotionThreshold, v, c) },
		Validate: func(c *Config) {
			c.MotionThreshold = positiveFloat(KeyMotionThreshold, c.MotionThreshold, c, defaultMotionThreshold)
		},
	},
	{
		Name:   KeyOutputPath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.OutputPath = v },
		Validate: func(c *Config) {
			if c.OutputPath == "" {
				c.LogInvalidField(KeyOutputPath, defaultOutputPath)
				c.OutputPath = defaultOutputPath
			}
		},
	},
	{
		Name:   KeyPlainClips,
		Type:   typeBool,
		Update: func(c *Config, v string) { c.PlainClips = parseBool(KeyPlainClips, v, c) },
	},
	{
		Name: KeyPlateDelay,
		Type: typeDuration,
		Update: func(c *Config, v string) {
			d, err := time.ParseDuration(v)
			if err != nil {
				c.Logger.Warning("invalid PlateDelay param", "value", v)
			}
			c.PlateDelay = d
		},
		Validate: func(c *Config) {
			if c.PlateDelay <= 0 {
				c.LogInvalidField(KeyPlateDelay, defaultPlateDelay)
				c.PlateDelay = defaultPlateDelay
			}
		},
	},
	{
		Name:   KeyPlateRegion,
		Type:   typeString,
		Update: func(c *Config, v string) { c.PlateRegion = v },
		Validate: func(c *Config) {
			if c.PlateRegion == "" {
				c.LogInvalidField(KeyPlateRegion, defaultPlateRegion)
				c.PlateRegion = defaultPlateRegion
			}
		},
	},
	{
		Name:   KeyPlateThreshold,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.PlateThreshold = parseFloat(KeyPlateThreshold, v, c) },
		Validate: func(c *Config) {
			if c.PlateThreshold <= 0 || c.PlateThreshold > 100 {
				c.LogInvalidField(KeyPlateThreshold, defaultPlateThreshold)
				c.PlateThreshold = defaultPlateThreshold
			}
		},
	},
	{
		Name:   KeyPlateToken,
		Type:   typeString,
		Update: func(c *Config, v string) { c.PlateToken = v },
	},
	{
		Name:   KeyPlateURL,
		Type:   typeString,
		Update: func(c *Config, v string) { c.PlateURL = v },
		Validate: func(c *Config) {
			if c.PlateURL == "" {
				c.LogInvalidField(KeyPlateURL, defaultPlateURL)
				c.PlateURL = defaultPlateURL
			}
		},
	},
	{
		Name:   KeySmoothingFactor,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.SmoothingFactor = parseFloat(KeySmoothingFactor, v, c) },
		Validate: func(c *Config) {
			if c.SmoothingFactor <= 0 || c.SmoothingFactor > 1 {
				c.LogInvalidField(KeySmoothingFactor, defaultSmoothingFactor)
				c.SmoothingFactor = defaultSmoothingFactor
			}
		},
	},
	{
		Name:     KeyStopFrames,
		Type:     typeUint,
		Update:   func(c *Config, v string) { c.StopFrames = parseUint(KeyStopFrames, v, c) },
		Validate: func(c *Config) { c.StopFrames = lessThanOrEqual(KeyStopFrames, c.StopFrames, 0, c, defaultStopFrames) },
	},
	{
		Name:   KeyStopThreshold,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.StopThreshold = parseFloat(KeyStopThreshold, v, c) },
		Validate: func(c *Config) {
			c.StopThreshold = positiveFloat(KeyStopThreshold, c.StopThreshold, c, defaultStopThreshold)
		},
	},
	{
		Name:   KeyTracePath,
		Type:   typeString,
		Update: func(c *Config, v string) { c.TracePath = v },
	},
	{
		Name:   KeyWarmupFrames,
		Type:   typeUint,
		Update: func(c *Config, v string) { c.WarmupFrames = parseUint(KeyWarmupFrames, v, c) },
		Validate: func(c *Config) {
			c.WarmupFrames = lessThanOrEqual(KeyWarmupFrames, c.WarmupFrames, 0, c, defaultWarmupFrames)
		},
	},
	{
		Name:   KeyZoomFactor,
		Type:   typeFloat,
		Update: func(c *Config, v string) { c.ZoomFactor = parseFloat(KeyZoomFactor, v, c) },
		Validate: func(c *Config) {
			if c.ZoomFactor < 1 {
				c.LogInvalidField(KeyZoomFactor, defaultZoomFactor)
				c.ZoomFactor = defaultZoomFactor
			}
		},
	},
}

func parseUint(n, v string, c *Config) uint {
	_v, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected unsigned int for param %s", n), "value", v)
	}
	return uint(_v)
}

func parseFloat(n, v string, c *Config) float64 {
	_v, err := strconv.ParseFloat(v, 64)
	if err != nil {
		c.Logger.Warning(fmt.Sprintf("expected float for param %s", n), "value", v)
	}
	return _v
}

func parseBool(n, v string, c *Config) (b bool) {
	switch strings.ToLower(v) {
	case "true":
		b = true
	case "false":
		b = false
	default:
		c.Logger.Warning(fmt.Sprintf("expect bool for param %s", n), "value", v)
	}
	return
}

func lessThanOrEqual(n string, v, cmp uint, c *Config, def uint) uint {
	if v <= cmp {
		c.LogInvalidField(n, def)
		return def
	}
	return v
}

func positiveFloat(n string, v float64, c *Config, def float64) float64 {
	if v <= 0 {
		c.LogInvalidField(n, def)
		return def
	}
	return v
}
