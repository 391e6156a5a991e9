/*
DESCRIPTION
  config_test.go provides testing for the Config struct methods (Validate and Update).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package config

import (
	"testing"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/google/go-cmp/cmp"
)

type dumbLogger struct{}

func (dl *dumbLogger) Log(l int8, m string, a ...interface{})  {}
func (dl *dumbLogger) SetLevel(l int8)                         {}
func (dl *dumbLogger) Debug(msg string, args ...interface{})   {}
func (dl *dumbLogger) Info(msg string, args ...interface{})    {}
func (dl *dumbLogger) Warning(msg string, args ...interface{}) {}
func (dl *dumbLogger) Error(msg string, args ...interface{})   {}
func (dl *dumbLogger) Fatal(msg string, args ...interface{})   {}

func TestValidate(t *testing.T) {
	dl := &dumbLogger{}

	want := Config{
		Logger:          dl,
		LogLevel:        defaultVerbosity,
		InputPath:       defaultInputPath,
		InputExt:        defaultInputExt,
		OutputPath:      defaultOutputPath,
		WarmupFrames:    defaultWarmupFrames,
		MotionHistory:   defaultMotionHistory,
		MotionThreshold: defaultMotionThreshold,
		MotionKernel:    defaultMotionKernel,
		MotionDilations: defaultMotionDilations,
		MinContourArea:  defaultMinContourArea,
		MaxContourArea:  defaultMaxContourArea,
		SmoothingFactor: defaultSmoothingFactor,
		LostThreshold:   defaultLostThreshold,
		CentroidHistory: defaultCentroidHistory,
		StopThreshold:   defaultStopThreshold,
		StopFrames:      defaultStopFrames,
		DefaultFPS:      defaultFPS,
		ClipContainer:   defaultClipContainer,
		ClipCodec:       defaultClipCodec,
		ExtractFPS:      defaultExtractFPS,
		ZoomFactor:      defaultZoomFactor,
		PlateURL:        defaultPlateURL,
		PlateRegion:     defaultPlateRegion,
		PlateThreshold:  defaultPlateThreshold,
		PlateDelay:      defaultPlateDelay,
	}

	got := Config{Logger: dl, LogLevel: defaultVerbosity}
	err := (&got).Validate()
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	if !cmp.Equal(got, want) {
		t.Errorf("configs not equal\n%s", cmp.Diff(want, got))
	}
}

func TestValidateBadValues(t *testing.T) {
	dl := &dumbLogger{}

	got := Config{
		Logger:          dl,
		LogLevel:        logging.Debug,
		SmoothingFactor: 1.5,
		CentroidHistory: 1,
		MinContourArea:  200000,
		MaxContourArea:  100000,
		ZoomFactor:      0.5,
		PlateThreshold:  150,
		ClipCodec:       "h264x",
		InputExt:        "avi",
	}
	(&got).Validate()

	checks := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{KeySmoothingFactor, got.SmoothingFactor, defaultSmoothingFactor},
		{KeyCentroidHistory, got.CentroidHistory, uint(defaultCentroidHistory)},
		{KeyMinContourArea, got.MinContourArea, defaultMinContourArea},
		{KeyMaxContourArea, got.MaxContourArea, defaultMaxContourArea},
		{KeyZoomFactor, got.ZoomFactor, defaultZoomFactor},
		{KeyPlateThreshold, got.PlateThreshold, defaultPlateThreshold},
		{KeyClipCodec, got.ClipCodec, defaultClipCodec},
		{KeyInputExt, got.InputExt, ".avi"},
		{"LogLevel", got.LogLevel, int8(logging.Debug)},
	}
	for _, c := range checks {
		if !cmp.Equal(c.got, c.want) {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestUpdate(t *testing.T) {
	updateMap := map[string]string{
		"CentroidHistory": "12",
		"ClipCodec":       "MJPG",
		"ClipContainer":   ".AVI",
		"DefaultFPS":      "25",
		"ExtractFPS":      "4",
		"IgnoreShadows":   "true",
		"InputExt":        ".mov",
		"InputPath":       "/data/footage",
		"logging":         "Error",
		"LostThreshold":   "8",
		"MaxContourArea":  "90000",
		"MinContourArea":  "30000",
		"MotionDilations": "3",
		"MotionHistory":   "500",
		"MotionKernel":    "5",
		"MotionThreshold": "16",
		"OutputPath":      "/data/evidence",
		"PlainClips":      "true",
		"PlateDelay":      "250ms",
		"PlateRegion":     "au",
		"PlateThreshold":  "10",
		"PlateToken":      "abc",
		"PlateURL":        "http://localhost:8080/v1/plate-reader/",
		"SmoothingFactor": "0.3",
		"StopFrames":      "20",
		"StopThreshold":   "2.5",
		"TracePath":       "/data/trace",
		"WarmupFrames":    "10",
		"ZoomFactor":      "2",
	}

	dl := &dumbLogger{}
	want := Config{
		Logger:          dl,
		CentroidHistory: 12,
		ClipCodec:       "MJPG",
		ClipContainer:   "avi",
		DefaultFPS:      25,
		ExtractFPS:      4,
		IgnoreShadows:   true,
		InputExt:        ".mov",
		InputPath:       "/data/footage",
		LogLevel:        logging.Error,
		LostThreshold:   8,
		MaxContourArea:  90000,
		MinContourArea:  30000,
		MotionDilations: 3,
		MotionHistory:   500,
		MotionKernel:    5,
		MotionThreshold: 16,
		OutputPath:      "/data/evidence",
		PlainClips:      true,
		PlateDelay:      250 * time.Millisecond,
		PlateRegion:     "au",
		PlateThreshold:  10,
		PlateToken:      "abc",
		PlateURL:        "http://localhost:8080/v1/plate-reader/",
		SmoothingFactor: 0.3,
		StopFrames:      20,
		StopThreshold:   2.5,
		TracePath:       "/data/trace",
		WarmupFrames:    10,
		ZoomFactor:      2,
	}

	got := Config{Logger: dl}
	got.Update(updateMap)
	if !cmp.Equal(want, got) {
		t.Errorf("configs not equal\n%s", cmp.Diff(want, got))
	}
}
