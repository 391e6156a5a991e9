/*
DESCRIPTION
  pipeline_test.go tests the batch stages over a folder of videos.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/cliptrack/tracker/config"
	"github.com/ausocean/utils/logging"
)

func TestBatchFailedVideoGetsFrames(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	err := os.WriteFile(filepath.Join(in, "unreadable.mp4"), []byte("not a video"), 0644)
	if err != nil {
		t.Fatalf("could not write video: %v", err)
	}

	cfg := config.Config{
		Logger:     logging.New(logging.Debug, &bytes.Buffer{}, true),
		InputPath:  in,
		OutputPath: out,
	}
	cfg.Validate()

	p := newPipeline(cfg, "run", true, false, nil)
	err = p.batch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, dir := range []string{"Clips", "Frames"} {
		fi, err := os.Stat(filepath.Join(out, "unreadable", dir))
		if err != nil || !fi.IsDir() {
			t.Errorf("%s folder of failed video not created: %v", dir, err)
		}
	}
}
