/*
DESCRIPTION
  frames_test.go tests ffmpeg argument construction and case extraction.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package frames

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ausocean/utils/logging"
)

func TestArgs(t *testing.T) {
	e := NewExtractor(2, 1.7, (*logging.TestLogger)(t))
	got := e.Args("Evidence/video1/Clips/video1_clip_1.mp4", "Evidence/video1/Frames")
	want := []string{
		"-i", "Evidence/video1/Clips/video1_clip_1.mp4",
		"-vf", "fps=2,scale=iw*1.7:ih*1.7,crop=iw/1.7:ih/1.7:(iw-iw/1.7)/2:(ih-ih/1.7)/2",
		filepath.Join("Evidence/video1/Frames", "video1_clip_1_frame_%04d.png"),
	}
	assert.Equal(t, want, got)
}

func TestFilterNoZoom(t *testing.T) {
	e := NewExtractor(0.5, 1, (*logging.TestLogger)(t))
	assert.Equal(t, "fps=0.5,scale=iw*1:ih*1,crop=iw/1:ih/1:(iw-iw/1)/2:(ih-ih/1)/2", e.Filter())
}

type call struct {
	name string
	args []string
}

func TestExtractCase(t *testing.T) {
	dir := t.TempDir()
	clips := filepath.Join(dir, "Clips")
	require.NoError(t, os.MkdirAll(clips, 0755))
	for _, name := range []string{"v_clip_1.mp4", "v_clip_2.mp4", "v_clip_3.mp4", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(clips, name), nil, 0644))
	}

	var calls []call
	e := NewExtractor(2, 1.7, (*logging.TestLogger)(t))
	e.Command = "/usr/local/bin/ffmpeg"
	e.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, call{name, args})
		if strings.HasSuffix(args[1], "v_clip_2.mp4") {
			return []byte("Invalid data found when processing input"), errors.New("exit status 1")
		}
		return nil, nil
	}

	n, err := e.ExtractCase(context.Background(), dir, "mp4")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, calls, 3)
	for _, c := range calls {
		assert.Equal(t, "/usr/local/bin/ffmpeg", c.name)
		assert.Equal(t, filepath.Join(dir, "Frames"), filepath.Dir(c.args[4]))
	}
	assert.DirExists(t, filepath.Join(dir, "Frames"))
}

func TestExtractError(t *testing.T) {
	e := NewExtractor(2, 1.7, (*logging.TestLogger)(t))
	e.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("No such file or directory"), errors.New("exit status 1")
	}
	err := e.Extract(context.Background(), "missing.mp4", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such file or directory")
}

func TestExtractCaseNoClips(t *testing.T) {
	e := NewExtractor(2, 1.7, (*logging.TestLogger)(t))
	_, err := e.ExtractCase(context.Background(), t.TempDir(), "mp4")
	assert.Error(t, err)
}

func TestExtractAll(t *testing.T) {
	evidence := t.TempDir()
	for _, dir := range []string{"video1/Clips", "failed/Clips", "noclips"} {
		require.NoError(t, os.MkdirAll(filepath.Join(evidence, dir), 0755))
	}
	require.NoError(t, os.WriteFile(filepath.Join(evidence, "video1", "Clips", "video1_clip_1.mp4"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(evidence, "run.log"), nil, 0644))

	var calls []call
	e := NewExtractor(2, 1.7, (*logging.TestLogger)(t))
	e.run = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, call{name, args})
		return nil, nil
	}

	cases, err := e.ExtractAll(context.Background(), evidence, "mp4")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(evidence, "failed"), filepath.Join(evidence, "video1")}, cases)
	assert.Len(t, calls, 1)
	assert.DirExists(t, filepath.Join(evidence, "failed", "Frames"))
	assert.DirExists(t, filepath.Join(evidence, "video1", "Frames"))
	assert.NoDirExists(t, filepath.Join(evidence, "noclips", "Frames"))
}
