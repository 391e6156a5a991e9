/*
DESCRIPTION
  batch.go processes a folder of source videos strictly one after another.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tracker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ListVideos returns the paths of the files in dir with extension ext,
// compared case insensitively, in name order.
func ListVideos(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read video folder: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// Batch processes each of paths in turn. A video that fails is logged and
// skipped. Batch stops early only if ctx is cancelled, in which case the
// results gathered so far are returned with ctx's error.
func (d *Driver) Batch(ctx context.Context, paths []string) ([]*Result, error) {
	var results []*Result
	for _, p := range paths {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		res, err := d.Process(ctx, p)
		if ctx.Err() != nil {
			return append(results, res), ctx.Err()
		}
		if err != nil {
			d.log.Error("could not process video, skipping", "video", p, "error", err.Error())
			if len(res.Clips) == 0 {
				continue
			}
		}
		results = append(results, res)
	}
	return results, nil
}
