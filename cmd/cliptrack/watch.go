/*
DESCRIPTION
  watch.go processes videos as they are added to the input folder.

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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/fsnotify/fsnotify"
)

// A video is processed once it has not changed for settleTime.
const settleTime = 5 * time.Second

// pending tracks files that are still being written.
type pending map[string]time.Time

// touch records a change to path at t.
func (p pending) touch(path string, t time.Time) { p[path] = t }

// settled removes and returns the paths unchanged since before now-d, in
// name order.
func (p pending) settled(now time.Time, d time.Duration) []string {
	var paths []string
	for path, t := range p {
		if now.Sub(t) >= d {
			paths = append(paths, path)
			delete(p, path)
		}
	}
	sort.Strings(paths)
	return paths
}

// isVideo reports whether name has extension ext, ignoring case.
func isVideo(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

// notify sends state to systemd if running as a notify service.
func (p *pipeline) notify(state string) {
	ok, err := daemon.SdNotify(false, state)
	if err != nil {
		p.log.Warning("could not notify systemd", "state", state, "error", err.Error())
		return
	}
	if ok {
		p.log.Debug("notified systemd", "state", state)
	}
}

// watch processes each video created in the input folder once it has
// settled, until ctx is cancelled.
func (p *pipeline) watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create watcher: %w", err)
	}
	defer w.Close()

	err = w.Add(p.cfg.InputPath)
	if err != nil {
		return fmt.Errorf("could not watch %s: %w", p.cfg.InputPath, err)
	}
	p.log.Info("watching for videos", "folder", p.cfg.InputPath)
	p.notify("READY=1")
	defer p.notify("STOPPING=1")

	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	files := make(pending)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isVideo(ev.Name, p.cfg.InputExt) {
				continue
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) {
				files.touch(ev.Name, time.Now())
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				delete(files, ev.Name)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.log.Warning("watcher error", "error", err.Error())

		case now := <-tick.C:
			for _, path := range files.settled(now, settleTime) {
				if _, err := os.Stat(path); err != nil {
					continue
				}
				p.log.Info("new video", "path", path)
				err := p.video(ctx, path)
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if err != nil {
					p.log.Error("could not process video", "path", path, "error", err.Error())
				}
			}
		}
	}
}
