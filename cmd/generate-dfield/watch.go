package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the bursts of write events editors and exporters
// produce while saving a file.
const watchDebounce = 100 * time.Millisecond

// watchJobs generates every job once, then keeps watching the input files
// and regenerates a job whenever its input changes. It returns when the
// context is cancelled or an interrupt/terminate signal arrives.
func watchJobs(ctx context.Context, jobs []job) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initial pass; in watch mode a broken asset is reported, not fatal.
	for i := range jobs {
		if err := runJob(&jobs[i]); err != nil {
			log.Error().Err(err).Str("input", jobs[i].Input).Msg("generation failed")
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the containing directories: replace-by-rename saves recreate
	// the file, and a watch on the old inode would go stale.
	byInput := make(map[string][]*job)
	dirs := make(map[string]bool)
	for i := range jobs {
		abs, err := filepath.Abs(jobs[i].Input)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", jobs[i].Input, err)
		}
		byInput[abs] = append(byInput[abs], &jobs[i])
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	log.Info().Int("inputs", len(byInput)).Int("dirs", len(dirs)).Msg("watching for changes")

	var (
		mu       sync.Mutex
		debounce = make(map[string]*time.Timer)
	)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			affected := byInput[abs]
			if len(affected) == 0 {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			mu.Lock()
			if t, ok := debounce[abs]; ok {
				t.Stop()
			}
			debounce[abs] = time.AfterFunc(watchDebounce, func() {
				for _, j := range affected {
					if err := runJob(j); err != nil {
						log.Error().Err(err).Str("input", j.Input).Msg("regeneration failed")
					}
				}
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}
