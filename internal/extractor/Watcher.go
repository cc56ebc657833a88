// Copyright 2024 Jack Bister
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher runs extraction passes whenever an input file grows. It combines
// fsnotify events on the input files' directories with a poll ticker, since
// some filesystems do not deliver notifications reliably. Passes run one at
// a time on a single goroutine, so there is never more than one concurrent
// pass over the same input file.
type Watcher struct {
	runner *Runner
	ctx    context.Context

	watcher *fsnotify.Watcher
	watched map[string]bool

	logger *zap.Logger
}

func NewWatcher(ctx context.Context, runner *Runner, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error when creating fsnotify watcher: %w", err)
	}
	return &Watcher{
		runner:  runner,
		ctx:     ctx,
		watcher: fsw,
		watched: map[string]bool{},
		logger:  logger,
	}, nil
}

// Start blocks, running one extraction pass immediately and another whenever
// an input file's directory reports a write or the poll interval elapses.
// It returns when the context is cancelled.
func (w *Watcher) Start() error {
	defer w.watcher.Close()

	ticker := time.NewTicker(w.runner.Cfg.WatchInterval)
	defer ticker.Stop()

	w.runPass()
	for {
		select {
		case <-w.ctx.Done():
			return nil
		case evt := <-w.watcher.Events:
			if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.runPass()
		case err := <-w.watcher.Errors:
			w.logger.Warn("got error from fsnotify watcher", zap.Error(err))
		case <-ticker.C:
			w.runPass()
		}
	}
}

func (w *Watcher) runPass() {
	results, err := w.runner.Run()
	if err != nil {
		w.logger.Warn("error when running extraction pass", zap.Error(err))
		return
	}
	for _, res := range results {
		w.watchDir(filepath.Dir(res.File))
	}
}

// watchDir adds a directory to the fsnotify watch set once.
func (w *Watcher) watchDir(dir string) {
	if w.watched[dir] {
		return
	}
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Warn("error when watching directory, will rely on polling",
			zap.String("dir", dir),
			zap.Error(err))
		return
	}
	w.watched[dir] = true
}
