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
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jackbister/loggersplit/internal/config"
	"github.com/jackbister/loggersplit/internal/discovery"
	"github.com/jackbister/loggersplit/internal/journal"
	"github.com/jackbister/loggersplit/internal/position"
)

// Runner performs one extraction pass over every input file a configuration
// resolves to. Files are processed independently: one file failing never
// aborts the batch.
type Runner struct {
	Cfg     *config.Config
	Cache   position.Cache
	Journal journal.Journal
	Logger  *zap.Logger
}

// ResolveInputs returns the concrete input files for the configuration,
// either the single literal path or every file matching the input pattern.
func (r *Runner) ResolveInputs() ([]discovery.Match, error) {
	if r.Cfg.Input.Path != "" {
		return []discovery.Match{{Path: r.Cfg.Input.Path}}, nil
	}
	return discovery.Resolve(r.Cfg.Input.Pattern, r.Cfg.Input.SearchRoot)
}

// Run resolves the configured inputs and processes each file once. The
// returned error covers input resolution only; per-file outcomes are in the
// Results.
func (r *Runner) Run() ([]Result, error) {
	matches, err := r.ResolveInputs()
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	ext := New(r.Cache, r.Logger)

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		started := time.Now()
		res := ext.ProcessFile(FileParams{
			Path:                   m.Path,
			Template:               r.Cfg.PathTemplate(),
			Format:                 r.Cfg.Format,
			Interval:               r.Cfg.Interval,
			WriteIncompletePeriods: r.Cfg.WriteIncompletePeriods,
			Groups:                 m.Groups,
			RunID:                  runID,
		})
		results = append(results, res)

		r.Logger.Info("processed file",
			zap.String("fileName", res.File),
			zap.String("state", res.State.String()),
			zap.Int("records", res.Records),
			zap.Int("buckets", res.Buckets),
			zap.Int("skipped", res.Skipped),
			zap.Int64("offset", res.Offset))

		if err := r.Journal.Record(journal.Entry{
			RunID:    res.RunID,
			File:     res.File,
			State:    res.State.String(),
			Records:  res.Records,
			Buckets:  res.Buckets,
			Skipped:  res.Skipped,
			Offset:   res.Offset,
			Started:  started,
			Finished: time.Now(),
		}); err != nil {
			r.Logger.Warn("error when recording run in journal", zap.Error(err))
		}
	}
	return results, nil
}
