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

package config

import (
	"fmt"
	"time"

	"github.com/jackbister/loggersplit/internal/bucket"
	"github.com/jackbister/loggersplit/internal/cdl"
)

// Input is where to find the logger files to process: either one literal
// path, or a regex pattern with named capture groups searched for under
// SearchRoot.
type Input struct {
	Path       string
	Pattern    string
	SearchRoot string
}

// Config is the validated configuration for one extraction run.
type Config struct {
	Input Input

	// OutputFilePath is a template for the complete output file path. When it
	// is set, OutputDir and FileNameFormat are ignored.
	OutputFilePath string
	// OutputDir and FileNameFormat are joined to form the output path
	// template when OutputFilePath is not set.
	OutputDir      string
	FileNameFormat string

	Format   cdl.Format
	Interval bucket.Interval

	// WriteIncompletePeriods controls whether the newest, possibly still
	// growing bucket is written at the end of a run or held back until a
	// record from a later bucket shows the period is complete.
	WriteIncompletePeriods bool

	// CachePath relocates the position cache tree. Empty means the cache
	// directory lives next to each input file.
	CachePath string

	// JournalDB is the path of an optional sqlite database recording one row
	// per processed file per run. Empty disables the journal.
	JournalDB string

	// WatchInterval is the poll interval used in watch mode.
	WatchInterval time.Duration
}

// PathTemplate returns the full output path template for this config.
func (c *Config) PathTemplate() string {
	if c.OutputFilePath != "" {
		return c.OutputFilePath
	}
	return c.OutputDir + "/" + c.FileNameFormat
}

// Error indicates an invalid or incomplete configuration. It is fatal and
// aborts before any file is processed.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration: %v: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid configuration: %v", e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}
