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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jackbister/loggersplit/internal/bucket"
	"github.com/jackbister/loggersplit/internal/cdl"
	"github.com/jackbister/loggersplit/internal/position"
)

// State is the terminal state of processing one input file.
type State int

const (
	// Completed means every available complete line was processed.
	Completed State = iota
	// CompletedWithErrors means one or more lines could not be decoded and
	// were skipped.
	CompletedWithErrors
	// Failed means the file could not be processed at all, or processing was
	// aborted by an I/O failure.
	Failed
)

func (s State) String() string {
	switch s {
	case Completed:
		return "Completed"
	case CompletedWithErrors:
		return "CompletedWithErrors"
	case Failed:
		return "Failed"
	}
	return fmt.Sprintf("State(%v)", int(s))
}

// Result summarizes one extraction pass over one input file.
type Result struct {
	RunID   string
	File    string
	State   State
	Records int
	Buckets int
	Skipped int
	// Offset is the saved byte offset after the pass.
	Offset int64
	Err    error
}

// FileParams is everything needed to process one input file.
type FileParams struct {
	// Path is the input file.
	Path string
	// Template is the full output path template, combining the output
	// directory and file name templates.
	Template string
	Format   cdl.Format
	Interval bucket.Interval
	// WriteIncompletePeriods controls whether the newest bucket is written at
	// end of file or held back until a later bucket appears.
	WriteIncompletePeriods bool
	// Groups holds named capture group values from input discovery.
	Groups map[string]string
	// RunID identifies the run in logs and the journal. A new one is
	// generated when empty.
	RunID string
}

// Extractor performs incremental extraction passes. The position cache is
// injected so tests can use an in-memory one.
type Extractor struct {
	Cache  position.Cache
	Logger *zap.Logger
}

func New(cache position.Cache, logger *zap.Logger) *Extractor {
	return &Extractor{Cache: cache, Logger: logger}
}

// ProcessFile performs one extraction pass over one input file: it resumes
// from the cached byte offset, decodes every complete line that has been
// appended since the previous pass, routes each record to its bucket file,
// and saves the advanced offset. A trailing line without a terminator is
// left for the next pass.
func (e *Extractor) ProcessFile(p FileParams) Result {
	runID := p.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := e.Logger.With(
		zap.String("fileName", p.Path),
		zap.String("runId", runID))
	res := Result{RunID: runID, File: p.Path}

	fail := func(err error) Result {
		logger.Error("aborting extraction for file", zap.Error(err))
		res.State = Failed
		res.Err = err
		return res
	}

	st, err := e.Cache.Load(p.Path)
	if err != nil {
		return fail(err)
	}

	f, err := os.Open(p.Path)
	if err != nil {
		return fail(fmt.Errorf("error when opening input file=%v: %w", p.Path, err))
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fail(fmt.Errorf("error when statting input file=%v: %w", p.Path, err))
	}
	if st.Offset > fi.Size() {
		mismatch := &position.MismatchError{File: p.Path, Offset: st.Offset, Size: fi.Size()}
		logger.Warn("input file is smaller than the cached offset, it appears to have been rotated or truncated. restarting from the beginning",
			zap.Error(mismatch))
		st = position.State{}
	}

	if !st.HeaderParsed {
		if fi.Size() == 0 {
			// Nothing has been written yet, not even a header. Try again next
			// run.
			res.State = Completed
			return res
		}
		h, err := cdl.ReadHeader(f, p.Format)
		if err != nil {
			return fail(err)
		}
		st.HeaderParsed = true
		st.HeaderLines = h.Lines
		st.Columns = h.Columns
		st.Offset = h.Bytes
		logger.Info("parsed header",
			zap.Int("headerLines", h.Lines),
			zap.Int("columns", len(h.Columns)))
	}

	if _, err := f.Seek(st.Offset, io.SeekStart); err != nil {
		return fail(fmt.Errorf("error when seeking to offset=%v in file=%v: %w", st.Offset, p.Path, err))
	}

	base := filepath.Base(p.Path)
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	prefix := strings.TrimSuffix(base, filepath.Ext(base))
	writer := &bucket.Writer{Columns: st.Columns}

	var pending []cdl.Record
	var pendingKey time.Time
	var pendingStart int64
	consumed := st.Offset
	lineStart := st.Offset

	// flush writes the buffered bucket to its output file and advances the
	// saved offset to cursor, which is the start of the first line that does
	// not belong to the flushed bucket.
	flush := func(cursor int64) error {
		path, err := bucket.Resolve(p.Template, bucket.TemplateData{
			Timestamp: pendingKey,
			Prefix:    prefix,
			Ext:       ext,
			Groups:    p.Groups,
		})
		if err != nil {
			return err
		}
		for _, rec := range pending {
			if err := writer.Write(rec, path); err != nil {
				return err
			}
		}
		logger.Info("wrote bucket",
			zap.String("outputFile", path),
			zap.Int("records", len(pending)))
		res.Records += len(pending)
		res.Buckets++
		pending = pending[:0]
		st.Offset = cursor
		if err := e.Cache.Save(p.Path, st); err != nil {
			return err
		}
		return nil
	}

	br := bufio.NewReader(f)
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return fail(fmt.Errorf("error when reading input file=%v: %w", p.Path, err))
		}
		if !strings.HasSuffix(line, "\n") {
			// The final line has no terminator yet, the logger is still
			// appending to it. Leave it for the next run.
			break
		}
		lineEnd := lineStart + int64(len(line))

		rec, decodeErr := cdl.Decode(strings.TrimRight(line, "\r\n"), p.Format)
		if decodeErr != nil {
			logger.Warn("skipping unparseable line",
				zap.Int64("offset", lineStart),
				zap.Error(decodeErr))
			res.Skipped++
			consumed = lineEnd
			lineStart = lineEnd
			continue
		}

		key := bucket.Truncate(rec.Timestamp, p.Interval)
		if len(pending) > 0 && !key.Equal(pendingKey) {
			if err := flush(lineStart); err != nil {
				return fail(err)
			}
		}
		if len(pending) == 0 {
			pendingKey = key
			pendingStart = lineStart
		}
		pending = append(pending, rec)
		consumed = lineEnd
		lineStart = lineEnd
	}

	if len(pending) > 0 {
		if p.WriteIncompletePeriods {
			if err := flush(consumed); err != nil {
				return fail(err)
			}
		} else {
			logger.Info("holding back incomplete period",
				zap.Time("bucket", pendingKey),
				zap.Int("records", len(pending)))
			// Skipped lines ahead of the held-back bucket are consumed; only
			// the bucket itself is re-read on the next pass.
			st.Offset = pendingStart
		}
	} else {
		// Nothing is pending, so everything read so far (including any
		// skipped lines at the tail) is fully consumed.
		st.Offset = consumed
	}
	if err := e.Cache.Save(p.Path, st); err != nil {
		return fail(err)
	}

	res.Offset = st.Offset
	if res.Skipped > 0 {
		res.State = CompletedWithErrors
	} else {
		res.State = Completed
	}
	return res
}
