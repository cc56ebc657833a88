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

package bucket

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackbister/loggersplit/internal/cdl"
)

// Writer appends decoded records to bucket files. A bucket file that does
// not exist yet is created with a header row first, so a bucket that is
// extended across several runs ends up with exactly one header row. Columns
// is the column name sequence from header parsing; when it is empty no
// header row is written.
type Writer struct {
	Columns []string
}

// Write appends one record to the bucket file at path, creating the file and
// its parent directories if needed. The file handle is opened and closed per
// call so no handle outlives a run.
func (w *Writer) Write(rec cdl.Record, path string) error {
	dir := filepath.Dir(path)
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error when creating output directory=%v: %w", dir, err)
		}
	}

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error when opening output file=%v: %w", path, err)
	}
	defer f.Close()

	if isNew && len(w.Columns) > 0 {
		if _, err := f.WriteString(strings.Join(w.Columns, ",") + "\n"); err != nil {
			return fmt.Errorf("error when writing header row to output file=%v: %w", path, err)
		}
	}
	if _, err := f.WriteString(strings.Join(rec.Fields, ",") + "\n"); err != nil {
		return fmt.Errorf("error when writing record to output file=%v: %w", path, err)
	}
	return nil
}
