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

package cdl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Header describes the preamble of a logger file: how many bytes to skip
// before the first data line and the column schema extracted from it.
type Header struct {
	// Lines is the number of preamble lines.
	Lines int
	// Bytes is the offset of the first data line.
	Bytes int64
	// Columns is the column name sequence, or nil for formats without one.
	Columns []string
}

// MalformedHeaderError is returned when a file's preamble does not have the
// rows its format requires. It is fatal for the file in the current run.
type MalformedHeaderError struct {
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed header: %v", e.Reason)
}

// ReadHeader reads the preamble of a logger file from its beginning and
// returns where the data starts and the column schema.
//
// The CR1000X family has a CSV preamble of at least two rows (the TOA5
// environment row followed by the column name row); every row before the
// first line starting with a quoted timestamp belongs to the preamble. The
// CR23 family has no preamble, so ReadHeader consumes nothing for it.
//
// ReadHeader may read past the end of the preamble. Callers should seek to
// Header.Bytes before reading data.
func ReadHeader(r io.Reader, f Format) (Header, error) {
	if f == FormatCR23 {
		return Header{}, nil
	}

	br := bufio.NewReader(r)
	h := Header{}
	preamble := []string{}
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return Header{}, fmt.Errorf("error when reading header: %w", err)
		}
		if !strings.HasSuffix(line, "\n") {
			// A partial line at the end of the file is still being appended.
			// It is not part of the preamble.
			break
		}
		if IsRecord(line, f) {
			break
		}
		preamble = append(preamble, line)
		h.Lines++
		h.Bytes += int64(len(line))
	}

	if len(preamble) < 2 {
		return Header{}, &MalformedHeaderError{
			Reason: fmt.Sprintf("expected at least 2 preamble rows before the first data line but found %v", len(preamble)),
		}
	}
	columns, err := splitFields(preamble[1])
	if err != nil {
		return Header{}, &MalformedHeaderError{Reason: fmt.Sprintf("could not read column name row: %v", err)}
	}
	h.Columns = columns
	return h, nil
}
