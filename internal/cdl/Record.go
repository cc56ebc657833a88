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
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Record is one decoded logger data line. Timestamp is timezone-naive at
// second resolution. Fields contains every value on the line, de-quoted, in
// file order (the timestamp fields are included).
type Record struct {
	Timestamp time.Time
	Fields    []string
}

// RecordParseError is returned when a line cannot be decoded. The line is
// skipped and the run continues.
type RecordParseError struct {
	Reason string
	Line   string
}

func (e *RecordParseError) Error() string {
	return fmt.Sprintf("failed to parse record: %v: line='%v'", e.Reason, e.Line)
}

// cr1000xTimeRegex matches the quoted timestamp at the start of a CR1000X
// family data line. Seconds are optional since some tables log at minute
// resolution.
var cr1000xTimeRegex = regexp.MustCompile(`^"(\d{4}-\d{1,2}-\d{1,2}[ T]\d{1,2}:\d{2}(?::\d{2})?)(?:\.\d+)?"`)

// Decode parses one raw line (post-header) into a Record according to the
// logger format. The line should not contain its trailing newline.
func Decode(line string, f Format) (Record, error) {
	switch f {
	case FormatCR1000X:
		return decodeCR1000X(line)
	case FormatCR23:
		return decodeCR23(line)
	}
	return Record{}, &UnsupportedTypeError{Tag: f.String()}
}

// IsRecord reports whether a line looks like a data line for the given
// format. It is used by the header parser to find where the preamble ends.
func IsRecord(line string, f Format) bool {
	_, err := Decode(line, f)
	return err == nil
}

func decodeCR1000X(line string) (Record, error) {
	m := cr1000xTimeRegex.FindStringSubmatch(line)
	if m == nil {
		return Record{}, &RecordParseError{Reason: "line does not start with a quoted timestamp", Line: line}
	}
	t, err := dateparse.ParseLocal(m[1])
	if err != nil {
		return Record{}, &RecordParseError{Reason: fmt.Sprintf("unparseable timestamp '%v': %v", m[1], err), Line: line}
	}
	fields, err := splitFields(line)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Timestamp: t.Truncate(time.Second),
		Fields:    fields,
	}, nil
}

func decodeCR23(line string) (Record, error) {
	fields, err := splitFields(line)
	if err != nil {
		return Record{}, err
	}
	if len(fields) < 4 {
		return Record{}, &RecordParseError{Reason: fmt.Sprintf("expected at least 4 fields but got %v", len(fields)), Line: line}
	}
	nums := make([]int, 4)
	for i := 0; i < 4; i++ {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return Record{}, &RecordParseError{Reason: fmt.Sprintf("field %v is not an integer", i), Line: line}
		}
		nums[i] = n
	}
	year, yday, hhmm := nums[1], nums[2], nums[3]
	// The time is encoded as <year>,<day of year>,<hhmm>. hhmm may have fewer
	// than 4 digits when the hour is a single digit. time.Date normalizes the
	// day-of-year overflow, which keeps the wall clock equal to the encoded
	// time even across DST transitions.
	t := time.Date(year, 1, yday, hhmm/100, hhmm%100, 0, 0, time.Local)
	return Record{
		Timestamp: t,
		Fields:    fields,
	}, nil
}

// splitFields splits a data line on commas and strips surrounding quotes.
// A field that opens a quote without closing it is considered malformed.
func splitFields(line string) ([]string, error) {
	raw := strings.Split(strings.TrimRight(line, "\r\n"), ",")
	fields := make([]string, len(raw))
	for i, f := range raw {
		if strings.HasPrefix(f, "\"") {
			if len(f) < 2 || !strings.HasSuffix(f, "\"") {
				return nil, &RecordParseError{Reason: fmt.Sprintf("malformed quoting in field %v", i), Line: line}
			}
			f = f[1 : len(f)-1]
		}
		fields[i] = f
	}
	return fields, nil
}
