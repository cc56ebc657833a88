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
	"strings"
)

// Format identifies which family of Campbell data logger produced a file.
// The two families have structurally different headers and record layouts,
// so the format is resolved once per file and used to select the header
// parser and record decoder.
type Format int

const (
	// FormatCR1000X covers the CR1000X/CR1000/CR3000 family. Files have a
	// multi-row CSV preamble (environment row, column name row, ...) and each
	// data line starts with a quoted "YYYY-MM-DD hh:mm:ss" timestamp.
	FormatCR1000X Format = iota
	// FormatCR23 covers the CR23/CR10 family. Files have no preamble and each
	// data line starts with <array id>,<year>,<day of year>,<hhmm>.
	FormatCR23
)

func (f Format) String() string {
	switch f {
	case FormatCR1000X:
		return "CR1000X"
	case FormatCR23:
		return "CR23"
	}
	return fmt.Sprintf("Format(%v)", int(f))
}

// UnsupportedTypeError is returned when a CDL_TYPE tag does not match any
// known logger family.
type UnsupportedTypeError struct {
	Tag string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("cannot process files for CDL_TYPE=%v", e.Tag)
}

// ParseFormat maps a CDL_TYPE tag to a Format. Tags are case-insensitive.
func ParseFormat(tag string) (Format, error) {
	switch strings.ToUpper(tag) {
	case "CR1000X", "CR1000", "CR3000", "CRXXXX":
		return FormatCR1000X, nil
	case "CR23", "CR10", "CRXX":
		return FormatCR23, nil
	}
	return 0, &UnsupportedTypeError{Tag: tag}
}
