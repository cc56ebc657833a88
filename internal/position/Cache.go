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

package position

import "fmt"

// State is the persisted extraction progress for one input file. Offset is
// the offset of the first byte that has not been fully consumed yet; it
// never decreases across runs. The header fields cache the result of header
// parsing so that resumed runs never re-read the head of the file.
type State struct {
	InputFile    string   `yaml:"INPUT_FILE"`
	Offset       int64    `yaml:"FILE_POSITION"`
	HeaderParsed bool     `yaml:"HEADER_PARSED"`
	HeaderLines  int      `yaml:"HEADER_LINES"`
	Columns      []string `yaml:"COLUMNS,omitempty"`
}

// Cache stores one State per input file. Implementations are keyed by the
// input file's name with the extension stripped, so rotating a file to a new
// name starts from a fresh State.
type Cache interface {
	// Load returns the saved State for the input file, or the zero State if
	// none has been saved.
	Load(inputPath string) (State, error)
	// Save persists the State for the input file, replacing any previous one.
	Save(inputPath string, s State) error
}

// MismatchError indicates that the input file on disk is smaller than the
// cached offset, meaning the file was rotated, truncated or replaced since
// the offset was saved. The caller is expected to restart from offset zero.
type MismatchError struct {
	File   string
	Offset int64
	Size   int64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cached offset=%v exceeds size=%v of file=%v, the file appears to have been truncated or replaced", e.Offset, e.Size, e.File)
}
