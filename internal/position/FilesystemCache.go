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

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

const cacheDirName = ".loggersplit_cache"

// FilesystemCache persists States as YAML sidecar files in a hidden cache
// directory inside each input file's parent directory. Root can be set to
// relocate the whole cache tree, for example when the input directory is not
// writable; it is prepended to the input file's directory.
type FilesystemCache struct {
	Root string
}

func NewFilesystemCache(root string) *FilesystemCache {
	return &FilesystemCache{Root: root}
}

func (c *FilesystemCache) Load(inputPath string) (State, error) {
	b, err := os.ReadFile(c.sidecarPath(inputPath))
	if os.IsNotExist(err) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("error when reading position sidecar for file=%v: %w", inputPath, err)
	}
	var s State
	if err := yaml.Unmarshal(b, &s); err != nil {
		return State{}, fmt.Errorf("error when decoding position sidecar for file=%v: %w", inputPath, err)
	}
	if s.InputFile != filepath.Base(inputPath) {
		// The sidecar belongs to a different file that happens to share the
		// same prefix. Start over rather than trusting its offset.
		return State{}, nil
	}
	return s, nil
}

func (c *FilesystemCache) Save(inputPath string, s State) error {
	dir := c.cacheDir(inputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error when creating cache directory=%v: %w", dir, err)
	}
	s.InputFile = filepath.Base(inputPath)
	b, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("error when encoding position sidecar for file=%v: %w", inputPath, err)
	}
	// Write to a temporary file and rename so a crash mid-write can never
	// leave a truncated sidecar behind.
	tmp, err := os.CreateTemp(dir, ".position-*.tmp")
	if err != nil {
		return fmt.Errorf("error when creating temporary sidecar in dir=%v: %w", dir, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error when writing temporary sidecar for file=%v: %w", inputPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error when closing temporary sidecar for file=%v: %w", inputPath, err)
	}
	if err := os.Rename(tmp.Name(), c.sidecarPath(inputPath)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error when renaming temporary sidecar for file=%v: %w", inputPath, err)
	}
	return nil
}

func (c *FilesystemCache) cacheDir(inputPath string) string {
	return filepath.Join(c.Root+filepath.Dir(inputPath), cacheDirName)
}

func (c *FilesystemCache) sidecarPath(inputPath string) string {
	base := filepath.Base(inputPath)
	prefix := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(c.cacheDir(inputPath), "."+prefix+"_file_position.yaml")
}
