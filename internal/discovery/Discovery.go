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

// Package discovery resolves INPUT_FILE_PATH patterns into concrete input
// files. A pattern is a regular expression with named capture groups; the
// captured values become placeholder values when output paths are resolved.
package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
)

// Match is one discovered input file together with the values captured by
// the pattern's named groups.
type Match struct {
	Path   string
	Groups map[string]string
}

// Resolve walks the directory tree under searchRoot and returns every file
// whose path matches the pattern, sorted by path for a predictable
// processing order. The pattern is matched against the full path first and,
// when searchRoot is given, against the path relative to searchRoot, so
// patterns do not have to repeat the root.
func Resolve(pattern string, searchRoot string) ([]Match, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("error when compiling input pattern '%v': %w", pattern, err)
	}
	root := searchRoot
	if root == "" {
		root = "/"
	}

	matches := []Match{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are skipped rather than failing the
			// whole discovery.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		m := re.FindStringSubmatch(path)
		if m == nil && searchRoot != "" {
			rel, relErr := filepath.Rel(root, path)
			if relErr == nil {
				m = re.FindStringSubmatch(rel)
			}
		}
		if m == nil {
			return nil
		}
		groups := map[string]string{}
		for i, name := range re.SubexpNames() {
			if i > 0 && name != "" {
				groups[name] = m[i]
			}
		}
		matches = append(matches, Match{Path: path, Groups: groups})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error when walking search root=%v: %w", root, err)
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Path < matches[j].Path })
	return matches, nil
}
