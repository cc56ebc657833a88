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
	"regexp"
	"strings"
	"time"
	"unicode"
)

// TemplateData is everything a path template may refer to. Resolution is a
// pure function of this struct, so resolving the same template with the same
// data always yields the same path.
type TemplateData struct {
	// Timestamp is the bucket key, i.e. the record timestamp truncated to the
	// split interval.
	Timestamp time.Time
	// Prefix is the input file's name without its extension.
	Prefix string
	// Ext is the input file's extension without the dot.
	Ext string
	// Groups holds named capture group values from input pattern matching.
	Groups map[string]string
}

// placeholderRegex matches {key} and {key|func} placeholders.
var placeholderRegex = regexp.MustCompile(`\{([^}|]+)(?:\|([^}]+))?\}`)

// fileNameRegex additionally matches the legacy bare tokens supported for
// compatibility with old FILE_NAME_FORMAT strings. Bare tokens are only
// substituted in the file name component of a template, never in directory
// components, so literal directory text containing a token substring is
// never rewritten. Longer bare tokens come first in the alternation so that
// e.g. YYYY is never consumed as two MM-sized pieces.
var fileNameRegex = regexp.MustCompile(`\{([^}|]+)(?:\|([^}]+))?\}|YYYY|PREFIX|EXT|MM|DD|hh|mm|ss`)

// Resolve substitutes all placeholders in a path template.
//
// Two syntaxes are supported: {YYYY}, {PREFIX}, {site} etc, optionally with
// pipe functions like {site|lower} or {logger|replace:_:-}, and the legacy
// bare tokens YYYY MM DD hh mm ss PREFIX EXT. Bracket placeholders resolve
// anywhere in the template; bare tokens resolve only in the final path
// component. All placeholders are substituted in a single pass over the
// template and substituted values are never rescanned, so placeholders can
// never collide or be substituted twice. Capture group values shadow the
// built-in tokens. Unknown {bracket} placeholders are left as-is.
func Resolve(template string, d TemplateData) (string, error) {
	values := map[string]string{
		"YYYY":   fmt.Sprintf("%04d", d.Timestamp.Year()),
		"MM":     fmt.Sprintf("%02d", int(d.Timestamp.Month())),
		"DD":     fmt.Sprintf("%02d", d.Timestamp.Day()),
		"hh":     fmt.Sprintf("%02d", d.Timestamp.Hour()),
		"mm":     fmt.Sprintf("%02d", d.Timestamp.Minute()),
		"ss":     fmt.Sprintf("%02d", d.Timestamp.Second()),
		"PREFIX": d.Prefix,
		"EXT":    d.Ext,
	}
	for k, v := range d.Groups {
		values[k] = v
	}

	var resolveErr error
	substitute := func(re *regexp.Regexp, s string) string {
		return re.ReplaceAllStringFunc(s, func(m string) string {
			if !strings.HasPrefix(m, "{") {
				return values[m]
			}
			sub := re.FindStringSubmatch(m)
			key, funcs := sub[1], sub[2]
			value, ok := values[key]
			if !ok {
				return m
			}
			if funcs != "" {
				for _, spec := range strings.Split(funcs, "|") {
					v, err := applyFunction(value, strings.TrimSpace(spec))
					if err != nil {
						resolveErr = err
						return m
					}
					value = v
				}
			}
			return value
		})
	}

	dir, file := "", template
	if i := strings.LastIndex(template, "/"); i >= 0 {
		dir, file = template[:i+1], template[i+1:]
	}
	result := substitute(placeholderRegex, dir) + substitute(fileNameRegex, file)
	if resolveErr != nil {
		return "", fmt.Errorf("error when resolving template '%v': %w", template, resolveErr)
	}
	return result, nil
}

// applyFunction applies one pipe function to a placeholder value.
func applyFunction(value string, spec string) (string, error) {
	if name, args, ok := strings.Cut(spec, ":"); ok {
		if name != "replace" {
			return "", fmt.Errorf("unknown placeholder function with arguments: %v", name)
		}
		parts := strings.SplitN(args, ":", 2)
		if len(parts) < 2 {
			return "", fmt.Errorf("replace function requires 2 arguments, got %v", len(parts))
		}
		return strings.ReplaceAll(value, parts[0], parts[1]), nil
	}
	switch spec {
	case "lower":
		return strings.ToLower(value), nil
	case "upper":
		return strings.ToUpper(value), nil
	case "title":
		return strings.Title(value), nil
	case "capitalize":
		return capitalize(value), nil
	}
	return "", fmt.Errorf("unknown placeholder function: %v", spec)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
