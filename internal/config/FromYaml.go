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
	"io"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/jackbister/loggersplit/internal/bucket"
	"github.com/jackbister/loggersplit/internal/cdl"
)

type yamlConfig struct {
	// InputFilePath is either a plain string (a literal file path) or a
	// mapping with a "pattern" key and an optional "search_root" key.
	InputFilePath          interface{} `yaml:"INPUT_FILE_PATH"`
	OutputDir              string      `yaml:"OUTPUT_DIR"`
	OutputFilePath         string      `yaml:"OUTPUT_FILE_PATH"`
	FileNameFormat         string      `yaml:"FILE_NAME_FORMAT"`
	CDLType                string      `yaml:"CDL_TYPE"`
	SplitInterval          string      `yaml:"SPLIT_INTERVAL"`
	WriteIncompletePeriods *bool       `yaml:"WRITE_INCOMPLETE_PERIODS"`
	CachePath              string      `yaml:"CACHE_PATH"`
	JournalDB              string      `yaml:"JOURNAL_DB"`
	WatchInterval          string      `yaml:"WATCH_INTERVAL"`
}

const defaultFileNameFormat = "PREFIX.YYYYMMDDhhmmss.EXT"
const defaultWatchInterval = 10 * time.Second

// FromYaml reads a YAML configuration and converts it into a validated
// Config, applying defaults for optional keys. Any missing required key or
// unrecognized enum value is reported as a *Error before processing starts.
func FromYaml(r io.Reader) (*Config, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Reason: "could not read configuration", Err: err}
	}
	var raw yamlConfig
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, &Error{Reason: "could not decode configuration YAML", Err: err}
	}

	cfg := Config{
		OutputDir:              raw.OutputDir,
		OutputFilePath:         raw.OutputFilePath,
		FileNameFormat:         raw.FileNameFormat,
		CachePath:              raw.CachePath,
		JournalDB:              raw.JournalDB,
		WriteIncompletePeriods: true,
		WatchInterval:          defaultWatchInterval,
	}

	input, err := inputFromYaml(raw.InputFilePath)
	if err != nil {
		return nil, err
	}
	cfg.Input = input

	if cfg.OutputFilePath == "" && cfg.OutputDir == "" {
		return nil, &Error{Reason: "configuration must have either OUTPUT_FILE_PATH or OUTPUT_DIR"}
	}
	if cfg.FileNameFormat == "" {
		cfg.FileNameFormat = defaultFileNameFormat
	}

	cdlType := raw.CDLType
	if cdlType == "" {
		cdlType = "CR1000X"
	}
	cfg.Format, err = cdl.ParseFormat(cdlType)
	if err != nil {
		return nil, &Error{Reason: "unrecognized CDL_TYPE", Err: err}
	}

	splitInterval := raw.SplitInterval
	if splitInterval == "" {
		splitInterval = "HOURLY"
	}
	cfg.Interval, err = bucket.ParseInterval(splitInterval)
	if err != nil {
		return nil, &Error{Reason: "unrecognized SPLIT_INTERVAL", Err: err}
	}

	if raw.WriteIncompletePeriods != nil {
		cfg.WriteIncompletePeriods = *raw.WriteIncompletePeriods
	}
	if raw.WatchInterval != "" {
		d, err := time.ParseDuration(raw.WatchInterval)
		if err != nil {
			return nil, &Error{Reason: "could not parse WATCH_INTERVAL as a duration", Err: err}
		}
		cfg.WatchInterval = d
	}

	return &cfg, nil
}

func inputFromYaml(v interface{}) (Input, error) {
	switch t := v.(type) {
	case nil:
		return Input{}, &Error{Reason: "no key named INPUT_FILE_PATH in the configuration"}
	case string:
		if t == "" {
			return Input{}, &Error{Reason: "INPUT_FILE_PATH is empty"}
		}
		return Input{Path: t}, nil
	case map[interface{}]interface{}:
		input := Input{}
		if p, ok := t["pattern"].(string); ok {
			input.Pattern = p
		}
		if s, ok := t["search_root"].(string); ok {
			input.SearchRoot = s
		}
		if input.Pattern == "" {
			return Input{}, &Error{Reason: "INPUT_FILE_PATH mapping must have a 'pattern' key"}
		}
		return input, nil
	}
	return Input{}, &Error{Reason: fmt.Sprintf("INPUT_FILE_PATH must be a string or a mapping with a 'pattern' key, got %T", v)}
}
