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
	"strings"
	"time"
)

// Interval is the time span covered by one output file.
type Interval int

const (
	Hourly Interval = iota
	Daily
)

func (i Interval) String() string {
	switch i {
	case Hourly:
		return "HOURLY"
	case Daily:
		return "DAILY"
	}
	return fmt.Sprintf("Interval(%v)", int(i))
}

// ParseInterval maps a SPLIT_INTERVAL tag to an Interval. Tags are
// case-insensitive.
func ParseInterval(tag string) (Interval, error) {
	switch strings.ToUpper(tag) {
	case "HOURLY":
		return Hourly, nil
	case "DAILY":
		return Daily, nil
	}
	return 0, fmt.Errorf("SPLIT_INTERVAL must be HOURLY or DAILY, got '%v'", tag)
}

// Truncate maps a record timestamp to its bucket key. Two records with the
// same truncated timestamp always resolve to the same output file.
func Truncate(t time.Time, i Interval) time.Time {
	if i == Daily {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}
