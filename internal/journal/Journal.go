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

// Package journal records the outcome of extraction runs so that operators
// can audit what was extracted when. The journal is optional; a nop
// implementation is used when no JOURNAL_DB is configured.
package journal

import "time"

// Entry is the outcome of processing one input file in one run.
type Entry struct {
	RunID    string
	File     string
	State    string
	Records  int
	Buckets  int
	Skipped  int
	Offset   int64
	Started  time.Time
	Finished time.Time
}

type Journal interface {
	Record(e Entry) error
}

type nopJournal struct{}

func (nopJournal) Record(_ Entry) error {
	return nil
}

// Nop returns a Journal that discards everything.
func Nop() Journal {
	return nopJournal{}
}
