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

package journal

import (
	"database/sql"
	"fmt"
)

type sqliteJournal struct {
	db *sql.DB
}

// SqliteJournal returns a Journal persisting one row per processed file per
// run to the given database.
func SqliteJournal(db *sql.DB) (Journal, error) {
	_, err := db.Exec("CREATE TABLE IF NOT EXISTS Runs (run_id TEXT NOT NULL, file TEXT NOT NULL, state TEXT NOT NULL, records INTEGER NOT NULL, buckets INTEGER NOT NULL, skipped INTEGER NOT NULL, offset INTEGER NOT NULL, started DATETIME NOT NULL, finished DATETIME NOT NULL);")
	if err != nil {
		return nil, fmt.Errorf("error when creating Runs table: %w", err)
	}
	return &sqliteJournal{db: db}, nil
}

func (j *sqliteJournal) Record(e Entry) error {
	_, err := j.db.Exec("INSERT INTO Runs (run_id, file, state, records, buckets, skipped, offset, started, finished) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);",
		e.RunID, e.File, e.State, e.Records, e.Buckets, e.Skipped, e.Offset, e.Started, e.Finished)
	if err != nil {
		return fmt.Errorf("error when recording run=%v for file=%v: %w", e.RunID, e.File, err)
	}
	return nil
}
