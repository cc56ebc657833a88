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

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/jackbister/loggersplit/internal/config"
	"github.com/jackbister/loggersplit/internal/extractor"
	"github.com/jackbister/loggersplit/internal/journal"
	"github.com/jackbister/loggersplit/internal/position"

	_ "github.com/mattn/go-sqlite3"
)

var versionString string // This must be set using -ldflags "-X main.versionString=<version>" when building for --version to work

var cfgFileFlag string
var listFlag bool
var watchFlag bool
var printVersion bool

func main() {
	// The exit code is computed inside run so that deferred cleanup (logger
	// sync, journal close) always happens before the process exits.
	os.Exit(run())
}

func run() int {
	flag.StringVar(&cfgFileFlag, "config", "loggersplit.yaml", "The name of the YAML file containing the configuration for loggersplit.")
	flag.BoolVar(&listFlag, "list", false, "List the input files matched by the configuration together with their captured groups and exit without processing anything.")
	flag.BoolVar(&watchFlag, "watch", false, "Keep running and perform a new extraction pass whenever an input file grows, instead of performing a single pass and exiting.")
	flag.BoolVar(&printVersion, "version", false, "Print version info and quit.")
	flag.Parse()

	if printVersion {
		if versionString == "" {
			fmt.Println("(unknown version)")
		} else {
			fmt.Println(versionString)
		}
		return 0
	}

	cfgFile, err := os.Open(cfgFileFlag)
	if err != nil {
		log.Printf("could not open config file '%v': %v\n", cfgFileFlag, err)
		return 1
	}
	cfg, err := config.FromYaml(cfgFile)
	cfgFile.Close()
	if err != nil {
		log.Printf("error parsing configuration from file '%v': %v\n", cfgFileFlag, err)
		return 1
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Printf("error creating logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	jnl := journal.Journal(journal.Nop())
	if cfg.JournalDB != "" {
		db, err := sql.Open("sqlite3", "file:"+cfg.JournalDB+"?cache=shared&_journal_mode=WAL")
		if err != nil {
			logger.Error("error when opening journal database", zap.Error(err))
			return 1
		}
		defer db.Close()
		jnl, err = journal.SqliteJournal(db)
		if err != nil {
			logger.Error("error when initializing journal database", zap.Error(err))
			return 1
		}
	}

	runner := &extractor.Runner{
		Cfg:     cfg,
		Cache:   position.NewFilesystemCache(cfg.CachePath),
		Journal: jnl,
		Logger:  logger,
	}

	if listFlag {
		matches, err := runner.ResolveInputs()
		if err != nil {
			logger.Error("error when resolving input files", zap.Error(err))
			return 1
		}
		for _, m := range matches {
			if len(m.Groups) > 0 {
				fmt.Printf("%v %v\n", m.Path, m.Groups)
			} else {
				fmt.Println(m.Path)
			}
		}
		return 0
	}

	if watchFlag {
		w, err := extractor.NewWatcher(context.Background(), runner, logger.Named("Watcher"))
		if err != nil {
			logger.Error("error when creating watcher", zap.Error(err))
			return 1
		}
		if err := w.Start(); err != nil {
			logger.Error("watcher stopped with error", zap.Error(err))
			return 1
		}
		return 0
	}

	results, err := runner.Run()
	if err != nil {
		logger.Error("error when running extraction", zap.Error(err))
		return 1
	}
	return exitCode(results)
}

// exitCode is 1 when any file's terminal state is Failed, otherwise 0.
func exitCode(results []extractor.Result) int {
	for _, res := range results {
		if res.State == extractor.Failed {
			return 1
		}
	}
	return 0
}
