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

// cdlgen appends fake Campbell data logger records to a file so that
// loggersplit can be exercised against a continuously growing input without
// real logger hardware.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit"
)

var cr1000xPreamble = []string{
	`"TOA5","CR1000X","CR1000X","12345","CR1000X.Std.03.02","CPU:weather.CR1X","1234","Met"`,
	`"TIMESTAMP","RECORD","BattV","PTemp_C","AirT_C","RH","WS_ms"`,
	`"TS","RN","Volts","Deg C","Deg C","%","meters/second"`,
	`"","","Smp","Smp","Avg","Smp","Avg"`,
}

func main() {
	fileFlag := flag.String("file", "CR1000X_Met.dat", "The file to append records to. The file and its header are created if they do not exist.")
	typeFlag := flag.String("type", "CR1000X", "The logger family to generate records for. CR1000X or CR23.")
	sleepTime := flag.Duration("sleepTime", time.Second, "The duration to sleep between records")
	stepFlag := flag.Duration("step", time.Minute, "How much the record timestamp advances per record")
	flag.Parse()

	cr23 := strings.EqualFold(*typeFlag, "CR23")

	_, statErr := os.Stat(*fileFlag)
	isNew := os.IsNotExist(statErr)
	f, err := os.OpenFile(*fileFlag, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal("Got error when opening file "+*fileFlag+":", err)
	}
	defer f.Close()

	if isNew && !cr23 {
		for _, line := range cr1000xPreamble {
			fmt.Fprintln(f, line)
		}
	}

	record := 0
	t := time.Now().Truncate(time.Minute)
	for {
		var line string
		if cr23 {
			line = fmt.Sprintf("213,%d,%d,%d%02d,%v,%v,%v",
				t.Year(), t.YearDay(), t.Hour(), t.Minute(),
				gofakeit.Generate("##.##"), gofakeit.Generate("###.#"), gofakeit.Generate("##.#"))
		} else {
			line = fmt.Sprintf(`"%v",%v,%v,%v,%v,%v,%v`,
				t.Format("2006-01-02 15:04:05"), record,
				gofakeit.Generate("1#.##"), gofakeit.Generate("2#.##"),
				gofakeit.Generate("1#.##"), gofakeit.Generate("##.#"), gofakeit.Generate("#.##"))
		}
		if _, err := fmt.Fprintln(f, line); err != nil {
			log.Fatal("Got error when writing to file "+*fileFlag+":", err)
		}
		record++
		t = t.Add(*stepFlag)
		if sleepTime.Nanoseconds() != 0 {
			time.Sleep(*sleepTime)
		}
	}
}
