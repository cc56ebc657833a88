package main

import (
	"testing"

	"github.com/jackbister/loggersplit/internal/extractor"
)

func TestExitCode(t *testing.T) {
	if code := exitCode(nil); code != 0 {
		t.Error("expected exit code 0 for no results, got=", code)
	}
	results := []extractor.Result{
		{State: extractor.Completed},
		{State: extractor.CompletedWithErrors},
	}
	if code := exitCode(results); code != 0 {
		t.Error("expected exit code 0 when no file failed, got=", code)
	}
	results = append(results, extractor.Result{State: extractor.Failed})
	if code := exitCode(results); code != 1 {
		t.Error("expected exit code 1 when a file failed, got=", code)
	}
}
