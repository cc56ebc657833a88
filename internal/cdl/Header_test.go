package cdl

import (
	"errors"
	"strings"
	"testing"
)

const toa5Preamble = `"TOA5","CR1000X","CR1000X","12345","CR1000X.Std.03.02","CPU:met.CR1X","1234","Met"
"TIMESTAMP","RECORD","BattV","PTemp_C"
"TS","RN","Volts","Deg C"
"","","Smp","Smp"
`

func TestReadHeader_CR1000X(t *testing.T) {
	content := toa5Preamble + `"2009-11-30 23:59:00",19,13.2,21.5` + "\n"
	h, err := ReadHeader(strings.NewReader(content), FormatCR1000X)
	if err != nil {
		t.Fatal("expected header to parse but got error:", err)
	}
	if h.Lines != 4 {
		t.Error("wrong number of header lines, expected=4 got=", h.Lines)
	}
	if h.Bytes != int64(len(toa5Preamble)) {
		t.Error("wrong header byte count, expected=", len(toa5Preamble), "got=", h.Bytes)
	}
	expectedColumns := []string{"TIMESTAMP", "RECORD", "BattV", "PTemp_C"}
	if len(h.Columns) != len(expectedColumns) {
		t.Fatal("wrong number of columns, expected=", len(expectedColumns), "got=", len(h.Columns))
	}
	for i, c := range expectedColumns {
		if h.Columns[i] != c {
			t.Error("wrong column at index", i, "expected=", c, "got=", h.Columns[i])
		}
	}
}

func TestReadHeader_CR1000X_HeaderOnlyFile(t *testing.T) {
	h, err := ReadHeader(strings.NewReader(toa5Preamble), FormatCR1000X)
	if err != nil {
		t.Fatal("expected header-only file to parse but got error:", err)
	}
	if h.Lines != 4 {
		t.Error("wrong number of header lines, expected=4 got=", h.Lines)
	}
}

func TestReadHeader_CR1000X_PartialTrailingLine(t *testing.T) {
	// The column row has not been fully appended yet. The partial line must
	// not be counted as a preamble row.
	content := `"TOA5","CR1000X"` + "\n" + `"TIMESTAMP","REC`
	_, err := ReadHeader(strings.NewReader(content), FormatCR1000X)
	var headerErr *MalformedHeaderError
	if !errors.As(err, &headerErr) {
		t.Error("expected MalformedHeaderError for incomplete preamble but got:", err)
	}
}

func TestReadHeader_CR1000X_TooFewRows(t *testing.T) {
	content := `"TOA5","CR1000X"` + "\n" + `"2009-11-30 23:59:00",19,13.2` + "\n"
	_, err := ReadHeader(strings.NewReader(content), FormatCR1000X)
	var headerErr *MalformedHeaderError
	if !errors.As(err, &headerErr) {
		t.Error("expected MalformedHeaderError for single preamble row but got:", err)
	}
}

func TestReadHeader_CR23(t *testing.T) {
	content := "213,2010,49,204,13.4\n213,2010,49,205,13.5\n"
	h, err := ReadHeader(strings.NewReader(content), FormatCR23)
	if err != nil {
		t.Fatal("expected CR23 header to parse but got error:", err)
	}
	if h.Lines != 0 || h.Bytes != 0 {
		t.Error("expected CR23 files to have no preamble, got lines=", h.Lines, "bytes=", h.Bytes)
	}
	if h.Columns != nil {
		t.Error("expected CR23 files to have no column schema, got=", h.Columns)
	}
}
