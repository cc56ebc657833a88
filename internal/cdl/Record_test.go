package cdl

import (
	"errors"
	"testing"
	"time"
)

func TestDecode_CR1000X(t *testing.T) {
	rec, err := Decode(`"2009-11-30 23:59:00",19,272.7,272,96.6`, FormatCR1000X)
	if err != nil {
		t.Fatal("expected line to decode but got error:", err)
	}
	expected := time.Date(2009, 11, 30, 23, 59, 0, 0, time.Local)
	if !rec.Timestamp.Equal(expected) {
		t.Error("wrong timestamp, expected=", expected, "got=", rec.Timestamp)
	}
	if len(rec.Fields) != 5 {
		t.Fatal("expected 5 fields but got", len(rec.Fields))
	}
	if rec.Fields[0] != "2009-11-30 23:59:00" {
		t.Error("expected timestamp field to be de-quoted, got=", rec.Fields[0])
	}
	if rec.Fields[2] != "272.7" {
		t.Error("wrong field value, expected=272.7 got=", rec.Fields[2])
	}
}

func TestDecode_CR1000X_MinuteResolution(t *testing.T) {
	rec, err := Decode(`"2009-11-30 23:59",19,272.7`, FormatCR1000X)
	if err != nil {
		t.Fatal("expected line without seconds to decode but got error:", err)
	}
	expected := time.Date(2009, 11, 30, 23, 59, 0, 0, time.Local)
	if !rec.Timestamp.Equal(expected) {
		t.Error("wrong timestamp, expected=", expected, "got=", rec.Timestamp)
	}
}

func TestDecode_CR1000X_QuotedStringField(t *testing.T) {
	rec, err := Decode(`"2009-11-30 23:59:00",19,"OK"`, FormatCR1000X)
	if err != nil {
		t.Fatal("expected line to decode but got error:", err)
	}
	if rec.Fields[2] != "OK" {
		t.Error("expected quoted field to be de-quoted, got=", rec.Fields[2])
	}
}

func TestDecode_CR1000X_NoTimestamp(t *testing.T) {
	_, err := Decode(`"BattV","Volts"`, FormatCR1000X)
	var parseErr *RecordParseError
	if !errors.As(err, &parseErr) {
		t.Error("expected RecordParseError for line without timestamp but got:", err)
	}
}

func TestDecode_CR1000X_MalformedQuoting(t *testing.T) {
	_, err := Decode(`"2009-11-30 23:59:00",19,"272.7`, FormatCR1000X)
	var parseErr *RecordParseError
	if !errors.As(err, &parseErr) {
		t.Error("expected RecordParseError for unclosed quote but got:", err)
	}
}

func TestDecode_CR23(t *testing.T) {
	// year 2010, 49th day of the year, hour 2, minute 4
	rec, err := Decode("213,2010,49,204,13.4,290.1", FormatCR23)
	if err != nil {
		t.Fatal("expected line to decode but got error:", err)
	}
	expected := time.Date(2010, 2, 18, 2, 4, 0, 0, time.Local)
	if !rec.Timestamp.Equal(expected) {
		t.Error("wrong timestamp, expected=", expected, "got=", rec.Timestamp)
	}
	if len(rec.Fields) != 6 {
		t.Error("expected 6 fields but got", len(rec.Fields))
	}
}

func TestDecode_CR23_FourDigitTime(t *testing.T) {
	rec, err := Decode("213,2010,1,2359,1.0", FormatCR23)
	if err != nil {
		t.Fatal("expected line to decode but got error:", err)
	}
	expected := time.Date(2010, 1, 1, 23, 59, 0, 0, time.Local)
	if !rec.Timestamp.Equal(expected) {
		t.Error("wrong timestamp, expected=", expected, "got=", rec.Timestamp)
	}
}

func TestDecode_CR23_DaylightSavingTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("could not load timezone database:", err)
	}
	originalLocal := time.Local
	time.Local = loc
	defer func() { time.Local = originalLocal }()

	// Day 100 of 2010 is after the spring transition. The wall clock must
	// match the encoded hhmm exactly, with no DST shift.
	rec, err := Decode("213,2010,100,1200,1.0", FormatCR23)
	if err != nil {
		t.Fatal("expected line to decode but got error:", err)
	}
	expected := time.Date(2010, 4, 10, 12, 0, 0, 0, loc)
	if !rec.Timestamp.Equal(expected) {
		t.Error("wrong timestamp, expected=", expected, "got=", rec.Timestamp)
	}
	if rec.Timestamp.Hour() != 12 {
		t.Error("expected hour 12 on the wall clock, got=", rec.Timestamp.Hour())
	}
}

func TestDecode_CR23_TooFewFields(t *testing.T) {
	_, err := Decode("213,2010,49", FormatCR23)
	var parseErr *RecordParseError
	if !errors.As(err, &parseErr) {
		t.Error("expected RecordParseError for too few fields but got:", err)
	}
}

func TestDecode_CR23_NonNumericTime(t *testing.T) {
	_, err := Decode("213,hello,49,204,1.0", FormatCR23)
	var parseErr *RecordParseError
	if !errors.As(err, &parseErr) {
		t.Error("expected RecordParseError for non-numeric time field but got:", err)
	}
}

func TestParseFormat(t *testing.T) {
	for _, tag := range []string{"CR1000X", "cr1000", "CR3000", "CRXXXX"} {
		f, err := ParseFormat(tag)
		if err != nil || f != FormatCR1000X {
			t.Error("expected tag", tag, "to map to FormatCR1000X, got=", f, "err=", err)
		}
	}
	for _, tag := range []string{"CR23", "cr10", "CRXX"} {
		f, err := ParseFormat(tag)
		if err != nil || f != FormatCR23 {
			t.Error("expected tag", tag, "to map to FormatCR23, got=", f, "err=", err)
		}
	}
	_, err := ParseFormat("CR9000")
	var unsupportedErr *UnsupportedTypeError
	if !errors.As(err, &unsupportedErr) {
		t.Error("expected UnsupportedTypeError for unknown tag but got:", err)
	}
}
