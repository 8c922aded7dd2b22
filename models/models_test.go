package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate_BothSeparators(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-03-01", NewDate(2024, time.March, 1)},
		{"2024/03/01", NewDate(2024, time.March, 1)},
		{"9999-12-31", Never()},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Fatalf("ParseDate(%q) failed: %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDate_RejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024-13-01", "01-02-2024", "2024.03.01"} {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) should have failed", in)
		}
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.July, 15)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `"2024-07-15"` {
		t.Errorf("Marshal = %s, want %q", b, "2024-07-15")
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %v, want %v", back, d)
	}

	// Clients may send slash-separated dates.
	if err := json.Unmarshal([]byte(`"2024/07/15"`), &back); err != nil {
		t.Fatalf("Unmarshal slash form failed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("slash form = %v, want %v", back, d)
	}
}

func TestDate_ScanAndValue(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time.Time) failed: %v", err)
	}
	if !d.Equal(NewDate(2024, time.May, 2)) {
		t.Errorf("Scan result = %v", d)
	}

	if err := d.Scan([]byte("2024-05-03")); err != nil {
		t.Fatalf("Scan([]byte) failed: %v", err)
	}
	if !d.Equal(NewDate(2024, time.May, 3)) {
		t.Errorf("Scan result = %v", d)
	}

	if err := d.Scan(42); err == nil {
		t.Error("Scan(int) should have failed")
	}

	v, err := NewDate(2024, time.May, 4).Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v != "2024-05-04" {
		t.Errorf("Value = %v, want 2024-05-04", v)
	}
}

func TestParseSortOrder(t *testing.T) {
	for _, s := range []string{"StartAsc", "StartDesc", "EndAsc", "EndDesc", "UpdateAsc", "UpdateDesc"} {
		got, err := ParseSortOrder(s)
		if err != nil {
			t.Fatalf("ParseSortOrder(%q) failed: %v", s, err)
		}
		if got.String() != s {
			t.Errorf("ParseSortOrder(%q) = %q", s, got)
		}
	}
	if _, err := ParseSortOrder("Random"); err == nil {
		t.Error("ParseSortOrder(\"Random\") should have failed")
	}
}
