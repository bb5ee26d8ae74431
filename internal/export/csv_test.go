package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func TestRenderParsesBack(t *testing.T) {
	headers := []string{"id", "name", "notes"}
	rows := [][]interface{}{
		{uint(1), `Alice "Al" Smith`, "likes, commas"},
		{uint(2), "Bob\nNewline", nil},
	}

	out := Render(headers, rows)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output did not parse as CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0][1] != "name" {
		t.Errorf("header = %q, want %q", records[0][1], "name")
	}
	if records[1][1] != `Alice "Al" Smith` {
		t.Errorf("quoted cell = %q, want %q", records[1][1], `Alice "Al" Smith`)
	}
	if records[1][2] != "likes, commas" {
		t.Errorf("comma cell = %q, want %q", records[1][2], "likes, commas")
	}
	if records[2][2] != "" {
		t.Errorf("nil cell = %q, want empty", records[2][2])
	}
}

func TestFormatCell(t *testing.T) {
	str := "hello"
	num := 42
	price := 450000.5
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"nil", nil, ""},
		{"string", "x", "x"},
		{"string pointer", &str, "hello"},
		{"nil string pointer", (*string)(nil), ""},
		{"int", 7, "7"},
		{"int pointer", &num, "42"},
		{"uint", uint(9), "9"},
		{"float", 1234.5, "1234.5"},
		{"float pointer", &price, "450000.5"},
		{"bool", true, "true"},
		{"time", ts, "2025-03-14T09:26:53Z"},
		{"object as json", map[string]int{"a": 1}, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatCell(tt.in); got != tt.want {
				t.Errorf("formatCell(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	if got := Filename("buyers", now); got != "buyers-export-2025-06-01.csv" {
		t.Errorf("Filename = %q", got)
	}
}
