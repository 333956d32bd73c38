package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestHours(t *testing.T) {
	cases := map[float64]string{
		0:    "0",
		0.3:  "0.3",
		1:    "1",
		12.5: "12.5",
	}
	for in, want := range cases {
		if got := Hours(in); got != want {
			t.Errorf("Hours(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTaskName(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	if got := TaskName(""); got != "<none>" {
		t.Errorf("expected placeholder, got %q", got)
	}
	if got := TaskName("Task1"); got != "Task1" {
		t.Errorf("expected plain name, got %q", got)
	}
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	if !strings.Contains(buf.String(), "T   M   S") {
		t.Errorf("expected banner text, got %q", buf.String())
	}
}
