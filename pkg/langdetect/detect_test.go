package langdetect_test

import (
	"testing"

	"github.com/yaklabco/mdfix/pkg/langdetect"
)

func TestHint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		lines  []string
		want   string
		wantOK bool
	}{
		{"python keyword", []string{"# python example"}, "python", true},
		{"case insensitive", []string{"Run this in BASH"}, "bash", true},
		{"bash outranks python", []string{"python -m venv && source activate.sh"}, "bash", true},
		{"json shadowed by js keyword", []string{`{"a": 1}`, "data.json"}, "javascript", true},
		{"yaml", []string{"config.yml"}, "yaml", true},
		{"html via xml", []string{"<xml/>"}, "html", true},
		{"css", []string{"body { color: red } /* css */"}, "css", true},
		{"sql", []string{"-- sql query"}, "sql", true},
		{"first matching line wins", []string{"plain words", "def f(): # python", "echo bash"}, "python", true},
		{"no hint", []string{"code", "more"}, "", false},
		{"empty", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := langdetect.Hint(tt.lines)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Hint(%q) = (%q, %v), want (%q, %v)", tt.lines, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"shebang bash", "#!/bin/bash\necho hello", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"go package", "package main\n\nfunc main() {}", "go"},
		{"json object", `{"key": "value", "n": 1}`, "json"},
		{"json array", `[1, 2, 3]`, "json"},
		{"html document", "<!DOCTYPE html>\n<html></html>", "html"},
		{"sql", "select * from users;", "sql"},
		{"dockerfile", "FROM golang:1.25\nRUN go build", "dockerfile"},
		{"rust", "fn main() {\n    let mut x = 1;\n}", "rust"},
		{"yaml mapping", "name: demo\nversion: 2\n", "yaml"},
		{"single yaml key is not enough", "name: demo", "text"},
		{"prose", "just some words", "text"},
		{"broken json", `{"key": `, "text"},
		{"empty falls back", "", "text"},
		{"whitespace falls back", "  \n\t", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := langdetect.Detect([]byte(tt.content), "text"); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
