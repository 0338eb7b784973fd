package main

import (
	"strings"
	"testing"

	"github.com/gubarz/vardbx/internal/config"
)

type captureClipboard struct {
	text string
}

func (c *captureClipboard) Copy(text string) error {
	c.text = text
	return nil
}

func TestEmitCopyMode(t *testing.T) {
	capture := &captureClipboard{}
	old := clip
	clip = capture
	defer func() { clip = old }()

	config.SetOutput("copy")
	defer config.SetOutput("json")

	if err := emit(map[string]string{"eapi": "8"}); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	if !strings.Contains(capture.text, `"eapi": "8"`) {
		t.Errorf("clipboard received %q, want it to contain the rendered JSON", capture.text)
	}
}

func TestEmitJSONModeLeavesClipboardAlone(t *testing.T) {
	capture := &captureClipboard{}
	old := clip
	clip = capture
	defer func() { clip = old }()

	config.SetOutput("json")

	if err := emit(map[string]string{"slot": "0"}); err != nil {
		t.Fatalf("emit failed: %v", err)
	}
	if capture.text != "" {
		t.Errorf("json mode wrote to the clipboard: %q", capture.text)
	}
}
