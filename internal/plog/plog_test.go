package plog

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func newTestLogger(verbose bool) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Logger{Logger: log.New(&buf, "", 0), Verbose: verbose}, &buf
}

func TestDebugfSuppressedWhenNotVerbose(t *testing.T) {
	l, buf := newTestLogger(false)
	l.Debugf("hello %d", 1)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestDebugfEmittedWhenVerbose(t *testing.T) {
	l, buf := newTestLogger(true)
	l.Debugf("hello %d", 1)
	if !strings.Contains(buf.String(), "DEBUG hello 1") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestWarnfAlwaysEmitted(t *testing.T) {
	l, buf := newTestLogger(false)
	l.Warnf("danger %s", "zone")
	if !strings.Contains(buf.String(), "WARN danger zone") {
		t.Errorf("expected warn output, got %q", buf.String())
	}
}
