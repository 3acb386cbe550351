// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

// Package clog provides context aware logging.
// It stores a run id and labels (e.g. the header file being processed)
// in the context, and adds them to each log entry written by glog.
package clog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/logging"
	"github.com/golang/glog"
)

type contextKeyType int

var contextKey contextKeyType

// DefaultFormatter formats an entry as "[run] key=value ... payload".
func DefaultFormatter(e logging.Entry) string {
	var sb strings.Builder
	if e.Trace != "" {
		fmt.Fprintf(&sb, "[%s] ", e.Trace)
	}
	keys := make([]string, 0, len(e.Labels))
	for k := range e.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s=%s ", k, e.Labels[k])
	}
	fmt.Fprintf(&sb, "%v", e.Payload)
	return sb.String()
}

var defaultLogger = &Logger{Formatter: DefaultFormatter}

// New creates a new Logger for the run.
func New(runID string) *Logger {
	return &Logger{
		Formatter: DefaultFormatter,
		trace:     runID,
	}
}

// NewContext sets the given logger to the context.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey, logger)
}

// NewSpan sets a sub logger with additional labels to the context.
func NewSpan(ctx context.Context, labels map[string]string) context.Context {
	return NewContext(ctx, FromContext(ctx).Span(labels))
}

// FromContext returns a logger in the context, or the default logger
// if it's not set.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey).(*Logger)
	if !ok || logger == nil {
		return defaultLogger
	}
	return logger
}

// Logger holds the run id and labels of the context.
type Logger struct {
	// Formatter is a formatter of the entry for glog.
	Formatter func(e logging.Entry) string

	trace  string
	labels map[string]string
}

// Span returns a sub logger that has labels in addition to l's labels.
func (l *Logger) Span(labels map[string]string) *Logger {
	merged := make(map[string]string, len(l.labels)+len(labels))
	for k, v := range l.labels {
		merged[k] = v
	}
	for k, v := range labels {
		merged[k] = v
	}
	return &Logger{
		Formatter: l.Formatter,
		trace:     l.trace,
		labels:    merged,
	}
}

// Entry creates a new log entry for the given severity.
func (l *Logger) Entry(severity logging.Severity, payload any) logging.Entry {
	return logging.Entry{
		Timestamp: time.Now(),
		Severity:  severity,
		Payload:   payload,
		Labels:    l.labels,
		Trace:     l.trace,
	}
}

// log must be called directly from an exported logging function,
// so depth 2 points glog at the caller of that function.
func (l *Logger) log(e logging.Entry) {
	format := l.Formatter
	if format == nil {
		format = DefaultFormatter
	}
	msg := format(e)
	switch e.Severity {
	case logging.Info:
		glog.InfoDepth(2, msg)
	case logging.Warning:
		glog.WarningDepth(2, msg)
	case logging.Error:
		glog.ErrorDepth(2, msg)
	default:
		glog.InfoDepth(2, fmt.Sprintf("%s %s", e.Severity, msg))
	}
}

// Infof logs at info log level in the manner of fmt.Printf.
func (l *Logger) Infof(format string, args ...any) {
	l.log(l.Entry(logging.Info, fmt.Sprintf(format, args...)))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func (l *Logger) Warningf(format string, args ...any) {
	l.log(l.Entry(logging.Warning, fmt.Sprintf(format, args...)))
}

// Errorf logs at error log level in the manner of fmt.Printf.
func (l *Logger) Errorf(format string, args ...any) {
	l.log(l.Entry(logging.Error, fmt.Sprintf(format, args...)))
}

// Infof logs at info log level in the manner of fmt.Printf.
func Infof(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.log(logger.Entry(logging.Info, fmt.Sprintf(format, args...)))
}

// Warningf logs at warning log level in the manner of fmt.Printf.
func Warningf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.log(logger.Entry(logging.Warning, fmt.Sprintf(format, args...)))
}

// Errorf logs at error log level in the manner of fmt.Printf.
func Errorf(ctx context.Context, format string, args ...any) {
	logger := FromContext(ctx)
	logger.log(logger.Entry(logging.Error, fmt.Sprintf(format, args...)))
}

// V checks at verbose log level.
func V(ctx context.Context, level int) bool {
	return bool(glog.V(glog.Level(level)))
}

// Close flushes log entries.
func (l *Logger) Close() {
	glog.Flush()
}
