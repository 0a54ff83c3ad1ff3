// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log layers human-oriented console output over zerolog.
package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	recordIndent = 4  // spaces to indent record entries
	kindWidth    = 17 // width of the kind column
	pathWidth    = 40 // base width for the target path
)

// 🎯 RecordOp represents one modification record's application for logging
type RecordOp struct {
	Kind   string // modification kind (CREATE_FILE, ...)
	Path   string // tree-relative target path
	Failed bool   // whether the record failed
	DryRun bool   // whether this was a dry-run pass
	Detail string // outcome detail (error text, match info)
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, nil if absent
func FromContext(ctx context.Context) *Logger {
	logger, _ := ctx.Value(contextKey{}).(*Logger)
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatRecordOp formats a record operation for display
func (l *Logger) formatRecordOp(op RecordOp) string {
	symbol := '✓'
	symbolColor := color.FgGreen
	status := "applied"
	switch {
	case op.Failed:
		symbol = '✗'
		symbolColor = color.FgRed
		status = "failed"
	case op.DryRun:
		symbol = '•'
		symbolColor = color.FgCyan
		status = "would apply"
	}

	line := fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", recordIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		color.New(color.FgMagenta).Sprint(fmt.Sprintf("%-*s", kindWidth, op.Kind)),
		fmt.Sprintf("%-*s", pathWidth, op.Path),
		status)

	if op.Detail != "" {
		line += " " + color.New(color.Faint).Sprint("("+op.Detail+")")
	}
	return line
}

// 📝 LogRecordOp logs one record's application to console and zerolog
func (l *Logger) LogRecordOp(ctx context.Context, op RecordOp) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatRecordOp(op))

	evt := l.zlog.Info()
	if op.Failed {
		evt = l.zlog.Error()
	}
	evt.
		Str("kind", op.Kind).
		Str("path", op.Path).
		Bool("failed", op.Failed).
		Bool("dry_run", op.DryRun).
		Str("detail", op.Detail).
		Msg("record applied")
}

// 📝 Header logs a run header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("patchrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Diff prints a dry-run diff preview block
func (l *Logger) Diff(path, preview string) {
	if preview == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s\n%s\n", color.New(color.Faint).Sprint("--- "+path), preview)
}
