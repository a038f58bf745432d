// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.
package log

import (
	"context"
	"log/slog"
	"math"
	"os"
	"runtime"
	"time"
)

const errorKey = "LOG_ERROR"

const (
	levelMaxVerbosity slog.Level = math.MinInt
	LevelTrace        slog.Level = -8
	LevelDebug                   = slog.LevelDebug
	LevelInfo                    = slog.LevelInfo
	LevelWarn                    = slog.LevelWarn
	LevelError                   = slog.LevelError
	LevelCrit         slog.Level = 12
)

type levelInfo struct {
	level   slog.Level
	name    string
	aligned string
	color   string
}

// levels is ordered by legacy verbosity, 0 crit ... 5 trace.
var levels = []levelInfo{
	{LevelCrit, "crit", "CRIT ", "\x1b[35m"},
	{LevelError, "error", "ERROR", "\x1b[31m"},
	{LevelWarn, "warn", "WARN ", "\x1b[33m"},
	{LevelInfo, "info", "INFO ", "\x1b[32m"},
	{LevelDebug, "debug", "DEBUG", "\x1b[36m"},
	{LevelTrace, "trace", "TRACE", "\x1b[34m"},
}

func lookup(l slog.Level) (levelInfo, bool) {
	for _, info := range levels {
		if info.level == l {
			return info, true
		}
	}
	return levelInfo{}, false
}

// FromLegacyLevel maps a verbosity flag value to a level. Values above 5 clamp
// to trace, negative ones to crit.
func FromLegacyLevel(lvl int) slog.Level {
	switch {
	case lvl < 0:
		return LevelCrit
	case lvl >= len(levels):
		return LevelTrace
	}
	return levels[lvl].level
}

// LevelAlignedString returns the 5-character upper case name of l.
func LevelAlignedString(l slog.Level) string {
	if info, ok := lookup(l); ok {
		return info.aligned
	}
	return "unknown level"
}

// LevelString returns the lower case name of l.
func LevelString(l slog.Level) string {
	if info, ok := lookup(l); ok {
		return info.name
	}
	return "unknown"
}

func levelColor(l slog.Level) string {
	info, _ := lookup(l)
	return info.color
}

// A Logger writes key/value pairs to a Handler
type Logger interface {
	// With returns a new Logger that has this logger's attributes plus the given attributes
	With(ctx ...any) Logger

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)

	// Crit logs at the crit level and exits
	Crit(msg string, ctx ...any)

	// Write logs a message at the specified level
	Write(level slog.Level, msg string, attrs ...any)
}

type logger struct {
	inner *slog.Logger
}

// NewLogger returns a logger with the specified handler set
func NewLogger(h slog.Handler) Logger {
	return &logger{slog.New(h)}
}

// Write logs a message at the specified level. An odd trailing key is paired
// with nil and flagged under LOG_ERROR.
func (l *logger) Write(level slog.Level, msg string, attrs ...any) {
	if !l.inner.Enabled(context.Background(), level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	if len(attrs)%2 != 0 {
		attrs = append(attrs, nil, errorKey, "Normalized odd number of arguments by adding nil")
	}
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(attrs...)
	l.inner.Handler().Handle(context.Background(), r)
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{l.inner.With(ctx...)}
}

func (l *logger) Trace(msg string, ctx ...any) { l.Write(LevelTrace, msg, ctx...) }
func (l *logger) Debug(msg string, ctx ...any) { l.Write(LevelDebug, msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.Write(LevelInfo, msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.Write(LevelWarn, msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.Write(LevelError, msg, ctx...) }

func (l *logger) Crit(msg string, ctx ...any) {
	l.Write(LevelCrit, msg, ctx...)
	os.Exit(1)
}
