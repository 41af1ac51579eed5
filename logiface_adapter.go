// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package schedcore

import "github.com/joeycumines/logiface"

// LogifaceEvent is the minimal logiface.Event implementation the scheduler's
// logiface adapter drives; it buffers a message and a set of fields for
// whatever Writer the caller configured, and exposes them read-only via
// Level, Message, and Fields.
type LogifaceEvent struct {
	logiface.UnimplementedEvent
	level  logiface.Level
	msg    string
	fields map[string]any
}

func newLogifaceEvent(level logiface.Level) *LogifaceEvent {
	return &LogifaceEvent{level: level}
}

func (e *LogifaceEvent) Level() logiface.Level { return e.level }

func (e *LogifaceEvent) AddField(key string, val any) {
	if e.fields == nil {
		e.fields = make(map[string]any, 8)
	}
	e.fields[key] = val
}

func (e *LogifaceEvent) AddMessage(msg string) bool {
	e.msg = msg
	return true
}

// Message and Fields expose the buffered event content to a Writer.
func (e *LogifaceEvent) Message() string        { return e.msg }
func (e *LogifaceEvent) Fields() map[string]any { return e.fields }

// levelToLogiface maps this package's four-level LogLevel onto logiface's
// syslog-derived Level, the same mapping direction spec.md's GLOSSARY
// describes for "the external timer device" style collaborators: this
// package owns the coarser scale, the adapter widens it to the richer one.
func levelToLogiface(level LogLevel) logiface.Level {
	switch level {
	case LevelDebug:
		return logiface.LevelDebug
	case LevelInfo:
		return logiface.LevelInformational
	case LevelWarn:
		return logiface.LevelWarning
	case LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}

// LogifaceLogger adapts a logiface.Logger onto this package's Logger
// interface, so a caller that has already standardized application logging
// on logiface can route scheduling events (thread create/exit, context
// switches) through the same writers and modifiers as
// everything else, instead of maintaining a second logging stack.
type LogifaceLogger struct {
	logger *logiface.Logger[*LogifaceEvent]
}

// NewLogifaceLogger builds a LogifaceLogger that writes through writer,
// filtering at level (see logiface.WithLevel).
func NewLogifaceLogger(writer logiface.Writer[*LogifaceEvent], level logiface.Level) *LogifaceLogger {
	return &LogifaceLogger{
		logger: logiface.New[*LogifaceEvent](
			logiface.WithLevel[*LogifaceEvent](level),
			logiface.WithEventFactory[*LogifaceEvent](logiface.NewEventFactoryFunc(newLogifaceEvent)),
			logiface.WithWriter[*LogifaceEvent](writer),
		),
	}
}

// NewLogifaceLoggerFunc is a convenience wrapper for the common case of a
// Writer implemented as a plain function, mirroring logiface.WriterFunc.
func NewLogifaceLoggerFunc(write func(e *LogifaceEvent) error, level logiface.Level) *LogifaceLogger {
	return NewLogifaceLogger(logiface.WriterFunc[*LogifaceEvent](write), level)
}

func (l *LogifaceLogger) IsEnabled(level LogLevel) bool {
	return l.logger.Build(levelToLogiface(level)).Enabled()
}

func (l *LogifaceLogger) Log(entry LogEntry) {
	b := l.logger.Build(levelToLogiface(entry.Level)).
		Str("category", entry.Category).
		Int("thread", int(entry.ThreadID))
	for k, v := range entry.Context {
		b = b.Any(k, v)
	}
	b.Log(entry.Message)
}
