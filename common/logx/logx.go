package logx

import (
	"log/slog"
	"sync/atomic"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nop struct{}

func (nop) Debug(string, ...any) {}
func (nop) Info(string, ...any)  {}
func (nop) Warn(string, ...any)  {}
func (nop) Error(string, ...any) {}

// holder keeps atomic.Value storing a single concrete type.
type holder struct{ l Logger }

var current atomic.Value

func init() {
	current.Store(holder{l: slog.Default()})
}

func L() Logger {
	return current.Load().(holder).l
}

// SetLogger replaces the package logger. A nil logger silences output.
func SetLogger(l Logger) {
	if l == nil {
		l = nop{}
	}
	current.Store(holder{l: l})
}

// With returns L() with args prepended to every record.
func With(args ...any) Logger {
	return with{args: args}
}

type with struct{ args []any }

func (w with) Debug(msg string, args ...any) { L().Debug(msg, w.merge(args)...) }
func (w with) Info(msg string, args ...any)  { L().Info(msg, w.merge(args)...) }
func (w with) Warn(msg string, args ...any)  { L().Warn(msg, w.merge(args)...) }
func (w with) Error(msg string, args ...any) { L().Error(msg, w.merge(args)...) }

func (w with) merge(args []any) []any {
	out := make([]any, 0, len(w.args)+len(args))
	out = append(out, w.args...)
	return append(out, args...)
}
