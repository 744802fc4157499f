// Package xlog is the registry's structured logger. It mirrors the shape of
// go-ethereum's own log package — leveled records with key/value context and
// caller information — rebuilt on top of log/slog instead of go-ethereum's
// hand-rolled record format.
package xlog

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-stack/stack"
)

// Lvl is a log level, named the way go-ethereum names its own.
type Lvl int

const (
	LvlCrit Lvl = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
)

func (l Lvl) slogLevel() slog.Level {
	switch l {
	case LvlCrit, LvlError:
		return slog.LevelError
	case LvlWarn:
		return slog.LevelWarn
	case LvlDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Logger is a minimal structured logger. Root, and every logger derived
// from it with New, logs to stderr.
type Logger struct {
	base *slog.Logger
	ctx  []any
}

var root = &Logger{base: slog.New(slog.NewTextHandler(os.Stderr, nil))}

// Root returns the process-wide default logger.
func Root() *Logger { return root }

// New returns a child logger with the given persistent key/value context
// appended to every record it emits.
func (l *Logger) New(ctx ...any) *Logger {
	return &Logger{base: l.base, ctx: append(append([]any{}, l.ctx...), ctx...)}
}

func (l *Logger) log(lvl Lvl, msg string, kv []any) {
	caller := stack.Caller(2)
	args := append(append([]any{"caller", caller.String()}, l.ctx...), kv...)
	l.base.Log(context.Background(), lvl.slogLevel(), msg, args...)
}

func (l *Logger) Info(msg string, kv ...any)  { l.log(LvlInfo, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.log(LvlWarn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.log(LvlError, msg, kv) }
func (l *Logger) Debug(msg string, kv ...any) { l.log(LvlDebug, msg, kv) }

// Crit logs at the highest severity then terminates the process, matching
// go-ethereum's behavior for conditions the builder treats as fatal
// misconfiguration (never called from library code paths reachable at
// runtime after construction — only from cmd-style callers, which this
// module does not have; kept for interface parity with go-ethereum's
// logger and unused here).
func (l *Logger) Crit(msg string, kv ...any) {
	l.log(LvlCrit, msg, kv)
	os.Exit(1)
}
