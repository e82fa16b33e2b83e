// Package logutil provides logging utilities.
//
// All loggers share one output and one level, both of which may be changed at
// any time; loggers obtained before such a change pick it up. The output is
// discarded until SetOutput or SetOutputFile is called.
package logutil

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	out   = &switchWriter{w: io.Discard}
	level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	core  = zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()), out, level)
)

// GetLogger gets a logger with the given name. The name conventionally looks
// like "[bind] ", matching the prefixes used in log output.
func GetLogger(name string) *zap.Logger {
	return zap.New(core).Named(strings.Trim(name, "[] "))
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile,
// it is closed.
func SetOutput(newout io.Writer) {
	out.set(newout)
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger to
// the named file. If the old output was a file opened by SetOutputFile, it is
// closed. The new file is truncated. SetOutFile("") is equivalent to
// SetOutput(io.Discard).
func SetOutputFile(fname string) error {
	if fname == "" {
		SetOutput(io.Discard)
		return nil
	}
	file, err := os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	SetOutput(file)
	return nil
}

// SetLevel sets the minimum level of entries written by all loggers. The
// level is one of the names understood by zapcore, such as "debug" or
// "warn".
func SetLevel(name string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return err
	}
	level.SetLevel(l)
	return nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	return cfg
}

// switchWriter is a zapcore.WriteSyncer whose destination can be swapped.
type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (sw *switchWriter) set(w io.Writer) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if file, ok := sw.w.(*os.File); ok && file != os.Stderr && file != os.Stdout {
		file.Close()
	}
	sw.w = w
}

func (sw *switchWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

func (sw *switchWriter) Sync() error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if s, ok := sw.w.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}
