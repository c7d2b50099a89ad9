package log

import (
	"errors"
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for log files.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// ErrEmptyLogPath is returned by NewRotatingFile for an empty path.
var ErrEmptyLogPath = errors.New("log file path is empty")

// NewRotatingFile returns a writer that appends to path and rotates it once
// it reaches DefaultMaxSizeMB. Close it when done.
func NewRotatingFile(path string) (io.WriteCloser, error) {
	if path == "" {
		return nil, ErrEmptyLogPath
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
		Compress:   true,
	}, nil
}

// Tee writes every record to both console and file. A nil file returns console.
func Tee(console io.Writer, file io.Writer) io.Writer {
	if file == nil {
		return console
	}
	return io.MultiWriter(console, file)
}
