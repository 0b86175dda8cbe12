// Package logfile names and opens the per-process trace log.
package logfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls where and how the log file is written.
type Options struct {
	Dir        string
	MaxSizeMB  int  // 0 disables rotation
	MaxBackups int  // rotated files kept; 0 keeps all
	Compress   bool // gzip rotated files
}

// Name returns the log file name for a process started at t:
// YYYYMMDD_HHMMSSmmm.log.
func Name(t time.Time) string {
	return fmt.Sprintf("%s%03d.log", t.Format("20060102_150405"), t.Nanosecond()/int(time.Millisecond))
}

// File is an open log file.
type File struct {
	io.WriteCloser
	Path string
}

// Open creates opts.Dir if needed and opens the log file for a process started
// at now. With MaxSizeMB > 0 the file is managed by lumberjack and rotated
// once it exceeds that size; otherwise it is a plain append-only file.
func Open(opts Options, now time.Time) (*File, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(dir, Name(now))

	if opts.MaxSizeMB > 0 {
		return &File{
			WriteCloser: &lumberjack.Logger{
				Filename:   path,
				MaxSize:    opts.MaxSizeMB,
				MaxBackups: opts.MaxBackups,
				Compress:   opts.Compress,
				LocalTime:  true,
			},
			Path: path,
		}, nil
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &File{WriteCloser: f, Path: path}, nil
}

// Sync commits the file to stable storage when the writer supports it.
func (f *File) Sync() error {
	if s, ok := f.WriteCloser.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}
