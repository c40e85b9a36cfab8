//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

type hostLogger struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

// newHostLogger logs to stdout and, when path is set, to a rotated file.
func newHostLogger(path string) *hostLogger {
	if path == "" {
		return &hostLogger{w: os.Stdout}
	}
	rot := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1, // megabytes
		MaxBackups: 3,
		MaxAge:     7, // days
	}
	return &hostLogger{w: io.MultiWriter(os.Stdout, rot), closer: rot}
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

func (l *hostLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
