// Package logging routes the standard logger to a durable sink: every line
// goes to stderr and <dir>/logs.txt, errors additionally to <dir>/errors.txt.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

var (
	mu         sync.Mutex
	errorsFile io.Writer = io.Discard
	closers    []io.Closer
)

// Setup opens the log files in dir and redirects the standard logger.
// The returned function closes them.
func Setup(dir string) (func(), error) {
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: création du dossier %s: %w", dir, err)
	}
	logs, err := os.OpenFile(filepath.Join(dir, "logs.txt"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: ouverture logs.txt: %w", err)
	}
	errs, err := os.OpenFile(filepath.Join(dir, "errors.txt"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("logging: ouverture errors.txt: %w", err)
	}

	mu.Lock()
	errorsFile = errs
	closers = []io.Closer{logs, errs}
	mu.Unlock()

	log.SetOutput(io.MultiWriter(os.Stderr, logs))
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	return func() {
		mu.Lock()
		defer mu.Unlock()
		log.SetOutput(os.Stderr)
		errorsFile = io.Discard
		for _, c := range closers {
			_ = c.Close()
		}
		closers = nil
	}, nil
}

// Error logs msg with err and appends a delimited block to errors.txt.
func Error(msg string, err error) {
	if err != nil {
		log.Printf("❌ %s: %v", msg, err)
	} else {
		log.Printf("❌ %s", msg)
	}
	writeBlock(msg, err, "")
}

// Recover is deferred at goroutine boundaries. An uncaught panic leaves the
// process in an unknown state: it is logged durably and the process exits 1.
func Recover() {
	r := recover()
	if r == nil {
		return
	}
	log.Printf("❌ Panique non rattrapée: %v", r)
	writeBlock("Panique non rattrapée", fmt.Errorf("%v", r), string(debug.Stack()))
	os.Exit(1)
}

func writeBlock(msg string, err error, stack string) {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "[%s] ERROR: %s\n", time.Now().UTC().Format(time.RFC3339Nano), msg)
	if err != nil {
		fmt.Fprintf(&b, "  %T: %v\n", err, err)
	}
	if stack != "" {
		b.WriteString(stack)
		if !strings.HasSuffix(stack, "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString("---\n")

	mu.Lock()
	defer mu.Unlock()
	_, _ = io.WriteString(errorsFile, b.String())
}
