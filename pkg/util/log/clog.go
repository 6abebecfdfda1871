// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/redact"
	"github.com/cockroachdb/sqlbinder/pkg/util/syncutil"
)

// Severity identifies the sort of log: info, warning etc.
type Severity int32

// The severities, in increasing order of importance.
const (
	Severity_UNKNOWN Severity = iota
	Severity_INFO
	Severity_WARNING
	Severity_ERROR
	Severity_FATAL
)

var severityChar = [...]byte{'U', 'I', 'W', 'E', 'F'}

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case Severity_INFO:
		return "INFO"
	case Severity_WARNING:
		return "WARNING"
	case Severity_ERROR:
		return "ERROR"
	case Severity_FATAL:
		return "FATAL"
	}
	return "UNKNOWN"
}

// loggingT collects all the global state of the logging setup.
type loggingT struct {
	// verbosity is the V logging level; accessed atomically.
	verbosity int32

	mu struct {
		syncutil.Mutex
		out io.Writer
		// redactable causes redaction markers to be kept in the output.
		redactable bool
		// color is set when out is a terminal that supports colors.
		color *colorProfile
	}
}

var logging = func() *loggingT {
	l := &loggingT{}
	l.mu.out = os.Stderr
	l.mu.color = colorProfileFor(os.Stderr)
	return l
}()

// SetOutput redirects log output to w and returns the previous writer.
func SetOutput(w io.Writer) (prev io.Writer) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	prev = logging.mu.out
	logging.mu.out = w
	if f, ok := w.(*os.File); ok {
		logging.mu.color = colorProfileFor(f)
	} else {
		logging.mu.color = nil
	}
	return prev
}

// SetRedactable configures whether redaction markers are preserved in the
// output. Returns the previous setting.
func SetRedactable(redactable bool) (prev bool) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	prev = logging.mu.redactable
	logging.mu.redactable = redactable
	return prev
}

// SetVerbosity sets the global verbosity level and returns the previous one.
func SetVerbosity(level int32) (prev int32) {
	return atomic.SwapInt32(&logging.verbosity, level)
}

// logEntry is a fully rendered log message before it reaches the output.
type logEntry struct {
	sev     Severity
	time    time.Time
	file    string
	line    int
	tags    redact.RedactableString
	payload redact.RedactableString
}

func makeEntry(sev Severity, depth int, tags, payload redact.RedactableString) logEntry {
	entry := logEntry{
		sev:     sev,
		time:    time.Now(),
		tags:    tags,
		payload: payload,
		file:    "???",
		line:    1,
	}
	if _, file, line, ok := runtime.Caller(depth + 1); ok {
		entry.file = filepath.Base(file)
		entry.line = line
	}
	return entry
}

// format renders the entry in the crdb-v1 single line format:
//
//	I261015 14:03:05.123456 binder.go:123  [q1] message
func (e logEntry) format(redactable bool, cp *colorProfile) []byte {
	var buf bytes.Buffer
	if cp != nil {
		buf.Write(cp.prefixFor(e.sev))
	}
	buf.WriteByte(severityChar[e.sev])
	if cp != nil {
		buf.Write(colorReset)
		buf.Write(cp.timePrefix)
	}
	buf.WriteString(e.time.Format("060102 15:04:05.000000"))
	if cp != nil {
		buf.Write(colorReset)
	}
	fmt.Fprintf(&buf, " %s:%d ", e.file, e.line)
	if redactable {
		buf.WriteString(" ⋮ ")
	} else {
		buf.WriteByte(' ')
	}
	if e.tags != "" {
		buf.WriteByte('[')
		writeRedactable(&buf, e.tags, redactable)
		buf.WriteString("] ")
	}
	writeRedactable(&buf, e.payload, redactable)
	if buf.Len() == 0 || buf.Bytes()[buf.Len()-1] != '\n' {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func writeRedactable(buf *bytes.Buffer, s redact.RedactableString, redactable bool) {
	if redactable {
		buf.WriteString(string(s))
	} else {
		buf.WriteString(s.StripMarkers())
	}
}

func (l *loggingT) outputLogEntry(entry logEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mu.out == nil {
		return
	}
	// Logging errors are not actionable by the caller.
	_, _ = l.mu.out.Write(entry.format(l.mu.redactable, l.mu.color))
}
