// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"strings"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
)

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting
// string is generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	var buf strings.Builder
	if tags := formatTags(ctx); tags != "" {
		buf.WriteByte('[')
		buf.WriteString(tags.StripMarkers())
		buf.WriteString("] ")
	}
	buf.WriteString(redact.Sprintf(format, args...).StripMarkers())
	return buf.String()
}

// formatTags renders the logging tags of ctx as "k1=v1,k2". Tag values are
// considered unsafe for reporting unless wrapped with Safe.
func formatTags(ctx context.Context) redact.RedactableString {
	tags := logtags.FromContext(ctx)
	if tags == nil {
		return ""
	}
	var buf redact.StringBuilder
	for i, t := range tags.Get() {
		if i > 0 {
			buf.SafeRune(',')
		}
		buf.SafeString(redact.SafeString(t.Key()))
		if v := t.Value(); v != nil {
			if len(t.Key()) > 1 {
				buf.SafeRune('=')
			}
			buf.Print(v)
		}
	}
	return buf.RedactableString()
}

// addStructured creates a structured log entry to be written to the
// logger output.
func addStructured(
	ctx context.Context, sev Severity, depth int, format string, args []interface{},
) {
	entry := makeEntry(sev, depth+1, formatTags(ctx), redact.Sprintf(format, args...))
	logging.outputLogEntry(entry)
}
