// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"context"
	"regexp"
	"testing"

	"github.com/cockroachdb/logtags"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, redactable bool) *bytes.Buffer {
	var buf bytes.Buffer
	prevOut := SetOutput(&buf)
	prevRedactable := SetRedactable(redactable)
	prevVerbosity := SetVerbosity(0)
	t.Cleanup(func() {
		SetOutput(prevOut)
		SetRedactable(prevRedactable)
		SetVerbosity(prevVerbosity)
	})
	return &buf
}

func TestInfofWithTags(t *testing.T) {
	buf := captureOutput(t, false /* redactable */)
	ctx := logtags.AddTag(context.Background(), "q", 7)
	ctx = logtags.AddTag(ctx, "binder", nil)

	Infof(ctx, "added table %s at bit index %d", "t1", Safe(1))

	re := regexp.MustCompile(`^I\d{6} \d{2}:\d{2}:\d{2}\.\d{6} log_test\.go:\d+  \[q7,binder\] added table t1 at bit index 1\n$`)
	require.Regexp(t, re, buf.String())
}

func TestRedactableOutput(t *testing.T) {
	buf := captureOutput(t, true /* redactable */)
	Warningf(context.Background(), "unknown table %s (%d)", "secret", Safe(3))
	require.Contains(t, buf.String(), "unknown table ‹secret› (3)")
	require.Equal(t, byte('W'), buf.Bytes()[0])
}

func TestVerbosity(t *testing.T) {
	buf := captureOutput(t, false /* redactable */)
	ctx := context.Background()

	VEventf(ctx, 2, "hidden")
	require.Empty(t, buf.String())
	require.False(t, V(1))

	SetVerbosity(2)
	require.True(t, V(2))
	VEventf(ctx, 2, "shown")
	VErrEventf(ctx, 1, "also shown")
	require.Contains(t, buf.String(), "shown")
	require.Contains(t, buf.String(), "also shown")
}

func TestFormatWithContextTags(t *testing.T) {
	ctx := logtags.AddTag(context.Background(), "n", 1)
	ctx = logtags.AddTag(ctx, "stmt", "q2")
	require.Equal(t, "[n1,stmt=q2] hello world", FormatWithContextTags(ctx, "hello %s", "world"))
	require.Equal(t, "plain", FormatWithContextTags(context.Background(), "plain"))
}
