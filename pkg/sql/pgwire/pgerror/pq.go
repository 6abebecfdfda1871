// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package pgerror

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
)

// ToPQ converts an error into the client-facing *pq.Error that a SQL
// client would receive for it.
func ToPQ(err error) *pq.Error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr
	}
	return &pq.Error{
		Severity: "ERROR",
		Code:     pq.ErrorCode(GetPGCode(err).String()),
		Message:  err.Error(),
		Detail:   strings.Join(errors.GetAllDetails(err), "\n"),
		Hint:     strings.Join(errors.GetAllHints(err), "\n"),
	}
}

// FullError can be used when the hint and/or detail are to be tested.
func FullError(err error) string {
	pqErr := ToPQ(err)
	if pqErr == nil {
		return ""
	}
	return formatMsgHintDetail(string(pqErr.Code), pqErr.Message, pqErr.Hint, pqErr.Detail)
}

func formatMsgHintDetail(prefix, msg, hint, detail string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(": ")
	b.WriteString(msg)
	if hint != "" {
		b.WriteString("\nHINT: ")
		b.WriteString(hint)
	}
	if detail != "" {
		b.WriteString("\nDETAIL: ")
		b.WriteString(detail)
	}
	return b.String()
}
