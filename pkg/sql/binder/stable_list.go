// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package binder

const stableListChunkSize = 16

// stableList is an append-only list whose elements never move once they
// are appended, so pointers to them stay valid while the list grows.
type stableList[T any] struct {
	chunks [][]T
	n      int
}

func (l *stableList[T]) append(v T) *T {
	if l.n%stableListChunkSize == 0 {
		l.chunks = append(l.chunks, make([]T, 0, stableListChunkSize))
	}
	c := &l.chunks[len(l.chunks)-1]
	*c = append(*c, v)
	l.n++
	return &(*c)[len(*c)-1]
}

func (l *stableList[T]) len() int {
	return l.n
}

func (l *stableList[T]) get(i int) *T {
	return &l.chunks[i/stableListChunkSize][i%stableListChunkSize]
}
