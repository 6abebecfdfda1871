// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package randutil creates seeded random number generators for tests.
package randutil

import (
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
)

// seedEnvVar overrides the seed returned by NewPseudoSeed.
const seedEnvVar = "COCKROACH_RANDOM_SEED"

// NewPseudoSeed returns the seed from the COCKROACH_RANDOM_SEED environment
// variable if it is set, or a seed derived from the current time otherwise.
// It panics if the variable is set but is not an integer.
func NewPseudoSeed() int64 {
	if s, ok := os.LookupEnv(seedEnvVar); ok {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			panic(errors.Wrapf(err, "parsing %s", seedEnvVar))
		}
		return seed
	}
	return time.Now().UnixNano()
}

// NewPseudoRand returns an instance of math/rand.Rand seeded from
// NewPseudoSeed, along with the seed.
func NewPseudoRand() (*rand.Rand, int64) {
	seed := NewPseudoSeed()
	return rand.New(rand.NewSource(seed)), seed
}

// NewTestRand is like NewPseudoRand but logs the seed to the test, so that
// a failing run can be repeated with COCKROACH_RANDOM_SEED.
func NewTestRand(t interface{ Logf(string, ...interface{}) }) *rand.Rand {
	rng, seed := NewPseudoRand()
	t.Logf("random seed: %d", seed)
	return rng
}
