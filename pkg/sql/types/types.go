// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package types describes the semantic value types that the binder attaches
// to resolved columns. Types are immutable and compared by pointer for the
// predefined singletons; Equivalent compares families.
package types

import (
	"strings"

	"github.com/lib/pq/oid"
)

// Family specifies a group of types that are compatible with one another.
type Family int32

const (
	// UnknownFamily is the family of the NULL type and of columns whose type
	// could not be determined.
	UnknownFamily Family = iota
	BoolFamily
	IntFamily
	FloatFamily
	DecimalFamily
	StringFamily
	BytesFamily
	DateFamily
	TimestampFamily
	IntervalFamily
)

var familyNames = [...]string{
	UnknownFamily:   "unknown",
	BoolFamily:      "bool",
	IntFamily:       "int",
	FloatFamily:     "float",
	DecimalFamily:   "decimal",
	StringFamily:    "string",
	BytesFamily:     "bytes",
	DateFamily:      "date",
	TimestampFamily: "timestamp",
	IntervalFamily:  "interval",
}

func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return "unknown"
	}
	return familyNames[f]
}

// T is an instance of a SQL scalar type.
type T struct {
	family Family
	oid    oid.Oid
	width  int32
}

var (
	// Unknown is the type of an expression that statically evaluates to NULL.
	Unknown = &T{family: UnknownFamily, oid: oid.T_unknown}
	// Bool is the type of a boolean true/false value.
	Bool = &T{family: BoolFamily, oid: oid.T_bool}
	// Int is the type of a 64-bit signed integer.
	Int = &T{family: IntFamily, oid: oid.T_int8, width: 64}
	// Int4 is the type of a 32-bit signed integer.
	Int4 = &T{family: IntFamily, oid: oid.T_int4, width: 32}
	// Float is the type of a 64-bit float.
	Float = &T{family: FloatFamily, oid: oid.T_float8, width: 64}
	// Decimal is the type of an arbitrary precision decimal.
	Decimal = &T{family: DecimalFamily, oid: oid.T_numeric}
	// String is the type of a variable-length string.
	String = &T{family: StringFamily, oid: oid.T_text}
	// VarChar is equivalent to String but has a different oid.
	VarChar = &T{family: StringFamily, oid: oid.T_varchar}
	// Bytes is the type of a variable-length byte array.
	Bytes = &T{family: BytesFamily, oid: oid.T_bytea}
	// Date is the type of a calendar day.
	Date = &T{family: DateFamily, oid: oid.T_date}
	// Timestamp is the type of a date and time without time zone.
	Timestamp = &T{family: TimestampFamily, oid: oid.T_timestamp}
	// TimestampTZ is the type of a date and time with time zone.
	TimestampTZ = &T{family: TimestampFamily, oid: oid.T_timestamptz}
	// Interval is the type of a span of time.
	Interval = &T{family: IntervalFamily, oid: oid.T_interval}
)

// Scalar contains all the predefined types.
var Scalar = []*T{
	Bool, Int, Int4, Float, Decimal, String, VarChar, Bytes, Date, Timestamp, TimestampTZ, Interval,
}

// OidToType maps type oids to the predefined types.
var OidToType = func() map[oid.Oid]*T {
	m := make(map[oid.Oid]*T, len(Scalar)+1)
	m[Unknown.oid] = Unknown
	for _, t := range Scalar {
		m[t.oid] = t
	}
	return m
}()

// typeAliases maps the spellings accepted by TypeForName to a type.
var typeAliases = map[string]*T{
	"bool":        Bool,
	"boolean":     Bool,
	"int":         Int,
	"int8":        Int,
	"bigint":      Int,
	"integer":     Int,
	"int4":        Int4,
	"float":       Float,
	"float8":      Float,
	"double":      Float,
	"decimal":     Decimal,
	"numeric":     Decimal,
	"string":      String,
	"text":        String,
	"varchar":     VarChar,
	"bytes":       Bytes,
	"bytea":       Bytes,
	"date":        Date,
	"timestamp":   Timestamp,
	"timestamptz": TimestampTZ,
	"interval":    Interval,
	"unknown":     Unknown,
}

// TypeForName returns the predefined type with the given (case-insensitive)
// SQL spelling.
func TypeForName(name string) (*T, bool) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Family returns the type's family.
func (t *T) Family() Family { return t.family }

// Oid returns the type's Postgres object ID.
func (t *T) Oid() oid.Oid { return t.oid }

// Width is the size or scale of the type, in bits, when it applies.
func (t *T) Width() int32 { return t.width }

// Name returns the Postgres name of the type, e.g. "INT8".
func (t *T) Name() string {
	if name, ok := oid.TypeName[t.oid]; ok {
		return name
	}
	return strings.ToUpper(t.family.String())
}

// SQLString returns the lowercase SQL spelling of the type.
func (t *T) SQLString() string {
	return strings.ToLower(t.Name())
}

func (t *T) String() string {
	return t.SQLString()
}

// Equivalent returns true if values of the two types can be compared without
// a cast. Unknown is equivalent to every type.
func (t *T) Equivalent(other *T) bool {
	if t.family == UnknownFamily || other.family == UnknownFamily {
		return true
	}
	return t.family == other.family
}

// Identical returns true if the types are the same down to the oid.
func (t *T) Identical(other *T) bool {
	return t.family == other.family && t.oid == other.oid && t.width == other.width
}
