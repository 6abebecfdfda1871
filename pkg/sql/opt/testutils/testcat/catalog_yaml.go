// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package testcat

import (
	"os"

	"github.com/cockroachdb/errors"
	yaml "gopkg.in/yaml.v2"
)

// catalogFile is the YAML layout of a catalog:
//
//	tables:
//	  - name: orders
//	    id: 100          # optional
//	    columns:
//	      - name: id
//	        type: int
//	      - name: total
//	        type: decimal
type catalogFile struct {
	Tables []TableDef `yaml:"tables"`
}

// LoadYAML adds the tables described by data to the catalog. Unknown fields
// are rejected. Tables are added in order; on error, the tables added
// before the failing one remain in the catalog.
func (tc *Catalog) LoadYAML(data []byte) error {
	var f catalogFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return errors.Wrap(err, "parsing catalog")
	}
	for _, def := range f.Tables {
		if _, err := tc.AddTable(def); err != nil {
			return errors.Wrapf(err, "adding table %q", def.Name)
		}
	}
	return nil
}

// LoadFile creates a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading catalog")
	}
	tc := New()
	if err := tc.LoadYAML(data); err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return tc, nil
}
