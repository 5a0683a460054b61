// Package types defines the record types shared by the scorer and its
// callers. These are the canonical in-memory shapes of a candidate and a
// medical exam, separate from the YAML documents they are decoded from.
package types
