// Package record decodes candidate and medical exam documents.
//
// Documents are YAML (JSON is accepted as the YAML subset it is). Required
// fields that are absent produce scoring.ErrMissingCapability; fields that
// are present with the wrong type produce ErrTypeMismatch. Values are never
// coerced: `is_smoker: "yes"` is an error, not true.
package record

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/underwrite/candidatescore/pkg/types"
	"github.com/underwrite/candidatescore/scorer/internal/scoring"
)

// ErrTypeMismatch is returned when a field holds a value of the wrong type.
var ErrTypeMismatch = errors.New("type mismatch")

// YAML tags of the scalar kinds a field may require.
const (
	tagStr  = "!!str"
	tagBool = "!!bool"
)

// DecodeCandidate reads a candidate document from r.
func DecodeCandidate(r io.Reader) (types.Candidate, error) {
	m, err := decodeMapping(r, "candidate")
	if err != nil {
		return types.Candidate{}, err
	}
	var c types.Candidate
	if err := field(m, "candidate", "origin_state", tagStr, &c.OriginState); err != nil {
		return types.Candidate{}, err
	}
	return c, nil
}

// DecodeExam reads a medical exam document from r.
func DecodeExam(r io.Reader) (*types.MedicalExam, error) {
	m, err := decodeMapping(r, "medical exam")
	if err != nil {
		return nil, err
	}
	exam := &types.MedicalExam{}
	if err := field(m, "medical exam", "is_smoker", tagBool, &exam.IsSmoker); err != nil {
		return nil, err
	}
	return exam, nil
}

// LoadCandidate reads a candidate document from the file at path.
func LoadCandidate(path string) (types.Candidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Candidate{}, fmt.Errorf("record: open candidate: %w", err)
	}
	defer f.Close()
	return DecodeCandidate(f)
}

// LoadExam reads a medical exam document from the file at path.
func LoadExam(path string) (*types.MedicalExam, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("record: open medical exam: %w", err)
	}
	defer f.Close()
	return DecodeExam(f)
}

// decodeMapping parses a single YAML document and returns its top-level
// mapping node.
func decodeMapping(r io.Reader, what string) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("record: %s: empty document: %w", what, scoring.ErrMissingCapability)
		}
		return nil, fmt.Errorf("record: %s: parse yaml: %w", what, err)
	}

	n := &doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("record: %s: document is not a mapping: %w", what, ErrTypeMismatch)
	}
	return n, nil
}

// field locates key in mapping m, checks its scalar tag and decodes it
// into out.
func field(m *yaml.Node, what, key, tag string, out any) error {
	v := lookup(m, key)
	if v == nil {
		return fmt.Errorf("record: %s: field %q: %w", what, key, scoring.ErrMissingCapability)
	}
	if v.Kind != yaml.ScalarNode || v.ShortTag() != tag {
		return fmt.Errorf("record: %s: field %q is %s, want %s: %w",
			what, key, describe(v), tag, ErrTypeMismatch)
	}
	if err := v.Decode(out); err != nil {
		return fmt.Errorf("record: %s: field %q: %w", what, key, err)
	}
	return nil
}

// lookup returns the value node for key, or nil. Content of a mapping node
// alternates key and value nodes.
func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.AliasNode:
		return "an alias"
	default:
		return n.ShortTag()
	}
}
