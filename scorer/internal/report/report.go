package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/underwrite/candidatescore/pkg/types"
	"github.com/underwrite/candidatescore/scorer/internal/scoring"
)

// Supported formats.
const (
	FormatText       = "text"
	FormatJSON       = "json"
	FormatYAML       = "yaml"
	FormatPrometheus = "prometheus"
)

// Document is the serialised form of one scoring run.
type Document struct {
	OriginState        string   `json:"origin_state" yaml:"origin_state"`
	Score              int      `json:"score" yaml:"score"`
	HealthLevel        int      `json:"health_level" yaml:"health_level"`
	HighMedicalRisk    bool     `json:"high_medical_risk" yaml:"high_medical_risk"`
	CertificationGrade string   `json:"certification_grade" yaml:"certification_grade"`
	Signals            []string `json:"signals" yaml:"signals"`
}

// NewDocument flattens a candidate and its result into a Document.
func NewDocument(c types.Candidate, res scoring.Result) Document {
	signals := res.Signals
	if signals == nil {
		signals = []string{}
	}
	return Document{
		OriginState:        c.OriginState,
		Score:              res.Score,
		HealthLevel:        res.HealthLevel,
		HighMedicalRisk:    res.HighMedicalRisk,
		CertificationGrade: string(res.Grade),
		Signals:            signals,
	}
}

// Write renders res for candidate c in the given format.
func Write(w io.Writer, format string, c types.Candidate, res scoring.Result) error {
	doc := NewDocument(c, res)
	switch format {
	case FormatText:
		return writeText(w, doc)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("report: encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("report: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("report: encode yaml: %w", err)
		}
		return nil
	case FormatPrometheus:
		return writePrometheus(w, doc)
	default:
		return fmt.Errorf("report: unknown format %q", format)
	}
}

func writeText(w io.Writer, doc Document) error {
	signals := "none"
	if len(doc.Signals) > 0 {
		signals = fmt.Sprint(doc.Signals)
	}
	_, err := fmt.Fprintf(w,
		"origin_state:        %s\n"+
			"score:               %d\n"+
			"health_level:        %d\n"+
			"high_medical_risk:   %t\n"+
			"certification_grade: %s\n"+
			"signals:             %s\n",
		doc.OriginState, doc.Score, doc.HealthLevel,
		doc.HighMedicalRisk, doc.CertificationGrade, signals)
	if err != nil {
		return fmt.Errorf("report: write text: %w", err)
	}
	return nil
}
