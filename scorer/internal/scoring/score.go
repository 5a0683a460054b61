package scoring

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/underwrite/candidatescore/pkg/types"
)

// ErrMissingCapability is returned when a collaborator needed by the rule
// pipeline was not supplied. No partial score is produced.
var ErrMissingCapability = errors.New("missing capability")

// Result is the outcome of one scoring run together with the intermediate
// state that produced it.
type Result struct {
	Score           int
	HealthLevel     int
	HighMedicalRisk bool
	Grade           CertificationGrade
	Signals         []string
}

// Scorer scores medical exams for a single candidate.
//
// A Scorer holds no mutable state and is safe for concurrent use, provided
// callers do not mutate the exams and guides they pass in while a call is
// running.
type Scorer struct {
	candidate types.Candidate
	rules     []NamedRule
}

// New returns a Scorer for candidate using DefaultRules.
func New(candidate types.Candidate) *Scorer {
	return NewWithRules(candidate, DefaultRules())
}

// NewWithRules returns a Scorer that runs rules in the given order.
// Every rule must have a non-nil Apply.
func NewWithRules(candidate types.Candidate, rules []NamedRule) *Scorer {
	rs := make([]NamedRule, len(rules))
	copy(rs, rules)
	return &Scorer{candidate: candidate, rules: rs}
}

// Candidate returns the candidate this Scorer was built for.
func (s *Scorer) Candidate() types.Candidate {
	return s.candidate
}

// Execute scores exam against guide and returns the final score.
func (s *Scorer) Execute(exam *types.MedicalExam, guide types.ScoringGuide) (int, error) {
	res, err := s.Evaluate(exam, guide)
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// Evaluate runs the rule pipeline and returns the score with its breakdown.
func (s *Scorer) Evaluate(exam *types.MedicalExam, guide types.ScoringGuide) (Result, error) {
	if exam == nil {
		return Result{}, fmt.Errorf("scoring: medical exam: %w", ErrMissingCapability)
	}
	if missing(guide) {
		return Result{}, fmt.Errorf("scoring: scoring guide: %w", ErrMissingCapability)
	}

	in := Input{Candidate: s.candidate, Exam: *exam, Guide: guide}
	acc := newAccumulator()
	for _, r := range s.rules {
		acc = r.Apply(acc, in)
	}

	return Result{
		Score:           acc.Result,
		HealthLevel:     acc.HealthLevel,
		HighMedicalRisk: acc.HighMedicalRisk,
		Grade:           acc.Grade,
		Signals:         acc.Signals,
	}, nil
}

// missing reports whether guide is nil, including a typed nil pointer,
// func or map stored in the interface.
func missing(guide types.ScoringGuide) bool {
	if guide == nil {
		return true
	}
	v := reflect.ValueOf(guide)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Score is shorthand for New(candidate).Execute(exam, guide).
func Score(candidate types.Candidate, exam *types.MedicalExam, guide types.ScoringGuide) (int, error) {
	return New(candidate).Execute(exam, guide)
}
