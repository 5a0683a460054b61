package scoring

import (
	"github.com/underwrite/candidatescore/pkg/types"
)

// Rule weights.
const (
	smokerHealthWeight      = 10
	lowCertificationPenalty = 5

	// healthThreshold is the health level tolerated before it turns into a
	// score penalty.
	healthThreshold = 5
)

// Signal names recorded on the Accumulator when a rule fires.
const (
	SignalSmoker           = "smoker"
	SignalLowCertification = "low_certification"
	SignalHealthPenalty    = "health_penalty"
)

// CertificationGrade is the jurisdiction-derived classification of a
// candidate.
type CertificationGrade string

const (
	GradeRegular CertificationGrade = "regular"
	GradeLow     CertificationGrade = "low"
)

// Input is everything a rule may read. Rules must treat it as read-only.
type Input struct {
	Candidate types.Candidate
	Exam      types.MedicalExam
	Guide     types.ScoringGuide
}

// Accumulator is the state threaded through the rule pipeline.
type Accumulator struct {
	// Result is the running score.
	Result int

	// HealthLevel aggregates health-risk weight before it is thresholded
	// into a penalty by the health penalty rule.
	HealthLevel int

	// HighMedicalRisk and Grade are recorded for later rules. No rule in
	// DefaultRules reads them yet, so they never move the score.
	HighMedicalRisk bool
	Grade           CertificationGrade

	// Signals lists the rules that fired, in pipeline order.
	Signals []string
}

// newAccumulator returns the starting state for a scoring run.
func newAccumulator() Accumulator {
	return Accumulator{Grade: GradeRegular}
}

// signal returns acc with name appended to its signals. The append never
// writes into a backing array shared with an earlier copy of acc.
func (acc Accumulator) signal(name string) Accumulator {
	n := len(acc.Signals)
	acc.Signals = append(acc.Signals[:n:n], name)
	return acc
}

// Rule evaluates one risk factor and returns the updated accumulator.
type Rule func(acc Accumulator, in Input) Accumulator

// NamedRule pairs a Rule with the name it is reported under.
type NamedRule struct {
	Name  string
	Apply Rule
}

// DefaultRules returns the standard pipeline. Order matters only where a
// rule consumes an aggregate another rule produced: the health penalty
// must run after every rule that raises HealthLevel.
func DefaultRules() []NamedRule {
	return []NamedRule{
		{Name: SignalSmoker, Apply: SmokerRule},
		{Name: SignalLowCertification, Apply: CertificationRule},
		{Name: SignalHealthPenalty, Apply: HealthPenaltyRule},
	}
}

// SmokerRule raises the health level for smokers and flags them as a high
// medical risk.
func SmokerRule(acc Accumulator, in Input) Accumulator {
	if !in.Exam.IsSmoker {
		return acc
	}
	acc.HealthLevel += smokerHealthWeight
	acc.HighMedicalRisk = true
	return acc.signal(SignalSmoker)
}

// CertificationRule asks the guide whether the candidate's origin state is
// a low-certification jurisdiction and deducts a fixed penalty if so.
func CertificationRule(acc Accumulator, in Input) Accumulator {
	if !in.Guide.StateWithLowCertification(in.Candidate.OriginState) {
		return acc
	}
	acc.Grade = GradeLow
	acc.Result -= lowCertificationPenalty
	return acc.signal(SignalLowCertification)
}

// HealthPenaltyRule deducts the part of the health level above
// healthThreshold. The penalty is never negative.
func HealthPenaltyRule(acc Accumulator, _ Input) Accumulator {
	penalty := healthPenalty(acc.HealthLevel)
	if penalty == 0 {
		return acc
	}
	acc.Result -= penalty
	return acc.signal(SignalHealthPenalty)
}

// healthPenalty returns max(level-healthThreshold, 0).
func healthPenalty(level int) int {
	if d := level - healthThreshold; d > 0 {
		return d
	}
	return 0
}
