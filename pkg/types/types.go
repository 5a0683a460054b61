package types

// Candidate is the person being scored.
type Candidate struct {
	// OriginState is the jurisdiction code the candidate originates from,
	// e.g. "FL". It is passed verbatim to the scoring guide.
	OriginState string `yaml:"origin_state" json:"origin_state"`
}

// MedicalExam holds the exam findings used as risk inputs.
type MedicalExam struct {
	IsSmoker bool `yaml:"is_smoker" json:"is_smoker"`
}

// ScoringGuide answers jurisdiction-specific classification questions.
// Implementations are queried only; the scorer never mutates them.
type ScoringGuide interface {
	// StateWithLowCertification reports whether stateCode is classified
	// as a low-certification jurisdiction.
	StateWithLowCertification(stateCode string) bool
}
