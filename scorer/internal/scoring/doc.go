// Package scoring folds a candidate's risk factors into a single signed
// integer score.
//
// rules.go holds the ordered rule pipeline. Each Rule takes the shared
// Accumulator (result, health level, flags) and returns an updated copy, so
// rules can be tested one at a time and new ones appended without touching
// the others.
//
// score.go provides the Scorer, built once per candidate and executed per
// medical exam, and the Score convenience function.
//
// Scoring is pure: the same (candidate, exam, guide) always yields the same
// score and none of the inputs are modified.
package scoring
