// Package report renders a scoring result for humans and machines.
//
// Write supports four formats:
//   - text: aligned "key: value" lines
//   - json / yaml: a Document with the score and its breakdown
//   - prometheus: text exposition of candidate_* gauges labelled with the
//     candidate's origin state, built as client_model MetricFamily values
//     and encoded with prometheus/common/expfmt so it can be dropped into a
//     node_exporter textfile directory.
package report
