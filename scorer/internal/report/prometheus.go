package report

import (
	"fmt"
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/underwrite/candidatescore/scorer/internal/scoring"
)

// Gauge names written in the prometheus format.
const (
	metricScore           = "candidate_score"
	metricHealthLevel     = "candidate_health_level"
	metricHighMedicalRisk = "candidate_high_medical_risk"
	metricLowCert         = "candidate_low_certification"

	labelOriginState = "origin_state"
)

// families returns the metric families describing doc, in a fixed order.
func families(doc Document) []*dto.MetricFamily {
	return []*dto.MetricFamily{
		gauge(metricScore, "Risk score of the candidate; lower is riskier.", doc.OriginState, float64(doc.Score)),
		gauge(metricHealthLevel, "Accumulated health risk weight before thresholding.", doc.OriginState, float64(doc.HealthLevel)),
		gauge(metricHighMedicalRisk, "1 if the candidate is flagged as a high medical risk.", doc.OriginState, boolValue(doc.HighMedicalRisk)),
		gauge(metricLowCert, "1 if the origin state has a low certification grade.", doc.OriginState, boolValue(doc.CertificationGrade == string(scoring.GradeLow))),
	}
}

func gauge(name, help, state string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{
			Label: []*dto.LabelPair{{
				Name:  proto.String(labelOriginState),
				Value: proto.String(state),
			}},
			Gauge: &dto.Gauge{Value: proto.Float64(v)},
		}},
	}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func writePrometheus(w io.Writer, doc Document) error {
	for _, mf := range families(doc) {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("report: encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
