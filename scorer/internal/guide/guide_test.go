package guide

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/underwrite/candidatescore/pkg/types"
	"github.com/underwrite/candidatescore/scorer/internal/config"
	"github.com/underwrite/candidatescore/scorer/internal/scoring"
)

func TestStatic_Lookup(t *testing.T) {
	g := NewStatic("FL", " nv ")
	tests := []struct {
		code string
		want bool
	}{
		{"FL", true},
		{"fl", true},
		{" Fl ", true},
		{"NV", true},
		{"TX", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := g.StateWithLowCertification(tc.code); got != tc.want {
			t.Errorf("StateWithLowCertification(%q) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestStatic_IgnoresBlankCodes(t *testing.T) {
	g := NewStatic("", "  ", "FL")
	if got := g.States(); !reflect.DeepEqual(got, []string{"FL"}) {
		t.Errorf("States() = %v, want [FL]", got)
	}
}

func TestStatic_StatesSorted(t *testing.T) {
	g := NewStatic("TX", "FL", "NV", "fl")
	want := []string{"FL", "NV", "TX"}
	if got := g.States(); !reflect.DeepEqual(got, want) {
		t.Errorf("States() = %v, want %v", got, want)
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("TEST_GUIDE_STATES", "ok")
	g := FromConfig(config.GuideConfig{
		LowCertificationStates: []string{"FL"},
		StatesEnv:              "TEST_GUIDE_STATES",
	})
	if !g.StateWithLowCertification("FL") || !g.StateWithLowCertification("OK") {
		t.Errorf("FromConfig guide missing states: %v", g.States())
	}
}

func TestFunc(t *testing.T) {
	var asked string
	g := Func(func(code string) bool {
		asked = code
		return code == "FL"
	})
	if !g.StateWithLowCertification("FL") {
		t.Error("Func(FL) = false, want true")
	}
	if asked != "FL" {
		t.Errorf("Func received %q, want FL", asked)
	}
}

func TestReloadable_Swap(t *testing.T) {
	r := NewReloadable(NewStatic("FL"))
	if !r.StateWithLowCertification("FL") {
		t.Fatal("initial guide should classify FL as low")
	}

	r.Swap(NewStatic("NV"))
	if r.StateWithLowCertification("FL") {
		t.Error("FL still low after swap")
	}
	if !r.StateWithLowCertification("NV") {
		t.Error("NV not low after swap")
	}
}

func TestReloadable_NilIsEmpty(t *testing.T) {
	r := NewReloadable(nil)
	if r.StateWithLowCertification("FL") {
		t.Error("nil guide classified FL as low")
	}
	if r.Current() == nil {
		t.Error("Current() = nil, want empty guide")
	}
}

func TestReloadable_ConcurrentSwapAndRead(t *testing.T) {
	r := NewReloadable(NewStatic("FL"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = r.StateWithLowCertification("FL")
			}
		}()
	}
	for i := 0; i < 100; i++ {
		if i%2 == 0 {
			r.Swap(NewStatic("NV"))
		} else {
			r.Swap(NewStatic("FL"))
		}
	}
	wg.Wait()
}

func TestStatic_NilReceiver(t *testing.T) {
	var g *Static
	if g.StateWithLowCertification("FL") {
		t.Error("nil Static classified FL as low")
	}
	if got := g.States(); len(got) != 0 {
		t.Errorf("nil Static States() = %v, want none", got)
	}
}

func TestNilGuides_MissingCapability(t *testing.T) {
	tests := []struct {
		name  string
		guide types.ScoringGuide
	}{
		{"nil static", (*Static)(nil)},
		{"nil func", Func(nil)},
		{"nil reloadable", (*Reloadable)(nil)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scoring.Score(types.Candidate{OriginState: "FL"}, &types.MedicalExam{}, tc.guide)
			if !errors.Is(err, scoring.ErrMissingCapability) {
				t.Errorf("err = %v, want ErrMissingCapability", err)
			}
		})
	}
}
