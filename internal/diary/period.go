package diary

import (
	"fmt"
	"slices"

	"github.com/ramanasai/diary/internal/apperr"
)

type Symptom string

const (
	SymptomCramps   Symptom = "cramps"
	SymptomHeadache Symptom = "headache"
	SymptomBackache Symptom = "backache"
	SymptomFatigue  Symptom = "fatigue"
	SymptomBloating Symptom = "bloating"
	SymptomMood     Symptom = "mood"
)

var Symptoms = []Symptom{SymptomCramps, SymptomHeadache, SymptomBackache, SymptomFatigue, SymptomBloating, SymptomMood}

const (
	MinFlow     = 1
	MaxFlow     = 4
	DefaultFlow = 2
	MaxPain     = 10
	DefaultPain = 3
)

// PeriodLog is the extra payload of a period entry.
type PeriodLog struct {
	Symptoms []Symptom `json:"symptoms" yaml:"symptoms"`
	Flow     int       `json:"flow" yaml:"flow"`
	Pain     int       `json:"pain" yaml:"pain"`
}

func NewPeriodLog() *PeriodLog {
	return &PeriodLog{Flow: DefaultFlow, Pain: DefaultPain}
}

func (p *PeriodLog) Validate() error {
	if p.Flow < MinFlow || p.Flow > MaxFlow {
		return apperr.Validation("PERIOD_FLOW", fmt.Sprintf("flow level %d is outside %d-%d", p.Flow, MinFlow, MaxFlow))
	}
	if p.Pain < 0 || p.Pain > MaxPain {
		return apperr.Validation("PERIOD_PAIN", fmt.Sprintf("pain level %d is outside 0-%d", p.Pain, MaxPain))
	}
	for _, s := range p.Symptoms {
		if !slices.Contains(Symptoms, s) {
			return apperr.Validation("PERIOD_SYMPTOM", fmt.Sprintf("unknown symptom %q", s))
		}
	}
	return nil
}

// Toggle adds s if absent and removes it otherwise. Symptoms stay in canonical order.
func (p *PeriodLog) Toggle(s Symptom) {
	if i := slices.Index(p.Symptoms, s); i >= 0 {
		p.Symptoms = slices.Delete(p.Symptoms, i, i+1)
		return
	}
	p.Symptoms = append(p.Symptoms, s)
	slices.SortFunc(p.Symptoms, func(a, b Symptom) int {
		return slices.Index(Symptoms, a) - slices.Index(Symptoms, b)
	})
}

func (p *PeriodLog) Has(s Symptom) bool { return slices.Contains(p.Symptoms, s) }
