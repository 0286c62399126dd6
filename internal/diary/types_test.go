package diary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypesFor(t *testing.T) {
	assert.Contains(t, TypesFor("female"), TypePeriod)
	assert.NotContains(t, TypesFor("male"), TypePeriod)
	assert.Len(t, TypesFor(""), len(AllTypes)-1)
}

func TestParseType(t *testing.T) {
	_, ok := ParseType("schedule")
	assert.True(t, ok)
	_, ok = ParseType("all")
	assert.False(t, ok)
}

func TestEmotionLookup(t *testing.T) {
	e, ok := LookupEmotion("calm")
	assert.True(t, ok)
	assert.Equal(t, "😌", e.Emoji)
	assert.Equal(t, "tired", EmotionName("😴"))
	assert.Equal(t, "❓", EmotionName("❓"))
}

func TestPeriodToggleKeepsOrder(t *testing.T) {
	p := NewPeriodLog()
	p.Toggle(SymptomMood)
	p.Toggle(SymptomCramps)
	assert.Equal(t, []Symptom{SymptomCramps, SymptomMood}, p.Symptoms)
	p.Toggle(SymptomCramps)
	assert.False(t, p.Has(SymptomCramps))
}

func TestTaskList(t *testing.T) {
	var l TaskList
	assert.False(t, l.Add("   "))
	assert.True(t, l.Add("buy milk"))
	assert.True(t, l.Add("call mom"))
	assert.Len(t, l, 2)

	l.Toggle(l[0].ID)
	assert.Equal(t, 1, l.Done())

	l.Remove(l[0].ID)
	assert.Len(t, l, 1)
	assert.Equal(t, "call mom", l[0].Text)
}
