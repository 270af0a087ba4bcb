package conventions_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anon987654321/promptkit/pkg/conventions"
	"github.com/anon987654321/promptkit/pkg/document"
)

func parse(t *testing.T, src string) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(src), "test.json")
	require.NoError(t, err)
	return doc
}

// compliantDoc carries enough markers to pass every heuristic.
func compliantDoc(t *testing.T) *document.Document {
	t.Helper()
	return parse(t, `{
		"meta": {"version": "38.0.0", "self_validated": true, "auto_applies": "always"},
		"core": {"reveal_on": "immediate", "essential_first": true}
	}`)
}

func TestCompliantDocument(t *testing.T) {
	report := conventions.New().Check(compliantDoc(t))

	assert.True(t, report.Passing())
	assert.Equal(t, 1.0, report.Score())
	assert.Equal(t, "38.0.0", report.Version)
}

func TestCognitiveLoadRootViolation(t *testing.T) {
	// 10 top-level keys, limit 9.
	keys := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		keys = append(keys, fmt.Sprintf("%q: {}", fmt.Sprintf("section_%d", i)))
	}
	doc := parse(t, "{"+strings.Join(keys, ",")+"}")

	report := conventions.New().Check(doc)

	require.Len(t, report.CognitiveLoad.Violations, 1)
	v := report.CognitiveLoad.Violations[0]
	assert.Equal(t, "root", v.Location)
	assert.Equal(t, 10, v.Count)
	assert.Equal(t, 9, v.Limit)
	assert.Equal(t, conventions.SeverityHigh, v.Severity)
	assert.False(t, report.CognitiveLoad.Compliant)
	assert.False(t, report.Passing())
}

func TestCognitiveLoadNestedViolations(t *testing.T) {
	doc := parse(t, `{
		"big_map": {"a":1,"b":2,"c":3,"d":4,"e":5,"f":6,"g":7,"h":8,"i":9,"j":10},
		"big_list": [1,2,3,4,5,6,7,8,9,10],
		"small": {"a": 1}
	}`)

	report := conventions.New().Check(doc)

	require.Len(t, report.CognitiveLoad.Violations, 2)
	for _, v := range report.CognitiveLoad.Violations {
		assert.Equal(t, conventions.SeverityMedium, v.Severity)
		assert.Equal(t, 10, v.Count)
	}
	locations := []string{report.CognitiveLoad.Violations[0].Location, report.CognitiveLoad.Violations[1].Location}
	assert.Contains(t, locations, "big_map")
	assert.Contains(t, locations, "big_list")
}

func TestCognitiveLoadCustomLimit(t *testing.T) {
	doc := parse(t, `{"a": {}, "b": {}, "c": {}}`)

	checker := &conventions.Checker{MaxItems: 2}
	report := checker.Check(doc)

	require.Len(t, report.CognitiveLoad.Violations, 1)
	assert.Equal(t, 2, report.CognitiveLoad.Violations[0].Limit)
}

func TestDisclosureCounts(t *testing.T) {
	doc := parse(t, `{
		"a": {"reveal_on": "immediate", "complexity": "low"},
		"b": {"reveal_on": "advanced_usage", "complexity": "high"}
	}`)

	report := conventions.New().Check(doc)

	assert.True(t, report.Disclosure.Compliant)
	assert.Equal(t, 2, report.Disclosure.RevealOn)
	assert.Equal(t, 0, report.Disclosure.EssentialFirst)
	assert.Equal(t, 2, report.Disclosure.Complexity)
}

func TestDisclosureMissing(t *testing.T) {
	doc := parse(t, `{"a": {"complexity": "low"}}`)

	report := conventions.New().Check(doc)

	// complexity markers alone do not make the document progressive.
	assert.False(t, report.Disclosure.Compliant)
	assert.NotEmpty(t, report.Disclosure.Suggestions)
}

func TestRepetitionThreshold(t *testing.T) {
	// 11 occurrences of "required" as a quoted key crosses the threshold.
	entries := make([]string, 0, 11)
	for i := 0; i < 11; i++ {
		entries = append(entries, fmt.Sprintf("{\"required\": %d}", i))
	}
	doc := parse(t, `{"rules": [`+strings.Join(entries, ",")+`]}`)

	report := conventions.New().Check(doc)

	assert.False(t, report.Repetition.Compliant)
	require.Len(t, report.Repetition.Violations, 1)
	v := report.Repetition.Violations[0]
	assert.Equal(t, `"required"`, v.Pattern)
	assert.Equal(t, 11, v.Occurrences)
	assert.Equal(t, conventions.SeverityMedium, v.Severity)
}

func TestRepetitionHighSeverity(t *testing.T) {
	entries := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		entries = append(entries, fmt.Sprintf("{\"mandatory\": %d}", i))
	}
	doc := parse(t, `{"rules": [`+strings.Join(entries, ",")+`]}`)

	report := conventions.New().Check(doc)

	require.Len(t, report.Repetition.Violations, 1)
	assert.Equal(t, conventions.SeverityHigh, report.Repetition.Violations[0].Severity)
}

func TestRepetitionUnderThresholdIsCompliant(t *testing.T) {
	doc := parse(t, `{"a": {"required": true, "error_handling": {}}}`)

	report := conventions.New().Check(doc)

	assert.True(t, report.Repetition.Compliant)
	assert.Equal(t, 1, report.Repetition.Counts[`"required"`])
	assert.Equal(t, 1, report.Repetition.Counts[`error_handling`])
}

func TestSelfEnforcementNeedsTwoIndicators(t *testing.T) {
	one := parse(t, `{"meta": {"self_validated": true}}`)
	report := conventions.New().Check(one)
	assert.False(t, report.SelfEnforcement.Compliant, "one indicator is not enough")

	two := parse(t, `{"meta": {"self_validated": true}, "checks": {"health_check_interval": 1}}`)
	report = conventions.New().Check(two)
	assert.True(t, report.SelfEnforcement.Compliant)
	assert.True(t, report.SelfEnforcement.Indicators[`"self_validated"`])
	assert.True(t, report.SelfEnforcement.Indicators[`health_check`])
}

func TestScorePartialCompliance(t *testing.T) {
	// Disclosure markers present, nothing else.
	doc := parse(t, `{"a": {"reveal_on": "immediate"}}`)

	report := conventions.New().Check(doc)

	assert.True(t, report.CognitiveLoad.Compliant)
	assert.True(t, report.Disclosure.Compliant)
	assert.True(t, report.Repetition.Compliant)
	assert.False(t, report.SelfEnforcement.Compliant)
	assert.InDelta(t, 0.75, report.Score(), 1e-9)
	assert.False(t, report.Passing())
}

func TestVersionUnknownWithoutMeta(t *testing.T) {
	doc := parse(t, `{"a": {}}`)
	report := conventions.New().Check(doc)
	assert.Equal(t, "unknown", report.Version)
}
