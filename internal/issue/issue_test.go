package issue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverity_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		severity Severity
		want     string
	}{
		"info":    {severity: SeverityInfo, want: "info"},
		"warning": {severity: SeverityWarning, want: "warning"},
		"error":   {severity: SeverityError, want: "error"},
		"fatal":   {severity: SeverityFatal, want: "fatal"},
		"unknown": {severity: Severity(42), want: "unknown"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.severity.String())
		})
	}
}

func TestIssue_String(t *testing.T) {
	t.Parallel()

	i := Issue{Severity: SeverityWarning, ItemID: "1.0", Type: "numbering_gap", Message: "missing 2"}
	assert.Equal(t, "[warning] numbering_gap (1.0): missing 2", i.String())

	noItem := Issue{Severity: SeverityFatal, Type: "empty_outline", Message: "no milestones"}
	assert.Equal(t, "[fatal] empty_outline: no milestones", noItem.String())
}

func TestReport_AccessorsAndMerge(t *testing.T) {
	t.Parallel()

	r := &Report{}
	assert.False(t, r.HasErrors())
	assert.False(t, r.HasFatal())

	r.Add(Issue{Severity: SeverityInfo, Type: "a"})
	r.Add(Issue{Severity: SeverityWarning, Type: "b"})
	assert.False(t, r.HasErrors())

	other := &Report{}
	other.Add(Issue{Severity: SeverityError, Type: "c"})
	other.Add(Issue{Severity: SeverityFatal, Type: "d"})
	r.Merge(other)
	r.Merge(nil)

	assert.Equal(t, 4, r.Len())
	assert.Len(t, r.Infos(), 1)
	assert.Len(t, r.Warnings(), 1)
	assert.Len(t, r.Errors(), 1)
	assert.Len(t, r.Fatals(), 1)
	assert.True(t, r.HasErrors())
	assert.True(t, r.HasFatal())

	// Order of collection is preserved.
	assert.Equal(t, []string{"a", "b", "c", "d"}, []string{
		r.Issues[0].Type, r.Issues[1].Type, r.Issues[2].Type, r.Issues[3].Type,
	})
}
