package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemType_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		typ  ItemType
		want string
	}{
		"milestone": {typ: TypeMilestone, want: "Milestone"},
		"epic":      {typ: TypeEpic, want: "Epic"},
		"story":     {typ: TypeStory, want: "Story"},
		"task":      {typ: TypeTask, want: "Task"},
		"unknown":   {typ: ItemType(9), want: "Unknown"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestTypeForID(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		id     string
		want   ItemType
		wantOK bool
	}{
		"milestone":  {id: "2", want: TypeMilestone, wantOK: true},
		"epic":       {id: "2.0", want: TypeEpic, wantOK: true},
		"story":      {id: "2.0.1", want: TypeStory, wantOK: true},
		"task":       {id: "2.0.1.3", want: TypeTask, wantOK: true},
		"too deep":   {id: "1.2.3.4.5", wantOK: false},
		"empty":      {id: "", wantOK: false},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, ok := TypeForID(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
				assert.Equal(t, tt.want.Depth(), len(splitID(tt.id)))
			}
		})
	}
}

func TestParentID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ParentID("3"))
	assert.Equal(t, "3", ParentID("3.1"))
	assert.Equal(t, "3.1.2", ParentID("3.1.2.4"))
}

func TestItem_AddDependency_Dedupes(t *testing.T) {
	t.Parallel()

	item := &Item{ID: "1.0.1.2", Type: TypeTask}
	item.AddDependency(Dependency{TargetID: "1.0.1.1", Type: TypeTask, Blocking: true})
	item.AddDependency(Dependency{TargetID: "1.0.1.1", Type: TypeTask, Blocking: true})
	item.AddDependency(Dependency{TargetID: "1.0", Type: TypeEpic, Blocking: true})

	assert.Len(t, item.Dependencies, 2)
	assert.Equal(t, "1.0.1.1", item.Dependencies[0].TargetID)
	assert.Equal(t, "1.0", item.Dependencies[1].TargetID)
}

func TestItem_Text(t *testing.T) {
	t.Parallel()

	bare := &Item{Title: "Login endpoint"}
	assert.Equal(t, "Login endpoint", bare.Text())

	described := &Item{Title: "Login endpoint", Description: Description{FullText: "Build the endpoint."}}
	assert.Equal(t, "Login endpoint Build the endpoint.", described.Text())
}

// splitID is a test helper mirroring the depth derivation.
func splitID(id string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(id); i++ {
		if i == len(id) || id[i] == '.' {
			parts = append(parts, id[start:i])
			start = i + 1
		}
	}
	return parts
}
