package footprint

import (
	"strings"
	"testing"
	"time"
)

func entryAt(kind ActionKind, sectionID string, ts time.Time) Entry {
	details := map[string]any{}
	if sectionID != "" {
		details["sectionId"] = sectionID
	}
	return Entry{
		ID:        "test-" + string(kind),
		Kind:      kind,
		Details:   details,
		Timestamp: ts,
		SessionID: "sess_1",
	}
}

func TestSummarize_Aggregation(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		entryAt(ActionSectionEdit, "a", base),
		entryAt(ActionSectionEdit, "a", base.Add(time.Minute)),
		entryAt(ActionSectionEdit, "a", base.Add(2*time.Minute)),
		entryAt(ActionSectionDelete, "b", base.Add(3*time.Minute)),
	}

	summary := Summarize(entries, "sess_1")

	if summary.TotalActions != 4 {
		t.Fatalf("total: got %d, want 4", summary.TotalActions)
	}
	if summary.Actions[ActionSectionEdit] != 3 {
		t.Fatalf("section_edit count: got %d, want 3", summary.Actions[ActionSectionEdit])
	}
	if summary.Sections["a"].Edits != 3 {
		t.Fatalf("sections.a.edits: got %d, want 3", summary.Sections["a"].Edits)
	}
	if summary.Sections["b"].Deletes != 1 {
		t.Fatalf("sections.b.deletes: got %d, want 1", summary.Sections["b"].Deletes)
	}
	if !summary.FirstAction.Equal(base) {
		t.Fatalf("firstAction: got %v, want %v", summary.FirstAction, base)
	}
	if !summary.LastAction.Equal(base.Add(3 * time.Minute)) {
		t.Fatalf("lastAction: got %v", summary.LastAction)
	}
	if !summary.Sections["a"].LastModified.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("sections.a.lastModified: got %v", summary.Sections["a"].LastModified)
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, "sess_2")
	if summary.TotalActions != 0 {
		t.Fatalf("total: got %d, want 0", summary.TotalActions)
	}
	if summary.FirstAction != nil {
		t.Fatal("firstAction should be nil for an empty log")
	}
	if summary.SessionID != "sess_2" {
		t.Fatalf("sessionId: got %q", summary.SessionID)
	}
}

func TestSummarize_IgnoresEntriesWithoutSectionID(t *testing.T) {
	entries := []Entry{
		entryAt(ActionColorChange, "", time.Now()),
		entryAt(ActionLinkCopy, "", time.Now()),
	}
	summary := Summarize(entries, "sess_3")
	if len(summary.Sections) != 0 {
		t.Fatalf("sections: got %d entries, want 0", len(summary.Sections))
	}
	if summary.Actions[ActionColorChange] != 1 {
		t.Fatalf("color_change count: got %d", summary.Actions[ActionColorChange])
	}
}

func TestFormatRelativeTimeAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ts   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-59 * time.Minute), "59m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-26 * time.Hour), "1d ago"},
		{now.Add(-6 * 24 * time.Hour), "6d ago"},
		{now.Add(-8 * 24 * time.Hour), "Mar 2, 2026"},
	}
	for _, tc := range cases {
		if got := FormatRelativeTimeAt(tc.ts, now); got != tc.want {
			t.Errorf("FormatRelativeTimeAt(%v): got %q, want %q", tc.ts, got, tc.want)
		}
	}
}

func TestDescribeAction_MissingDetails(t *testing.T) {
	e := Entry{Kind: ActionSectionEdit}
	got := DescribeAction(ActionSectionEdit, e)
	if !strings.Contains(got, "section") {
		t.Fatalf("description should fall back to generic noun, got %q", got)
	}
}

func TestDescribeAction_UnknownKind(t *testing.T) {
	e := Entry{Kind: ActionKind("mystery_action")}
	got := DescribeAction(e.Kind, e)
	if got != "performed mystery_action" {
		t.Fatalf("unknown kind description: got %q", got)
	}
}

func TestIconFor_Fallback(t *testing.T) {
	if IconFor(ActionKind("nope")) != "•" {
		t.Fatal("unknown kind should get the generic icon")
	}
	if IconFor(ActionSectionEdit) == "•" {
		t.Fatal("known kind should have a specific icon")
	}
}

func TestNewEntry_Defaults(t *testing.T) {
	e := NewEntry(ActionSectionEdit, nil, "sess_4")
	if e.ID == "" {
		t.Fatal("entry id not generated")
	}
	if e.Details == nil {
		t.Fatal("nil details should be replaced with an empty map")
	}
	if e.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}
	if _, ok := e.SectionID(); ok {
		t.Fatal("entry without sectionId detail should report none")
	}
}
