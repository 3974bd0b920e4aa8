package share

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/builder"
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
)

func sampleSnapshot() *builder.Snapshot {
	s := builder.NewSnapshot("bakery", "inst_1")
	s.SiteName = "Sunrise Bakery"
	s.BrandColor = "#f5a623"
	s.Logo = "/media/logo.png"
	s.SaveSection("hero", map[string]any{"headline": "Fresh Bread Daily", "cta": "Order now"})
	s.SaveSection("testimonials", map[string]any{
		"items": []any{map[string]any{"quote": "Best croissants in town", "name": "Ada"}},
	})
	return s
}

func TestRoundTrip(t *testing.T) {
	snapshot := sampleSnapshot()
	entries := []footprint.Entry{
		footprint.NewEntry(footprint.ActionSectionEdit, map[string]any{"sectionId": "hero"}, "sess_1"),
		footprint.NewEntry(footprint.ActionSectionEdit, map[string]any{"sectionId": "hero"}, "sess_1"),
		footprint.NewEntry(footprint.ActionColorChange, map[string]any{"color": "#f5a623"}, "sess_1"),
	}
	summary := footprint.Summarize(entries, "sess_1")

	encoded, err := NewPayload(snapshot, summary, entries, 5).Encode()
	if err != nil {
		t.Fatal(err)
	}

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}

	if decoded.SiteName != snapshot.SiteName {
		t.Fatalf("siteName: got %q, want %q", decoded.SiteName, snapshot.SiteName)
	}
	if decoded.BrandColor != snapshot.BrandColor {
		t.Fatalf("brandColor: got %q", decoded.BrandColor)
	}
	if decoded.Logo != snapshot.Logo {
		t.Fatalf("logo: got %q", decoded.Logo)
	}
	if !reflect.DeepEqual(decoded.SectionEdits, snapshot.SectionEdits) {
		t.Fatalf("sectionEdits: got %v, want %v", decoded.SectionEdits, snapshot.SectionEdits)
	}

	if decoded.Footprint == nil {
		t.Fatal("footprint digest missing")
	}
	if decoded.Footprint.Total != 3 {
		t.Fatalf("digest total: got %d, want 3", decoded.Footprint.Total)
	}
	if decoded.Footprint.Actions[footprint.ActionSectionEdit] != 2 {
		t.Fatalf("digest edit count: got %d", decoded.Footprint.Actions[footprint.ActionSectionEdit])
	}
	if decoded.Footprint.Sections["hero"] != 2 {
		t.Fatalf("digest hero modifications: got %d", decoded.Footprint.Sections["hero"])
	}
	if len(decoded.Footprint.Recent) != 3 {
		t.Fatalf("digest recent: got %d entries", len(decoded.Footprint.Recent))
	}
}

func TestRoundTrip_UnicodeAndQuotes(t *testing.T) {
	snapshot := builder.NewSnapshot("bakery", "inst_2")
	snapshot.SiteName = `Böulangerie "Chez Renée" — 渋谷 🥐`

	encoded, err := NewPayload(snapshot, nil, nil, 0).Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.SiteName != snapshot.SiteName {
		t.Fatalf("unicode siteName: got %q, want %q", decoded.SiteName, snapshot.SiteName)
	}
}

func TestDecode_Malformed(t *testing.T) {
	cases := []string{
		"",
		"not!!valid@@base64%%",
		"dHJ1bmNhdGVk", // valid base64 of plain text, not JSON
	}

	for _, payload := range cases {
		_, err := Decode(payload)
		if err == nil {
			t.Fatalf("Decode(%q) should fail", payload)
		}
		if !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("Decode(%q): error should wrap ErrMalformedPayload, got %v", payload, err)
		}
	}
}

func TestDecode_Truncated(t *testing.T) {
	snapshot := sampleSnapshot()
	encoded, err := NewPayload(snapshot, nil, nil, 0).Encode()
	if err != nil {
		t.Fatal(err)
	}

	_, err = Decode(encoded[:len(encoded)/2])
	if err == nil {
		t.Fatal("truncated payload should fail to decode")
	}
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("truncated payload error should wrap ErrMalformedPayload, got %v", err)
	}
}

func TestPayload_OmitsDeletedSections(t *testing.T) {
	snapshot := sampleSnapshot()
	snapshot.DeleteSection("hero")

	encoded, err := NewPayload(snapshot, nil, nil, 0).Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}

	// Deleted-section state does not travel; the edit itself still does.
	if _, ok := decoded.SectionEdits["hero"]; !ok {
		t.Fatal("edits for a deleted section must still travel")
	}
}

func TestPayload_URLSafe(t *testing.T) {
	snapshot := sampleSnapshot()
	snapshot.SiteName = "spaces & slashes / plus + signs"
	encoded, err := NewPayload(snapshot, nil, nil, 0).Encode()
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(encoded, "/+= ") {
		t.Fatalf("encoded payload must be URL-path safe, got %q", encoded)
	}
}

func TestPreviewURL(t *testing.T) {
	got := PreviewURL("https://builder.example.com", "bakery", "abc123")
	if got != "https://builder.example.com/preview/bakery/abc123" {
		t.Fatalf("preview url: got %q", got)
	}
}

func TestDigest_RecentCapped(t *testing.T) {
	var entries []footprint.Entry
	for i := 0; i < 10; i++ {
		entries = append(entries, footprint.NewEntry(footprint.ActionLinkCopy, nil, "sess"))
	}
	payload := NewPayload(builder.NewSnapshot("t", "i"), footprint.Summarize(entries, "sess"), entries, 5)
	if len(payload.Footprint.Recent) != 5 {
		t.Fatalf("recent actions: got %d, want 5", len(payload.Footprint.Recent))
	}
	if payload.Footprint.Recent[0].Timestamp.IsZero() {
		t.Fatal("recent action timestamps should be set")
	}
}
