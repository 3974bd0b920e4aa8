// Package share provides the shareable-link payload and its codec. A compact
// projection of the customization snapshot plus a footprint digest travels as
// a URL-safe string: JSON, URI-escaped, then base64. Field names are kept to
// one letter to bound URL length.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/builder"
	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/footprint"
)

// ErrMalformedPayload signals a payload that cannot be decoded. Distinct from
// a not-found template so the preview surface can render the right error page.
var ErrMalformedPayload = errors.New("malformed share payload")

// Payload is the compact wire form of a shared snapshot. Deleted sections are
// deliberately not part of the payload: a shared link replays edits but does
// not suppress sections.
type Payload struct {
	SiteName     string                    `json:"n,omitempty"`
	BrandColor   string                    `json:"c,omitempty"`
	Logo         string                    `json:"l,omitempty"`
	SectionEdits map[string]map[string]any `json:"e,omitempty"`
	Footprint    *Digest                   `json:"f,omitempty"`
}

// Digest is the footprint summary projection that travels with a share link
type Digest struct {
	Total       int                          `json:"t"`
	Actions     map[footprint.ActionKind]int `json:"a,omitempty"`
	Sections    map[string]int               `json:"s,omitempty"`
	FirstAction *time.Time                   `json:"ts,omitempty"`
	Recent      []RecentAction               `json:"r,omitempty"`
}

// RecentAction is one detailed action in the digest
type RecentAction struct {
	Kind        footprint.ActionKind `json:"k"`
	Description string               `json:"d,omitempty"`
	Timestamp   time.Time            `json:"at"`
}

// NewPayload projects a snapshot and footprint summary into wire form.
// recentEntries is expected most-recent-first; at most recentN travel.
func NewPayload(snapshot *builder.Snapshot, summary *footprint.Summary, recentEntries []footprint.Entry, recentN int) *Payload {
	payload := &Payload{
		SiteName:     snapshot.SiteName,
		BrandColor:   snapshot.BrandColor,
		Logo:         snapshot.Logo,
		SectionEdits: snapshot.SectionEdits,
	}

	if summary == nil {
		return payload
	}

	digest := &Digest{
		Total:       summary.TotalActions,
		Actions:     summary.Actions,
		FirstAction: summary.FirstAction,
	}
	if len(summary.Sections) > 0 {
		digest.Sections = make(map[string]int, len(summary.Sections))
		for sectionID, activity := range summary.Sections {
			digest.Sections[sectionID] = activity.Edits + activity.Deletes + activity.Restores
		}
	}
	for i, entry := range recentEntries {
		if i >= recentN {
			break
		}
		digest.Recent = append(digest.Recent, RecentAction{
			Kind:        entry.Kind,
			Description: footprint.DescribeAction(entry.Kind, entry),
			Timestamp:   entry.Timestamp,
		})
	}
	payload.Footprint = digest

	return payload
}

// Encode serializes the payload to its URL-safe string form
func (p *Payload) Encode() (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal share payload: %w", err)
	}
	escaped := url.QueryEscape(string(raw))
	return base64.RawURLEncoding.EncodeToString([]byte(escaped)), nil
}

// Decode is the inverse of Encode. Any stage failure yields an error wrapping
// ErrMalformedPayload; callers must treat it as user-visible, not a crash.
func Decode(encoded string) (*Payload, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedPayload)
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		// Tolerate padded or standard-alphabet variants of our own output.
		raw, err = base64.URLEncoding.DecodeString(encoded)
		if err != nil {
			raw, err = base64.StdEncoding.DecodeString(encoded)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: not valid base64", ErrMalformedPayload)
		}
	}

	unescaped, err := url.QueryUnescape(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: bad URI escaping", ErrMalformedPayload)
	}

	var payload Payload
	if err := json.Unmarshal([]byte(unescaped), &payload); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON", ErrMalformedPayload)
	}
	return &payload, nil
}

// PreviewURL composes the full shareable link for a template instance
func PreviewURL(origin, templateID, encodedPayload string) string {
	return fmt.Sprintf("%s/preview/%s/%s", origin, templateID, encodedPayload)
}
