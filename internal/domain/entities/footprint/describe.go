package footprint

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders a timestamp relative to now: "just now",
// "Xm ago", "Xh ago", "Xd ago", then a calendar date past one week.
func FormatRelativeTime(ts time.Time) string {
	return FormatRelativeTimeAt(ts, time.Now().UTC())
}

// FormatRelativeTimeAt is FormatRelativeTime with an explicit reference time
func FormatRelativeTimeAt(ts, now time.Time) string {
	elapsed := now.Sub(ts)

	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < 60*time.Minute:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	default:
		return ts.Format("Jan 2, 2006")
	}
}

// DescribeAction renders a human-readable sentence for an entry. Missing
// detail fields fall back to generic nouns; unrecognized kinds get a
// generic "performed" sentence.
func DescribeAction(kind ActionKind, e Entry) string {
	section := e.detailString("sectionId", "section")

	switch kind {
	case ActionSectionEdit:
		return fmt.Sprintf("edited the %s section", section)
	case ActionSectionDelete:
		return fmt.Sprintf("removed the %s section", section)
	case ActionSectionRestore:
		return fmt.Sprintf("restored the %s section", section)
	case ActionFormUpdate:
		return fmt.Sprintf("updated the %s field", e.detailString("field", "form"))
	case ActionColorChange:
		return fmt.Sprintf("changed the brand color to %s", e.detailString("color", "a new color"))
	case ActionTemplateSelect:
		return fmt.Sprintf("selected the %s template", e.detailString("templateName", "chosen"))
	case ActionBuildRequest:
		return "requested a site build"
	case ActionWhatsAppShare:
		return "shared the site via WhatsApp"
	case ActionLinkCopy:
		return "copied the preview link"
	case ActionPreviewOpen:
		return "opened the shared preview"
	default:
		return fmt.Sprintf("performed %s", string(kind))
	}
}

// IconFor returns a display symbol for an action kind, with a generic fallback
func IconFor(kind ActionKind) string {
	switch kind {
	case ActionSectionEdit:
		return "✏️"
	case ActionSectionDelete:
		return "🗑️"
	case ActionSectionRestore:
		return "♻️"
	case ActionFormUpdate:
		return "📝"
	case ActionColorChange:
		return "🎨"
	case ActionTemplateSelect:
		return "📐"
	case ActionBuildRequest:
		return "🚀"
	case ActionWhatsAppShare:
		return "💬"
	case ActionLinkCopy:
		return "🔗"
	case ActionPreviewOpen:
		return "👁️"
	default:
		return "•"
	}
}
