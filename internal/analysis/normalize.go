// Package analysis holds the aggregation, selection and binning routines that
// turn the storefront table into chart-ready data.
package analysis

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/maroof-insights/storefront-dashboard/internal/models"
)

const (
	// PlaceholderCategory is the "other" label excluded from the business mix
	PlaceholderCategory = "أخرى"

	// UnspecifiedCategory is returned when no usable label exists
	UnspecifiedCategory = "لم يتم التحديد"

	// Unavailable replaces a missing rating, review count or name
	Unavailable = "غير متاح"

	// NoDescription replaces a missing description
	NoDescription = "لا يوجد وصف متاح"

	maxDescriptionRunes = 200
	truncatedRunes      = 197

	hoverColor = "#202020"
)

var nullLikeTokens = []string{"nan", "none", "null"}

var numberPrinter = message.NewPrinter(language.English)

// categoryRule picks a category from a record when its predicate holds
type categoryRule struct {
	name string
	pick func(models.StoreRecord) (string, bool)
}

// categoryRules are evaluated in order; the first match wins
var categoryRules = []categoryRule{
	{
		name: "primary",
		pick: func(r models.StoreRecord) (string, bool) {
			label, ok := usableLabel(r.BusinessType)
			if !ok || label == PlaceholderCategory {
				return "", false
			}
			return label, true
		},
	},
	{
		name: "free-text",
		pick: func(r models.StoreRecord) (string, bool) {
			return usableLabel(r.OtherType)
		},
	},
}

// ResolveCategory returns the canonical business type of a record. The primary
// label wins over the free-text label; UnspecifiedCategory is the fallback.
func ResolveCategory(r models.StoreRecord) string {
	for _, rule := range categoryRules {
		if label, ok := rule.pick(r); ok {
			return label
		}
	}
	return UnspecifiedCategory
}

// usableLabel trims the label and rejects missing, blank and null-like values
func usableLabel(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	label := strings.TrimSpace(*v)
	if label == "" || isNullLike(label) {
		return "", false
	}
	return label, true
}

func isNullLike(s string) bool {
	for _, token := range nullLikeTokens {
		if strings.EqualFold(s, token) {
			return true
		}
	}
	return false
}

// FormatRating renders a rating with two decimals or the unavailable sentinel
func FormatRating(r models.StoreRecord) string {
	if !r.HasRating() {
		return Unavailable
	}
	return fmt.Sprintf("%.2f", *r.Rating)
}

// FormatReviews renders a thousands-grouped review count or the unavailable sentinel
func FormatReviews(r models.StoreRecord) string {
	if !r.HasReviews() {
		return Unavailable
	}
	return FormatCount(*r.TotalReviews)
}

// FormatCount groups an integer by thousands ("12,345")
func FormatCount(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}

// FormatDescription trims the description and shortens anything longer than
// 200 characters to 197 characters plus "...".
func FormatDescription(r models.StoreRecord) string {
	if r.Description == nil {
		return NoDescription
	}
	desc := strings.TrimSpace(*r.Description)
	runes := []rune(desc)
	if len(runes) > maxDescriptionRunes {
		return string(runes[:truncatedRunes]) + "..."
	}
	return desc
}

// FormatName returns the display name or the unavailable sentinel
func FormatName(r models.StoreRecord) string {
	if strings.TrimSpace(r.Name) == "" {
		return Unavailable
	}
	return r.Name
}

// BuildHoverText formats the tooltip shown for a store bar
func BuildHoverText(r models.StoreRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b style='color:%s;'>%s</b><br>", hoverColor, FormatName(r))
	writeHoverField(&b, "النوع", ResolveCategory(r), true)
	writeHoverField(&b, "التقييم", FormatRating(r), true)
	writeHoverField(&b, "عدد التقييمات", FormatReviews(r), true)
	writeHoverField(&b, "الوصف", FormatDescription(r), false)
	return b.String()
}

func writeHoverField(b *strings.Builder, label, value string, lineBreak bool) {
	fmt.Fprintf(b, "<b style='color:%s;'>%s:</b> <span style='color:%s;'>%s</span>", hoverColor, label, hoverColor, value)
	if lineBreak {
		b.WriteString("<br>")
	}
}
