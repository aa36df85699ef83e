package webhook

import "unicode/utf8"

// Platform ceilings for interactive reply affordances. Exceeding any of
// them makes the gateway reject the whole message, so the selector degrades
// to the next affordance instead.
const (
	maxButtonTitleLength        = 20
	maxButtons                  = 3
	maxListRowTitleLength       = 24
	maxListRowDescriptionLength = 72
	maxListRows                 = 10
)

// PlanKind tags how the dispatcher should answer a trigger.
type PlanKind string

const (
	// PlanDeliver delivers the single candidate's pass directly.
	PlanDeliver PlanKind = "deliver"
	// PlanButtons asks via quick-reply buttons, one tap per option.
	PlanButtons PlanKind = "buttons"
	// PlanList asks via a scrollable list menu.
	PlanList PlanKind = "list"
	// PlanPlainText enumerates every candidate as a line to retype.
	PlanPlainText PlanKind = "plain_text"
	// PlanNoMatch reports that nothing is registered under the number.
	PlanNoMatch PlanKind = "no_match"
)

// Plan is the presentation decision for one resolved trigger. Computed
// once, consumed immediately, never stored.
type Plan struct {
	Kind   PlanKind
	Emails []string
}

// SelectPlan picks how to answer given the deduplicated candidate emails.
// Callers holding an exact-lookup record bypass this entirely and deliver
// directly.
func SelectPlan(emails []string) Plan {
	switch {
	case len(emails) == 0:
		return Plan{Kind: PlanNoMatch}

	case len(emails) == 1:
		return Plan{Kind: PlanDeliver, Emails: emails}

	case len(emails) <= maxButtons && allWithinButtonTitle(emails):
		return Plan{Kind: PlanButtons, Emails: emails}

	case len(emails) <= maxListRows:
		return Plan{Kind: PlanList, Emails: emails}

	default:
		return Plan{Kind: PlanPlainText, Emails: emails}
	}
}

func allWithinButtonTitle(emails []string) bool {
	for _, email := range emails {
		if utf8.RuneCountInString(email) > maxButtonTitleLength {
			return false
		}
	}
	return true
}

// truncateForLimit fits a value into a display limit: unmodified when it
// fits, otherwise cut to limit-3 with an ellipsis marker appended so the
// result is exactly limit characters. Limits count characters, not bytes,
// so a multi-byte address is never cut mid-rune.
func truncateForLimit(value string, maxLength int) string {
	runes := []rune(value)
	if len(runes) <= maxLength {
		return value
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-3]) + "..."
}
