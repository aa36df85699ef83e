package webhook

import (
	"regexp"
	"strings"
)

// IntentKind tags what an inbound message means.
type IntentKind string

const (
	// IntentTrigger is a request for the sender's entry pass.
	IntentTrigger IntentKind = "trigger"
	// IntentEmailSelection is a picked or typed email resolving a
	// disambiguation prompt.
	IntentEmailSelection IntentKind = "email_selection"
	// IntentIgnored is anything without actionable content.
	IntentIgnored IntentKind = "ignored"
)

// Intent is the classified meaning of one inbound message. Email carries
// the selected address for IntentEmailSelection and is empty otherwise.
type Intent struct {
	Kind  IntentKind
	Email string
}

// triggerPhrase is the fixed text that asks for a pass.
const triggerPhrase = "get pass"

var emailPattern = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)

// Classify turns one inbound message into a typed intent. An email signal
// always outranks the trigger phrase: a user resolving an earlier prompt may
// retype "get pass" in the same message, and the email is the narrower,
// more specific signal.
func Classify(msg *Message) Intent {
	if email, ok := DecodeEmailSelection(msg.SelectionID()); ok {
		return Intent{Kind: IntentEmailSelection, Email: email}
	}

	body := msg.Body()
	if email, ok := DecodeEmailSelection(strings.TrimSpace(body)); ok {
		return Intent{Kind: IntentEmailSelection, Email: email}
	}
	if email := emailPattern.FindString(body); email != "" {
		return Intent{Kind: IntentEmailSelection, Email: email}
	}

	if strings.ToLower(strings.TrimSpace(body)) == triggerPhrase {
		return Intent{Kind: IntentTrigger}
	}

	return Intent{Kind: IntentIgnored}
}

var validEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// isValidEmail is the syntax gate for outbound email delivery, deliberately
// loose: the provider is the real validator.
func isValidEmail(value string) bool {
	return validEmailPattern.MatchString(value)
}
