package audit

import "time"

// Intent mirrors the dispatcher's classification of an inbound message.
type Intent string

const (
	IntentTrigger        Intent = "trigger"
	IntentEmailSelection Intent = "email_selection"
	IntentIgnored        Intent = "ignored"
)

// Outcome describes what the dispatcher did with a message.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered" // pass sent to the chat channel
	OutcomePrompted  Outcome = "prompted"  // disambiguation prompt sent
	OutcomeNoMatch   Outcome = "no_match"  // no directory candidate
	OutcomeApology   Outcome = "apology"   // unusable sender identifier
	OutcomeError     Outcome = "error"     // directory lookup failed
)

// Entry is one processed inbound message. Recording is best-effort: a
// failed insert never affects message handling.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Intent    Intent    `json:"intent"`
	Outcome   Outcome   `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
}
