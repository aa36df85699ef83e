package webhook

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/vk4tech/passbot/internal/audit"
	"github.com/vk4tech/passbot/internal/directory"
	"github.com/vk4tech/passbot/internal/gateway"
)

// Reply texts. Fixed strings, not templates: the bot speaks one language
// and the texts double as the registration funnel for unknown numbers.
const (
	unreadablePhoneText = "We could not read your phone number. Please try again."
	retryApologyText    = "Something went wrong while looking up your pass. Please try again."

	multipleEmailsPromptText = "Multiple emails detected for the same number, please choose one of the emails."
	multipleEmailsPlainText  = "Multiple emails detected for the same number, please reply with one of the emails below:"
	chooseEmailButtonLabel   = "Choose email"
	emailSectionTitle        = "Email Addresses"
)

func noEntryPassText() string {
	return strings.Join([]string{
		"No entry pass was found for this number.",
		"",
		"Please register using links below.",
		"",
		"For exhibition:",
		"vk.jyot.in/register",
		"",
		"For competitions and events:",
		"vk.jyot.in/vk4-registration",
		"",
		"For DLLE/NSS students:",
		"vk.jyot.in/vk4-dlle-registration",
	}, "\n")
}

func noEntryPassForEmailText() string {
	return strings.Join([]string{
		"No entry pass was found for that email.",
		"Please register on vk.jyot.in/register for exhibition visit or vk.jyot.in/vk4-registration for closed door sessions.",
		"https://vk.jyot.in/register",
		"https://vk.jyot.in/vk4-registration",
	}, "\n")
}

// Dispatcher walks one webhook payload and answers every actionable message
// in it. It holds no per-sender state: everything needed to resolve a
// selection rides inside the selection token itself.
type Dispatcher struct {
	phoneNumberID string
	dir           directory.Directory
	messenger     Messenger
	deliverer     *Deliverer
	audit         *audit.Store
}

// NewDispatcher wires a dispatcher. The audit store may be nil; auditing is
// an observation channel, never a dependency of the reply path.
func NewDispatcher(phoneNumberID string, dir directory.Directory, messenger Messenger, deliverer *Deliverer, auditStore *audit.Store) *Dispatcher {
	return &Dispatcher{
		phoneNumberID: phoneNumberID,
		dir:           dir,
		messenger:     messenger,
		deliverer:     deliverer,
		audit:         auditStore,
	}
}

// ProcessPayload handles one decoded webhook delivery in order: entries,
// then change-sets, then messages. Change-sets addressed to a different
// phone-number deployment are skipped. The summary always reports
// received=true; processed flips as soon as any message carried a
// recognized intent, whether or not its handling fully succeeded.
func (d *Dispatcher) ProcessPayload(ctx context.Context, payload *Payload) Summary {
	summary := Summary{Received: true}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Value == nil {
				continue
			}
			if change.Value.Metadata != nil &&
				change.Value.Metadata.PhoneNumberID != "" &&
				change.Value.Metadata.PhoneNumberID != d.phoneNumberID {
				continue
			}
			for i := range change.Value.Messages {
				if d.processMessage(ctx, &change.Value.Messages[i]) {
					summary.Processed = true
				}
			}
		}
	}

	return summary
}

// processMessage routes one inbound message. Returns whether the message
// carried a recognized intent.
func (d *Dispatcher) processMessage(ctx context.Context, msg *Message) bool {
	if msg.From == "" {
		return false
	}

	intent := Classify(msg)
	switch intent.Kind {
	case IntentEmailSelection:
		d.handleEmailSelection(ctx, msg.From, intent.Email)
		return true
	case IntentTrigger:
		d.handleTrigger(ctx, msg.From)
		return true
	default:
		return false
	}
}

// handleEmailSelection resolves a chosen email against the sender's phone
// and delivers the matching pass.
func (d *Dispatcher) handleEmailSelection(ctx context.Context, from, email string) {
	phone := directory.NormalizePhone(from)
	if phone == "" {
		d.reply(ctx, from, unreadablePhoneText)
		d.record(ctx, from, audit.IntentEmailSelection, audit.OutcomeApology, "unreadable phone")
		return
	}

	rec, err := d.dir.FindByPhoneAndEmail(ctx, phone, email)
	if err != nil {
		log.Printf("webhook: exact lookup for %s failed: %v", phone, err)
		d.reply(ctx, from, retryApologyText)
		d.record(ctx, from, audit.IntentEmailSelection, audit.OutcomeError, err.Error())
		return
	}
	if rec == nil {
		d.reply(ctx, from, noEntryPassForEmailText())
		d.record(ctx, from, audit.IntentEmailSelection, audit.OutcomeNoMatch, email)
		return
	}

	d.deliverer.DeliverPass(ctx, rec, from)
	d.record(ctx, from, audit.IntentEmailSelection, audit.OutcomeDelivered, rec.VisitorCode)
}

// handleTrigger resolves a pass request: broad lookup, email dedup, then
// the graduated presentation ladder.
func (d *Dispatcher) handleTrigger(ctx context.Context, from string) {
	phone := directory.NormalizePhone(from)
	if phone == "" {
		d.reply(ctx, from, unreadablePhoneText)
		d.record(ctx, from, audit.IntentTrigger, audit.OutcomeApology, "unreadable phone")
		return
	}

	records, err := d.dir.FindByPhone(ctx, phone)
	if err != nil {
		log.Printf("webhook: broad lookup for %s failed: %v", phone, err)
		d.reply(ctx, from, retryApologyText)
		d.record(ctx, from, audit.IntentTrigger, audit.OutcomeError, err.Error())
		return
	}

	emails := directory.UniqueEmails(records)
	plan := SelectPlan(emails)

	// Records without any usable email still identify a single visitor.
	if plan.Kind == PlanNoMatch && len(records) > 0 {
		plan = Plan{Kind: PlanDeliver}
	}

	switch plan.Kind {
	case PlanNoMatch:
		d.reply(ctx, from, noEntryPassText())
		d.record(ctx, from, audit.IntentTrigger, audit.OutcomeNoMatch, "")

	case PlanDeliver:
		d.deliverer.DeliverPass(ctx, &records[0], from)
		d.record(ctx, from, audit.IntentTrigger, audit.OutcomeDelivered, records[0].VisitorCode)

	case PlanButtons:
		buttons := make([]gateway.ReplyButton, 0, len(plan.Emails))
		for _, email := range plan.Emails {
			buttons = append(buttons, gateway.ReplyButton{
				ID:    EncodeEmailSelection(email),
				Title: email,
			})
		}
		if err := d.messenger.SendButtons(ctx, from, multipleEmailsPromptText, buttons); err != nil {
			log.Printf("webhook: button prompt to %s failed: %v", from, err)
		}
		d.record(ctx, from, audit.IntentTrigger, audit.OutcomePrompted, fmt.Sprintf("%d candidates (buttons)", len(plan.Emails)))

	case PlanList:
		rows := make([]gateway.ListRow, 0, len(plan.Emails))
		for _, email := range plan.Emails {
			rows = append(rows, gateway.ListRow{
				ID:          EncodeEmailSelection(email),
				Title:       truncateForLimit(email, maxListRowTitleLength),
				Description: truncateForLimit(email, maxListRowDescriptionLength),
			})
		}
		if err := d.messenger.SendList(ctx, from, multipleEmailsPromptText, chooseEmailButtonLabel, emailSectionTitle, rows); err != nil {
			log.Printf("webhook: list prompt to %s failed: %v", from, err)
		}
		d.record(ctx, from, audit.IntentTrigger, audit.OutcomePrompted, fmt.Sprintf("%d candidates (list)", len(plan.Emails)))

	case PlanPlainText:
		lines := make([]string, 0, len(plan.Emails)+1)
		lines = append(lines, multipleEmailsPlainText)
		for _, email := range plan.Emails {
			lines = append(lines, "- "+email)
		}
		d.reply(ctx, from, strings.Join(lines, "\n"))
		d.record(ctx, from, audit.IntentTrigger, audit.OutcomePrompted, fmt.Sprintf("%d candidates (plain)", len(plan.Emails)))
	}
}

func (d *Dispatcher) reply(ctx context.Context, to, body string) {
	if err := d.messenger.SendText(ctx, to, body); err != nil {
		log.Printf("webhook: reply to %s failed: %v", to, err)
	}
}

// record writes one audit row, best effort.
func (d *Dispatcher) record(ctx context.Context, sender string, intent audit.Intent, outcome audit.Outcome, detail string) {
	if d.audit == nil {
		return
	}
	if err := d.audit.Log(ctx, audit.Entry{
		Sender:  sender,
		Intent:  intent,
		Outcome: outcome,
		Detail:  detail,
	}); err != nil {
		log.Printf("webhook: audit log failed: %v", err)
	}
}
