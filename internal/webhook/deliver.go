package webhook

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vk4tech/passbot/internal/config"
	"github.com/vk4tech/passbot/internal/directory"
	"github.com/vk4tech/passbot/internal/gateway"
	"github.com/vk4tech/passbot/internal/mailer"
)

// Messenger is the outbound chat surface the dispatcher writes to.
// *gateway.Client satisfies it; tests substitute a recorder.
type Messenger interface {
	SendText(ctx context.Context, to, body string) error
	SendImage(ctx context.Context, to, imageURL, caption string) error
	SendButtons(ctx context.Context, to, bodyText string, buttons []gateway.ReplyButton) error
	SendList(ctx context.Context, to, bodyText, buttonLabel, sectionTitle string, rows []gateway.ListRow) error
}

const detailPlaceholder = "N/A"

// visitorDetails are the display fields of a record with every missing value
// replaced by a fixed placeholder, so nothing ever renders blank.
type visitorDetails struct {
	Name        string
	Email       string
	Designation string
	VisitorCode string
}

func detailsOf(rec *directory.VisitorRecord) visitorDetails {
	orNA := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return detailPlaceholder
		}
		return v
	}
	return visitorDetails{
		Name:        orNA(rec.Name),
		Email:       orNA(rec.Email),
		Designation: orNA(rec.Designation),
		VisitorCode: orNA(rec.VisitorCode),
	}
}

func (d visitorDetails) displayLines() []string {
	return []string{
		"Name: " + d.Name,
		"Email: " + d.Email,
		"Designation: " + d.Designation,
		"Visitor Code: " + d.VisitorCode,
	}
}

func buildCaption(rec *directory.VisitorRecord) string {
	lines := append([]string{"*Entry Pass*"}, detailsOf(rec).displayLines()...)
	return strings.Join(lines, "\n")
}

// Deliverer sends a resolved entry pass to its visitor over the chat
// channel and, independently, by email. Both legs are best-effort: a
// failure is logged and never propagated, so the bot always answers.
type Deliverer struct {
	messenger Messenger
	mail      mailer.Sender
	mailCfg   config.MailConfig
	fetcher   *http.Client
}

// NewDeliverer creates a Deliverer. A nil mail sender (or an empty mail API
// key in cfg) disables the email leg entirely.
func NewDeliverer(messenger Messenger, mail mailer.Sender, mailCfg config.MailConfig) *Deliverer {
	return &Deliverer{
		messenger: messenger,
		mail:      mail,
		mailCfg:   mailCfg,
		fetcher:   &http.Client{Timeout: 30 * time.Second},
	}
}

// DeliverPass sends the record back to the sender. The chat message is an
// image with caption when the record carries an entry-pass URL, plain text
// otherwise; the email leg runs regardless of the chat leg's outcome.
func (d *Deliverer) DeliverPass(ctx context.Context, rec *directory.VisitorRecord, to string) {
	caption := buildCaption(rec)

	var err error
	if rec.EntryPassURL != "" {
		err = d.messenger.SendImage(ctx, to, rec.EntryPassURL, caption)
	} else {
		err = d.messenger.SendText(ctx, to, caption)
	}
	if err != nil {
		log.Printf("webhook: entry pass chat send to %s failed: %v", to, err)
	}

	d.sendPassEmail(ctx, rec)
}

// sendPassEmail attempts the email leg. Skipped (not an error) when email
// is not configured or the record's email does not parse. A failed send is
// retried exactly once with the fallback sender identity, then swallowed.
func (d *Deliverer) sendPassEmail(ctx context.Context, rec *directory.VisitorRecord) {
	if d.mail == nil || d.mailCfg.APIKey == "" {
		return
	}
	if !isValidEmail(rec.Email) {
		log.Printf("webhook: skipping email, invalid recipient %q", rec.Email)
		return
	}

	details := detailsOf(rec)
	msg := mailer.Message{
		From:    mailer.Identity{Email: d.mailCfg.FromEmail, Name: d.mailCfg.FromName},
		To:      []mailer.Identity{{Email: rec.Email, Name: recipientName(details)}},
		Subject: buildEmailSubject(details),
		HTML:    buildEmailHTML(details, rec.EntryPassURL, d.mailCfg.FromName),
		Text:    buildEmailText(details, rec.EntryPassURL, d.mailCfg.FromName),
		Headers: map[string]string{
			// Unique per send so providers do not thread passes together.
			"X-Entity-Ref-ID": "entry-pass-" + uuid.New().String(),
		},
	}
	if d.mailCfg.ReplyToEmail != "" {
		msg.ReplyTo = &mailer.Identity{Email: d.mailCfg.ReplyToEmail, Name: d.mailCfg.ReplyToName}
	}

	if rec.EntryPassURL != "" {
		att, err := d.fetchPassAttachment(ctx, rec.EntryPassURL, details.VisitorCode)
		if err != nil {
			log.Printf("webhook: could not attach entry pass image: %v", err)
		} else {
			msg.Attachments = append(msg.Attachments, att)
		}
	}

	if err := d.mail.Send(ctx, msg); err != nil {
		log.Printf("webhook: email send to %s failed: %v", rec.Email, err)

		if d.mailCfg.FallbackFromEmail == "" || d.mailCfg.FallbackFromEmail == d.mailCfg.FromEmail {
			return
		}
		msg.From = mailer.Identity{Email: d.mailCfg.FallbackFromEmail, Name: d.mailCfg.FallbackFromName}
		if err := d.mail.Send(ctx, msg); err != nil {
			log.Printf("webhook: fallback email send to %s failed: %v", rec.Email, err)
		}
	}
}

func recipientName(details visitorDetails) string {
	if details.Name == detailPlaceholder {
		return ""
	}
	return details.Name
}

func buildEmailSubject(details visitorDetails) string {
	if details.VisitorCode != detailPlaceholder {
		return "Entry Pass - " + details.VisitorCode
	}
	return "Entry Pass"
}

// passNoticeLines are event-specific instructions appended under an
// "Important" heading in the pass email. Empty between events.
func passNoticeLines() []string {
	return nil
}

func buildEmailHTML(details visitorDetails, passURL, senderName string) string {
	greeting := details.Name
	if greeting == detailPlaceholder {
		greeting = "Participant"
	}

	var htmlLines []string
	for _, line := range details.displayLines() {
		htmlLines = append(htmlLines, html.EscapeString(line))
	}

	qrBlock := `<p style="margin:16px 0; font-size:12px; color:#666;">
        QR image could not be embedded. Please use the attached QR image.
      </p>`
	if passURL != "" {
		qrBlock = `<div style="margin:16px 0; text-align:center;">
        <img src="` + html.EscapeString(passURL) + `" alt="Entry Pass QR"
          style="width:100%;max-width:360px;height:auto;border:1px solid #eee;border-radius:12px;display:block;margin:0 auto;" />
      </div>
      <p style="margin:8px 0 0; font-size:12px; color:#666;">
        If the image does not load, use the attached QR image.
      </p>`
	}

	noticeBlock := ""
	if notices := passNoticeLines(); len(notices) > 0 {
		var escaped []string
		for _, line := range notices {
			escaped = append(escaped, html.EscapeString(line))
		}
		noticeBlock = `<p style="margin:16px 0 6px;"><strong>Important</strong></p>
    <p style="margin:0 0 12px;">` + strings.Join(escaped, "<br/>") + `</p>
    `
	}

	return `<!doctype html>
<html>
  <body style="font-family: Arial, sans-serif; font-size:14px; line-height:1.5; color:#111;">
    <p>Hi ` + html.EscapeString(greeting) + `,</p>
    <p>Your entry pass is below. Please keep this QR ready on your phone at entry.</p>
    ` + qrBlock + `
    <p style="margin:16px 0 6px;"><strong>Entry Pass Details</strong></p>
    <p style="margin:0 0 12px;">` + strings.Join(htmlLines, "<br/>") + `</p>
    ` + noticeBlock + `<p style="margin-top:16px;">Regards,<br/>` + html.EscapeString(senderName) + `</p>
  </body>
</html>`
}

func buildEmailText(details visitorDetails, passURL, senderName string) string {
	greeting := details.Name
	if greeting == detailPlaceholder {
		greeting = "Participant"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", greeting)
	b.WriteString("Your entry pass is below. Please keep this QR ready on your phone at entry.\n\n")
	b.WriteString("Entry Pass Details\n")
	b.WriteString(strings.Join(details.displayLines(), "\n"))
	b.WriteString("\n\n")
	if notices := passNoticeLines(); len(notices) > 0 {
		b.WriteString("Important\n")
		b.WriteString(strings.Join(notices, "\n"))
		b.WriteString("\n\n")
	}
	if passURL != "" {
		b.WriteString("If the QR image does not load, use the attached QR image.\n\n")
	}
	fmt.Fprintf(&b, "Regards,\n%s\n", senderName)
	return b.String()
}

// fetchPassAttachment downloads the entry-pass image and packages it as a
// mail attachment named after the visitor code, falling back to a generic
// name when the code is unavailable.
func (d *Deliverer) fetchPassAttachment(ctx context.Context, passURL, visitorCode string) (mailer.Attachment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, passURL, nil)
	if err != nil {
		return mailer.Attachment{}, fmt.Errorf("building entry pass fetch: %w", err)
	}

	resp, err := d.fetcher.Do(req)
	if err != nil {
		return mailer.Attachment{}, fmt.Errorf("fetching entry pass image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mailer.Attachment{}, fmt.Errorf("fetching entry pass image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return mailer.Attachment{}, fmt.Errorf("reading entry pass image: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	name := visitorCode
	if name == "" || name == detailPlaceholder {
		name = "entry-pass"
	}

	return mailer.Attachment{
		Name:        name + "." + inferImageExtension(contentType, passURL),
		ContentType: contentType,
		Content:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

var urlExtensionPattern = regexp.MustCompile(`(?i)\.([a-z0-9]+)(?:\?|$)`)

func inferImageExtension(contentType, passURL string) string {
	lowered := strings.ToLower(contentType)
	switch {
	case strings.Contains(lowered, "png"):
		return "png"
	case strings.Contains(lowered, "jpeg"), strings.Contains(lowered, "jpg"):
		return "jpg"
	case strings.Contains(lowered, "webp"):
		return "webp"
	case strings.Contains(lowered, "gif"):
		return "gif"
	}
	if m := urlExtensionPattern.FindStringSubmatch(passURL); m != nil {
		return strings.ToLower(m[1])
	}
	return "png"
}
