package webhook

// Payload is the decoded POST body of one webhook delivery: an ordered
// collection of entries, each with ordered change-sets, each carrying the
// inbound messages for one phone-number deployment.
type Payload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry is one account-level entry in a webhook delivery.
type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

// Change is one change-set inside an entry.
type Change struct {
	Field string `json:"field"`
	Value *Value `json:"value"`
}

// Value carries the messages and the metadata identifying which deployment
// the change-set was addressed to.
type Value struct {
	Messages []Message `json:"messages"`
	Metadata *Metadata `json:"metadata"`
}

// Metadata identifies the receiving phone number.
type Metadata struct {
	PhoneNumberID      string `json:"phone_number_id"`
	DisplayPhoneNumber string `json:"display_phone_number"`
}

// Message is one inbound message from a sender.
type Message struct {
	From        string       `json:"from"`
	Type        string       `json:"type"`
	Text        *Text        `json:"text"`
	Button      *Button      `json:"button"`
	Interactive *Interactive `json:"interactive"`
}

// Text is the free-text body of a message.
type Text struct {
	Body string `json:"body"`
}

// Button is the legacy quick-reply echo: the payload carries the id of the
// option the user tapped.
type Button struct {
	Payload string `json:"payload"`
	Text    string `json:"text"`
}

// Interactive is the reply to an interactive prompt (button or list).
type Interactive struct {
	Type        string       `json:"type"`
	ButtonReply *ButtonReply `json:"button_reply"`
	ListReply   *ListReply   `json:"list_reply"`
}

// ButtonReply echoes the tapped quick-reply button.
type ButtonReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ListReply echoes the chosen list row.
type ListReply struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SelectionID returns the opaque id of whatever interactive option the user
// chose, or "" when the message is not a reply to a prompt. Interactive
// replies win over the legacy button echo.
func (m *Message) SelectionID() string {
	if m.Interactive != nil {
		if m.Interactive.ButtonReply != nil && m.Interactive.ButtonReply.ID != "" {
			return m.Interactive.ButtonReply.ID
		}
		if m.Interactive.ListReply != nil && m.Interactive.ListReply.ID != "" {
			return m.Interactive.ListReply.ID
		}
	}
	if m.Button != nil {
		return m.Button.Payload
	}
	return ""
}

// Body returns the free-text body, or "" when there is none.
func (m *Message) Body() string {
	if m.Text == nil {
		return ""
	}
	return m.Text.Body
}

// Summary is the batch outcome reported back to the platform. Received is
// always true for a decoded payload: a non-2xx answer would make the
// platform retry the whole delivery, so partial internal failures must not
// surface here.
type Summary struct {
	Received  bool `json:"received"`
	Processed bool `json:"processed"`
}
