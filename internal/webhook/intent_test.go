package webhook

import "testing"

func textMessage(from, body string) *Message {
	return &Message{From: from, Type: "text", Text: &Text{Body: body}}
}

func TestClassifyTrigger(t *testing.T) {
	for _, body := range []string{"get pass", "GET PASS", "  Get Pass  ", "gEt pAsS"} {
		intent := Classify(textMessage("15551234567", body))
		if intent.Kind != IntentTrigger {
			t.Errorf("Classify(%q).Kind = %q, want trigger", body, intent.Kind)
		}
	}
}

func TestClassifySelectionToken(t *testing.T) {
	msg := &Message{
		From: "15551234567",
		Interactive: &Interactive{
			Type:        "button_reply",
			ButtonReply: &ButtonReply{ID: EncodeEmailSelection("alice@example.com"), Title: "alice@example.com"},
		},
	}

	intent := Classify(msg)
	if intent.Kind != IntentEmailSelection {
		t.Fatalf("Kind = %q, want email_selection", intent.Kind)
	}
	if intent.Email != "alice@example.com" {
		t.Errorf("Email = %q", intent.Email)
	}
}

func TestClassifyListReplyToken(t *testing.T) {
	msg := &Message{
		From: "15551234567",
		Interactive: &Interactive{
			Type:      "list_reply",
			ListReply: &ListReply{ID: EncodeEmailSelection("bob@example.com"), Title: "bob@example.com"},
		},
	}

	intent := Classify(msg)
	if intent.Kind != IntentEmailSelection || intent.Email != "bob@example.com" {
		t.Errorf("intent = %+v", intent)
	}
}

func TestClassifyLegacyButtonPayload(t *testing.T) {
	msg := &Message{
		From:   "15551234567",
		Button: &Button{Payload: EncodeEmailSelection("carol@example.com"), Text: "carol@example.com"},
	}

	intent := Classify(msg)
	if intent.Kind != IntentEmailSelection || intent.Email != "carol@example.com" {
		t.Errorf("intent = %+v", intent)
	}
}

func TestClassifyTypedEmail(t *testing.T) {
	intent := Classify(textMessage("15551234567", "my email is Alice.Smith+vip@Example.COM thanks"))
	if intent.Kind != IntentEmailSelection {
		t.Fatalf("Kind = %q, want email_selection", intent.Kind)
	}
	if intent.Email != "Alice.Smith+vip@Example.COM" {
		t.Errorf("Email = %q", intent.Email)
	}
}

func TestClassifyTokenPastedAsText(t *testing.T) {
	intent := Classify(textMessage("15551234567", "  "+EncodeEmailSelection("dave@example.com")+"  "))
	if intent.Kind != IntentEmailSelection || intent.Email != "dave@example.com" {
		t.Errorf("intent = %+v", intent)
	}
}

func TestClassifyEmailOutranksTrigger(t *testing.T) {
	intent := Classify(textMessage("15551234567", "get pass alice@example.com"))
	if intent.Kind != IntentEmailSelection {
		t.Errorf("Kind = %q, want email_selection when both signals present", intent.Kind)
	}
}

func TestClassifyIgnored(t *testing.T) {
	for _, body := range []string{"hello", "pass", "get my pass please", ""} {
		intent := Classify(textMessage("15551234567", body))
		if intent.Kind != IntentIgnored {
			t.Errorf("Classify(%q).Kind = %q, want ignored", body, intent.Kind)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last@example.com", "x+y@sub.domain.org"}
	for _, email := range valid {
		if !isValidEmail(email) {
			t.Errorf("isValidEmail(%q) = false", email)
		}
	}

	invalid := []string{"", "no-at-sign", "a@b", "a b@c.com", "@example.com"}
	for _, email := range invalid {
		if isValidEmail(email) {
			t.Errorf("isValidEmail(%q) = true", email)
		}
	}
}
