package directory

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"+1 (415) 555-0132", "4155550132"},
		{"919876543210", "9876543210"},
		{"98765 43210", "9876543210"},
		{"123", ""},
		{"", ""},
		{"no digits here", ""},
		{"00919876543210", "9876543210"},
		{"9876543210", "9876543210"},
	}
	for _, tt := range tests {
		got := NormalizePhone(tt.input)
		if got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	inputs := []string{"+1 (415) 555-0132", "919876543210", "123", "", "abc9876543210xyz"}
	for _, input := range inputs {
		once := NormalizePhone(input)
		twice := NormalizePhone(once)
		if once != twice {
			t.Errorf("NormalizePhone not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestUniqueEmails(t *testing.T) {
	records := []VisitorRecord{
		{Email: "a@x.com"},
		{Email: "A@X.com"},
		{Email: "b@x.com"},
		{Email: ""},
		{Email: "a@x.com"},
	}
	emails := UniqueEmails(records)
	// Dedup is exact-string: a@x.com and A@X.com are distinct registrations.
	want := []string{"a@x.com", "A@X.com", "b@x.com"}
	if len(emails) != len(want) {
		t.Fatalf("expected %d unique emails, got %d: %v", len(want), len(emails), emails)
	}
	for i, e := range want {
		if emails[i] != e {
			t.Errorf("emails[%d] = %q, want %q", i, emails[i], e)
		}
	}
}

func TestUniqueEmailsEmpty(t *testing.T) {
	if got := UniqueEmails(nil); got != nil {
		t.Errorf("expected nil for no records, got %v", got)
	}
	if got := UniqueEmails([]VisitorRecord{{Email: ""}}); got != nil {
		t.Errorf("expected nil for records without emails, got %v", got)
	}
}
