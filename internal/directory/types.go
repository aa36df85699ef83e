package directory

// VisitorRecord is one directory entry for a registered visitor. Records are
// written by the registration pipeline (or the import command) and only read
// here; one person may appear multiple times across events and registrations.
type VisitorRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Designation  string `json:"designation"`
	VisitorCode  string `json:"visitor_code"`
	VisitorType  string `json:"visitor_type"`
	EntryPassURL string `json:"entry_pass_url"`
}

// UniqueEmails reduces a broad lookup result to the distinct email addresses
// that drive disambiguation. Records without an email are ignored and the
// comparison is exact-string: two casings of the same address are distinct
// registrations as far as the directory is concerned.
func UniqueEmails(records []VisitorRecord) []string {
	seen := make(map[string]struct{}, len(records))
	var emails []string
	for _, rec := range records {
		if rec.Email == "" {
			continue
		}
		if _, ok := seen[rec.Email]; ok {
			continue
		}
		seen[rec.Email] = struct{}{}
		emails = append(emails, rec.Email)
	}
	return emails
}
