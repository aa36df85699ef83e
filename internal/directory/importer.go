package directory

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ImportResult summarises a CSV import.
type ImportResult struct {
	Records []VisitorRecord
	Skipped int // rows dropped for an unusable phone number
}

// ReadCSV parses visitor registrations from a CSV export. The first row is a
// header naming the columns; name, email, phone, designation, visitor_code,
// visitor_type and entry_pass_url are recognized, anything else is ignored.
// Phone values are normalized on the way in; rows whose phone cannot be
// normalized are counted in Skipped rather than failing the import.
func ReadCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["phone"]; !ok {
		return nil, fmt.Errorf("CSV is missing the required phone column")
	}

	field := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	result := &ImportResult{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		phone := NormalizePhone(field(row, "phone"))
		if phone == "" {
			result.Skipped++
			continue
		}

		result.Records = append(result.Records, VisitorRecord{
			Name:         field(row, "name"),
			Email:        field(row, "email"),
			Phone:        phone,
			Designation:  field(row, "designation"),
			VisitorCode:  field(row, "visitor_code"),
			VisitorType:  field(row, "visitor_type"),
			EntryPassURL: field(row, "entry_pass_url"),
		})
	}

	return result, nil
}
