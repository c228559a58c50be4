package email

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/roleready/roleready-api/internal/models"
)

// MaxRecipientFileBytes caps an uploaded recipient file
const MaxRecipientFileBytes = 2 << 20

var (
	ErrNoRecipients          = errors.New("no valid recipients")
	ErrTooManyRecipients     = fmt.Errorf("more than %d recipients", models.MaxBulkEmailRecipients)
	ErrRecipientFileTooLarge = fmt.Errorf("recipient file is larger than %d bytes", MaxRecipientFileBytes)
	recipientSeparators      = ",;\n\r\t "
	recipientValidator       = validator.New()
)

// ParseRecipients splits free text on commas, semicolons, whitespace and
// newlines. Addresses are trimmed and lowercased; malformed entries are
// dropped and duplicates removed keeping first-seen order.
func ParseRecipients(text string) models.RecipientReport {
	return buildReport(splitRecipients(text))
}

// ParseRecipientsCSV reads every cell of a CSV file as a candidate address.
// A first row without any valid address is treated as a header. Files over
// MaxRecipientFileBytes are rejected rather than truncated.
func ParseRecipientsCSV(r io.Reader) (models.RecipientReport, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxRecipientFileBytes+1))
	if err != nil {
		return models.RecipientReport{}, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(data) > MaxRecipientFileBytes {
		return models.RecipientReport{}, ErrRecipientFileTooLarge
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var fields []string
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.RecipientReport{}, fmt.Errorf("invalid csv: %w", err)
		}

		var cells []string
		for _, cell := range record {
			cells = append(cells, splitRecipients(cell)...)
		}
		if row == 0 && len(buildReport(cells).Accepted) == 0 {
			continue
		}
		fields = append(fields, cells...)
	}

	return buildReport(fields), nil
}

// CheckRecipients enforces the per-send limits on a parsed list
func CheckRecipients(report models.RecipientReport) error {
	switch {
	case len(report.Accepted) == 0:
		return ErrNoRecipients
	case len(report.Accepted) > models.MaxBulkEmailRecipients:
		return fmt.Errorf("%w: got %d", ErrTooManyRecipients, len(report.Accepted))
	}
	return nil
}

// MergeRecipients combines two parsed lists, e.g. typed text plus a CSV file
func MergeRecipients(a, b models.RecipientReport) models.RecipientReport {
	merged := buildReport(append(append([]string{}, a.Accepted...), b.Accepted...))
	merged.Dropped = append(append(merged.Dropped, a.Dropped...), b.Dropped...)
	merged.DuplicatesRemoved += a.DuplicatesRemoved + b.DuplicatesRemoved
	return merged
}

func buildReport(fields []string) models.RecipientReport {
	report := models.RecipientReport{Accepted: []string{}, Dropped: []string{}}
	seen := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		addr := strings.ToLower(strings.Trim(strings.TrimSpace(f), `"'<>`))
		if addr == "" {
			continue
		}
		if recipientValidator.Var(addr, "required,email") != nil {
			report.Dropped = append(report.Dropped, f)
			continue
		}
		if _, dup := seen[addr]; dup {
			report.DuplicatesRemoved++
			continue
		}
		seen[addr] = struct{}{}
		report.Accepted = append(report.Accepted, addr)
	}
	return report
}

func splitRecipients(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(recipientSeparators, r)
	})
}
