package email

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/roleready/roleready-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipients_DedupesAndDropsMalformed(t *testing.T) {
	report := ParseRecipients("a@x.com, a@x.com, not-an-email")

	assert.Equal(t, []string{"a@x.com"}, report.Accepted)
	assert.Equal(t, []string{"not-an-email"}, report.Dropped)
	assert.Equal(t, 1, report.DuplicatesRemoved)
}

func TestParseRecipients_SeparatorsAndCase(t *testing.T) {
	report := ParseRecipients(" B@Example.com;c@example.com\n\td@example.com  b@example.COM ")

	assert.Equal(t, []string{"b@example.com", "c@example.com", "d@example.com"}, report.Accepted)
	assert.Empty(t, report.Dropped)
	assert.Equal(t, 1, report.DuplicatesRemoved)
}

func TestParseRecipients_Empty(t *testing.T) {
	report := ParseRecipients("  ,, ;")

	assert.Empty(t, report.Accepted)
	assert.ErrorIs(t, CheckRecipients(report), ErrNoRecipients)
}

func TestParseRecipientsCSV_SkipsHeaderRow(t *testing.T) {
	csv := "name,email\nAda,ada@example.com\nBob,bob@example.com\nAda again,ADA@example.com\n"

	report, err := ParseRecipientsCSV(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"ada@example.com", "bob@example.com"}, report.Accepted)
	assert.Equal(t, []string{"Ada", "Bob", "Ada", "again"}, report.Dropped)
	assert.Equal(t, 1, report.DuplicatesRemoved)
}

func TestParseRecipientsCSV_NoHeader(t *testing.T) {
	report, err := ParseRecipientsCSV(strings.NewReader("ada@example.com\nbob@example.com\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ada@example.com", "bob@example.com"}, report.Accepted)
}

func TestParseRecipientsCSV_Malformed(t *testing.T) {
	_, err := ParseRecipientsCSV(strings.NewReader("\"unterminated,ada@example.com\n"))
	require.Error(t, err)
}

func TestParseRecipientsCSV_TooLarge(t *testing.T) {
	line := "ada@example.com\n"
	big := strings.Repeat(line, MaxRecipientFileBytes/len(line)+1)

	_, err := ParseRecipientsCSV(strings.NewReader(big))
	assert.ErrorIs(t, err, ErrRecipientFileTooLarge)
}

func TestParseRecipientsCSV_AtLimit(t *testing.T) {
	line := "ada@example.com\n"
	exact := strings.Repeat(line, MaxRecipientFileBytes/len(line))
	exact += strings.Repeat(" ", MaxRecipientFileBytes-len(exact))

	report, err := ParseRecipientsCSV(strings.NewReader(exact))
	require.NoError(t, err)
	assert.Equal(t, []string{"ada@example.com"}, report.Accepted)
}

func TestCheckRecipients_Limit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < models.MaxBulkEmailRecipients; i++ {
		fmt.Fprintf(&b, "user%d@example.com,", i)
	}

	report := ParseRecipients(b.String())
	require.NoError(t, CheckRecipients(report))

	report = ParseRecipients(b.String() + "one-more@example.com")
	err := CheckRecipients(report)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManyRecipients))
}

func TestMergeRecipients(t *testing.T) {
	text := ParseRecipients("a@x.com, bad")
	file := ParseRecipients("A@x.com b@x.com b@x.com")

	merged := MergeRecipients(text, file)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, merged.Accepted)
	assert.Equal(t, []string{"bad"}, merged.Dropped)
	assert.Equal(t, 2, merged.DuplicatesRemoved)
}
