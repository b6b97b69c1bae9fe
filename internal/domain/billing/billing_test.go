package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luminacoach/lumina/internal/models"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]models.Invoice{
		{Amount: 150, Status: "paid"},
		{Amount: 200, Status: "paid"},
		{Amount: 120, Status: "pending"},
		{Amount: 80, Status: "overdue"},
	})

	assert.Equal(t, 350.0, s.Paid)
	assert.Equal(t, 120.0, s.Pending)
	assert.Equal(t, 80.0, s.Overdue)
	assert.Equal(t, 200.0, s.Outstanding)
	assert.Equal(t, 550.0, s.Total)
	assert.Equal(t, 4, s.Count)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestParseInvoiceStatus(t *testing.T) {
	st, err := ParseInvoiceStatus("OVERDUE")
	assert.NoError(t, err)
	assert.Equal(t, InvoiceOverdue, st)

	_, err = ParseInvoiceStatus("void")
	assert.Error(t, err)
}
