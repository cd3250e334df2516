package expense

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

type CsvReportRenderer interface {
	RenderExpenses(expenses []Expense) (string, error)
}

type CsvReportRendererImpl struct {
}

func NewCsvReportRenderer() *CsvReportRendererImpl {
	return &CsvReportRendererImpl{}
}

// RenderExpenses renders a team's expenses as CSV, one row per expense with
// a trailing total row over the approved ones.
func (t *CsvReportRendererImpl) RenderExpenses(expenses []Expense) (string, error) {
	data := make([][]string, 0, len(expenses)+2)
	data = append(data, []string{"Date", "Description", "Category", "Amount", "Status"})

	approvedTotal := 0.0
	for _, e := range expenses {
		data = append(data, []string{
			e.Date.Format(time.DateOnly),
			e.Description,
			string(e.Category),
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			string(e.Status),
		})
		if e.Status == StatusApproved {
			approvedTotal += e.Amount
		}
	}
	data = append(data, []string{"", "Approved total", "", strconv.FormatFloat(approvedTotal, 'f', 2, 64), ""})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
