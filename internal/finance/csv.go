package finance

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/missoes-dashboard-api/internal/models"
)

// Ordem fixa das colunas do arquivo exportado
var csvHeader = []string{
	"date", "type", "amount", "description", "category",
	"project", "created_by", "created_at",
}

// WriteCSV exporta os lancamentos para CSV na ordem em que chegam; quem
// chama decide a ordenacao (normalmente SortEntries antes).
func WriteCSV(w io.Writer, entries []models.FinanceEntry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, entry := range entries {
		record := []string{
			entry.Date,
			entry.Type,
			strconv.FormatFloat(entry.Amount, 'f', 2, 64),
			entry.Description,
			entry.Category,
			entry.ProjectID,
			entry.CreatedBy,
			entry.CreatedAt,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
