package finance

import (
	"fmt"
	"time"

	"github.com/missoes-dashboard-api/internal/models"
)

// Formatos aceitos para a data de um lancamento, tentados em ordem
var entryDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 UTC",
}

// PeriodTotals acumula entradas e saidas de um recorte de calendario
type PeriodTotals struct {
	Key      string  `json:"key"`
	TotalIn  float64 `json:"total_in"`
	TotalOut float64 `json:"total_out"`
	Balance  float64 `json:"balance"`
}

// Periods agrupa os totais por dia, semana ISO, mes e ano correntes
type Periods struct {
	Daily   PeriodTotals `json:"daily"`
	Weekly  PeriodTotals `json:"weekly"`
	Monthly PeriodTotals `json:"monthly"`
	Yearly  PeriodTotals `json:"yearly"`
}

// ParseEntryDate interpreta a data de um lancamento. Datas fora dos formatos
// conhecidos sao descartadas pelo chamador, nunca abortam a agregacao.
func ParseEntryDate(value string) (time.Time, bool) {
	for _, layout := range entryDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// BuildPeriods distribui os lancamentos nos baldes de calendario relativos a
// now (UTC). Os baldes sao mutuamente exclusivos, com o primeiro que casar
// levando o lancamento: dia > semana ISO > mes > ano. Lancamento de ano
// anterior nao entra em balde nenhum.
func BuildPeriods(entries []models.FinanceEntry, now time.Time) Periods {
	nowYear, nowWeek := now.ISOWeek()

	periods := Periods{
		Daily:   PeriodTotals{Key: now.Format("2006-01-02")},
		Weekly:  PeriodTotals{Key: fmt.Sprintf("%d-W%02d", nowYear, nowWeek)},
		Monthly: PeriodTotals{Key: now.Format("2006-01")},
		Yearly:  PeriodTotals{Key: now.Format("2006")},
	}

	for _, entry := range entries {
		parsed, ok := ParseEntryDate(entry.Date)
		if !ok {
			continue
		}

		var bucket *PeriodTotals
		entryYear, entryWeek := parsed.ISOWeek()
		switch {
		case parsed.Format("2006-01-02") == periods.Daily.Key:
			bucket = &periods.Daily
		case entryYear == nowYear && entryWeek == nowWeek:
			bucket = &periods.Weekly
		case parsed.Format("2006-01") == periods.Monthly.Key:
			bucket = &periods.Monthly
		case parsed.Year() == now.Year():
			bucket = &periods.Yearly
		default:
			continue
		}

		if entry.Type == models.EntryTypeIn {
			bucket.TotalIn += entry.Amount
		} else {
			bucket.TotalOut += entry.Amount
		}
	}

	for _, bucket := range []*PeriodTotals{&periods.Daily, &periods.Weekly, &periods.Monthly, &periods.Yearly} {
		bucket.Balance = bucket.TotalIn - bucket.TotalOut
	}

	return periods
}
