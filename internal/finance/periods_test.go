package finance

import (
	"testing"
	"time"

	"github.com/missoes-dashboard-api/internal/models"
	"github.com/stretchr/testify/assert"
)

// Sexta-feira, 2026-03-20 (semana ISO 2026-W12)
var periodsNow = time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

func TestBuildPeriodsKeys(t *testing.T) {
	p := BuildPeriods(nil, periodsNow)
	assert.Equal(t, "2026-03-20", p.Daily.Key)
	assert.Equal(t, "2026-W12", p.Weekly.Key)
	assert.Equal(t, "2026-03", p.Monthly.Key)
	assert.Equal(t, "2026", p.Yearly.Key)
}

func TestBuildPeriodsExclusividade(t *testing.T) {
	entries := []models.FinanceEntry{
		{Date: "2026-03-20", Type: models.EntryTypeIn, Amount: 10},  // hoje -> diario
		{Date: "2026-03-18", Type: models.EntryTypeIn, Amount: 20},  // mesma semana -> semanal
		{Date: "2026-03-02", Type: models.EntryTypeIn, Amount: 30},  // mesmo mes -> mensal
		{Date: "2026-01-15", Type: models.EntryTypeIn, Amount: 40},  // mesmo ano -> anual
		{Date: "2025-12-31", Type: models.EntryTypeIn, Amount: 500}, // ano anterior -> fora
	}

	p := BuildPeriods(entries, periodsNow)

	assert.InDelta(t, 10.0, p.Daily.TotalIn, 0.0001)
	assert.InDelta(t, 20.0, p.Weekly.TotalIn, 0.0001)
	assert.InDelta(t, 30.0, p.Monthly.TotalIn, 0.0001)
	assert.InDelta(t, 40.0, p.Yearly.TotalIn, 0.0001)

	// o lancamento de hoje nao reaparece nos baldes maiores
	total := p.Daily.TotalIn + p.Weekly.TotalIn + p.Monthly.TotalIn + p.Yearly.TotalIn
	assert.InDelta(t, 100.0, total, 0.0001)
}

func TestBuildPeriodsLancamentoAntigo(t *testing.T) {
	old := periodsNow.AddDate(0, 0, -400).Format("2006-01-02")
	p := BuildPeriods([]models.FinanceEntry{
		{Date: old, Type: models.EntryTypeIn, Amount: 100},
	}, periodsNow)

	assert.Zero(t, p.Daily.TotalIn)
	assert.Zero(t, p.Weekly.TotalIn)
	assert.Zero(t, p.Monthly.TotalIn)
	assert.Zero(t, p.Yearly.TotalIn)
}

func TestBuildPeriodsSaldo(t *testing.T) {
	entries := []models.FinanceEntry{
		{Date: "2026-03-20", Type: models.EntryTypeIn, Amount: 100},
		{Date: "2026-03-20", Type: models.EntryTypeOut, Amount: 30},
	}

	p := BuildPeriods(entries, periodsNow)
	assert.InDelta(t, 100.0, p.Daily.TotalIn, 0.0001)
	assert.InDelta(t, 30.0, p.Daily.TotalOut, 0.0001)
	assert.InDelta(t, 70.0, p.Daily.Balance, 0.0001)
}

func TestBuildPeriodsDataIlegivel(t *testing.T) {
	entries := []models.FinanceEntry{
		{Date: "20/03/2026", Type: models.EntryTypeIn, Amount: 100},
		{Date: "", Type: models.EntryTypeIn, Amount: 50},
	}

	p := BuildPeriods(entries, periodsNow)
	assert.Zero(t, p.Daily.TotalIn)
	assert.Zero(t, p.Yearly.TotalIn)
}

func TestBuildPeriodsFormatosDeData(t *testing.T) {
	entries := []models.FinanceEntry{
		{Date: "2026-03-20 08:30:00", Type: models.EntryTypeIn, Amount: 5},
		{Date: "2026-03-20 08:30:00 UTC", Type: models.EntryTypeIn, Amount: 7},
	}

	p := BuildPeriods(entries, periodsNow)
	assert.InDelta(t, 12.0, p.Daily.TotalIn, 0.0001)
}

func TestBuildPeriodsSemanaISOViradaDeAno(t *testing.T) {
	// 2027-01-01 cai na semana ISO 2026-W53
	now := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	p := BuildPeriods([]models.FinanceEntry{
		{Date: "2026-12-30", Type: models.EntryTypeIn, Amount: 10},
	}, now)

	// mesma semana ISO, apesar do ano de calendario diferente; a chave
	// usa o ano ISO da semana, nao o ano de calendario de now
	assert.Equal(t, "2026-W53", p.Weekly.Key)
	assert.InDelta(t, 10.0, p.Weekly.TotalIn, 0.0001)
	assert.Zero(t, p.Yearly.TotalIn)
}

func TestParseEntryDate(t *testing.T) {
	parsed, ok := ParseEntryDate("2026-08-31")
	assert.True(t, ok)
	assert.Equal(t, 2026, parsed.Year())

	_, ok = ParseEntryDate("31/08/2026")
	assert.False(t, ok)
}
