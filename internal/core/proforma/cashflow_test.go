package proforma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveOperatingExpenses(t *testing.T) {
	tests := []struct {
		name        string
		listPrice   float64
		tax         float64
		hoa         float64
		wantTax     float64
		wantHOAUsed float64
	}{
		{"оба значения из листинга", 500000, 7000, 300, 7000, 300},
		{"нулевой налог оценивается от цены", 500000, 0, 300, 5000, 300},
		{"нулевой HOA оценивается от цены", 500000, 7000, 0, 7000, 62.5},
		{"оба оцениваются", 500000, 0, 0, 5000, 62.5},
		{"нулевая цена даёт нулевые оценки", 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taxUsed, hoaUsed := ResolveOperatingExpenses(tt.listPrice, tt.tax, tt.hoa)
			assert.InDelta(t, tt.wantTax, taxUsed, 1e-9)
			assert.InDelta(t, tt.wantHOAUsed, hoaUsed, 1e-9)
		})
	}
}

func TestProjectCashFlow(t *testing.T) {
	cf := ProjectCashFlow(500000, 36000, 4.0, 5000, 62.5)

	// Год 1 — базовая аренда без роста.
	assert.InDelta(t, 36000-750, cf.NOIByYear[0], 1e-9)
	assert.InDelta(t, 36000-750-5000, cf.UCFByYear[0], 1e-9)

	// Дальше аренда компаундится, расходы фиксированы.
	assert.InDelta(t, 36000*1.04-750, cf.NOIByYear[1], 1e-9)
	assert.InDelta(t, 36000*1.04*1.04-750, cf.NOIByYear[2], 1e-9)
	assert.InDelta(t, cf.NOIByYear[4]-5000, cf.UCFByYear[4], 1e-9)

	assert.InDelta(t, 35250.0/500000*100, cf.CapRatePct, 1e-9)
}

func TestProjectCashFlowZeroPrice(t *testing.T) {
	cf := ProjectCashFlow(0, 36000, 4.0, 0, 0)
	assert.Equal(t, 0.0, cf.CapRatePct)
}

func TestExitCapRate(t *testing.T) {
	tests := []struct {
		name         string
		entry        float64
		growth       float64
		neighborhood float64
		want         float64
	}{
		{
			"базовое расширение в среднем районе",
			0.06, 0.03, 0.75,
			0.07, // 0.06 + 0.01
		},
		{
			"лучший район и рост сокращают расширение",
			0.0705, 0.04, 0.90,
			0.0705 + 0.01 - 0.00225 - 0.005,
		},
		{
			"расширение не бывает отрицательным",
			0.05, 0.10, 0.95,
			0.05,
		},
		{
			"нижняя граница 4%",
			0.02, 0.10, 0.95,
			0.04,
		},
		{
			"верхняя граница 10%",
			0.12, 0.02, 0.75,
			0.10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExitCapRate(tt.entry, tt.growth, tt.neighborhood), 1e-9)
		})
	}
}
