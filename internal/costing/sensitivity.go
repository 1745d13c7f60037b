package costing

import "math"

// DefaultMarkups is the candidate markup ladder shown in the sensitivity
// table.
var DefaultMarkups = []float64{10, 20, 30, 40, 50, 75, 100, 150, 200}

// activeMarkupTolerance decides when a ladder row counts as the session's
// current markup.
const activeMarkupTolerance = 1e-6

// SensitivityRow is one candidate markup evaluated against the current run.
// BreakEvenUnits is only meaningful when BreakEvenDefined is true.
type SensitivityRow struct {
	MarkupPct        float64 `json:"markup_pct"`
	SellPrice        float64 `json:"sell_price"`
	ProfitPerUnit    float64 `json:"profit_per_unit"`
	MarginPct        float64 `json:"margin_pct"`
	TotalProfit      float64 `json:"total_profit"`
	BreakEvenUnits   float64 `json:"break_even_units"`
	BreakEvenDefined bool    `json:"break_even_defined"`
	Active           bool    `json:"active"`
}

// SensitivityTable evaluates each candidate markup with the same formulas the
// calculator uses, marking the row that matches the session's markup. The
// table is a read-only projection: selecting a row re-drives the calculator
// through SetMarkupPct, never the reverse.
func SensitivityTable(b Breakdown, run RunTotals, additionalFixedCosts, currentMarkup float64, markups []float64) []SensitivityRow {
	rows := make([]SensitivityRow, 0, len(markups))
	for _, markup := range markups {
		sellPrice := SellPriceForMarkup(b.CostPerUnit, markup)
		row := SensitivityRow{
			MarkupPct:     markup,
			SellPrice:     sellPrice,
			ProfitPerUnit: sellPrice - b.CostPerUnit,
			Active:        math.Abs(markup-currentMarkup) <= activeMarkupTolerance,
		}
		if sellPrice != 0 {
			row.MarginPct = row.ProfitPerUnit / sellPrice * 100
		}
		row.TotalProfit = row.ProfitPerUnit * run.TotalUnits
		if be := breakEven(b, run, sellPrice, additionalFixedCosts); be != nil {
			row.BreakEvenUnits = be.Units
			row.BreakEvenDefined = true
		}
		rows = append(rows, row)
	}
	return rows
}
