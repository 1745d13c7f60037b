package costing

import (
	"math"
)

// BreakEven describes the volume at which a run recovers its fixed costs.
// It only exists while the sell price clears the unit cost; callers receive
// nil otherwise and must present the state as undefined, not zero.
type BreakEven struct {
	TotalFixed        float64 `json:"total_fixed"`
	Units             float64 `json:"units"`
	Revenue           float64 `json:"revenue"`
	BatchesNeeded     int     `json:"batches_needed"`
	PctOfCurrentBatch float64 `json:"pct_of_current_batch"`
}

// PricingResult is the full projection for the calculator's current inputs.
type PricingResult struct {
	Breakdown Breakdown `json:"breakdown"`
	Run       RunTotals `json:"run"`

	MarkupPct float64 `json:"markup_pct"`
	SellPrice float64 `json:"sell_price"`

	ProfitPerUnit float64 `json:"profit_per_unit"`
	MarginPct     float64 `json:"margin_pct"`
	TotalProfit   float64 `json:"total_profit"`
	ROIPct        float64 `json:"roi_pct"`
	ROIDefined    bool    `json:"roi_defined"`

	SellingBelowCost bool `json:"selling_below_cost"`

	BreakEven   *BreakEven       `json:"break_even,omitempty"`
	Sensitivity []SensitivityRow `json:"sensitivity"`
}

// Calculator is a pricing session over one recipe's cost breakdown. Markup
// and sell price stay synchronized: editing either recomputes the other, and
// only the other.
type Calculator struct {
	breakdown  Breakdown
	batchCount float64
	markupPct  float64
	sellPrice  float64
	fixedCosts float64
}

// NewCalculator starts a session at one batch and zero markup, so the sell
// price opens at cost.
func NewCalculator(breakdown Breakdown) *Calculator {
	return &Calculator{
		breakdown:  breakdown,
		batchCount: 1,
		markupPct:  0,
		sellPrice:  breakdown.CostPerUnit,
	}
}

// SellPriceForMarkup derives a unit sell price from a markup percentage.
func SellPriceForMarkup(costPerUnit, markupPct float64) float64 {
	return costPerUnit * (1 + markupPct/100)
}

// MarkupForSellPrice derives the markup percentage a sell price implies.
// The second return is false when the unit cost is zero and no markup exists.
func MarkupForSellPrice(costPerUnit, sellPrice float64) (float64, bool) {
	if costPerUnit <= 0 {
		return 0, false
	}
	return (sellPrice - costPerUnit) / costPerUnit * 100, true
}

// SetBatchCount changes the run size. Non-positive values reset to one batch.
func (c *Calculator) SetBatchCount(batchCount float64) {
	if batchCount <= 0 {
		batchCount = 1
	}
	c.batchCount = batchCount
}

// SetAdditionalFixedCosts sets the extra fixed costs included in break-even.
// Negative values are clamped to zero.
func (c *Calculator) SetAdditionalFixedCosts(v float64) {
	if v < 0 {
		v = 0
	}
	c.fixedCosts = v
}

// SetMarkupPct makes markup the driving field and recomputes the sell price.
func (c *Calculator) SetMarkupPct(markupPct float64) {
	c.markupPct = markupPct
	c.sellPrice = SellPriceForMarkup(c.breakdown.CostPerUnit, markupPct)
}

// SetSellPrice makes the sell price the driving field and recomputes the
// markup. With a zero unit cost the markup is left unchanged, since the
// relationship is undefined there.
func (c *Calculator) SetSellPrice(sellPrice float64) {
	c.sellPrice = sellPrice
	if markup, ok := MarkupForSellPrice(c.breakdown.CostPerUnit, sellPrice); ok {
		c.markupPct = markup
	}
}

// MarkupPct returns the session's current markup percentage.
func (c *Calculator) MarkupPct() float64 { return c.markupPct }

// SellPrice returns the session's current unit sell price.
func (c *Calculator) SellPrice() float64 { return c.sellPrice }

// Result projects every derived value for the current inputs. Selling below
// cost and an undefined break-even are reported as states, never as errors.
func (c *Calculator) Result() PricingResult {
	run := c.breakdown.Scale(c.batchCount)

	result := PricingResult{
		Breakdown: c.breakdown,
		Run:       run,
		MarkupPct: c.markupPct,
		SellPrice: c.sellPrice,
	}

	result.ProfitPerUnit = c.sellPrice - c.breakdown.CostPerUnit
	if c.sellPrice != 0 {
		result.MarginPct = result.ProfitPerUnit / c.sellPrice * 100
	}
	result.TotalProfit = result.ProfitPerUnit * run.TotalUnits
	if run.TotalCost != 0 {
		result.ROIPct = result.TotalProfit / run.TotalCost * 100
		result.ROIDefined = true
	}
	result.SellingBelowCost = result.ProfitPerUnit < 0

	result.BreakEven = breakEven(c.breakdown, run, c.sellPrice, c.fixedCosts)
	result.Sensitivity = SensitivityTable(c.breakdown, run, c.fixedCosts, c.markupPct, DefaultMarkups)

	return result
}

func breakEven(b Breakdown, run RunTotals, sellPrice, additionalFixedCosts float64) *BreakEven {
	contribution := sellPrice - b.CostPerUnit
	if contribution <= 0 {
		return nil
	}

	totalFixed := run.TotalCost + additionalFixedCosts
	units := totalFixed / contribution

	yield := b.BatchYield
	if yield <= 0 {
		yield = 1
	}

	be := &BreakEven{
		TotalFixed:    totalFixed,
		Units:         units,
		Revenue:       units * sellPrice,
		BatchesNeeded: int(math.Ceil(units / yield)),
	}
	if run.TotalUnits > 0 {
		be.PctOfCurrentBatch = units / run.TotalUnits * 100
	}
	return be
}
