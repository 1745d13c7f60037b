package costing

import (
	"math"
	"testing"
)

func TestMarkupPriceRoundTrip(t *testing.T) {
	t.Parallel()

	costs := []float64{0.01, 1, 2.75, 40}
	markups := []float64{0, 10, 33.33, 50, 100, 250}

	for _, cost := range costs {
		for _, markup := range markups {
			price := SellPriceForMarkup(cost, markup)
			got, ok := MarkupForSellPrice(cost, price)
			if !ok {
				t.Fatalf("markup undefined for cost %v", cost)
			}
			if math.Abs(got-markup) > 1e-9 {
				t.Fatalf("round trip at cost %v: markup %v came back as %v", cost, markup, got)
			}
		}
	}
}

func TestMarkupUndefinedAtZeroCost(t *testing.T) {
	t.Parallel()

	if _, ok := MarkupForSellPrice(0, 5); ok {
		t.Fatalf("expected markup to be undefined at zero unit cost")
	}
}

func TestCalculatorMarkupDrivesPrice(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(Compute(soapRecipe()))
	calc.SetMarkupPct(50)

	if !almostEqual(calc.SellPrice(), 1.5) {
		t.Fatalf("SellPrice = %v, want 1.5", calc.SellPrice())
	}

	result := calc.Result()
	if !almostEqual(result.ProfitPerUnit, 0.5) {
		t.Fatalf("ProfitPerUnit = %v, want 0.5", result.ProfitPerUnit)
	}
	if math.Abs(result.MarginPct-100.0/3.0) > 1e-9 {
		t.Fatalf("MarginPct = %v, want 33.33...", result.MarginPct)
	}
	if result.SellingBelowCost {
		t.Fatalf("unexpected below-cost flag")
	}
}

func TestCalculatorPriceDrivesMarkup(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(Compute(soapRecipe()))
	calc.SetSellPrice(1.25)

	if !almostEqual(calc.MarkupPct(), 25) {
		t.Fatalf("MarkupPct = %v, want 25", calc.MarkupPct())
	}
}

func TestCalculatorZeroCostLeavesMarkupUnchanged(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(Breakdown{BatchYield: 10})
	calc.SetMarkupPct(40)
	calc.SetSellPrice(2)

	if !almostEqual(calc.MarkupPct(), 40) {
		t.Fatalf("MarkupPct = %v, want 40 (unchanged at zero unit cost)", calc.MarkupPct())
	}
	if !almostEqual(calc.SellPrice(), 2) {
		t.Fatalf("SellPrice = %v, want 2", calc.SellPrice())
	}
}

func TestCalculatorBelowCostIsFlaggedNotRejected(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(Compute(soapRecipe()))
	calc.SetSellPrice(0.8)

	result := calc.Result()
	if !result.SellingBelowCost {
		t.Fatalf("expected below-cost flag for price under unit cost")
	}
	if !almostEqual(result.ProfitPerUnit, -0.2) {
		t.Fatalf("ProfitPerUnit = %v, want -0.2", result.ProfitPerUnit)
	}
	if result.BreakEven != nil {
		t.Fatalf("break-even should be undefined below cost")
	}
}

func TestCalculatorWorkedExampleAtTwoBatches(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(Compute(soapRecipe()))
	calc.SetBatchCount(2)
	calc.SetMarkupPct(50)

	result := calc.Result()
	if !almostEqual(result.Run.TotalUnits, 100) {
		t.Fatalf("TotalUnits = %v, want 100", result.Run.TotalUnits)
	}
	if !almostEqual(result.Run.TotalCost, 100) {
		t.Fatalf("TotalCost = %v, want 100", result.Run.TotalCost)
	}
	if !almostEqual(result.TotalProfit, 50) {
		t.Fatalf("TotalProfit = %v, want 50", result.TotalProfit)
	}
	if !result.ROIDefined || !almostEqual(result.ROIPct, 50) {
		t.Fatalf("ROIPct = %v (defined %t), want 50", result.ROIPct, result.ROIDefined)
	}

	be := result.BreakEven
	if be == nil {
		t.Fatalf("expected a defined break-even")
	}
	if !almostEqual(be.Units, 200) {
		t.Fatalf("break-even units = %v, want 200", be.Units)
	}
	if !almostEqual(be.Revenue, 300) {
		t.Fatalf("break-even revenue = %v, want 300", be.Revenue)
	}
	if be.BatchesNeeded != 4 {
		t.Fatalf("batches needed = %d, want 4", be.BatchesNeeded)
	}
	if !almostEqual(be.PctOfCurrentBatch, 200) {
		t.Fatalf("pct of current batch = %v, want 200", be.PctOfCurrentBatch)
	}
}

func TestBreakEvenRecoversTotalFixed(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(Compute(soapRecipe()))
	calc.SetBatchCount(3)
	calc.SetMarkupPct(75)
	calc.SetAdditionalFixedCosts(40)

	result := calc.Result()
	be := result.BreakEven
	if be == nil {
		t.Fatalf("expected a defined break-even")
	}
	recovered := be.Units * (result.SellPrice - result.Breakdown.CostPerUnit)
	if math.Abs(recovered-be.TotalFixed) > 1e-6 {
		t.Fatalf("break-even units recover %v, want totalFixed %v", recovered, be.TotalFixed)
	}
	if !almostEqual(be.TotalFixed, result.Run.TotalCost+40) {
		t.Fatalf("TotalFixed = %v, want run cost plus fixed costs", be.TotalFixed)
	}
}

func TestBreakEvenUndefinedAtCost(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(Compute(soapRecipe()))
	calc.SetMarkupPct(0)

	if result := calc.Result(); result.BreakEven != nil {
		t.Fatalf("break-even must be undefined when price equals cost")
	}
}

func TestROIUndefinedAtZeroTotalCost(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(Breakdown{BatchYield: 10})
	calc.SetSellPrice(1)

	result := calc.Result()
	if result.ROIDefined {
		t.Fatalf("ROI must be undefined with zero total cost, got %v", result.ROIPct)
	}
}
