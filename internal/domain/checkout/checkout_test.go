package checkout

import "testing"

func TestCentsRoundsToNearestCent(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{"exact tender with binary float error", 19.99, 1999},
		{"whole amount", 25.00, 2500},
		{"half cent rounds up", 0.005, 1},
		{"another inexact decimal", 29.99, 2999},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cents(tt.amount); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestLineSubtotalWithDiscount(t *testing.T) {
	line := Line{UnitPrice: 1000, Quantity: 2, Discount: 10}
	if got := line.Subtotal(); got != 1800 {
		t.Errorf("expected subtotal 1800, got %d", got)
	}
}

func TestLineSubtotalClampsQuantityAndDiscount(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want int64
	}{
		{"zero quantity treated as one", Line{UnitPrice: 500, Quantity: 0}, 500},
		{"negative quantity treated as one", Line{UnitPrice: 500, Quantity: -3}, 500},
		{"negative discount treated as zero", Line{UnitPrice: 500, Quantity: 1, Discount: -20}, 500},
		{"discount above hundred caps at hundred", Line{UnitPrice: 500, Quantity: 1, Discount: 150}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.line.Subtotal(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestLineTaxSingleRate(t *testing.T) {
	line := Line{UnitPrice: 1000, Quantity: 2, Discount: 10, TaxRates: []float64{5}}
	if got := line.Tax(); got != 90 {
		t.Errorf("expected tax 90, got %d", got)
	}
	totals := ComputeTotals([]Line{line}, 0)
	if totals.Total != 1890 {
		t.Errorf("expected total 1890, got %d", totals.Total)
	}
}

func TestLineTaxReorderInvariant(t *testing.T) {
	a := Line{UnitPrice: 3333, Quantity: 3, Discount: 7, TaxRates: []float64{16, 2, 0.5}}
	b := Line{UnitPrice: 3333, Quantity: 3, Discount: 7, TaxRates: []float64{0.5, 16, 2}}
	if a.Tax() != b.Tax() {
		t.Errorf("tax changed with rate order: %d vs %d", a.Tax(), b.Tax())
	}
}

func TestLineTaxIgnoresNonPositiveRates(t *testing.T) {
	line := Line{UnitPrice: 1000, Quantity: 1, TaxRates: []float64{0, -5, 10}}
	if got := line.Tax(); got != 100 {
		t.Errorf("expected tax 100, got %d", got)
	}
}

func TestComputeTotalsZeroDiscountIdentity(t *testing.T) {
	lines := []Line{
		{UnitPrice: 1250, Quantity: 2, TaxRates: []float64{16}},
		{UnitPrice: 780, Quantity: 1, Discount: 5, TaxRates: []float64{8}},
	}
	totals := ComputeTotals(lines, 0)

	var wantSub, wantTax int64
	for _, l := range lines {
		wantSub += l.Subtotal()
		wantTax += l.Tax()
	}
	if totals.SubTotal != wantSub || totals.Tax != wantTax || totals.Discount != 0 {
		t.Errorf("zero cart discount must be identity, got %+v", totals)
	}
	if totals.Total != wantSub+wantTax {
		t.Errorf("total mismatch: %d", totals.Total)
	}
}

func TestComputeTotalsCartDiscountScalesTax(t *testing.T) {
	lines := []Line{{UnitPrice: 1000, Quantity: 2, TaxRates: []float64{10}}}
	totals := ComputeTotals(lines, 50)
	if totals.SubTotal != 2000 {
		t.Errorf("expected subtotal 2000, got %d", totals.SubTotal)
	}
	if totals.Discount != 1000 {
		t.Errorf("expected discount 1000, got %d", totals.Discount)
	}
	if totals.Tax != 100 {
		t.Errorf("expected tax 100, got %d", totals.Tax)
	}
	if totals.Total != 1100 {
		t.Errorf("expected total 1100, got %d", totals.Total)
	}
}

func TestComputeTotalsMonotonicInQuantity(t *testing.T) {
	base := ComputeTotals([]Line{{UnitPrice: 999, Quantity: 1, TaxRates: []float64{16}}}, 0)
	more := ComputeTotals([]Line{{UnitPrice: 999, Quantity: 2, TaxRates: []float64{16}}}, 0)
	if more.Total <= base.Total {
		t.Errorf("adding quantity must increase total: %d then %d", base.Total, more.Total)
	}
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, 10)
	if totals.SubTotal != 0 || totals.Tax != 0 || totals.Discount != 0 || totals.Total != 0 {
		t.Errorf("empty cart must be all zeros, got %+v", totals)
	}
}

func TestPointsValue(t *testing.T) {
	if got := PointsValue(200); got != 200 {
		t.Errorf("200 points should be worth 200 cents, got %d", got)
	}
	if got := PointsValue(-5); got != 0 {
		t.Errorf("negative points should be worth nothing, got %d", got)
	}
}

func TestMaxRedeemablePoints(t *testing.T) {
	if got := MaxRedeemablePoints(500, 1000); got != 500 {
		t.Errorf("points capped by total: expected 500, got %d", got)
	}
	if got := MaxRedeemablePoints(1000, 300); got != 300 {
		t.Errorf("points capped by balance: expected 300, got %d", got)
	}
	if got := MaxRedeemablePoints(1000, -10); got != 0 {
		t.Errorf("negative balance redeems nothing, got %d", got)
	}
}

func TestAllocationPaidAndRemaining(t *testing.T) {
	a := Allocation{Tendered: 1500, Ewallet: 200, Points: 200}
	if got := a.Paid(); got != 1900 {
		t.Errorf("expected paid 1900, got %d", got)
	}
	if got := Remaining(1890, a); got != -10 {
		t.Errorf("expected remaining -10, got %d", got)
	}
	if !Covered(1890, a) {
		t.Error("allocation should cover the total")
	}
	if got := Change(1890, a); got != 10 {
		t.Errorf("expected change 10, got %d", got)
	}
}

func TestInsufficientAllocationNotCovered(t *testing.T) {
	a := Allocation{Tendered: 1000}
	if Covered(1890, a) {
		t.Error("short payment must not cover the total")
	}
	if got := Remaining(1890, a); got != 890 {
		t.Errorf("expected remaining 890, got %d", got)
	}
	if got := Change(1890, a); got != 0 {
		t.Errorf("no change on underpayment, got %d", got)
	}
}

func TestExactPaymentNoChange(t *testing.T) {
	a := Allocation{Tendered: 1890}
	if got := Change(1890, a); got != 0 {
		t.Errorf("exact payment yields no change, got %d", got)
	}
	if got := Remaining(1890, a); got != 0 {
		t.Errorf("exact payment leaves nothing due, got %d", got)
	}
}
