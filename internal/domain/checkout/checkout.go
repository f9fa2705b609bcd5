// Package checkout is the single source of truth for order-total arithmetic.
// All amounts are integer cents; percentages are 0-100 floats. Every cap the
// cashier UI enforces client-side is re-validated here before an order is
// accepted.
package checkout

import "math"

// CentsPerPoint is the fixed loyalty conversion rate: one point is worth
// 0.01 currency units (one cent).
const CentsPerPoint int64 = 1

// Line is one cart line item at checkout time. UnitPrice and TaxRates are
// snapshots taken when the product was added to the cart.
type Line struct {
	UnitPrice int64     // cents
	Quantity  int       // clamped to >= 1
	Discount  float64   // line-level percentage, clamped to [0,100]
	TaxRates  []float64 // percentage rates, applied additively
}

// Cents converts a decimal currency amount to integer cents, rounding to
// the nearest cent. Truncating would turn an exact tender of 19.99 into
// 1998 cents and reject the payment.
func Cents(amount float64) int64 {
	return roundCents(amount * 100)
}

// ClampQuantity returns the quantity clamped to a minimum of 1.
func ClampQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

// ClampDiscount returns the discount percentage clamped to [0,100].
func ClampDiscount(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Subtotal returns the line subtotal: unit_price * qty * (1 - discount/100).
func (l Line) Subtotal() int64 {
	qty := ClampQuantity(l.Quantity)
	discount := ClampDiscount(l.Discount)
	return roundCents(float64(l.UnitPrice) * float64(qty) * (1 - discount/100))
}

// Tax returns the line tax: each rate is applied to the same discounted
// subtotal base and the contributions are summed. Rates never compound, so
// the result is invariant under reordering of the rate list.
func (l Line) Tax() int64 {
	base := l.Subtotal()
	var tax int64
	for _, rate := range l.TaxRates {
		if rate <= 0 {
			continue
		}
		tax += roundCents(float64(base) * rate / 100)
	}
	return tax
}

// Totals is the full pricing breakdown for a cart.
type Totals struct {
	SubTotal int64 `json:"sub_total"` // sum of line subtotals, after line discounts
	Discount int64 `json:"discount"`  // amount removed by the cart-level discount
	Tax      int64 `json:"tax"`       // tax total, scaled by the cart-level discount
	Total    int64 `json:"total"`     // discounted subtotal + discounted tax
}

// ComputeTotals aggregates cart lines under a cart-level percentage discount.
// The cart discount scales both the subtotal and the tax total, so a 0%
// discount is an exact identity.
func ComputeTotals(lines []Line, cartDiscount float64) Totals {
	cartDiscount = ClampDiscount(cartDiscount)

	var subTotal, taxTotal int64
	for _, line := range lines {
		subTotal += line.Subtotal()
		taxTotal += line.Tax()
	}

	factor := 1 - cartDiscount/100
	discountedSub := roundCents(float64(subTotal) * factor)
	discountedTax := roundCents(float64(taxTotal) * factor)

	return Totals{
		SubTotal: subTotal,
		Discount: subTotal - discountedSub,
		Tax:      discountedTax,
		Total:    discountedSub + discountedTax,
	}
}

// Allocation is everything the customer has put toward the total.
type Allocation struct {
	Tendered int64 // sum of cash/card/other payment entries, cents
	Ewallet  int64 // cents drawn from the customer's stored-value balance
	Points   int64 // loyalty points redeemed
}

// Paid returns the total value of the allocation in cents.
func (a Allocation) Paid() int64 {
	return a.Tendered + a.Ewallet + PointsValue(a.Points)
}

// PointsValue converts loyalty points to cents at the fixed rate.
func PointsValue(points int64) int64 {
	if points < 0 {
		return 0
	}
	return points * CentsPerPoint
}

// MaxRedeemablePoints returns the largest number of points that may be
// redeemed against a total given the customer's balance. Points are capped
// at both the balance and the order total.
func MaxRedeemablePoints(total, balance int64) int64 {
	if balance < 0 {
		balance = 0
	}
	byTotal := total / CentsPerPoint
	if byTotal < balance {
		return byTotal
	}
	return balance
}

// Remaining returns the amount still due: total minus everything paid.
// Negative means overpaid.
func Remaining(total int64, a Allocation) int64 {
	return total - a.Paid()
}

// Change returns the change due on an overpayment, zero otherwise.
func Change(total int64, a Allocation) int64 {
	if over := a.Paid() - total; over > 0 {
		return over
	}
	return 0
}

// Covered reports whether the allocation fully covers the total. Checkout
// must be rejected while this is false.
func Covered(total int64, a Allocation) bool {
	return Remaining(total, a) <= 0
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
