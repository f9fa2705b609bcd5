package printer

import (
	"bytes"
	"strings"
	"testing"
)

func TestKeyValueAlignsToWidth(t *testing.T) {
	doc := NewDocument(32)
	doc.KeyValue("Subtotal", "100.00")

	want := "Subtotal" + strings.Repeat(" ", 32-len("Subtotal")-len("100.00")) + "100.00"
	if !bytes.Contains(doc.Bytes(), []byte(want)) {
		t.Fatalf("expected aligned line %q in output", want)
	}
}

func TestDiscountItemLineAppendsDiscount(t *testing.T) {
	doc := NewDocument(32)
	doc.DiscountItemLine(2, "Soda", 10, "18.00")

	if !bytes.Contains(doc.Bytes(), []byte("2x Soda (-10%)")) {
		t.Fatalf("expected discount suffix in item line, got %q", doc.Bytes())
	}
}

func TestDiscountItemLineOmitsZeroDiscount(t *testing.T) {
	doc := NewDocument(32)
	doc.DiscountItemLine(1, "Soda", 0, "10.00")

	if bytes.Contains(doc.Bytes(), []byte("%")) {
		t.Fatalf("zero discount must not print a suffix, got %q", doc.Bytes())
	}
}

func TestItemLineWrapsLongNames(t *testing.T) {
	doc := NewDocument(32)
	longName := "Extra Long Household Detergent 5kg Refill"
	doc.ItemLine(1, longName, "950.00")

	out := doc.Bytes()
	if !bytes.Contains(out, []byte("1x "+longName+"\n")) {
		t.Fatalf("expected wide name on its own line, got %q", out)
	}
	wantAmount := strings.Repeat(" ", 32-len("950.00")) + "950.00"
	if !bytes.Contains(out, []byte(wantAmount)) {
		t.Fatalf("expected right-aligned amount on the next line, got %q", out)
	}
}
