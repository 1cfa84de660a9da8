package document

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals holds the derived financial fields of a document
type Totals struct {
	Net              decimal.Decimal
	Vat              decimal.Decimal
	Withholding      decimal.Decimal
	Gross            decimal.Decimal
	ToPay            decimal.Decimal
	GrossInCurrency2 *decimal.Decimal
	ToPayInCurrency2 *decimal.Decimal
}

// Equal reports whether both totals carry the same amounts
func (t Totals) Equal(other Totals) bool {
	return t.Net.Equal(other.Net) &&
		t.Vat.Equal(other.Vat) &&
		t.Withholding.Equal(other.Withholding) &&
		t.Gross.Equal(other.Gross) &&
		t.ToPay.Equal(other.ToPay) &&
		optionalEqual(t.GrossInCurrency2, other.GrossInCurrency2) &&
		optionalEqual(t.ToPayInCurrency2, other.ToPayInCurrency2)
}

// ComputeTotals derives the document totals from its linked orders and rates.
// No rounding is applied; presentation decides the scale.
func ComputeTotals(doc *Document, orders []Order) Totals {
	net := decimal.Zero
	for _, o := range orders {
		net = net.Add(o.Total)
	}

	vat := net.Mul(doc.VatRate)
	withholding := net.Mul(doc.Withholding)
	gross := net.Add(vat)
	toPay := gross.Sub(withholding)

	t := Totals{
		Net:         net,
		Vat:         vat,
		Withholding: withholding,
		Gross:       gross,
		ToPay:       toPay,
	}

	if doc.ChangeRate != nil && !doc.ChangeRate.IsBaseCurrency() {
		g := gross.Mul(doc.ChangeRate.Rate)
		p := toPay.Mul(doc.ChangeRate.Rate)
		t.GrossInCurrency2 = &g
		t.ToPayInCurrency2 = &p
	}
	return t
}

// CalculateDeadline adds delayDays to docDate. A nil delay keeps docDate.
func CalculateDeadline(docDate time.Time, delayDays *int) time.Time {
	if delayDays == nil {
		return docDate
	}
	return docDate.AddDate(0, 0, *delayDays)
}

func optionalEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
