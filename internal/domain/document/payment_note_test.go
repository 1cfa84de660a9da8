package document

import (
	"testing"
	"time"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newNoteCustomer(dueDays *int, method *company.PayMethod) *company.Customer {
	return &company.Customer{DueDays: dueDays, PayMethod: method}
}

func TestGenerateNotePayment(t *testing.T) {
	docDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	days := 30
	transfer := company.PayMethodTransfer
	cash := company.PayMethodCash

	t.Run("nil document date yields nil", func(t *testing.T) {
		assert.Nil(t, GenerateNotePayment(nil, newNoteCustomer(&days, nil), nil))
	})

	t.Run("nil customer yields nil", func(t *testing.T) {
		assert.Nil(t, GenerateNotePayment(&docDate, nil, nil))
	})

	t.Run("base sentence only", func(t *testing.T) {
		note := GenerateNotePayment(&docDate, newNoteCustomer(&days, nil), nil)

		require.NotNil(t, note)
		assert.Equal(t, "Payment due on 2024-02-09.", *note)
	})

	t.Run("missing due days use the document date", func(t *testing.T) {
		note := GenerateNotePayment(&docDate, newNoteCustomer(nil, &cash), nil)

		require.NotNil(t, note)
		assert.Equal(t, "Payment due on 2024-01-10. Payment method: cash.", *note)
	})

	t.Run("transfer with account appends bank details", func(t *testing.T) {
		account := &company.BankAccount{IBAN: "GB29NWBK60161331926819", Holder: "Acme SL", Branch: "Madrid Centro"}

		note := GenerateNotePayment(&docDate, newNoteCustomer(&days, &transfer), account)

		require.NotNil(t, note)
		assert.Equal(t,
			"Payment due on 2024-02-09. Payment method: bank transfer. IBAN: GB29 NWBK 6016 1331 9268 19, holder: Acme SL, branch: Madrid Centro.",
			*note)
	})

	t.Run("missing account fields are replaced one by one", func(t *testing.T) {
		account := &company.BankAccount{IBAN: "GB29NWBK60161331926819"}

		note := GenerateNotePayment(&docDate, newNoteCustomer(&days, &transfer), account)

		require.NotNil(t, note)
		assert.Contains(t, *note, "IBAN: GB29 NWBK 6016 1331 9268 19, holder: not available, branch: not available.")
	})

	t.Run("transfer without account omits bank details", func(t *testing.T) {
		note := GenerateNotePayment(&docDate, newNoteCustomer(&days, &transfer), nil)

		require.NotNil(t, note)
		assert.NotContains(t, *note, "IBAN")
	})

	t.Run("non transfer methods ignore the account", func(t *testing.T) {
		account := &company.BankAccount{CompanyID: uuid.New(), IBAN: "GB29NWBK60161331926819"}

		note := GenerateNotePayment(&docDate, newNoteCustomer(&days, &cash), account)

		require.NotNil(t, note)
		assert.Equal(t, "Payment due on 2024-02-09. Payment method: cash.", *note)
	})
}

func TestNotePrinter_Spanish(t *testing.T) {
	docDate := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	transfer := company.PayMethodTransfer
	printer := NewNotePrinter(ParseNoteLanguage("es-ES"))

	note := printer.Generate(&docDate, newNoteCustomer(nil, &transfer), &company.BankAccount{Holder: "Acme SL"})

	require.NotNil(t, note)
	assert.Equal(t,
		"Fecha de vencimiento del pago: 2024-01-10. Forma de pago: transferencia bancaria. IBAN: no disponible, titular: Acme SL, sucursal: no disponible.",
		*note)
}

func TestParseNoteLanguage(t *testing.T) {
	assert.Equal(t, language.English, ParseNoteLanguage("en-GB"))
	assert.Equal(t, language.Spanish, ParseNoteLanguage("es"))
	assert.Equal(t, language.English, ParseNoteLanguage("not a locale!"))
}
