package document

import (
	"strings"
	"time"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/shared/valueobject"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const noteDateLayout = "2006-01-02"

// Message keys of the payment note catalog
const (
	keyNoteBase         = "note.base"
	keyNoteMethod       = "note.method"
	keyNoteTransfer     = "note.transfer"
	keyNoteNotAvailable = "note.not_available"
	keyPayMethodPrefix  = "pay_method."
)

var supportedNoteLanguages = []language.Tag{language.English, language.Spanish}

var noteCatalog = buildNoteCatalog()

func buildNoteCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	entries := map[language.Tag]map[string]string{
		language.English: {
			keyNoteBase:         "Payment due on %s.",
			keyNoteMethod:       " Payment method: %s.",
			keyNoteTransfer:     " IBAN: %s, holder: %s, branch: %s.",
			keyNoteNotAvailable: "not available",
			keyPayMethodPrefix + string(company.PayMethodTransfer):    "bank transfer",
			keyPayMethodPrefix + string(company.PayMethodCash):        "cash",
			keyPayMethodPrefix + string(company.PayMethodCard):        "card",
			keyPayMethodPrefix + string(company.PayMethodDirectDebit): "direct debit",
			keyPayMethodPrefix + string(company.PayMethodCheck):       "check",
		},
		language.Spanish: {
			keyNoteBase:         "Fecha de vencimiento del pago: %s.",
			keyNoteMethod:       " Forma de pago: %s.",
			keyNoteTransfer:     " IBAN: %s, titular: %s, sucursal: %s.",
			keyNoteNotAvailable: "no disponible",
			keyPayMethodPrefix + string(company.PayMethodTransfer):    "transferencia bancaria",
			keyPayMethodPrefix + string(company.PayMethodCash):        "efectivo",
			keyPayMethodPrefix + string(company.PayMethodCard):        "tarjeta",
			keyPayMethodPrefix + string(company.PayMethodDirectDebit): "domiciliación bancaria",
			keyPayMethodPrefix + string(company.PayMethodCheck):       "cheque",
		},
	}
	for tag, msgs := range entries {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// ParseNoteLanguage maps a locale such as "es-ES" to a supported note language.
// Unknown or malformed locales fall back to English.
func ParseNoteLanguage(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	matcher := language.NewMatcher(supportedNoteLanguages)
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return supportedNoteLanguages[idx]
}

// NotePrinter renders payment notes in one language
type NotePrinter struct {
	printer *message.Printer
}

// NewNotePrinter creates a printer for tag
func NewNotePrinter(tag language.Tag) *NotePrinter {
	return &NotePrinter{printer: message.NewPrinter(tag, message.Catalog(noteCatalog))}
}

// Generate renders the payment terms of a document, or nil when docDate or
// customer is missing. The bank clause is only added for transfers with an account,
// and each missing account field is replaced individually.
func (n *NotePrinter) Generate(docDate *time.Time, customer *company.Customer, account *company.BankAccount) *string {
	if docDate == nil || customer == nil {
		return nil
	}

	paymentDate := docDate.AddDate(0, 0, customer.DueDaysOrZero())

	var sb strings.Builder
	sb.WriteString(n.printer.Sprintf(keyNoteBase, paymentDate.Format(noteDateLayout)))

	if customer.PayMethod != nil {
		method := *customer.PayMethod
		sb.WriteString(n.printer.Sprintf(keyNoteMethod, n.methodName(method)))

		if method.IsTransfer() && account != nil {
			na := n.printer.Sprintf(keyNoteNotAvailable)
			iban := na
			if account.IBAN != "" {
				iban = valueobject.FormatIBAN(account.IBAN)
			}
			sb.WriteString(n.printer.Sprintf(keyNoteTransfer,
				iban, orPlaceholder(account.Holder, na), orPlaceholder(account.Branch, na)))
		}
	}

	note := sb.String()
	return &note
}

func (n *NotePrinter) methodName(m company.PayMethod) string {
	if !m.IsValid() {
		return m.String()
	}
	return n.printer.Sprintf(keyPayMethodPrefix + m.String())
}

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

var defaultNotePrinter = NewNotePrinter(language.English)

// GenerateNotePayment renders the payment note in English
func GenerateNotePayment(docDate *time.Time, customer *company.Customer, account *company.BankAccount) *string {
	return defaultNotePrinter.Generate(docDate, customer, account)
}
