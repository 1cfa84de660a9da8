package company

// PayMethod is the way a customer settles its invoices
type PayMethod string

const (
	PayMethodTransfer    PayMethod = "TRANSFER"
	PayMethodCash        PayMethod = "CASH"
	PayMethodCard        PayMethod = "CARD"
	PayMethodDirectDebit PayMethod = "DIRECT_DEBIT"
	PayMethodCheck       PayMethod = "CHECK"
)

// AllPayMethods returns every supported payment method
func AllPayMethods() []PayMethod {
	return []PayMethod{
		PayMethodTransfer,
		PayMethodCash,
		PayMethodCard,
		PayMethodDirectDebit,
		PayMethodCheck,
	}
}

// IsValid reports whether m is a known payment method
func (m PayMethod) IsValid() bool {
	for _, known := range AllPayMethods() {
		if m == known {
			return true
		}
	}
	return false
}

// IsTransfer reports whether payment is made by bank transfer
func (m PayMethod) IsTransfer() bool {
	return m == PayMethodTransfer
}

func (m PayMethod) String() string {
	return string(m)
}
