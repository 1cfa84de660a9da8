package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// addressParts is both the field set of Address and its JSON column shape
type addressParts struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Address is an immutable postal address. The zero value is the empty address.
type Address struct {
	p addressParts
}

// AddressOption sets an optional address part
type AddressOption func(*addressParts)

func WithProvince(province string) AddressOption {
	return func(p *addressParts) { p.Province = strings.TrimSpace(province) }
}

func WithPostalCode(postalCode string) AddressOption {
	return func(p *addressParts) { p.PostalCode = strings.TrimSpace(postalCode) }
}

func WithCountry(country string) AddressOption {
	return func(p *addressParts) { p.Country = strings.TrimSpace(country) }
}

// NewAddress builds an Address. Street and city are required.
func NewAddress(street, city string, opts ...AddressOption) (Address, error) {
	p := addressParts{Street: strings.TrimSpace(street), City: strings.TrimSpace(city)}
	for _, opt := range opts {
		opt(&p)
	}
	if err := p.validate(); err != nil {
		return Address{}, err
	}
	return Address{p: p}, nil
}

func (p addressParts) validate() error {
	if p.Street == "" {
		return errors.New("street cannot be empty")
	}
	if p.City == "" {
		return errors.New("city cannot be empty")
	}
	limits := []struct {
		name  string
		value string
		max   int
	}{
		{"street", p.Street, 200},
		{"city", p.City, 100},
		{"province", p.Province, 100},
		{"postal code", p.PostalCode, 20},
		{"country", p.Country, 100},
	}
	for _, l := range limits {
		if len(l.value) > l.max {
			return fmt.Errorf("%s cannot exceed %d characters", l.name, l.max)
		}
	}
	return nil
}

// EmptyAddress is the address of a party without one
func EmptyAddress() Address {
	return Address{}
}

func (a Address) Street() string     { return a.p.Street }
func (a Address) City() string       { return a.p.City }
func (a Address) Province() string   { return a.p.Province }
func (a Address) PostalCode() string { return a.p.PostalCode }
func (a Address) Country() string    { return a.p.Country }

// IsEmpty reports whether street and city are blank
func (a Address) IsEmpty() bool {
	return a.p.Street == "" && a.p.City == ""
}

// String renders "street, postalCode city, province, country" without blank parts
func (a Address) String() string {
	locality := strings.TrimSpace(a.p.PostalCode + " " + a.p.City)
	var parts []string
	for _, s := range []string{a.p.Street, locality, a.p.Province, a.p.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.p)
}

// UnmarshalJSON applies the NewAddress rules; a blank street and city decode
// to the empty address
func (a *Address) UnmarshalJSON(data []byte) error {
	var p addressParts
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if strings.TrimSpace(p.Street) == "" && strings.TrimSpace(p.City) == "" {
		*a = Address{}
		return nil
	}
	addr, err := NewAddress(p.Street, p.City, WithProvince(p.Province), WithPostalCode(p.PostalCode), WithCountry(p.Country))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value stores the address as JSON text, or NULL when empty
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	b, err := json.Marshal(a.p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Address) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*a = Address{}
		return nil
	case []byte:
		return a.UnmarshalJSON(v)
	case string:
		return a.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}
}
