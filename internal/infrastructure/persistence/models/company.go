package models

import (
	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PartyProfileColumns are the profile columns shared by companies, customers and providers
type PartyProfileColumns struct {
	LegalName      string              `gorm:"type:varchar(200);not null"`
	CommercialName string              `gorm:"type:varchar(200);not null"`
	VATNumber      string              `gorm:"column:vat_number;type:varchar(50);not null;index"`
	Email          string              `gorm:"type:varchar(200)"`
	Phone          string              `gorm:"type:varchar(50)"`
	Address        valueobject.Address `gorm:"type:text"`
}

func profileColumns(p company.PartyProfile) PartyProfileColumns {
	return PartyProfileColumns{
		LegalName:      p.LegalName,
		CommercialName: p.CommercialName,
		VATNumber:      p.VATNumber,
		Email:          p.Email,
		Phone:          p.Phone,
		Address:        p.Address,
	}
}

func (c PartyProfileColumns) toDomain() company.PartyProfile {
	return company.PartyProfile{
		LegalName:      c.LegalName,
		CommercialName: c.CommercialName,
		VATNumber:      c.VATNumber,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
	}
}

// CompanyModel is the persistence model for the Company aggregate.
// A NULL owner_company_id marks a root tenant.
type CompanyModel struct {
	AggregateRow
	PartyProfileColumns
	OwnerCompanyID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company
func (m *CompanyModel) ToDomain() *company.Company {
	return &company.Company{
		BaseAggregateRoot: m.aggregateRoot(),
		PartyProfile:      m.PartyProfileColumns.toDomain(),
		OwnerCompanyID:    m.OwnerCompanyID,
	}
}

// FromDomain populates the persistence model from a domain Company
func (m *CompanyModel) FromDomain(c *company.Company) {
	m.setAggregateRoot(c.BaseAggregateRoot)
	m.PartyProfileColumns = profileColumns(c.PartyProfile)
	m.OwnerCompanyID = c.OwnerCompanyID
}

// CompanyModelFromDomain creates a new persistence model from a domain Company
func CompanyModelFromDomain(c *company.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}

// CustomerModel is the persistence model for the Customer aggregate
type CustomerModel struct {
	TenantRow
	PartyProfileColumns
	CompanyID uuid.UUID          `gorm:"type:uuid;not null;index"`
	DueDays   *int               `gorm:"type:integer"`
	PayMethod *company.PayMethod `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *company.Customer {
	return &company.Customer{
		TenantAggregateRoot: m.tenantRoot(),
		PartyProfile:        m.PartyProfileColumns.toDomain(),
		CompanyID:           m.CompanyID,
		DueDays:             m.DueDays,
		PayMethod:           m.PayMethod,
	}
}

// FromDomain populates the persistence model from a domain Customer
func (m *CustomerModel) FromDomain(c *company.Customer) {
	m.setTenantRoot(c.TenantAggregateRoot)
	m.PartyProfileColumns = profileColumns(c.PartyProfile)
	m.CompanyID = c.CompanyID
	m.DueDays = c.DueDays
	m.PayMethod = c.PayMethod
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer
func CustomerModelFromDomain(c *company.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// ProviderModel is the persistence model for the Provider aggregate
type ProviderModel struct {
	TenantRow
	PartyProfileColumns
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (ProviderModel) TableName() string {
	return "providers"
}

// ToDomain converts the persistence model to a domain Provider
func (m *ProviderModel) ToDomain() *company.Provider {
	return &company.Provider{
		TenantAggregateRoot: m.tenantRoot(),
		PartyProfile:        m.PartyProfileColumns.toDomain(),
		CompanyID:           m.CompanyID,
	}
}

// ProviderModelFromDomain creates a new persistence model from a domain Provider
func ProviderModelFromDomain(p *company.Provider) *ProviderModel {
	m := &ProviderModel{}
	m.setTenantRoot(p.TenantAggregateRoot)
	m.PartyProfileColumns = profileColumns(p.PartyProfile)
	m.CompanyID = p.CompanyID
	return m
}

// BankAccountModel is the persistence model for the BankAccount aggregate
type BankAccountModel struct {
	TenantRow
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	IBAN      string    `gorm:"column:iban;type:varchar(34);not null"`
	Holder    string    `gorm:"type:varchar(200)"`
	Branch    string    `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// ToDomain converts the persistence model to a domain BankAccount
func (m *BankAccountModel) ToDomain() *company.BankAccount {
	return &company.BankAccount{
		TenantAggregateRoot: m.tenantRoot(),
		CompanyID:           m.CompanyID,
		IBAN:                m.IBAN,
		Holder:              m.Holder,
		Branch:              m.Branch,
	}
}

// BankAccountModelFromDomain creates a new persistence model from a domain BankAccount
func BankAccountModelFromDomain(b *company.BankAccount) *BankAccountModel {
	m := &BankAccountModel{
		CompanyID: b.CompanyID,
		IBAN:      b.IBAN,
		Holder:    b.Holder,
		Branch:    b.Branch,
	}
	m.setTenantRoot(b.TenantAggregateRoot)
	return m
}
