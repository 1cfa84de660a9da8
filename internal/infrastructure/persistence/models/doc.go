// Package models contains GORM persistence models that map to database tables.
// They are kept apart from domain entities so the domain layer stays free of ORM
// tags; each model carries ToDomain/FromDomain mappers used by the repositories.
//
// Structure:
//   - base.go: shared columns (id, timestamps, version, owner_company_id)
//   - company.go: companies, customers, providers, bank_accounts
//   - document.go: orders, change_rates, documents, document_orders
package models
