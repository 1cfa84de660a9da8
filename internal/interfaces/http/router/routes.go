package router

import (
	"github.com/erp/invoicing/internal/interfaces/http/handler"
)

// Handlers holds every API handler
type Handlers struct {
	Companies   *handler.CompanyHandler
	Partners    *handler.PartnerHandler
	BankAccount *handler.BankAccountHandler
	Orders      *handler.OrderHandler
	ChangeRates *handler.ChangeRateHandler
	Documents   *handler.DocumentHandler
	Reports     *handler.ReportHandler
}

// RegisterAPI declares the invoicing resources on api
func RegisterAPI(api *API, h Handlers) {
	api.Resource("/tenants").
		POST("", h.Companies.CreateTenant)

	api.Resource("/companies").
		POST("", h.Companies.Create).
		GET("", h.Companies.List).
		GET("/:id", h.Companies.Get).
		GET("/:id/bank-accounts", h.Companies.ListBankAccounts)

	api.Resource("/customers").
		POST("", h.Partners.CreateCustomer).
		GET("", h.Partners.ListCustomers).
		GET("/:id", h.Partners.GetCustomer)

	api.Resource("/providers").
		POST("", h.Partners.CreateProvider).
		GET("", h.Partners.ListProviders)

	api.Resource("/bank-accounts").
		POST("", h.BankAccount.Create)

	api.Resource("/iban").
		POST("/validate", h.BankAccount.ValidateIBAN)

	api.Resource("/orders").
		POST("", h.Orders.Create).
		GET("", h.Orders.List).
		GET("/:id", h.Orders.Get)

	api.Resource("/change-rates").
		POST("", h.ChangeRates.Create).
		GET("", h.ChangeRates.List)

	api.Resource("/documents").
		POST("", h.Documents.Create).
		GET("/:id", h.Documents.Get).
		PUT("/:id/orders", h.Documents.AttachOrders).
		DELETE("/:id/orders/:orderId", h.Documents.DetachOrder).
		PUT("/:id/rates", h.Documents.UpdateRates).
		POST("/:id/recalculate", h.Documents.Recalculate).
		PUT("/:id/status", h.Documents.UpdateStatus).
		POST("/:id/payment-note", h.Documents.GeneratePaymentNote)

	reports := api.Resource("/reports").
		GET("/pending", h.Reports.Pending)
	reports.Nested("/cash-flow").
		GET("", h.Reports.CashFlow).
		GET("/parties", h.Reports.CashFlowByParty).
		GET("/export", h.Reports.ExportCashFlow)
}
