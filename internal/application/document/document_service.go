package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/invoicing/internal/domain/company"
	"github.com/erp/invoicing/internal/domain/document"
	"github.com/erp/invoicing/internal/domain/shared"
	"github.com/erp/invoicing/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

const spanService = "document"

// DocumentService manages documents and keeps their totals consistent with the linked orders.
// Every mutation of the order set or rates is persisted together with the recomputed totals.
type DocumentService struct {
	docRepo        document.DocumentRepository
	orderRepo      document.OrderRepository
	rateRepo       document.ChangeRateRepository
	customerRepo   company.CustomerRepository
	accountRepo    company.BankAccountRepository
	ownership      *company.OwnershipResolver
	txManager      shared.TransactionManager
	eventPublisher shared.EventPublisher
	noteLanguage   language.Tag
}

// DocumentServiceDeps groups the collaborators of DocumentService
type DocumentServiceDeps struct {
	Documents    document.DocumentRepository
	Orders       document.OrderRepository
	ChangeRates  document.ChangeRateRepository
	Companies    company.CompanyReader
	Customers    company.CustomerRepository
	BankAccounts company.BankAccountRepository
	TxManager    shared.TransactionManager
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(deps DocumentServiceDeps) *DocumentService {
	return &DocumentService{
		docRepo:      deps.Documents,
		orderRepo:    deps.Orders,
		rateRepo:     deps.ChangeRates,
		customerRepo: deps.Customers,
		accountRepo:  deps.BankAccounts,
		ownership:    company.NewOwnershipResolver(deps.Companies),
		txManager:    deps.TxManager,
		noteLanguage: language.English,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *DocumentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetNoteLocale sets the default language of payment notes
func (s *DocumentService) SetNoteLocale(locale string) {
	s.noteLanguage = document.ParseNoteLanguage(locale)
}

// Create creates a PENDING document with zero totals, or with the totals of
// the orders given in the request.
func (s *DocumentService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDocumentRequest) (_ *DocumentResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "create",
		telemetry.AttrTenantID, tenantID.String(),
		telemetry.AttrCompanyID, req.CompanyID.String())
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	scope := s.ownership.ResolveOwnerScope(tenantID)
	if err := s.ownership.AssertBelongsToTenant(ctx, req.CompanyID, scope); err != nil {
		return nil, err
	}

	docType := document.DocumentType(req.Type)
	exists, err := s.docRepo.ExistsByDocNumber(ctx, scope, docType, req.DocNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists.With("Document with this number already exists")
	}

	deadline := req.Deadline
	if deadline == nil && docType == document.TypeCustomerInvoice {
		if deadline, err = s.customerDeadline(ctx, scope, req); err != nil {
			return nil, err
		}
	}

	doc, err := document.NewDocument(scope, document.DocumentInput{
		Type:        docType,
		CompanyID:   req.CompanyID,
		DocNumber:   req.DocNumber,
		DocDate:     req.DocDate,
		Deadline:    deadline,
		VatRate:     req.VatRate,
		Withholding: req.Withholding,
	})
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if req.ChangeRateID != nil {
			rate, err := s.visibleRate(ctx, scope, *req.ChangeRateID)
			if err != nil {
				return err
			}
			if err := doc.SetRates(doc.VatRate, doc.Withholding, rate); err != nil {
				return err
			}
		}
		if len(req.OrderIDs) > 0 {
			if err := s.attach(ctx, scope, doc, req.OrderIDs); err != nil {
				return err
			}
		}
		if err := s.recompute(ctx, scope, doc); err != nil {
			return err
		}
		return s.docRepo.Save(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, doc)

	response := ToDocumentResponse(doc)
	return &response, nil
}

// customerDeadline derives the deadline from the due days of the customer record.
// Companies without a customer record get no deadline.
func (s *DocumentService) customerDeadline(ctx context.Context, tenantID uuid.UUID, req CreateDocumentRequest) (*time.Time, error) {
	customer, err := s.customerRepo.FindByCompany(ctx, tenantID, req.CompanyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	d := document.CalculateDeadline(req.DocDate, customer.DueDays)
	return &d, nil
}

// GetByID retrieves a document of the tenant
func (s *DocumentService) GetByID(ctx context.Context, tenantID, documentID uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.docRepo.FindByIDForTenant(ctx, s.ownership.ResolveOwnerScope(tenantID), documentID)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc)
	return &response, nil
}

// AttachOrders links orders to a document and recomputes its totals
func (s *DocumentService) AttachOrders(ctx context.Context, tenantID, documentID uuid.UUID, req AttachOrdersRequest) (*DocumentResponse, error) {
	return s.mutate(ctx, tenantID, documentID, "attach_orders", func(ctx context.Context, scope uuid.UUID, doc *document.Document) error {
		return s.attach(ctx, scope, doc, req.OrderIDs)
	})
}

// DetachOrder unlinks an order from a document and recomputes its totals
func (s *DocumentService) DetachOrder(ctx context.Context, tenantID, documentID, orderID uuid.UUID) (*DocumentResponse, error) {
	return s.mutate(ctx, tenantID, documentID, "detach_order", func(_ context.Context, _ uuid.UUID, doc *document.Document) error {
		return doc.DetachOrder(orderID)
	})
}

// UpdateRates replaces VAT, withholding and change rate and recomputes the totals
func (s *DocumentService) UpdateRates(ctx context.Context, tenantID, documentID uuid.UUID, req UpdateRatesRequest) (*DocumentResponse, error) {
	return s.mutate(ctx, tenantID, documentID, "update_rates", func(ctx context.Context, scope uuid.UUID, doc *document.Document) error {
		var rate *document.ChangeRate
		if req.ChangeRateID != nil {
			var err error
			if rate, err = s.visibleRate(ctx, scope, *req.ChangeRateID); err != nil {
				return err
			}
		}
		return doc.SetRates(req.VatRate, req.Withholding, rate)
	})
}

// RecalculateTotals recomputes the totals from the persisted order set
func (s *DocumentService) RecalculateTotals(ctx context.Context, tenantID, documentID uuid.UUID) (*DocumentResponse, error) {
	return s.mutate(ctx, tenantID, documentID, "recalculate", func(context.Context, uuid.UUID, *document.Document) error {
		return nil
	})
}

// mutate loads the document, applies change and persists it with recomputed
// totals in one transaction. Events are published after commit.
func (s *DocumentService) mutate(
	ctx context.Context,
	tenantID, documentID uuid.UUID,
	method string,
	change func(ctx context.Context, scope uuid.UUID, doc *document.Document) error,
) (_ *DocumentResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, method,
		telemetry.AttrTenantID, tenantID.String(),
		telemetry.AttrDocumentID, documentID.String())
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	scope := s.ownership.ResolveOwnerScope(tenantID)
	var doc *document.Document
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if doc, err = s.docRepo.FindByIDForTenant(ctx, scope, documentID); err != nil {
			return err
		}
		if err := change(ctx, scope, doc); err != nil {
			return err
		}
		if err := s.recompute(ctx, scope, doc); err != nil {
			return err
		}
		return s.docRepo.Save(ctx, doc)
	})
	if err != nil {
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.AttrOrderCount, len(doc.OrderIDs))
	s.publish(ctx, doc)

	response := ToDocumentResponse(doc)
	return &response, nil
}

// attach links orders after checking they exist in the tenant and bill the document's company
func (s *DocumentService) attach(ctx context.Context, tenantID uuid.UUID, doc *document.Document, orderIDs []uuid.UUID) error {
	ids := uniqueIDs(orderIDs)
	orders, err := s.orderRepo.FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return err
	}
	if len(orders) != len(ids) {
		return shared.ErrNotFound
	}
	for _, o := range orders {
		if !o.BelongsTo(tenantID) {
			return shared.ErrNotFound
		}
		if o.CompanyID != doc.CompanyID {
			return shared.ValidationErrors{"order_ids": fmt.Sprintf("Order %s belongs to another company", o.Reference)}
		}
	}
	return doc.AttachOrders(ids...)
}

// visibleRate loads a change rate the tenant may reference
func (s *DocumentService) visibleRate(ctx context.Context, tenantID uuid.UUID, id int64) (*document.ChangeRate, error) {
	rate, err := s.rateRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !rate.VisibleTo(tenantID) {
		return nil, shared.ErrNotFound
	}
	return rate, nil
}

// recompute derives the totals from the document's current order set.
// A paid document keeps its stored totals.
func (s *DocumentService) recompute(ctx context.Context, tenantID uuid.UUID, doc *document.Document) error {
	if doc.IsPaid() {
		return document.ErrDocumentPaid
	}
	orders := []document.Order{}
	if len(doc.OrderIDs) > 0 {
		var err error
		if orders, err = s.orderRepo.FindByIDsForTenant(ctx, tenantID, doc.OrderIDs); err != nil {
			return err
		}
	}
	doc.ApplyTotals(document.ComputeTotals(doc, orders))
	return nil
}

// UpdateStatus moves a document to another status
func (s *DocumentService) UpdateStatus(ctx context.Context, tenantID, documentID uuid.UUID, req UpdateStatusRequest) (*DocumentResponse, error) {
	scope := s.ownership.ResolveOwnerScope(tenantID)
	doc, err := s.docRepo.FindByIDForTenant(ctx, scope, documentID)
	if err != nil {
		return nil, err
	}
	if err := doc.ChangeStatus(document.DocumentStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.docRepo.Save(ctx, doc); err != nil {
		return nil, err
	}
	s.publish(ctx, doc)

	response := ToDocumentResponse(doc)
	return &response, nil
}

// GeneratePaymentNote renders and stores the payment note of a document.
// The note is nil when the document's company is not a customer of the tenant.
func (s *DocumentService) GeneratePaymentNote(ctx context.Context, tenantID, documentID uuid.UUID, req PaymentNoteRequest) (_ *DocumentResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "payment_note",
		telemetry.AttrTenantID, tenantID.String(),
		telemetry.AttrDocumentID, documentID.String())
	defer func() {
		telemetry.RecordError(span, err)
		span.End()
	}()

	scope := s.ownership.ResolveOwnerScope(tenantID)
	doc, err := s.docRepo.FindByIDForTenant(ctx, scope, documentID)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByCompany(ctx, scope, doc.CompanyID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	account, err := s.paymentAccount(ctx, scope, req.BankAccountID)
	if err != nil {
		return nil, err
	}

	tag := s.noteLanguage
	if req.Locale != "" {
		tag = document.ParseNoteLanguage(req.Locale)
	}
	docDate := doc.DocDate
	doc.SetNotePayment(document.NewNotePrinter(tag).Generate(&docDate, customer, account))

	if err := s.docRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// paymentAccount returns the requested account, or the first account of the tenant root
func (s *DocumentService) paymentAccount(ctx context.Context, tenantID uuid.UUID, accountID *uuid.UUID) (*company.BankAccount, error) {
	if accountID != nil {
		return s.accountRepo.FindByIDForTenant(ctx, tenantID, *accountID)
	}
	accounts, err := s.accountRepo.FindByCompany(ctx, tenantID, tenantID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, nil
	}
	return &accounts[0], nil
}

func (s *DocumentService) publish(ctx context.Context, doc *document.Document) {
	shared.PublishRecorded(ctx, s.eventPublisher, doc)
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
