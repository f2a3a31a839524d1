package service

import (
	"context"
	"errors"
	"sync"

	"github.com/suyeshs/tandoor-pos/internal/domain"
)

// fakeSessionRepo is an in-memory stand-in for the mongo-backed store.
type fakeSessionRepo struct {
	mu      sync.Mutex
	tables  map[int]domain.TableSession
	pickups map[string]domain.PickupSession

	failSaves  bool
	tableSaves int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		tables:  make(map[int]domain.TableSession),
		pickups: make(map[string]domain.PickupSession),
	}
}

func (f *fakeSessionRepo) SaveTable(ctx context.Context, tenantID string, s *domain.TableSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSaves {
		return errors.New("store unavailable")
	}
	f.tableSaves++
	f.tables[s.TableNo] = *s
	return nil
}

func (f *fakeSessionRepo) CloseTable(ctx context.Context, tenantID string, tableNo int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tables, tableNo)
	return nil
}

func (f *fakeSessionRepo) ActiveTables(ctx context.Context, tenantID string) (map[int]*domain.TableSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int]*domain.TableSession, len(f.tables))
	for n, s := range f.tables {
		session := s
		out[n] = &session
	}
	return out, nil
}

func (f *fakeSessionRepo) SavePickup(ctx context.Context, tenantID string, s *domain.PickupSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSaves {
		return errors.New("store unavailable")
	}
	f.pickups[s.OrderNo] = *s
	return nil
}

func (f *fakeSessionRepo) ClosePickup(ctx context.Context, tenantID string, orderNo string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pickups, orderNo)
	return nil
}

func (f *fakeSessionRepo) ActivePickups(ctx context.Context, tenantID string) (map[string]*domain.PickupSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]*domain.PickupSession, len(f.pickups))
	for n, s := range f.pickups {
		session := s
		out[n] = &session
	}
	return out, nil
}

type fakeSaleRepo struct {
	mu    sync.Mutex
	sales []domain.SaleRecord
}

func (f *fakeSaleRepo) Create(ctx context.Context, sale *domain.SaleRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sales = append(f.sales, *sale)
	return nil
}

func (f *fakeSaleRepo) GetByInvoice(ctx context.Context, tenantID, invoiceNo string) (*domain.SaleRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.sales {
		if f.sales[i].InvoiceNo == invoiceNo {
			return &f.sales[i], nil
		}
	}
	return nil, errors.New("sale not found")
}

// recordingSink captures everything dispatched to the broadcaster.
type recordingSink struct {
	mu      sync.Mutex
	tickets []domain.KitchenOrder
	bills   []domain.BillSnapshot
	sales   []domain.SaleRecord
}

func (r *recordingSink) TicketCreated(ko domain.KitchenOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets = append(r.tickets, ko)
}

func (r *recordingSink) BillGenerated(bill domain.BillSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bills = append(r.bills, bill)
}

func (r *recordingSink) SaleSettled(sale domain.SaleRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = append(r.sales, sale)
}
