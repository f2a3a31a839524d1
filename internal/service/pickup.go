package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/suyeshs/tandoor-pos/internal/cart"
	"github.com/suyeshs/tandoor-pos/internal/domain"
	"github.com/suyeshs/tandoor-pos/internal/kot"
	"github.com/suyeshs/tandoor-pos/internal/metrics"
	"github.com/suyeshs/tandoor-pos/internal/pricing"
	"github.com/suyeshs/tandoor-pos/internal/repo"
	"go.uber.org/zap"
)

// PickupService mirrors TableService for takeout orders. Sessions are keyed
// by a generated short order number ("P3"), several can be open at once with
// one selected as active, and billing only needs the order to have left
// staging; there is no kitchen-completion gate.
type PickupService struct {
	mu       sync.Mutex
	tenantID string
	sessions map[string]*pickupState
	selected string

	repo    repo.SessionRepository
	sales   repo.SaleRepository
	pricer  *pricing.Calculator
	sink    TicketSink
	metrics *metrics.Registry
	logger  *zap.SugaredLogger

	terminalID string
}

type pickupState struct {
	session *domain.PickupSession
	cart    *cart.Cart
}

func NewPickupService(
	tenantID string,
	terminalID string,
	sessionRepo repo.SessionRepository,
	saleRepo repo.SaleRepository,
	pricer *pricing.Calculator,
	sink TicketSink,
	reg *metrics.Registry,
	logger *zap.SugaredLogger,
) *PickupService {
	if sink == nil {
		sink = NopSink{}
	}
	return &PickupService{
		tenantID:   tenantID,
		terminalID: terminalID,
		sessions:   make(map[string]*pickupState),
		repo:       sessionRepo,
		sales:      saleRepo,
		pricer:     pricer,
		sink:       sink,
		metrics:    reg,
		logger:     logger,
	}
}

func (s *PickupService) Load(ctx context.Context) error {
	active, err := s.repo.ActivePickups(ctx, s.tenantID)
	if err != nil {
		return fmt.Errorf("failed to load active pickup sessions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for orderNo, session := range active {
		s.sessions[orderNo] = &pickupState{session: session, cart: cart.New()}
	}

	s.logger.Infow("pickup sessions loaded", "count", len(active))

	return nil
}

// Create opens a new pickup order with the lowest free order number and
// selects it as the active one.
func (s *PickupService) Create(ctx context.Context, customerName string) (*domain.PickupSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orderNo := s.nextOrderNoLocked()

	session := &domain.PickupSession{
		OrderNo:      orderNo,
		CustomerName: customerName,
		Status:       domain.PickupStaging,
		StartedAt:    time.Now(),
		Order: domain.Order{
			Type:          domain.OrderTakeout,
			Status:        domain.OrderDraft,
			PaymentMethod: domain.PaymentPending,
			CreatedAt:     time.Now(),
		},
	}
	s.sessions[orderNo] = &pickupState{session: session, cart: cart.New()}
	s.selected = orderNo

	s.persist(ctx, session)

	s.logger.Infow("pickup order created", "order_no", orderNo, "customer", customerName)

	return session, nil
}

// nextOrderNoLocked returns the lowest "P<n>" not held by an open session,
// so numbers are reused after their session closes.
func (s *PickupService) nextOrderNoLocked() string {
	used := make(map[int]bool, len(s.sessions))
	for orderNo := range s.sessions {
		if n, err := strconv.Atoi(strings.TrimPrefix(orderNo, "P")); err == nil {
			used[n] = true
		}
	}
	n := 1
	for used[n] {
		n++
	}
	return fmt.Sprintf("P%d", n)
}

// Select marks one open pickup order as the active one.
func (s *PickupService) Select(orderNo string) (*domain.PickupSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[orderNo]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.selected = orderNo
	return st.session, nil
}

// Selected returns the currently selected pickup session, if any.
func (s *PickupService) Selected() (*domain.PickupSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[s.selected]
	if !ok {
		return nil, false
	}
	return st.session, true
}

func (s *PickupService) Session(orderNo string) (*domain.PickupSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[orderNo]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return st.session, nil
}

func (s *PickupService) ActiveSessions() []*domain.PickupSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.PickupSession, 0, len(s.sessions))
	for _, st := range s.sessions {
		out = append(out, st.session)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNo < out[j].OrderNo })
	return out
}

func (s *PickupService) AddToCart(orderNo string, item domain.MenuItemRef, qty int, modifiers []domain.Modifier, combos []domain.ComboSelection, instructions string) (domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[orderNo]
	if !ok {
		return domain.CartLine{}, ErrSessionNotFound
	}
	if st.session.BillPrinted {
		return domain.CartLine{}, ErrSessionFrozen
	}

	line := st.cart.Add(item, qty, modifiers, combos, instructions)
	return line, nil
}

func (s *PickupService) RemoveCartLine(orderNo, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[orderNo]
	if !ok {
		return ErrSessionNotFound
	}
	if !st.cart.Remove(lineID) {
		return ErrLineNotFound
	}
	return nil
}

func (s *PickupService) SetCartQuantity(orderNo, lineID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[orderNo]
	if !ok {
		return ErrSessionNotFound
	}
	if !st.cart.SetQuantity(lineID, qty) {
		return ErrLineNotFound
	}
	return nil
}

func (s *PickupService) CartLines(orderNo string) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[orderNo]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return st.cart.Lines(), nil
}

// SendToKitchen commits the staged cart as a ticket and moves the order out
// of staging. Same commit-point rule as tables: persist, then clear.
func (s *PickupService) SendToKitchen(ctx context.Context, orderNo string) (*domain.KOTRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[orderNo]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if st.session.BillPrinted {
		return nil, ErrSessionFrozen
	}
	if st.cart.Empty() {
		return nil, ErrEmptyCart
	}

	lines := st.cart.Lines()
	number, running := kot.Next(st.session.KOTs)
	record := kot.NewRecord(number, lines)
	record.Sent = true

	session := st.session
	session.Order.Items = append(lines, session.Order.Items...)
	session.Order.Status = domain.OrderPending
	s.pricer.Reprice(&session.Order, session.Order.Discount)
	session.KOTs = append(session.KOTs, record)
	session.LastKOTAt = record.CreatedAt
	session.Status = domain.PickupSent

	s.persist(ctx, session)
	st.cart.Clear()

	ko := domain.KitchenOrder{
		TenantID:       s.tenantID,
		TerminalID:     s.terminalID,
		OrderKey:       session.Key(),
		OrderType:      session.Order.Type,
		OrderNo:        orderNo,
		KOTNumber:      number,
		IsRunningOrder: running,
		Lines:          lines,
		CreatedAt:      record.CreatedAt,
	}
	s.sink.TicketCreated(ko)
	s.metrics.TicketsCreated.Inc()

	s.logger.Infow("kot sent", "order_no", orderNo, "kot", number, "running", running, "lines", len(lines))

	return &session.KOTs[len(session.KOTs)-1], nil
}

// CanBill is true once the order has left staging and no bill exists yet.
func (s *PickupService) CanBill(orderNo string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[orderNo]
	if !ok {
		return false, ErrSessionNotFound
	}
	return s.canBillLocked(st) == nil, nil
}

func (s *PickupService) canBillLocked(st *pickupState) error {
	if st.session.BillPrinted {
		return ErrAlreadyBilled
	}
	if st.session.Status == domain.PickupStaging || len(st.session.KOTs) == 0 {
		return ErrPickupStillStaged
	}
	return nil
}

func (s *PickupService) GenerateBill(ctx context.Context, orderNo string, discount float64) (*domain.BillSnapshot, error) {
	if discount < 0 {
		return nil, ErrInvalidDiscount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[orderNo]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := s.canBillLocked(st); err != nil {
		return nil, err
	}

	session := st.session
	s.pricer.Reprice(&session.Order, discount)
	session.Order.PaymentMethod = domain.PaymentPending
	session.Order.Status = domain.OrderCompleted
	session.Status = domain.PickupBilled
	session.BillPrinted = true
	session.InvoiceNo = newInvoiceNo()

	s.persist(ctx, session)

	bill := billSnapshot(session.InvoiceNo, session.Key(), domain.ChannelPickup, &session.Order)
	s.sink.BillGenerated(bill)
	s.metrics.BillsGenerated.Inc()

	s.logger.Infow("bill generated", "order_no", orderNo, "invoice", session.InvoiceNo, "total", session.Order.Total)

	return &bill, nil
}

func (s *PickupService) CloseWithPayment(ctx context.Context, orderNo, method, staffID string) error {
	if method == "" || method == domain.PaymentPending {
		return ErrInvalidPayment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[orderNo]
	if !ok {
		return ErrSessionNotFound
	}
	session := st.session
	if !session.BillPrinted {
		return ErrNotBilled
	}

	session.Order.PaymentMethod = method
	session.Status = domain.PickupClosed

	sale := domain.SaleRecord{
		TenantID:      s.tenantID,
		InvoiceNo:     session.InvoiceNo,
		Bill:          billSnapshot(session.InvoiceNo, session.Key(), domain.ChannelPickup, &session.Order),
		PaymentMethod: method,
		StaffID:       staffID,
		Channel:       domain.ChannelPickup,
		SettledAt:     time.Now(),
	}
	if err := s.sales.Create(ctx, &sale); err != nil {
		s.logger.Errorw("failed to persist sale record", "order_no", orderNo, "invoice", session.InvoiceNo, "error", err)
	}

	if err := s.repo.ClosePickup(ctx, s.tenantID, orderNo); err != nil {
		s.logger.Errorw("failed to close pickup session in store", "order_no", orderNo, "error", err)
	}

	delete(s.sessions, orderNo)
	if s.selected == orderNo {
		s.selected = ""
	}

	s.sink.SaleSettled(sale)
	s.metrics.SalesSettled.Inc()

	s.logger.Infow("pickup settled", "order_no", orderNo, "invoice", session.InvoiceNo, "method", method)

	return nil
}

// Clear force-closes a pickup order without payment.
func (s *PickupService) Clear(ctx context.Context, orderNo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[orderNo]; !ok {
		return ErrSessionNotFound
	}

	if err := s.repo.ClosePickup(ctx, s.tenantID, orderNo); err != nil {
		s.logger.Errorw("failed to clear pickup session in store", "order_no", orderNo, "error", err)
	}

	delete(s.sessions, orderNo)
	if s.selected == orderNo {
		s.selected = ""
	}

	s.logger.Infow("pickup cleared", "order_no", orderNo)

	return nil
}

func (s *PickupService) IsFullySubmitted(orderNo string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[orderNo]
	if !ok {
		return false, ErrSessionNotFound
	}
	return kot.IsFullySubmitted(st.session.Order, st.session.KOTs), nil
}

func (s *PickupService) persist(ctx context.Context, session *domain.PickupSession) {
	if err := s.repo.SavePickup(ctx, s.tenantID, session); err != nil {
		s.metrics.SessionSaveFailures.Inc()
		s.logger.Errorw("failed to save pickup session", "order_no", session.OrderNo, "error", err)
	}
}
