package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/suyeshs/tandoor-pos/internal/cart"
	"github.com/suyeshs/tandoor-pos/internal/domain"
	"github.com/suyeshs/tandoor-pos/internal/kds"
	"github.com/suyeshs/tandoor-pos/internal/kot"
	"github.com/suyeshs/tandoor-pos/internal/metrics"
	"github.com/suyeshs/tandoor-pos/internal/pricing"
	"github.com/suyeshs/tandoor-pos/internal/repo"
	"go.uber.org/zap"
)

// TableService owns the lifecycle of every dine-in table tab on this
// terminal: absent -> open(draft) -> kot-sent(pending) -> awaiting-payment
// -> closed. All mutations are serialized behind one mutex so no partial
// update is ever visible; cross-terminal consistency is eventual, via the
// sink and the shared persistence layer.
type TableService struct {
	mu       sync.Mutex
	tenantID string
	sessions map[int]*tableState

	repo    repo.SessionRepository
	sales   repo.SaleRepository
	pricer  *pricing.Calculator
	kds     *kds.StatusCache
	policy  kds.GatePolicy
	sink    TicketSink
	metrics *metrics.Registry
	logger  *zap.SugaredLogger

	terminalID string
}

type tableState struct {
	session *domain.TableSession
	cart    *cart.Cart
}

func NewTableService(
	tenantID string,
	terminalID string,
	sessionRepo repo.SessionRepository,
	saleRepo repo.SaleRepository,
	pricer *pricing.Calculator,
	statusCache *kds.StatusCache,
	policy kds.GatePolicy,
	sink TicketSink,
	reg *metrics.Registry,
	logger *zap.SugaredLogger,
) *TableService {
	if sink == nil {
		sink = NopSink{}
	}
	return &TableService{
		tenantID:   tenantID,
		terminalID: terminalID,
		sessions:   make(map[int]*tableState),
		repo:       sessionRepo,
		sales:      saleRepo,
		pricer:     pricer,
		kds:        statusCache,
		policy:     policy,
		sink:       sink,
		metrics:    reg,
		logger:     logger,
	}
}

// Load seeds the active set from persistence. This is how a terminal that
// missed broadcasts catches up after a restart.
func (s *TableService) Load(ctx context.Context) error {
	active, err := s.repo.ActiveTables(ctx, s.tenantID)
	if err != nil {
		return fmt.Errorf("failed to load active table sessions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for tableNo, session := range active {
		s.sessions[tableNo] = &tableState{session: session, cart: cart.New()}
	}

	s.logger.Infow("table sessions loaded", "count", len(active))

	return nil
}

// OpenTable creates a session for the table or returns the existing one
// unchanged. Opening an already-open table is deliberately a no-op.
func (s *TableService) OpenTable(ctx context.Context, tableNo, guests int) (*domain.TableSession, error) {
	if guests < 1 {
		return nil, ErrInvalidGuests
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.sessions[tableNo]; ok {
		return st.session, nil
	}

	session := &domain.TableSession{
		TableNo:   tableNo,
		Guests:    guests,
		StartedAt: time.Now(),
		Order: domain.Order{
			Type:          domain.OrderDineIn,
			TableNo:       tableNo,
			Status:        domain.OrderDraft,
			PaymentMethod: domain.PaymentPending,
			CreatedAt:     time.Now(),
		},
	}
	s.sessions[tableNo] = &tableState{session: session, cart: cart.New()}

	s.persist(ctx, session)

	s.logger.Infow("table opened", "table", tableNo, "guests", guests)

	return session, nil
}

// Session returns the open session for a table.
func (s *TableService) Session(tableNo int) (*domain.TableSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[tableNo]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return st.session, nil
}

// ActiveSessions lists open sessions ordered by table number.
func (s *TableService) ActiveSessions() []*domain.TableSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.TableSession, 0, len(s.sessions))
	for _, st := range s.sessions {
		out = append(out, st.session)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableNo < out[j].TableNo })
	return out
}

// AddToCart stages a selection against the table's cart. Nothing is
// persisted or sent anywhere until SendToKitchen.
func (s *TableService) AddToCart(tableNo int, item domain.MenuItemRef, qty int, modifiers []domain.Modifier, combos []domain.ComboSelection, instructions string) (domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[tableNo]
	if !ok {
		return domain.CartLine{}, ErrSessionNotFound
	}
	if st.session.BillPrinted {
		return domain.CartLine{}, ErrSessionFrozen
	}

	line := st.cart.Add(item, qty, modifiers, combos, instructions)
	return line, nil
}

func (s *TableService) RemoveCartLine(tableNo int, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[tableNo]
	if !ok {
		return ErrSessionNotFound
	}
	if !st.cart.Remove(lineID) {
		return ErrLineNotFound
	}
	return nil
}

func (s *TableService) SetCartQuantity(tableNo int, lineID string, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[tableNo]
	if !ok {
		return ErrSessionNotFound
	}
	if !st.cart.SetQuantity(lineID, qty) {
		return ErrLineNotFound
	}
	return nil
}

func (s *TableService) CartLines(tableNo int) ([]domain.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[tableNo]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return st.cart.Lines(), nil
}

// SendToKitchen commits the staged cart as a new ticket: the lines are
// prepended to the order (newest first), totals recomputed, and the session
// persisted before the cart is cleared so a crash between the two cannot
// lose the ticket. The normalized kitchen order then goes to the sink,
// fire-and-forget.
func (s *TableService) SendToKitchen(ctx context.Context, tableNo int) (*domain.KOTRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[tableNo]
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

	// commit point: local durability before the cart is cleared
	s.persist(ctx, session)
	st.cart.Clear()

	ko := domain.KitchenOrder{
		TenantID:       s.tenantID,
		TerminalID:     s.terminalID,
		OrderKey:       session.Key(),
		OrderType:      session.Order.Type,
		TableNo:        tableNo,
		KOTNumber:      number,
		IsRunningOrder: running,
		Lines:          lines,
		CreatedAt:      record.CreatedAt,
	}
	s.sink.TicketCreated(ko)
	s.metrics.TicketsCreated.Inc()

	s.logger.Infow("kot sent", "table", tableNo, "kot", number, "running", running, "lines", len(lines))

	return &session.KOTs[len(session.KOTs)-1], nil
}

// CanBill reports whether the table can be billed right now. It is false
// once a bill exists, before any ticket exists, and until the kitchen gate
// for the configured policy is satisfied.
func (s *TableService) CanBill(tableNo int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[tableNo]
	if !ok {
		return false, ErrSessionNotFound
	}
	return s.canBillLocked(st) == nil, nil
}

func (s *TableService) canBillLocked(st *tableState) error {
	if st.session.BillPrinted {
		return ErrAlreadyBilled
	}
	if len(st.session.KOTs) == 0 {
		return ErrNoTicket
	}
	if !s.kds.Gate(st.session.Key(), st.session.KOTs, s.policy) {
		return ErrKitchenNotReady
	}
	return nil
}

// GenerateBill freezes the session for payment and returns the immutable
// bill snapshot. The table stays open until payment is recorded; a second
// bill for the same session is rejected.
func (s *TableService) GenerateBill(ctx context.Context, tableNo int, discount float64) (*domain.BillSnapshot, error) {
	if discount < 0 {
		return nil, ErrInvalidDiscount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[tableNo]
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
	session.BillPrinted = true
	session.InvoiceNo = newInvoiceNo()

	s.persist(ctx, session)

	bill := billSnapshot(session.InvoiceNo, session.Key(), domain.ChannelPOS, &session.Order)
	s.sink.BillGenerated(bill)
	s.metrics.BillsGenerated.Inc()

	s.logger.Infow("bill generated", "table", tableNo, "invoice", session.InvoiceNo, "total", session.Order.Total)

	return &bill, nil
}

// CloseWithPayment records the final payment method, persists the sale and
// releases the table number.
func (s *TableService) CloseWithPayment(ctx context.Context, tableNo int, method, staffID string) error {
	if method == "" || method == domain.PaymentPending {
		return ErrInvalidPayment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[tableNo]
	if !ok {
		return ErrSessionNotFound
	}
	session := st.session
	if !session.BillPrinted {
		return ErrNotBilled
	}

	session.Order.PaymentMethod = method

	sale := domain.SaleRecord{
		TenantID:      s.tenantID,
		InvoiceNo:     session.InvoiceNo,
		Bill:          billSnapshot(session.InvoiceNo, session.Key(), domain.ChannelPOS, &session.Order),
		PaymentMethod: method,
		StaffID:       staffID,
		Channel:       domain.ChannelPOS,
		SettledAt:     time.Now(),
	}
	if err := s.sales.Create(ctx, &sale); err != nil {
		// the operator is not blocked; the sale stays in the broadcast stream
		s.logger.Errorw("failed to persist sale record", "table", tableNo, "invoice", session.InvoiceNo, "error", err)
	}

	if err := s.repo.CloseTable(ctx, s.tenantID, tableNo); err != nil {
		s.logger.Errorw("failed to close table session in store", "table", tableNo, "error", err)
	}

	delete(s.sessions, tableNo)
	s.kds.Drop(session.Key())

	s.sink.SaleSettled(sale)
	s.metrics.SalesSettled.Inc()

	s.logger.Infow("table settled", "table", tableNo, "invoice", session.InvoiceNo, "method", method)

	return nil
}

// ClearTable force-closes a table without payment. Recovery path; always
// allowed.
func (s *TableService) ClearTable(ctx context.Context, tableNo int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[tableNo]
	if !ok {
		return ErrSessionNotFound
	}

	if err := s.repo.CloseTable(ctx, s.tenantID, tableNo); err != nil {
		s.logger.Errorw("failed to clear table session in store", "table", tableNo, "error", err)
	}

	delete(s.sessions, tableNo)
	s.kds.Drop(st.session.Key())

	s.logger.Infow("table cleared", "table", tableNo)

	return nil
}

func (s *TableService) ClearAllTables(ctx context.Context) error {
	s.mu.Lock()
	tables := make([]int, 0, len(s.sessions))
	for tableNo := range s.sessions {
		tables = append(tables, tableNo)
	}
	s.mu.Unlock()

	for _, tableNo := range tables {
		if err := s.ClearTable(ctx, tableNo); err != nil {
			return err
		}
	}
	return nil
}

// IsFullySubmitted reports whether every order line is covered by a ticket.
func (s *TableService) IsFullySubmitted(tableNo int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[tableNo]
	if !ok {
		return false, ErrSessionNotFound
	}
	return kot.IsFullySubmitted(st.session.Order, st.session.KOTs), nil
}

// KitchenStatus exposes the cached per-ticket KDS state for a table.
func (s *TableService) KitchenStatus(tableNo int) (map[int]kds.TicketState, error) {
	s.mu.Lock()
	st, ok := s.sessions[tableNo]
	s.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.kds.Snapshot(st.session.Key()), nil
}

// persist saves the session and logs on failure. In-memory state is kept
// either way; a store outage does not block the operator, it leaves the
// session at risk until the next successful save.
func (s *TableService) persist(ctx context.Context, session *domain.TableSession) {
	if err := s.repo.SaveTable(ctx, s.tenantID, session); err != nil {
		s.metrics.SessionSaveFailures.Inc()
		s.logger.Errorw("failed to save table session", "table", session.TableNo, "error", err)
	}
}

func billSnapshot(invoiceNo, orderKey, channel string, o *domain.Order) domain.BillSnapshot {
	items := make([]domain.CartLine, len(o.Items))
	copy(items, o.Items)

	return domain.BillSnapshot{
		InvoiceNo:     invoiceNo,
		OrderKey:      orderKey,
		Channel:       channel,
		Items:         items,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Discount:      o.Discount,
		PackingCharge: o.PackingCharge,
		Total:         o.Total,
		GeneratedAt:   time.Now(),
	}
}
