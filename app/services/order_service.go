package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/servicehub/app/events"
	"github.com/shashiranjanraj/servicehub/app/models"
	"github.com/shashiranjanraj/servicehub/pkg/cache"
	"github.com/shashiranjanraj/servicehub/pkg/collection"
	"github.com/shashiranjanraj/servicehub/pkg/event"
	"github.com/shashiranjanraj/servicehub/pkg/logger"
	"github.com/shashiranjanraj/servicehub/pkg/validate"
)

// MaxListedOrders caps the orders returned by List.
const MaxListedOrders = 50

// OrderStore is the persistence the order flows need.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (string, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.Order, error)
}

// OrderInput is the client payload for a booking. Owner and status are not
// accepted from the client.
type OrderInput struct {
	ServiceType string  `json:"serviceType" validate:"required,min=2"`
	Date        string  `json:"date"        validate:"required,date"`
	Time        string  `json:"time"        validate:"required,clock"`
	Address     string  `json:"address"     validate:"required,min=5,max=200"`
	Locality    string  `json:"locality"    validate:"required,min=2,max=100"`
	Notes       *string `json:"notes,omitempty" validate:"nullable,max=500"`
}

func (in *OrderInput) Normalize() {
	in.ServiceType = strings.TrimSpace(in.ServiceType)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Address = strings.TrimSpace(in.Address)
	in.Locality = strings.TrimSpace(in.Locality)
}

// ListQuery filters the order listing by status group.
type ListQuery struct {
	Status string `json:"status" validate:"nullable,in=active,completed,cancelled"`
}

func (q *ListQuery) Normalize() {
	q.Status = strings.ToLower(strings.TrimSpace(q.Status))
}

// OrderList is the listing response body.
type OrderList struct {
	Orders  []models.OrderView  `json:"orders"`
	Summary models.OrderSummary `json:"summary"`
}

// OrderOptions tunes OrderService.
type OrderOptions struct {
	// CacheTTL bounds how long a cached listing is served. Zero disables
	// caching.
	CacheTTL time.Duration
	// Location is the timezone booking dates and times are read in.
	Location *time.Location
}

// OrderService implements order submission and listing.
type OrderService struct {
	orders  OrderStore
	catalog *CatalogService
	cache   cache.Store
	opts    OrderOptions
	events  *event.Bus
	now     func() time.Time

	// gens counts submits per user. page does not leave a page in the
	// cache when the count moved while it was reading the store.
	genMu sync.Mutex
	gens  map[string]uint64
}

func NewOrderService(orders OrderStore, catalog *CatalogService, store cache.Store, opts OrderOptions) *OrderService {
	if store == nil {
		store = cache.Noop{}
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &OrderService{
		orders:  orders,
		catalog: catalog,
		cache:   store,
		opts:    opts,
		now:     time.Now,
		gens:    map[string]uint64{},
	}
}

// WithEvents sets the bus order.submitted is fired on.
func (s *OrderService) WithEvents(bus *event.Bus) *OrderService {
	s.events = bus
	return s
}

// WithClock swaps the time source; intended for tests.
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// Submit stores a pending order owned by userID and returns its id.
func (s *OrderService) Submit(ctx context.Context, userID string, in OrderInput) (string, error) {
	if userID == "" {
		return "", ErrUnauthorized
	}

	in.Normalize()
	if err := validate.Struct(&in).Err(); err != nil {
		return "", err
	}
	clock, err := s.checkBooking(in)
	if err != nil {
		return "", err
	}

	order := &models.Order{
		UserID:      userID,
		ServiceType: in.ServiceType,
		Date:        in.Date,
		Time:        clock,
		Address:     in.Address,
		Locality:    in.Locality,
		Notes:       in.Notes,
		Status:      models.StatusPending,
		CreatedAt:   s.now().UTC(),
	}

	id, err := s.orders.Create(ctx, order)
	if err != nil {
		return "", fmt.Errorf("orders: submit: %w", err)
	}

	s.bump(userID)
	if err := s.cache.Del(ctx, listKey(userID)); err != nil {
		logger.WithCtx(ctx).Warn("order list cache invalidation failed", "user_id", userID, "error", err)
	}

	s.events.Fire(ctx, events.OrderSubmittedEvent, events.OrderSubmitted{
		OrderID:     id,
		UserID:      userID,
		ServiceType: order.ServiceType,
	})
	return id, nil
}

// checkBooking applies catalog and calendar rules to a shape-valid input
// and returns the booking time in ClockLayout form.
func (s *OrderService) checkBooking(in OrderInput) (string, error) {
	errs := validate.Errors{}

	svc, ok := s.catalog.Find(in.ServiceType)
	if !ok {
		errs.Add("serviceType", "The selected serviceType is invalid.")
		return "", errs
	}

	clock, ok := validate.ParseClock(in.Time)
	if !ok {
		errs.Add("time", "The time is not a valid time.")
		return "", errs
	}
	day, err := time.ParseInLocation(validate.DateLayout, in.Date, s.opts.Location)
	if err != nil {
		errs.Add("date", "The date is not a valid date.")
		return "", errs
	}

	if svc.DaytimeOnly {
		if h := clock.Hour(); h < models.DaytimeStartHour || h >= models.DaytimeEndHour {
			errs.Add("time", fmt.Sprintf("%s can only be booked during daytime hours (6 AM - 6 PM)", svc.Name))
		}
	}

	at := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, s.opts.Location)
	if at.Before(s.now()) {
		errs.Add("date", "Cannot book a service in the past. Please select a future date and time.")
	}

	if err := errs.Err(); err != nil {
		return "", err
	}
	return clock.Format(validate.ClockLayout), nil
}

// List returns the caller's newest orders with a per-group summary. A
// non-empty group filters the returned orders; the summary always covers
// the whole page.
func (s *OrderService) List(ctx context.Context, userID, group string) (OrderList, error) {
	if userID == "" {
		return OrderList{}, ErrUnauthorized
	}

	q := ListQuery{Status: group}
	q.Normalize()
	if err := validate.Struct(&q).Err(); err != nil {
		return OrderList{}, err
	}
	filter := models.StatusGroup(q.Status)

	views, err := s.page(ctx, userID)
	if err != nil {
		return OrderList{}, err
	}

	out := OrderList{Orders: views, Summary: models.Summarize(views)}
	if filter != models.GroupOther {
		out.Orders = collection.Filter(views, func(v models.OrderView) bool {
			return models.GroupOf(v.Status) == filter
		})
	}
	return out, nil
}

func (s *OrderService) page(ctx context.Context, userID string) ([]models.OrderView, error) {
	key := listKey(userID)

	var views []models.OrderView
	if s.opts.CacheTTL > 0 && s.cache.Get(ctx, key, &views) && views != nil {
		return views, nil
	}

	gen := s.generation(userID)
	orders, err := s.orders.ListByUser(ctx, userID, MaxListedOrders)
	if err != nil {
		return nil, fmt.Errorf("orders: list: %w", err)
	}

	views = collection.Map(orders, models.Order.View)

	if s.opts.CacheTTL > 0 && s.generation(userID) == gen {
		if err := s.cache.Set(ctx, key, views, s.opts.CacheTTL); err != nil {
			logger.WithCtx(ctx).Warn("order list cache write failed", "user_id", userID, "error", err)
		}
		// A submit that bumped after the check above may have deleted the
		// key before this Set landed.
		if s.generation(userID) != gen {
			if err := s.cache.Del(ctx, key); err != nil {
				logger.WithCtx(ctx).Warn("order list cache invalidation failed", "user_id", userID, "error", err)
			}
		}
	}
	return views, nil
}

func (s *OrderService) generation(userID string) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.gens[userID]
}

func (s *OrderService) bump(userID string) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	s.gens[userID]++
}

func listKey(userID string) string { return "orders:user:" + userID }
