package order

import (
	"context"
	"sort"

	"github.com/unibookshop/unibookshop/internal/domain/book"
	"github.com/unibookshop/unibookshop/internal/domain/delivery"
	"github.com/unibookshop/unibookshop/internal/domain/order"
)

// 内存仓储桩，给订单用例做单测。
// 只实现测试用到的语义：主键自增、错误注入、简单过滤。

type fakeOrderRepo struct {
	orders map[uint]*order.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*order.Order), nextID: 1}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	o.ID = r.nextID
	r.nextID++
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindByPaymentReference(ctx context.Context, reference string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.PaymentReference == reference {
			cp := *o
			return &cp, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, o *order.Order) error {
	stored, ok := r.orders[o.ID]
	if !ok {
		return order.ErrOrderNotFound
	}
	stored.Status = o.Status
	stored.PaymentStatus = o.PaymentStatus
	stored.PaymentMethod = o.PaymentMethod
	stored.PaymentReference = o.PaymentReference
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context) ([]*order.Order, error) {
	out := make([]*order.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) ListByUserID(ctx context.Context, userID uint) ([]*order.Order, error) {
	out := make([]*order.Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type fakeBookRepo struct {
	books map[uint]*book.Book
	// failDecrementFor 模拟并发把库存买光：预检通过但事务内扣减失败
	failDecrementFor map[uint]bool
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book), failDecrementFor: make(map[uint]bool)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepo) Deactivate(ctx context.Context, id uint) error {
	if b, ok := r.books[id]; ok {
		b.IsActive = false
	}
	return nil
}

func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) DecrementStock(ctx context.Context, id uint, qty int) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if r.failDecrementFor[id] || b.StockQuantity < qty {
		return book.ErrInsufficientStock
	}
	b.StockQuantity -= qty
	return nil
}

func (r *fakeBookRepo) IncrementStock(ctx context.Context, id uint, qty int) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.StockQuantity += qty
	return nil
}

type fakeDeliveryRepo struct {
	deliveries map[uint]*delivery.Delivery
	nextID     uint
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{deliveries: make(map[uint]*delivery.Delivery), nextID: 1}
}

func (r *fakeDeliveryRepo) Create(ctx context.Context, d *delivery.Delivery) error {
	d.ID = r.nextID
	r.nextID++
	cp := *d
	r.deliveries[d.ID] = &cp
	return nil
}

func (r *fakeDeliveryRepo) FindByID(ctx context.Context, id uint) (*delivery.Delivery, error) {
	d, ok := r.deliveries[id]
	if !ok {
		return nil, delivery.ErrDeliveryNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDeliveryRepo) FindByOrderID(ctx context.Context, orderID uint) (*delivery.Delivery, error) {
	for _, d := range r.deliveries {
		if d.OrderID == orderID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, delivery.ErrDeliveryNotFound
}

func (r *fakeDeliveryRepo) List(ctx context.Context) ([]*delivery.Delivery, error) {
	out := make([]*delivery.Delivery, 0, len(r.deliveries))
	for _, d := range r.deliveries {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDeliveryRepo) ListByAgent(ctx context.Context, agentID uint) ([]*delivery.Delivery, error) {
	out := make([]*delivery.Delivery, 0)
	for _, d := range r.deliveries {
		if d.AgentID != nil && *d.AgentID == agentID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDeliveryRepo) Update(ctx context.Context, d *delivery.Delivery) error {
	if _, ok := r.deliveries[d.ID]; !ok {
		return delivery.ErrDeliveryNotFound
	}
	cp := *d
	r.deliveries[d.ID] = &cp
	return nil
}

// passTxManager 直通事务桩：不起真事务，直接执行回调
type passTxManager struct {
	calls int
}

func (m *passTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}
