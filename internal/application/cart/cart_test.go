package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibookshop/unibookshop/internal/domain/book"
	"github.com/unibookshop/unibookshop/internal/domain/cart"
)

// fakeCartRepo 内存购物车仓储桩
type fakeCartRepo struct {
	carts  map[uint]*cart.Cart // userID → cart
	nextID uint
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uint]*cart.Cart), nextID: 1}
}

func (r *fakeCartRepo) FindByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	cp := *c
	cp.Items = append([]cart.Item(nil), c.Items...)
	return &cp, nil
}

func (r *fakeCartRepo) Create(ctx context.Context, c *cart.Cart) error {
	if _, ok := r.carts[c.UserID]; ok {
		return nil // 撞user_id唯一索引，静默（调用方会重查）
	}
	c.ID = r.nextID
	r.nextID++
	cp := *c
	r.carts[c.UserID] = &cp
	return nil
}

func (r *fakeCartRepo) findByCartID(cartID uint) *cart.Cart {
	for _, c := range r.carts {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

func (r *fakeCartRepo) UpsertItem(ctx context.Context, cartID, bookID uint, quantity int) error {
	c := r.findByCartID(cartID)
	if idx := c.FindItem(bookID); idx >= 0 {
		c.Items[idx].Quantity = quantity
		return nil
	}
	c.Items = append(c.Items, cart.Item{CartID: cartID, BookID: bookID, Quantity: quantity})
	return nil
}

func (r *fakeCartRepo) RemoveItem(ctx context.Context, cartID, bookID uint) error {
	c := r.findByCartID(cartID)
	idx := c.FindItem(bookID)
	if idx < 0 {
		return cart.ErrItemNotFound
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	return nil
}

func (r *fakeCartRepo) Clear(ctx context.Context, cartID uint) error {
	r.findByCartID(cartID).Items = nil
	return nil
}

// fakeBookRepo 只实现FindByID，其余接口方法是空壳
type fakeBookRepo struct {
	books map[uint]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[uint]*book.Book)}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error     { return nil }
func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error     { return nil }
func (r *fakeBookRepo) Deactivate(ctx context.Context, id uint) error      { return nil }
func (r *fakeBookRepo) DecrementStock(ctx context.Context, id uint, qty int) error {
	return nil
}
func (r *fakeBookRepo) IncrementStock(ctx context.Context, id uint, qty int) error {
	return nil
}
func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func testBook(id uint, price int64, stock int) *book.Book {
	b := book.NewBook("算法导论", "Cormen", "", price, stock)
	b.ID = id
	return b
}

func newTestUseCase(books ...*book.Book) (*CartUseCase, *fakeCartRepo) {
	cartRepo := newFakeCartRepo()
	return NewCartUseCase(cartRepo, newFakeBookRepo(books...)), cartRepo
}

// TestCartLazyCreate 首次访问懒创建空车
func TestCartLazyCreate(t *testing.T) {
	uc, _ := newTestUseCase()

	view, err := uc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.NotZero(t, view.ID)
	assert.Empty(t, view.Items)
	assert.Equal(t, int64(0), view.Total)
}

// TestCartAddItem 加购是合并语义
func TestCartAddItem(t *testing.T) {
	uc, _ := newTestUseCase(testBook(1, 250000, 10))
	ctx := context.Background()

	view, err := uc.AddItem(ctx, 1, 1, 2)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)

	// 再加3本：合并成5，不产生第二行
	view, err = uc.AddItem(ctx, 1, 1, 3)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 5, view.Items[0].Quantity)
	assert.Equal(t, int64(1250000), view.Total, "小计按当前价计算")
}

// TestCartAddItemStockCeiling 加购不能超过库存
func TestCartAddItemStockCeiling(t *testing.T) {
	uc, _ := newTestUseCase(testBook(1, 250000, 3))
	ctx := context.Background()

	_, err := uc.AddItem(ctx, 1, 1, 2)
	require.NoError(t, err)

	// 已有2本，再加2本会超过库存3
	_, err = uc.AddItem(ctx, 1, 1, 2)
	assert.ErrorIs(t, err, book.ErrInsufficientStock)

	t.Run("图书不存在", func(t *testing.T) {
		_, err := uc.AddItem(ctx, 1, 99, 1)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	t.Run("负数量减购到0删行", func(t *testing.T) {
		view, err := uc.AddItem(ctx, 1, 1, -2)
		require.NoError(t, err)
		assert.Empty(t, view.Items, "合并后数量归零应该删行")
	})

	t.Run("对不存在的行减购是no-op", func(t *testing.T) {
		view, err := uc.AddItem(ctx, 1, 1, -1)
		require.NoError(t, err)
		assert.Empty(t, view.Items)
	})
}

// TestCartUpdateItem 更新是覆盖语义，0删行
func TestCartUpdateItem(t *testing.T) {
	uc, _ := newTestUseCase(testBook(1, 250000, 10))
	ctx := context.Background()

	_, err := uc.AddItem(ctx, 1, 1, 5)
	require.NoError(t, err)

	t.Run("覆盖数量", func(t *testing.T) {
		view, err := uc.UpdateItem(ctx, 1, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, view.Items[0].Quantity, "Update是覆盖不是累加")
	})

	t.Run("数量0等于删除行项", func(t *testing.T) {
		view, err := uc.UpdateItem(ctx, 1, 1, 0)
		require.NoError(t, err)
		assert.Empty(t, view.Items, "数量归零应该删行，不留quantity=0的残留")
	})

	t.Run("行项不存在", func(t *testing.T) {
		_, err := uc.UpdateItem(ctx, 1, 1, 3)
		assert.ErrorIs(t, err, cart.ErrItemNotFound)
	})
}

// TestCartClear 清空购物车
func TestCartClear(t *testing.T) {
	uc, _ := newTestUseCase(testBook(1, 250000, 10))
	ctx := context.Background()

	_, err := uc.AddItem(ctx, 1, 1, 2)
	require.NoError(t, err)

	require.NoError(t, uc.Clear(ctx, 1))

	view, err := uc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	// 没有购物车的用户清空也不报错
	assert.NoError(t, uc.Clear(ctx, 42))
}
