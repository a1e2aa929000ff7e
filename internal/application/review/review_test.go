package review

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unibookshop/unibookshop/internal/domain/book"
	"github.com/unibookshop/unibookshop/internal/domain/review"
)

// fakeReviewRepo 内存书评仓储桩（按user+book唯一）
type fakeReviewRepo struct {
	reviews []*review.Review
	nextID  uint
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{nextID: 1}
}

func (r *fakeReviewRepo) Upsert(ctx context.Context, rv *review.Review) error {
	now := time.Now()
	for _, existing := range r.reviews {
		if existing.UserID == rv.UserID && existing.BookID == rv.BookID {
			existing.Rating = rv.Rating
			existing.Comment = rv.Comment
			existing.UpdatedAt = now
			*rv = *existing
			return nil
		}
	}
	rv.ID = r.nextID
	r.nextID++
	rv.CreatedAt = now
	rv.UpdatedAt = now
	cp := *rv
	r.reviews = append(r.reviews, &cp)
	return nil
}

func (r *fakeReviewRepo) ListByBook(ctx context.Context, bookID uint) ([]*review.Review, error) {
	out := make([]*review.Review, 0)
	for _, rv := range r.reviews {
		if rv.BookID == bookID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) SummaryByBook(ctx context.Context, bookID uint) (*review.Summary, error) {
	var count int64
	var sum int
	for _, rv := range r.reviews {
		if rv.BookID == bookID {
			count++
			sum += rv.Rating
		}
	}
	s := &review.Summary{Count: count}
	if count > 0 {
		s.Average = math.Round(float64(sum)/float64(count)*10) / 10
	}
	return s, nil
}

// fakeBookRepo 只实现FindByID
type fakeBookRepo struct {
	books map[uint]*book.Book
}

func (r *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) Create(ctx context.Context, b *book.Book) error { return nil }
func (r *fakeBookRepo) Update(ctx context.Context, b *book.Book) error { return nil }
func (r *fakeBookRepo) Deactivate(ctx context.Context, id uint) error  { return nil }
func (r *fakeBookRepo) DecrementStock(ctx context.Context, id uint, qty int) error {
	return nil
}
func (r *fakeBookRepo) IncrementStock(ctx context.Context, id uint, qty int) error {
	return nil
}
func (r *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func newTestUseCase() *ReviewUseCase {
	b := book.NewBook("深入理解计算机系统", "Bryant", "", 350000, 5)
	b.ID = 1
	return NewReviewUseCase(newFakeReviewRepo(), &fakeBookRepo{books: map[uint]*book.Book{1: b}})
}

// TestSubmitReview 提交书评
func TestSubmitReview(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()

	view, err := uc.Submit(ctx, 1, 1, 4, "印刷清晰，内容扎实")
	require.NoError(t, err)
	assert.Equal(t, 4, view.Rating)
	assert.NotZero(t, view.ID)

	t.Run("评分越界", func(t *testing.T) {
		_, err := uc.Submit(ctx, 1, 1, 0, "")
		assert.ErrorIs(t, err, review.ErrInvalidRating)
		_, err = uc.Submit(ctx, 1, 1, 6, "")
		assert.ErrorIs(t, err, review.ErrInvalidRating)
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, err := uc.Submit(ctx, 1, 99, 4, "")
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

// TestSubmitReviewUpsert 同一用户重复评价是覆盖
func TestSubmitReviewUpsert(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()

	first, err := uc.Submit(ctx, 1, 1, 5, "五星好书")
	require.NoError(t, err)

	second, err := uc.Submit(ctx, 1, 1, 2, "重读之后降分")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "重复评价应该覆盖同一条记录")
	assert.Equal(t, 2, second.Rating)

	result, err := uc.ListByBook(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, result.Reviews, 1, "不应该产生第二行")
	assert.Equal(t, int64(1), result.Summary.Count)
	assert.Equal(t, 2.0, result.Summary.Average)
}

// TestReviewSummary 多用户的汇总与平均分取整
func TestReviewSummary(t *testing.T) {
	uc := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Submit(ctx, 1, 1, 5, "")
	require.NoError(t, err)
	_, err = uc.Submit(ctx, 2, 1, 4, "")
	require.NoError(t, err)
	_, err = uc.Submit(ctx, 3, 1, 4, "")
	require.NoError(t, err)

	result, err := uc.ListByBook(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Summary.Count)
	assert.Equal(t, 4.3, result.Summary.Average, "平均分四舍五入到1位小数")
	assert.Len(t, result.Reviews, 3)
}
