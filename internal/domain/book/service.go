package book

import (
	"context"
)

// Service 图书领域服务
// 封装跨实体的业务规则校验；角色校验在接口层完成
type Service interface {
	// CreateBook 新建图书（上架）
	// 业务规则：价格>0，库存>=0，ISBN可选但不可重复
	CreateBook(ctx context.Context, b *Book) (*Book, error)

	// GetBook 根据ID获取图书详情
	GetBook(ctx context.Context, id uint) (*Book, error)

	// UpdateBook 更新图书信息
	UpdateBook(ctx context.Context, b *Book) error

	// DeactivateBook 下架图书（软删除）
	DeactivateBook(ctx context.Context, id uint) error

	// ListBooks 查询在售图书列表
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 新建图书
func (s *service) CreateBook(ctx context.Context, b *Book) (*Book, error) {
	if err := validateBook(b); err != nil {
		return nil, err
	}

	// ISBN唯一性由数据库索引兜底，Repository转换重复错误为ErrISBNDuplicate
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBook 更新图书信息
func (s *service) UpdateBook(ctx context.Context, b *Book) error {
	if err := validateBook(b); err != nil {
		return err
	}
	return s.repo.Update(ctx, b)
}

// DeactivateBook 下架图书
func (s *service) DeactivateBook(ctx context.Context, id uint) error {
	return s.repo.Deactivate(ctx, id)
}

// ListBooks 查询在售图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	return s.repo.List(ctx, params)
}

// validateBook 图书字段业务校验
func validateBook(b *Book) error {
	if b.Price <= 0 {
		return ErrInvalidPrice
	}
	if b.StockQuantity < 0 {
		return ErrInvalidStock
	}
	return nil
}
