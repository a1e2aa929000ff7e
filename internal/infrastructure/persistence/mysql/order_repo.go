package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/unibookshop/unibookshop/internal/domain/order"
	"github.com/unibookshop/unibookshop/internal/domain/user"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// orderRepository 订单仓储的MySQL实现
// 设计说明：
// 1. 订单与行项同一事务写入（GORM关联Create一次完成）
// 2. 所有读写都经getDB(ctx)：下单用例的事务通过context传入
// 3. 订单号撞唯一索引翻译为ErrOrderNumberDuplicate，由应用层重试
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单（含全部行项）
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return order.ErrOrderNumberDuplicate
		}
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range model.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}

	return nil
}

// FindByID 根据ID查找订单（含行项）
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// FindByPaymentReference 按支付方交易引用查找订单
func (r *orderRepository) FindByPaymentReference(ctx context.Context, reference string) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").
		Where("payment_reference = ?", reference).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// UpdateStatus 更新履约/支付状态字段
// 金额与行项创建后不可变，这里只写状态相关列
func (r *orderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	result := getDB(ctx, r.db).Model(&OrderModel{}).Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":            string(o.Status),
			"payment_status":    string(o.PaymentStatus),
			"payment_method":    o.PaymentMethod,
			"payment_reference": o.PaymentReference,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单状态失败")
	}
	if result.RowsAffected == 0 {
		// Updates对无变化的行也返回affected=1（MySQL CLIENT_FOUND_ROWS），
		// 0行意味着订单不存在
		return order.ErrOrderNotFound
	}
	return nil
}

// List 返回全部订单（staff视图）
func (r *orderRepository) List(ctx context.Context) ([]*order.Order, error) {
	var models []OrderModel
	err := getDB(ctx, r.db).Preload("Items").
		Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单列表失败")
	}
	return toOrderEntities(models), nil
}

// ListByUserID 返回某用户的订单
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint) ([]*order.Order, error) {
	var models []OrderModel
	err := getDB(ctx, r.db).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询订单列表失败")
	}
	return toOrderEntities(models), nil
}

// toOrderModel 领域实体 -> 存储模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemModel{
			BookID:    it.BookID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	model := &OrderModel{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		UserID:           o.UserID,
		Status:           string(o.Status),
		PaymentStatus:    string(o.PaymentStatus),
		PaymentMethod:    o.PaymentMethod,
		PaymentReference: o.PaymentReference,
		DeliveryType:     string(o.DeliveryType),
		DeliveryFee:      o.DeliveryFee,
		TotalAmount:      o.TotalAmount,
		Notes:            o.Notes,
		Items:            items,
	}
	if o.DeliveryAddress != nil {
		model.DeliveryAddress = AddressColumns{
			Street:  o.DeliveryAddress.Street,
			City:    o.DeliveryAddress.City,
			State:   o.DeliveryAddress.State,
			Country: o.DeliveryAddress.Country,
			Zip:     o.DeliveryAddress.Zip,
		}
	}
	return model
}

// toOrderEntity 存储模型 -> 领域实体
func toOrderEntity(m *OrderModel) *order.Order {
	items := make([]order.Item, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, order.Item{
			ID:        it.ID,
			OrderID:   it.OrderID,
			BookID:    it.BookID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	o := &order.Order{
		ID:               m.ID,
		OrderNumber:      m.OrderNumber,
		UserID:           m.UserID,
		Status:           order.Status(m.Status),
		PaymentStatus:    order.PaymentStatus(m.PaymentStatus),
		PaymentMethod:    m.PaymentMethod,
		PaymentReference: m.PaymentReference,
		DeliveryType:     order.DeliveryType(m.DeliveryType),
		DeliveryFee:      m.DeliveryFee,
		TotalAmount:      m.TotalAmount,
		Notes:            m.Notes,
		Items:            items,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.DeliveryType == string(order.DeliveryDelivery) {
		o.DeliveryAddress = &user.Address{
			Street:  m.DeliveryAddress.Street,
			City:    m.DeliveryAddress.City,
			State:   m.DeliveryAddress.State,
			Country: m.DeliveryAddress.Country,
			Zip:     m.DeliveryAddress.Zip,
		}
	}
	return o
}

func toOrderEntities(models []OrderModel) []*order.Order {
	out := make([]*order.Order, 0, len(models))
	for i := range models {
		out = append(out, toOrderEntity(&models[i]))
	}
	return out
}
