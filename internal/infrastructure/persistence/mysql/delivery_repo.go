package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/unibookshop/unibookshop/internal/domain/delivery"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// deliveryRepository 配送单仓储的MySQL实现
type deliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository 创建配送单仓储
func NewDeliveryRepository(db *gorm.DB) delivery.Repository {
	return &deliveryRepository{db: db}
}

// Create 创建配送单（下单事务内调用，事务经context传入）
func (r *deliveryRepository) Create(ctx context.Context, d *delivery.Delivery) error {
	model := toDeliveryModel(d)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建配送单失败")
	}
	d.ID = model.ID
	d.CreatedAt = model.CreatedAt
	d.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *deliveryRepository) FindByID(ctx context.Context, id uint) (*delivery.Delivery, error) {
	var model DeliveryModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, delivery.ErrDeliveryNotFound
		}
		return nil, apperrors.Wrap(err, "查询配送单失败")
	}
	return toDeliveryEntity(&model), nil
}

func (r *deliveryRepository) FindByOrderID(ctx context.Context, orderID uint) (*delivery.Delivery, error) {
	var model DeliveryModel
	err := getDB(ctx, r.db).Where("order_id = ?", orderID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, delivery.ErrDeliveryNotFound
		}
		return nil, apperrors.Wrap(err, "查询配送单失败")
	}
	return toDeliveryEntity(&model), nil
}

func (r *deliveryRepository) List(ctx context.Context) ([]*delivery.Delivery, error) {
	var models []DeliveryModel
	err := getDB(ctx, r.db).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询配送单列表失败")
	}
	return toDeliveryEntities(models), nil
}

func (r *deliveryRepository) ListByAgent(ctx context.Context, agentID uint) ([]*delivery.Delivery, error) {
	var models []DeliveryModel
	err := getDB(ctx, r.db).Where("agent_id = ?", agentID).
		Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询配送单列表失败")
	}
	return toDeliveryEntities(models), nil
}

// Update 更新配送单（指派、状态、时间戳、备注）
func (r *deliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	result := getDB(ctx, r.db).Model(&DeliveryModel{}).Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"agent_id":      d.AgentID,
			"status":        string(d.Status),
			"pickup_time":   d.PickupTime,
			"delivery_time": d.DeliveryTime,
			"notes":         d.Notes,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新配送单失败")
	}
	if result.RowsAffected == 0 {
		return delivery.ErrDeliveryNotFound
	}
	return nil
}

func toDeliveryModel(d *delivery.Delivery) *DeliveryModel {
	return &DeliveryModel{
		ID:           d.ID,
		OrderID:      d.OrderID,
		AgentID:      d.AgentID,
		Status:       string(d.Status),
		PickupTime:   d.PickupTime,
		DeliveryTime: d.DeliveryTime,
		Notes:        d.Notes,
	}
}

func toDeliveryEntity(m *DeliveryModel) *delivery.Delivery {
	return &delivery.Delivery{
		ID:           m.ID,
		OrderID:      m.OrderID,
		AgentID:      m.AgentID,
		Status:       delivery.Status(m.Status),
		PickupTime:   m.PickupTime,
		DeliveryTime: m.DeliveryTime,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toDeliveryEntities(models []DeliveryModel) []*delivery.Delivery {
	out := make([]*delivery.Delivery, 0, len(models))
	for i := range models {
		out = append(out, toDeliveryEntity(&models[i]))
	}
	return out
}
