package delivery

import (
	"context"
	"time"

	"github.com/unibookshop/unibookshop/internal/domain/delivery"
	"github.com/unibookshop/unibookshop/internal/domain/user"
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// DeliveryUseCase 配送单用例
// 访问规则：
// 1. List（全量）：admin
// 2. ListMine：delivery_agent查自己名下的配送单
// 3. Assign：admin指派配送员
// 4. Update：admin或被指派的配送员更新状态/时间/备注
type DeliveryUseCase struct {
	deliveryRepo delivery.Repository
	userRepo     user.Repository
}

// NewDeliveryUseCase 创建配送单用例
func NewDeliveryUseCase(deliveryRepo delivery.Repository, userRepo user.Repository) *DeliveryUseCase {
	return &DeliveryUseCase{deliveryRepo: deliveryRepo, userRepo: userRepo}
}

// List 全部配送单
func (uc *DeliveryUseCase) List(ctx context.Context) ([]DeliveryView, error) {
	deliveries, err := uc.deliveryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toDeliveryViews(deliveries), nil
}

// ListMine 我的配送任务（配送员）
func (uc *DeliveryUseCase) ListMine(ctx context.Context, agentID uint) ([]DeliveryView, error) {
	deliveries, err := uc.deliveryRepo.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return toDeliveryViews(deliveries), nil
}

// Get 配送单详情（admin或被指派的配送员）
func (uc *DeliveryUseCase) Get(ctx context.Context, id, requesterID uint, role user.Role) (*DeliveryView, error) {
	d, err := uc.deliveryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != user.RoleAdmin && !d.IsAssignedTo(requesterID) {
		return nil, apperrors.ErrForbidden
	}
	view := toDeliveryView(d)
	return &view, nil
}

// Assign 指派配送员（admin）
// 被指派者必须是delivery_agent角色
func (uc *DeliveryUseCase) Assign(ctx context.Context, deliveryID, agentID uint) (*DeliveryView, error) {
	agent, err := uc.userRepo.FindByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if agent.Role != user.RoleDeliveryAgent {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "指派对象不是配送员")
	}

	d, err := uc.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	d.Assign(agentID)
	if err := uc.deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	view := toDeliveryView(d)
	return &view, nil
}

// UpdateRequest 配送单更新请求
// 指针字段为nil表示不修改
type UpdateRequest struct {
	Status       string
	PickupTime   *time.Time
	DeliveryTime *time.Time
	Notes        *string
}

// Update 更新配送单（admin或被指派的配送员）
// 状态只做枚举成员校验，状态间不设转移图
func (uc *DeliveryUseCase) Update(ctx context.Context, deliveryID, requesterID uint, role user.Role, req UpdateRequest) (*DeliveryView, error) {
	d, err := uc.deliveryRepo.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	if role != user.RoleAdmin && !d.IsAssignedTo(requesterID) {
		return nil, apperrors.ErrForbidden
	}

	if req.Status != "" {
		status := delivery.Status(req.Status)
		if !status.IsValid() {
			return nil, delivery.ErrInvalidStatus
		}
		d.Status = status
	}
	if req.PickupTime != nil {
		d.PickupTime = req.PickupTime
	}
	if req.DeliveryTime != nil {
		d.DeliveryTime = req.DeliveryTime
	}
	if req.Notes != nil {
		d.Notes = *req.Notes
	}

	if err := uc.deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	view := toDeliveryView(d)
	return &view, nil
}

// =========================================
// 应用层DTO
// =========================================

// DeliveryView 配送单视图
type DeliveryView struct {
	ID           uint   `json:"id"`
	OrderID      uint   `json:"order_id"`
	AgentID      *uint  `json:"agent_id,omitempty"`
	Status       string `json:"status"`
	PickupTime   string `json:"pickup_time,omitempty"`
	DeliveryTime string `json:"delivery_time,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"created_at"`
}

func toDeliveryView(d *delivery.Delivery) DeliveryView {
	view := DeliveryView{
		ID:        d.ID,
		OrderID:   d.OrderID,
		AgentID:   d.AgentID,
		Status:    string(d.Status),
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if d.PickupTime != nil {
		view.PickupTime = d.PickupTime.Format("2006-01-02 15:04:05")
	}
	if d.DeliveryTime != nil {
		view.DeliveryTime = d.DeliveryTime.Format("2006-01-02 15:04:05")
	}
	return view
}

func toDeliveryViews(deliveries []*delivery.Delivery) []DeliveryView {
	out := make([]DeliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, toDeliveryView(d))
	}
	return out
}
