package mysql

import (
	"context"

	"gorm.io/gorm"
)

// txKey 事务在context中的键（私有类型避免碰撞）
type txKey struct{}

// TxManager 事务管理器
// 设计说明：
// 1. 事务句柄通过context向下传递，Repository对调用方是否在事务中无感知
// 2. fn返回error则回滚，返回nil则提交
// 3. 应用层只依赖Transaction(ctx, fn)这一个方法，单测可注入直通桩
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 在一个数据库事务中执行fn
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// getDB 取当前应使用的数据库句柄：context里有事务就用事务，否则用连接池
func getDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
