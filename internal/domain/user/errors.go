package user

import (
	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")

	// ErrEmailDuplicate 邮箱已被注册
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")

	// ErrMatricDuplicate 学号已被注册
	ErrMatricDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "学号已被注册")

	// ErrInvalidRole 角色值不合法
	ErrInvalidRole = apperrors.New(apperrors.ErrCodeInvalidParams, "角色值不合法")
)
