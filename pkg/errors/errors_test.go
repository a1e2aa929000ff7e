package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAppError 测试错误构造与Unwrap
func TestAppError(t *testing.T) {
	e := New(ErrCodeBookNotFound, "图书不存在")
	assert.Equal(t, "[40402] 图书不存在", e.Error())

	inner := fmt.Errorf("dial tcp: connection refused")
	wrapped := Wrap(inner, "数据库错误")
	assert.Equal(t, ErrCodeInternal, wrapped.Code)
	assert.ErrorIs(t, wrapped, inner, "Wrap要支持errors.Is穿透到内部错误")
}

// TestGetAppError 测试错误提取
func TestGetAppError(t *testing.T) {
	t.Run("本来就是AppError", func(t *testing.T) {
		e := GetAppError(ErrBookNotFound)
		assert.Equal(t, ErrCodeBookNotFound, e.Code)
	})

	t.Run("普通error包装成Internal", func(t *testing.T) {
		e := GetAppError(errors.New("boom"))
		assert.Equal(t, ErrCodeInternal, e.Code)
	})

	assert.True(t, IsAppError(ErrForbidden))
	assert.False(t, IsAppError(errors.New("plain")))
}

// TestHTTPStatus 业务码到HTTP状态码的映射（Webhook等直连接口用）
func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, 500, ErrInternal.HTTPStatus())
	assert.Equal(t, 404, ErrOrderNotFound.HTTPStatus())
	assert.Equal(t, 403, ErrForbidden.HTTPStatus())
	assert.Equal(t, 400, ErrInsufficientStock.HTTPStatus())
	assert.Equal(t, 400, ErrInvalidParams.HTTPStatus())
	assert.Equal(t, 400, ErrUnauthorized.HTTPStatus())
}
