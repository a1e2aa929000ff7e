package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 核心购书流程集成测试：
// 注册 → 浏览目录 → 加购 → 下单 → 库存变化 → 取消回补
// 需要真实环境，见helper.go的RequireEnv说明。

// TestShopFlow 完整购书流程
func TestShopFlow(t *testing.T) {
	RequireEnv(t)

	adminToken := AdminToken(t)
	_, token := RegisterTestUser(t, "shopper")

	bookID := PublishTestBook(t, adminToken, "软件工程导论", 250000, 10)

	t.Run("目录可见新书", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), "")
		require.Equal(t, 0, resp.Code)

		var b BookData
		require.NoError(t, json.Unmarshal(resp.Data, &b))
		assert.Equal(t, "软件工程导论", b.Title)
		assert.Equal(t, int64(250000), b.Price)
	})

	t.Run("加入购物车", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/cart/items", map[string]interface{}{
			"book_id":  bookID,
			"quantity": 2,
		}, token)
		require.Equal(t, 0, resp.Code, "加购失败: %s", resp.Message)

		var c CartData
		require.NoError(t, json.Unmarshal(resp.Data, &c))
		require.Len(t, c.Items, 1)
		assert.Equal(t, 2, c.Items[0].Quantity)
		assert.Equal(t, int64(500000), c.Total)
	})

	var orderID uint
	t.Run("自提下单", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/orders", map[string]interface{}{
			"items":         []map[string]interface{}{{"book_id": bookID, "quantity": 2}},
			"delivery_type": "pickup",
		}, token)
		require.Equal(t, 0, resp.Code, "下单失败: %s", resp.Message)

		var o OrderData
		require.NoError(t, json.Unmarshal(resp.Data, &o))
		assert.Equal(t, int64(500000), o.TotalAmount)
		assert.Equal(t, int64(0), o.DeliveryFee, "自提不收配送费")
		assert.Equal(t, "pending", o.Status)
		assert.Regexp(t, `^UBS-\d{8}-\d{3}$`, o.OrderNumber)
		orderID = o.OrderID

		t.Logf("✓ 下单成功，订单号: %s", o.OrderNumber)
	})

	t.Run("下单后库存扣减", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), "")
		require.Equal(t, 0, resp.Code)

		var b BookData
		require.NoError(t, json.Unmarshal(resp.Data, &b))
		assert.Equal(t, 8, b.StockQuantity)
	})

	t.Run("超库存下单被拒", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/orders", map[string]interface{}{
			"items":         []map[string]interface{}{{"book_id": bookID, "quantity": 100}},
			"delivery_type": "pickup",
		}, token)
		assert.NotEqual(t, 0, resp.Code)
		assert.Contains(t, resp.Message, "库存不足")
	})

	t.Run("取消订单回补库存", func(t *testing.T) {
		resp := PutJSON(t, fmt.Sprintf("%s/orders/%d/status", BaseURL, orderID),
			map[string]string{"status": "cancelled"}, adminToken)
		require.Equal(t, 0, resp.Code, "取消订单失败: %s", resp.Message)

		book := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), "")
		var b BookData
		require.NoError(t, json.Unmarshal(book.Data, &b))
		assert.Equal(t, 10, b.StockQuantity, "取消后库存应该回到10")
	})
}

// TestAuthGuard 未登录与越权访问
func TestAuthGuard(t *testing.T) {
	RequireEnv(t)

	t.Run("未登录不能下单", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/orders", map[string]interface{}{
			"items":         []map[string]interface{}{{"book_id": 1, "quantity": 1}},
			"delivery_type": "pickup",
		}, "")
		assert.NotEqual(t, 0, resp.Code)
	})

	t.Run("学生不能上架图书", func(t *testing.T) {
		_, token := RegisterTestUser(t, "not_staff")
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":  "违规上架",
			"author": "nobody",
			"price":  100,
		}, token)
		assert.NotEqual(t, 0, resp.Code, "student角色不应该有上架权限")
	})

	t.Run("学生看不到他人订单", func(t *testing.T) {
		adminToken := AdminToken(t)
		bookID := PublishTestBook(t, adminToken, "越权测试", 100000, 5)

		_, owner := RegisterTestUser(t, "owner")
		order := PostJSON(t, BaseURL+"/orders", map[string]interface{}{
			"items":         []map[string]interface{}{{"book_id": bookID, "quantity": 1}},
			"delivery_type": "pickup",
		}, owner)
		require.Equal(t, 0, order.Code)

		var o OrderData
		require.NoError(t, json.Unmarshal(order.Data, &o))

		_, stranger := RegisterTestUser(t, "stranger")
		resp := GetJSON(t, fmt.Sprintf("%s/orders/%d", BaseURL, o.OrderID), stranger)
		assert.NotEqual(t, 0, resp.Code, "他人订单应该拒绝访问")
	})
}

// TestWishlistAndReview 心愿单与书评
func TestWishlistAndReview(t *testing.T) {
	RequireEnv(t)

	adminToken := AdminToken(t)
	bookID := PublishTestBook(t, adminToken, "计算机网络", 300000, 5)
	_, token := RegisterTestUser(t, "reader")

	t.Run("加入心愿单", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/wishlist", map[string]interface{}{
			"book_id": bookID,
		}, token)
		require.Equal(t, 0, resp.Code, "加入心愿单失败: %s", resp.Message)

		list := GetJSON(t, BaseURL+"/wishlist", token)
		require.Equal(t, 0, list.Code)
		assert.Contains(t, string(list.Data), "计算机网络")
	})

	t.Run("重复提交书评是覆盖", func(t *testing.T) {
		first := PostJSON(t, BaseURL+"/reviews", map[string]interface{}{
			"book_id": bookID, "rating": 5, "comment": "好书",
		}, token)
		require.Equal(t, 0, first.Code, "提交书评失败: %s", first.Message)

		second := PostJSON(t, BaseURL+"/reviews", map[string]interface{}{
			"book_id": bookID, "rating": 3, "comment": "重读降分",
		}, token)
		require.Equal(t, 0, second.Code)

		resp := GetJSON(t, fmt.Sprintf("%s/reviews/book/%d", BaseURL, bookID), "")
		require.Equal(t, 0, resp.Code)

		var data struct {
			Reviews []struct {
				Rating int `json:"rating"`
			} `json:"reviews"`
			Summary struct {
				Count   int64   `json:"count"`
				Average float64 `json:"average"`
			} `json:"summary"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Len(t, data.Reviews, 1, "同一用户重复评价不产生第二条")
		assert.Equal(t, 3.0, data.Summary.Average)
	})
}
