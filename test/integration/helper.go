package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 这套测试打真实HTTP接口，需要先起完整环境（MySQL+Redis+服务进程）。
// 默认跳过，设置UNIBOOKSHOP_INTEGRATION=1后运行：
//   UNIBOOKSHOP_INTEGRATION=1 go test -v ./test/integration/...

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// RequireEnv 非集成环境下跳过整个测试
func RequireEnv(t *testing.T) {
	t.Helper()
	if os.Getenv("UNIBOOKSHOP_INTEGRATION") == "" {
		t.Skip("UNIBOOKSHOP_INTEGRATION未设置，跳过集成测试")
	}
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// UserData 注册/资料响应数据
type UserData struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookData 图书响应数据
type BookData struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
}

// OrderData 下单响应数据
type OrderData struct {
	OrderID     uint   `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"total_amount"`
	DeliveryFee int64  `json:"delivery_fee"`
}

// CartData 购物车响应数据
type CartData struct {
	ID    uint `json:"id"`
	Items []struct {
		BookID   uint `json:"book_id"`
		Quantity int  `json:"quantity"`
	} `json:"items"`
	Total int64 `json:"total"`
}

// GenerateTestEmail 生成不重复的测试邮箱
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@unibookshop.test", prefix, time.Now().UnixNano())
}

func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求并解析统一响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "POST", url, data, token)
}

// PutJSON 发送PUT请求并解析统一响应
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, "PUT", url, data, token)
}

// GetJSON 发送GET请求并解析统一响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "GET", url, nil, token)
}

// DeleteJSON 发送DELETE请求并解析统一响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, "DELETE", url, nil, token)
}

// RegisterTestUser 注册并登录一个测试学生，返回(用户ID, access token)
func RegisterTestUser(t *testing.T, prefix string) (uint, string) {
	t.Helper()
	email := GenerateTestEmail(prefix)

	resp := PostJSON(t, BaseURL+"/auth/register", map[string]interface{}{
		"email":      email,
		"password":   "passw0rd123",
		"first_name": "Test",
		"last_name":  "Student",
	}, "")
	require.Equal(t, 0, resp.Code, "注册失败: %s", resp.Message)

	var u UserData
	require.NoError(t, json.Unmarshal(resp.Data, &u))

	login := PostJSON(t, BaseURL+"/auth/login", map[string]string{
		"email":    email,
		"password": "passw0rd123",
	}, "")
	require.Equal(t, 0, login.Code, "登录失败: %s", login.Message)

	var l LoginData
	require.NoError(t, json.Unmarshal(login.Data, &l))
	return u.ID, l.AccessToken
}

// AdminToken 用种子管理员账号登录
// 集成环境需要预置admin@unibookshop.test/Admin12345（见docker-compose初始化SQL）
func AdminToken(t *testing.T) string {
	t.Helper()
	resp := PostJSON(t, BaseURL+"/auth/login", map[string]string{
		"email":    "admin@unibookshop.test",
		"password": "Admin12345",
	}, "")
	require.Equal(t, 0, resp.Code, "管理员登录失败: %s", resp.Message)

	var l LoginData
	require.NoError(t, json.Unmarshal(resp.Data, &l))
	return l.AccessToken
}

// PublishTestBook 用管理员token上架一本书，返回图书ID
func PublishTestBook(t *testing.T, adminToken, title string, price int64, stock int) uint {
	t.Helper()
	resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":          title,
		"author":         "集成测试",
		"price":          price,
		"stock_quantity": stock,
		"category":       "test",
	}, adminToken)
	require.Equal(t, 0, resp.Code, "上架图书失败: %s", resp.Message)

	var b BookData
	require.NoError(t, json.Unmarshal(resp.Data, &b))
	return b.ID
}
