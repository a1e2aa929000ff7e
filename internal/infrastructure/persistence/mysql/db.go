package mysql

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/unibookshop/unibookshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. GORM v2 + MySQL驱动，连接池参数全部来自配置
// 2. 开发环境打印SQL，生产环境静默
// 3. 启动时AutoMigrate（生产环境建议换成版本化迁移脚本）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logrus.Info("数据库连接成功")

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只创建表和新增字段，不会删除/修改既有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&DepartmentModel{},
		&CourseModel{},
		&BookModel{},
		&BookCourseModel{},
		&CartModel{},
		&CartItemModel{},
		&WishlistModel{},
		&ReviewModel{},
		&OrderModel{},
		&OrderItemModel{},
		&DeliveryModel{},
	)
}

// =========================================
// GORM数据模型
// 设计说明：
// 1. 这里是infrastructure层的存储模型（带GORM tag），
//    domain层实体是干净的Go结构体，Repository负责两者转换
// 2. 金额统一int64存kobo；枚举统一varchar存字符串值
// =========================================

// AddressColumns 地址字段（嵌入各表，列前缀由embeddedPrefix指定）
type AddressColumns struct {
	Street  string `gorm:"size:200"`
	City    string `gorm:"size:100"`
	State   string `gorm:"size:100"`
	Country string `gorm:"size:100"`
	Zip     string `gorm:"size:20"`
}

// UserModel 用户表
type UserModel struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"uniqueIndex;size:100;not null"`
	Password     string  `gorm:"size:255;not null;comment:bcrypt哈希"`
	FirstName    string  `gorm:"size:50;not null"`
	LastName     string  `gorm:"size:50;not null"`
	MatricNumber *string `gorm:"uniqueIndex;size:30;comment:学号(可空,非空时唯一)"`
	DepartmentID *uint   `gorm:"index"`
	Level        string  `gorm:"size:20"`
	Phone        string  `gorm:"size:30"`
	Address      AddressColumns `gorm:"embedded;embeddedPrefix:addr_"`
	Role         string  `gorm:"size:20;not null;default:student;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string { return "users" }

// DepartmentModel 院系表
type DepartmentModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:100;not null"`
	Code      string `gorm:"uniqueIndex;size:20;not null"`
	Faculty   string `gorm:"size:100"`
	CreatedAt time.Time
}

func (DepartmentModel) TableName() string { return "departments" }

// CourseModel 课程表
type CourseModel struct {
	ID           uint   `gorm:"primaryKey"`
	Code         string `gorm:"uniqueIndex;size:20;not null"`
	Title        string `gorm:"size:200;not null"`
	DepartmentID *uint  `gorm:"index"`
	Level        string `gorm:"size:20"`
	Semester     string `gorm:"size:20"`
	CreatedAt    time.Time
}

func (CourseModel) TableName() string { return "courses" }

// BookModel 图书表
// 1. ISBN可空，非空时唯一（对应稀疏唯一索引语义）
// 2. IsActive软删除标记；目录查询过滤，主键查询不过滤
// 3. StockQuantity是全系统唯一的共享可变计数器，
//    只允许通过条件原子UPDATE修改（见book_repo.go）
type BookModel struct {
	ID                uint    `gorm:"primaryKey"`
	Title             string  `gorm:"index:idx_search;size:200;not null"`
	Author            string  `gorm:"index:idx_search;size:100;not null"`
	ISBN              *string `gorm:"uniqueIndex;size:20"`
	Description       string  `gorm:"type:text"`
	CoverImageURL     string  `gorm:"size:500"`
	Price             int64   `gorm:"not null;comment:价格(kobo)"`
	StockQuantity     int     `gorm:"not null;default:0"`
	LowStockThreshold int     `gorm:"not null;default:10"`
	Publisher         string  `gorm:"size:100"`
	PublicationYear   int
	Edition           string `gorm:"size:50"`
	Category          string `gorm:"index;size:50"`
	IsEbook           bool   `gorm:"not null;default:false"`
	EbookURL          string `gorm:"size:500"`
	IsActive          bool   `gorm:"not null;default:true;index"`
	Courses           []BookCourseModel `gorm:"foreignKey:BookID"`
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

func (BookModel) TableName() string { return "books" }

// BookCourseModel 图书-课程关联表
type BookCourseModel struct {
	ID         uint `gorm:"primaryKey"`
	BookID     uint `gorm:"index;uniqueIndex:uk_book_course;not null"`
	CourseID   uint `gorm:"index;uniqueIndex:uk_book_course;not null"`
	IsRequired bool `gorm:"not null;default:true"`
}

func (BookCourseModel) TableName() string { return "book_courses" }

// CartModel 购物车表（每个用户一辆）
type CartModel struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"uniqueIndex;not null"`
	Items     []CartItemModel `gorm:"foreignKey:CartID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartModel) TableName() string { return "carts" }

// CartItemModel 购物车行项表
type CartItemModel struct {
	ID       uint `gorm:"primaryKey"`
	CartID   uint `gorm:"index;uniqueIndex:uk_cart_book;not null"`
	BookID   uint `gorm:"uniqueIndex:uk_cart_book;not null"`
	Quantity int  `gorm:"not null"`
}

func (CartItemModel) TableName() string { return "cart_items" }

// WishlistModel 心愿单表（user+book唯一）
type WishlistModel struct {
	ID                  uint `gorm:"primaryKey"`
	UserID              uint `gorm:"index;uniqueIndex:uk_user_book_wish;not null"`
	BookID              uint `gorm:"uniqueIndex:uk_user_book_wish;not null"`
	NotifyWhenAvailable bool `gorm:"not null;default:false"`
	CreatedAt           time.Time
}

func (WishlistModel) TableName() string { return "wishlists" }

// ReviewModel 书评表（user+book唯一）
type ReviewModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;uniqueIndex:uk_user_book_review;not null"`
	BookID    uint   `gorm:"index;uniqueIndex:uk_user_book_review;not null"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ReviewModel) TableName() string { return "reviews" }

// OrderModel 订单表
// 1. OrderNumber唯一索引是订单号防撞的最终保证
// 2. PaymentReference加索引：Webhook按引用反查订单
// 3. 金额列创建后不再更新（行项快照同理）
type OrderModel struct {
	ID               uint   `gorm:"primaryKey"`
	OrderNumber      string `gorm:"uniqueIndex;size:32;not null"`
	UserID           uint   `gorm:"index;not null"`
	Status           string `gorm:"size:20;not null;default:pending;index"`
	PaymentStatus    string `gorm:"size:20;not null;default:pending;index"`
	PaymentMethod    string `gorm:"size:30"`
	PaymentReference string `gorm:"index;size:100"`
	DeliveryType     string `gorm:"size:10;not null"`
	DeliveryAddress  AddressColumns `gorm:"embedded;embeddedPrefix:delivery_"`
	DeliveryFee      int64  `gorm:"not null;default:0"`
	TotalAmount      int64  `gorm:"not null"`
	Notes            string `gorm:"type:text"`
	Items            []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time        `gorm:"index"`
	UpdatedAt        time.Time
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel 订单行项表（下单时价格快照）
type OrderItemModel struct {
	ID        uint  `gorm:"primaryKey"`
	OrderID   uint  `gorm:"index;not null"`
	BookID    uint  `gorm:"index;not null"`
	Quantity  int   `gorm:"not null"`
	UnitPrice int64 `gorm:"not null;comment:下单时单价(kobo)"`
	Subtotal  int64 `gorm:"not null"`
}

func (OrderItemModel) TableName() string { return "order_items" }

// DeliveryModel 配送单表
type DeliveryModel struct {
	ID           uint   `gorm:"primaryKey"`
	OrderID      uint   `gorm:"index;not null"`
	AgentID      *uint  `gorm:"index"`
	Status       string `gorm:"size:20;not null;default:pending;index"`
	PickupTime   *time.Time
	DeliveryTime *time.Time
	Notes        string `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (DeliveryModel) TableName() string { return "deliveries" }
