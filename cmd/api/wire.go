//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成wire_gen.go；
// main.go中的手动组装与这里的Provider图等价
package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/unibookshop/unibookshop/internal/application/book"
	appcart "github.com/unibookshop/unibookshop/internal/application/cart"
	"github.com/unibookshop/unibookshop/internal/application/catalog"
	appdelivery "github.com/unibookshop/unibookshop/internal/application/delivery"
	apporder "github.com/unibookshop/unibookshop/internal/application/order"
	apppayment "github.com/unibookshop/unibookshop/internal/application/payment"
	appreview "github.com/unibookshop/unibookshop/internal/application/review"
	appuser "github.com/unibookshop/unibookshop/internal/application/user"
	appwishlist "github.com/unibookshop/unibookshop/internal/application/wishlist"
	"github.com/unibookshop/unibookshop/internal/domain/book"
	domaindelivery "github.com/unibookshop/unibookshop/internal/domain/delivery"
	domainorder "github.com/unibookshop/unibookshop/internal/domain/order"
	"github.com/unibookshop/unibookshop/internal/domain/user"
	"github.com/unibookshop/unibookshop/internal/infrastructure/config"
	"github.com/unibookshop/unibookshop/internal/infrastructure/persistence/mysql"
	"github.com/unibookshop/unibookshop/internal/infrastructure/persistence/redis"
	"github.com/unibookshop/unibookshop/internal/interface/http/handler"
	"github.com/unibookshop/unibookshop/internal/interface/http/middleware"
	"github.com/unibookshop/unibookshop/pkg/jwt"
)

// infrastructureSet 基础设施层：配置、MySQL、Redis
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewCourseRepository,
	mysql.NewDepartmentRepository,
	mysql.NewCartRepository,
	mysql.NewWishlistRepository,
	mysql.NewReviewRepository,
	mysql.NewOrderRepository,
	mysql.NewDeliveryRepository,
	mysql.NewTxManager,
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	provideLogoutUseCase,
	appuser.NewRefreshUseCase,
	appuser.NewProfileUseCase,
	appbook.NewQueryBookUseCase,
	appbook.NewManageBookUseCase,
	catalog.NewCourseUseCase,
	catalog.NewDepartmentUseCase,
	appcart.NewCartUseCase,
	appwishlist.NewWishlistUseCase,
	appreview.NewReviewUseCase,
	providePlaceOrderUseCase,
	apporder.NewOrderStatusUseCase,
	apporder.NewQueryOrderUseCase,
	provideWebhookUseCase,
	appdelivery.NewDeliveryUseCase,
)

// middlewareSet 中间件
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideBookCache,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewCatalogHandler,
	handler.NewCartHandler,
	handler.NewWishlistHandler,
	handler.NewReviewHandler,
	handler.NewOrderHandler,
	handler.NewPaymentHandler,
	handler.NewDeliveryHandler,
)

// 以下Provider需要从Config拆出标量参数，Wire无法自动提取

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

func provideBookCache(client *goredis.Client) *redis.BookCache {
	return redis.NewBookCache(client, 10*time.Minute)
}

func provideLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	cfg *config.Config,
) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(userService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
}

func provideLogoutUseCase(sessionStore *redis.SessionStore, cfg *config.Config) *appuser.LogoutUseCase {
	return appuser.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)
}

func providePlaceOrderUseCase(
	orderRepo domainorder.Repository,
	bookRepo book.Repository,
	deliveryRepo domaindelivery.Repository,
	txManager apporder.TxManager,
	cfg *config.Config,
) *apporder.PlaceOrderUseCase {
	return apporder.NewPlaceOrderUseCase(orderRepo, bookRepo, deliveryRepo, txManager, cfg.Order.DeliveryFee)
}

func provideWebhookUseCase(orderRepo domainorder.Repository, cfg *config.Config) *apppayment.WebhookUseCase {
	return apppayment.NewWebhookUseCase(orderRepo, cfg.Paystack.SecretKey)
}

// provideGinEngine 组装Gin引擎并注册全部路由
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	wishlistHandler *handler.WishlistHandler,
	reviewHandler *handler.ReviewHandler,
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
	deliveryHandler *handler.DeliveryHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())

	registerRoutes(r, routeDeps{
		user:     userHandler,
		book:     bookHandler,
		catalog:  catalogHandler,
		cart:     cartHandler,
		wishlist: wishlistHandler,
		review:   reviewHandler,
		order:    orderHandler,
		payment:  paymentHandler,
		delivery: deliveryHandler,
		auth:     authMiddleware,
	})
	return r
}

// InitializeApp Wire注入器入口
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
