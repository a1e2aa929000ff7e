package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/unibookshop/unibookshop/docs"
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
	"github.com/unibookshop/unibookshop/internal/domain/user"
	"github.com/unibookshop/unibookshop/internal/infrastructure/config"
	"github.com/unibookshop/unibookshop/internal/infrastructure/persistence/mysql"
	"github.com/unibookshop/unibookshop/internal/infrastructure/persistence/redis"
	"github.com/unibookshop/unibookshop/internal/interface/http/handler"
	"github.com/unibookshop/unibookshop/internal/interface/http/middleware"
	"github.com/unibookshop/unibookshop/pkg/jwt"
	"github.com/unibookshop/unibookshop/pkg/logger"
	"github.com/unibookshop/unibookshop/pkg/response"
)

// @title           UniBookshop API
// @version         1.0
// @description     校园书店后端：图书目录、购物车、心愿单、书评、订单、配送与Paystack支付对账
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

// bookCacheTTL 图书详情缓存TTL
const bookCacheTTL = 10 * time.Minute

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	logger.Setup(cfg.Log.Level, cfg.Log.Format)
	logrus.WithFields(logrus.Fields{
		"port": cfg.Server.Port,
		"mode": cfg.Server.Mode,
	}).Info("配置加载成功")

	// 3. 初始化存储
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 4. 依赖注入（手动组装；wire.go提供等价的生成式注入）
	// 依赖链：Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	courseRepo := mysql.NewCourseRepository(db)
	departmentRepo := mysql.NewDepartmentRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	wishlistRepo := mysql.NewWishlistRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	deliveryRepo := mysql.NewDeliveryRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	bookCache := redis.NewBookCache(redisClient, bookCacheTTL)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore, cfg.JWT.RefreshTokenExpire)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore, cfg.JWT.AccessTokenExpire)
	refreshUseCase := appuser.NewRefreshUseCase(jwtManager)
	profileUseCase := appuser.NewProfileUseCase(userRepo)
	queryBookUseCase := appbook.NewQueryBookUseCase(bookService, bookCache)
	manageBookUseCase := appbook.NewManageBookUseCase(bookService, bookCache)
	courseUseCase := catalog.NewCourseUseCase(courseRepo)
	departmentUseCase := catalog.NewDepartmentUseCase(departmentRepo)
	cartUseCase := appcart.NewCartUseCase(cartRepo, bookRepo)
	wishlistUseCase := appwishlist.NewWishlistUseCase(wishlistRepo, bookRepo)
	reviewUseCase := appreview.NewReviewUseCase(reviewRepo, bookRepo)
	placeOrderUseCase := apporder.NewPlaceOrderUseCase(orderRepo, bookRepo, deliveryRepo, txManager, cfg.Order.DeliveryFee)
	orderStatusUseCase := apporder.NewOrderStatusUseCase(orderRepo, bookRepo, txManager)
	queryOrderUseCase := apporder.NewQueryOrderUseCase(orderRepo, deliveryRepo)
	webhookUseCase := apppayment.NewWebhookUseCase(orderRepo, cfg.Paystack.SecretKey)
	deliveryUseCase := appdelivery.NewDeliveryUseCase(deliveryRepo, userRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, refreshUseCase, profileUseCase)
	bookHandler := handler.NewBookHandler(queryBookUseCase, manageBookUseCase)
	catalogHandler := handler.NewCatalogHandler(courseUseCase, departmentUseCase)
	cartHandler := handler.NewCartHandler(cartUseCase)
	wishlistHandler := handler.NewWishlistHandler(wishlistUseCase)
	reviewHandler := handler.NewReviewHandler(reviewUseCase)
	orderHandler := handler.NewOrderHandler(placeOrderUseCase, orderStatusUseCase, queryOrderUseCase)
	paymentHandler := handler.NewPaymentHandler(webhookUseCase)
	deliveryHandler := handler.NewDeliveryHandler(deliveryUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 5. Gin引擎
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

	// 6. 启动
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logrus.WithField("addr", addr).Info("服务启动")
	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// routeDeps 路由注册所需的全部处理器
type routeDeps struct {
	user     *handler.UserHandler
	book     *handler.BookHandler
	catalog  *handler.CatalogHandler
	cart     *handler.CartHandler
	wishlist *handler.WishlistHandler
	review   *handler.ReviewHandler
	order    *handler.OrderHandler
	payment  *handler.PaymentHandler
	delivery *handler.DeliveryHandler
	auth     *middleware.AuthMiddleware
}

// registerRoutes 注册全部路由
// 角色门槛统一挂在路由上；Handler内部只处理资源级访问控制
func registerRoutes(r *gin.Engine, d routeDeps) {
	// 健康检查与运维端点
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := d.auth.RequireAuth()
	staffOnly := d.auth.RequireRoles(user.RoleAdmin, user.RoleCashier)
	adminOnly := d.auth.RequireRoles(user.RoleAdmin)
	catalogWriters := d.auth.RequireRoles(user.RoleAdmin, user.RoleInventoryManager)

	v1 := r.Group("/api/v1")
	{
		// 认证
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.user.Register)
			auth.POST("/login", d.user.Login)
			auth.POST("/refresh", d.user.Refresh)
			auth.POST("/logout", requireAuth, d.user.Logout)
		}

		// 个人资料
		users := v1.Group("/users", requireAuth)
		{
			users.GET("/me", d.user.GetProfile)
			users.PUT("/me", d.user.UpdateProfile)
		}

		// 图书：读公开，写按角色
		books := v1.Group("/books")
		{
			books.GET("", d.book.List)
			books.GET("/:id", d.book.Get)
			books.POST("", requireAuth, catalogWriters, d.book.Create)
			books.PUT("/:id", requireAuth, catalogWriters, d.book.Update)
			books.DELETE("/:id", requireAuth, adminOnly, d.book.Deactivate)
		}

		// 课程与院系：读公开，写仅admin
		courses := v1.Group("/courses")
		{
			courses.GET("", d.catalog.ListCourses)
			courses.GET("/:id", d.catalog.GetCourse)
			courses.POST("", requireAuth, adminOnly, d.catalog.CreateCourse)
			courses.PUT("/:id", requireAuth, adminOnly, d.catalog.UpdateCourse)
			courses.DELETE("/:id", requireAuth, adminOnly, d.catalog.DeleteCourse)
		}
		departments := v1.Group("/departments")
		{
			departments.GET("", d.catalog.ListDepartments)
			departments.GET("/:id", d.catalog.GetDepartment)
			departments.POST("", requireAuth, adminOnly, d.catalog.CreateDepartment)
			departments.PUT("/:id", requireAuth, adminOnly, d.catalog.UpdateDepartment)
			departments.DELETE("/:id", requireAuth, adminOnly, d.catalog.DeleteDepartment)
		}

		// 购物车（登录）
		cart := v1.Group("/cart", requireAuth)
		{
			cart.GET("", d.cart.Get)
			cart.DELETE("", d.cart.Clear)
			cart.POST("/items", d.cart.AddItem)
			cart.PUT("/items/:book_id", d.cart.UpdateItem)
			cart.DELETE("/items/:book_id", d.cart.RemoveItem)
		}

		// 心愿单（登录）
		wishlist := v1.Group("/wishlist", requireAuth)
		{
			wishlist.GET("", d.wishlist.List)
			wishlist.POST("", d.wishlist.Add)
			wishlist.DELETE("/:book_id", d.wishlist.Remove)
		}

		// 书评：读公开，写登录
		reviews := v1.Group("/reviews")
		{
			reviews.GET("/book/:book_id", d.review.ListByBook)
			reviews.POST("", requireAuth, d.review.Submit)
		}

		// 订单
		orders := v1.Group("/orders", requireAuth)
		{
			orders.POST("", d.order.Place)
			orders.GET("", staffOnly, d.order.List)
			orders.GET("/me", d.order.ListMine)
			orders.GET("/:id", d.order.Get)
			orders.PUT("/:id/status", staffOnly, d.order.UpdateStatus)
			orders.PUT("/:id/payment", staffOnly, d.order.UpdatePayment)
		}

		// 支付Webhook（无认证，验签代替）
		v1.POST("/payments/webhook", d.payment.Webhook)

		// 配送
		deliveries := v1.Group("/deliveries", requireAuth)
		{
			deliveries.GET("", adminOnly, d.delivery.List)
			deliveries.GET("/me", d.auth.RequireRoles(user.RoleDeliveryAgent), d.delivery.ListMine)
			deliveries.GET("/:id", d.delivery.Get)
			deliveries.PUT("/:id/assign", adminOnly, d.delivery.Assign)
			deliveries.PUT("/:id", d.delivery.Update)
		}
	}
}
