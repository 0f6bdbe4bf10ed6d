package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appadmin "github.com/xiebiao/bookshop/internal/application/admin"
	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	appgenre "github.com/xiebiao/bookshop/internal/application/genre"
	apporder "github.com/xiebiao/bookshop/internal/application/order"
	appreview "github.com/xiebiao/bookshop/internal/application/review"
	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/mail"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
	"github.com/xiebiao/bookshop/pkg/response"
)

// @title           BookShop API
// @version         1.0
// @description     网上书店服务端API
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化基础设施
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 邮件服务（worker池异步发送）
	mailer := mail.NewMailer(mail.NewSMTPSender(cfg.Mail), cfg.Mail)
	defer mailer.Shutdown()

	// 消息队列（可选，未启用时订单事件降级为仅记日志）
	var publisher *mq.Publisher
	var consumer *mq.Consumer
	if cfg.MQ.Enabled {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化MQ发布者失败: %v", err)
		}
		defer publisher.Close()

		consumer, err = mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, "topic", cfg.MQ.Queue,
			[]string{"order.*"})
		if err != nil {
			log.Fatalf("初始化MQ消费者失败: %v", err)
		}
		defer consumer.Close()
	}

	// 4. 依赖注入（手动组装）
	// Repository ← Service ← UseCase ← Handler

	// 仓储层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	genreRepo := mysql.NewGenreRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	reportRepo := mysql.NewReportRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	tokenStore := redis.NewTokenStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService, tokenStore, mailer)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(jwtManager, sessionStore)
	profileUseCase := appuser.NewProfileUseCase(userRepo)
	verifyEmailUseCase := appuser.NewVerifyEmailUseCase(userRepo, tokenStore)
	resendUseCase := appuser.NewResendVerificationUseCase(userRepo, tokenStore, mailer)
	requestResetUseCase := appuser.NewRequestPasswordResetUseCase(userRepo, tokenStore, mailer)
	confirmResetUseCase := appuser.NewConfirmPasswordResetUseCase(userRepo, userService, tokenStore, sessionStore)

	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	publishBookUseCase := appbook.NewPublishBookUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService)
	manageGenresUseCase := appgenre.NewManageGenresUseCase(genreRepo)

	getCartUseCase := appcart.NewGetCartUseCase(cartRepo)
	addItemUseCase := appcart.NewAddItemUseCase(cartRepo, bookRepo)
	updateItemUseCase := appcart.NewUpdateItemUseCase(cartRepo, bookRepo)
	removeItemUseCase := appcart.NewRemoveItemUseCase(cartRepo)
	itemCountUseCase := appcart.NewItemCountUseCase(cartRepo)

	checkoutUseCase := apporder.NewCheckoutUseCase(cartRepo, bookRepo, orderRepo, userRepo, txManager, publisher)
	listOrdersUseCase := apporder.NewListOrdersUseCase(orderRepo)
	getOrderUseCase := apporder.NewGetOrderUseCase(orderRepo)
	cancelOrderUseCase := apporder.NewCancelOrderUseCase(orderRepo, bookRepo, userRepo, txManager, publisher)
	updateStatusUseCase := apporder.NewUpdateStatusUseCase(orderRepo, bookRepo, txManager)

	listReviewsUseCase := appreview.NewListReviewsUseCase(reviewRepo)
	createReviewUseCase := appreview.NewCreateReviewUseCase(reviewRepo, bookRepo)
	updateReviewUseCase := appreview.NewUpdateReviewUseCase(reviewRepo)
	evaluateReviewUseCase := appreview.NewEvaluateReviewUseCase(reviewRepo)
	deleteReviewUseCase := appreview.NewDeleteReviewUseCase(reviewRepo)

	dashboardUseCase := appadmin.NewDashboardUseCase(reportRepo)
	manageUsersUseCase := appadmin.NewManageUsersUseCase(userRepo)

	// 接口层
	userHandler := handler.NewUserHandler(
		registerUseCase, loginUseCase, logoutUseCase, profileUseCase,
		verifyEmailUseCase, resendUseCase, requestResetUseCase, confirmResetUseCase,
	)
	bookHandler := handler.NewBookHandler(
		listBooksUseCase, getBookUseCase, publishBookUseCase, updateBookUseCase, deleteBookUseCase,
	)
	genreHandler := handler.NewGenreHandler(manageGenresUseCase)
	cartHandler := handler.NewCartHandler(
		getCartUseCase, addItemUseCase, updateItemUseCase, removeItemUseCase, itemCountUseCase,
	)
	orderHandler := handler.NewOrderHandler(
		checkoutUseCase, listOrdersUseCase, getOrderUseCase, cancelOrderUseCase, updateStatusUseCase,
	)
	reviewHandler := handler.NewReviewHandler(
		listReviewsUseCase, createReviewUseCase, updateReviewUseCase, evaluateReviewUseCase, deleteReviewUseCase,
	)
	adminHandler := handler.NewAdminHandler(dashboardUseCase, manageUsersUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 5. 启动MQ消费者（订单事件 → 通知邮件）
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if consumer != nil {
		go func() {
			if err := consumer.Consume(consumerCtx, mailer.HandleOrderEvent); err != nil {
				log.Printf("MQ消费者退出: %v", err)
			}
		}()
	}

	// 6. 初始化Gin引擎并注册路由
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	registerRoutes(r, userHandler, bookHandler, genreHandler, cartHandler,
		orderHandler, reviewHandler, adminHandler, authMiddleware)

	// 7. 启动HTTP服务（支持优雅停机）
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("服务启动成功，监听 %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("收到退出信号，开始优雅停机...")

	stopConsumer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP服务停机异常: %v", err)
	}
	log.Println("服务已退出")
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	genreHandler *handler.GenreHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	reviewHandler *handler.ReviewHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查与可观测性
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.GET("/verify-email", userHandler.VerifyEmail)
			users.POST("/password-reset", userHandler.RequestPasswordReset)
			users.POST("/password-reset/confirm", userHandler.ConfirmPasswordReset)

			authed := users.Group("")
			authed.Use(authMiddleware.RequireAuth())
			{
				authed.POST("/logout", userHandler.Logout)
				authed.GET("/profile", userHandler.GetProfile)
				authed.PUT("/profile", userHandler.UpdateProfile)
				authed.POST("/verify-email/resend", userHandler.ResendVerification)
			}
		}

		// 图书与分类（公开浏览）
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			// 评价列表公开，登录用户附带自己的表态
			books.GET("/:id/reviews", authMiddleware.OptionalAuth(), reviewHandler.ListReviews)
			books.POST("/:id/reviews", authMiddleware.RequireAuth(), reviewHandler.CreateReview)
		}
		v1.GET("/genres", genreHandler.ListGenres)

		// 评价表态与删除
		reviews := v1.Group("/reviews")
		reviews.Use(authMiddleware.RequireAuth())
		{
			reviews.PUT("/:id", reviewHandler.UpdateReview)
			reviews.POST("/:id/evaluate", reviewHandler.EvaluateReview)
			reviews.DELETE("/:id", reviewHandler.DeleteReview)
		}

		// 购物车（需要登录）
		cart := v1.Group("/cart")
		cart.Use(authMiddleware.RequireAuth())
		{
			cart.GET("", cartHandler.GetCart)
			cart.GET("/count", cartHandler.ItemCount)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:id", cartHandler.UpdateItem)
			cart.DELETE("/items/:id", cartHandler.RemoveItem)
		}

		// 订单（需要登录）
		orders := v1.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			orders.POST("/checkout", orderHandler.Checkout)
			orders.GET("", orderHandler.ListMyOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/:id/cancel", orderHandler.CancelOrder)
		}

		// 后台管理（需要管理员角色）
		admin := v1.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			admin.GET("/dashboard", adminHandler.Dashboard)

			admin.GET("/users", adminHandler.ListUsers)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)

			admin.POST("/books", bookHandler.PublishBook)
			admin.PUT("/books/:id", bookHandler.UpdateBook)
			admin.DELETE("/books/:id", bookHandler.DeleteBook)

			admin.POST("/genres", genreHandler.CreateGenre)
			admin.PUT("/genres/:id", genreHandler.RenameGenre)
			admin.DELETE("/genres/:id", genreHandler.DeleteGenre)

			admin.GET("/orders", orderHandler.ListAllOrders)
			admin.GET("/orders/:id", orderHandler.GetOrderAdmin)
			admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
		}
	}
}
