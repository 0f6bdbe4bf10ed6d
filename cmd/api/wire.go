//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// 使用方式：
//
//	wire gen ./cmd/api
//
// 生成wire_gen.go后，main.go可改用InitializeApp()组装依赖。
// 当前main.go仍为手动注入，两者保持同一张依赖图。

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

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
	"github.com/xiebiao/bookshop/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
	providePublisher,
	provideMailer,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewGenreRepository,
	mysql.NewCartRepository,
	mysql.NewOrderRepository,
	mysql.NewReviewRepository,
	mysql.NewReportRepository,
	mysql.NewTxManager,
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewProfileUseCase,
	appuser.NewVerifyEmailUseCase,
	appuser.NewResendVerificationUseCase,
	appuser.NewRequestPasswordResetUseCase,
	appuser.NewConfirmPasswordResetUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewPublishBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appgenre.NewManageGenresUseCase,
	appcart.NewGetCartUseCase,
	appcart.NewAddItemUseCase,
	appcart.NewUpdateItemUseCase,
	appcart.NewRemoveItemUseCase,
	appcart.NewItemCountUseCase,
	apporder.NewCheckoutUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewCancelOrderUseCase,
	apporder.NewUpdateStatusUseCase,
	appreview.NewListReviewsUseCase,
	appreview.NewCreateReviewUseCase,
	appreview.NewUpdateReviewUseCase,
	appreview.NewEvaluateReviewUseCase,
	appreview.NewDeleteReviewUseCase,
	appadmin.NewDashboardUseCase,
	appadmin.NewManageUsersUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideTokenStore,
	wire.Bind(new(appuser.TokenStore), new(*redis.TokenStore)),
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(appuser.MailSender), new(*mail.Mailer)),
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewGenreHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	handler.NewReviewHandler,
	handler.NewAdminHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建会话存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideTokenStore 从Redis客户端创建令牌存储
func provideTokenStore(client *goredis.Client) *redis.TokenStore {
	return redis.NewTokenStore(client)
}

// providePublisher 创建MQ发布者，未启用时返回nil（用例内降级为仅记日志）
func providePublisher(cfg *config.Config) (*mq.Publisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideMailer 创建异步邮件服务
func provideMailer(cfg *config.Config) *mail.Mailer {
	return mail.NewMailer(mail.NewSMTPSender(cfg.Mail), cfg.Mail)
}

// provideGinEngine 创建Gin引擎并注册全部路由
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	genreHandler *handler.GenreHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	reviewHandler *handler.ReviewHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())

	registerRoutes(r, userHandler, bookHandler, genreHandler, cartHandler,
		orderHandler, reviewHandler, adminHandler, authMiddleware)

	return r
}

// InitializeApp 组装整个应用
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
