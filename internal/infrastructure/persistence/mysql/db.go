package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（生产环境应使用版本化迁移脚本）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
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

	log.Println("✓ 数据库连接成功")

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&GenreModel{},
		&BookModel{},
		&BookDetailModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&PaymentModel{},
		&ReviewModel{},
		&ReviewEvaluationModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID            uint           `gorm:"primaryKey"`
	Email         string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password      string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Nickname      string         `gorm:"size:50;not null;comment:昵称"`
	Address       string         `gorm:"size:500;comment:默认收货地址"`
	Role          string         `gorm:"size:20;not null;default:user;comment:角色(user/admin)"`
	EmailVerified bool           `gorm:"default:false;comment:邮箱是否已验证"`
	Version       int            `gorm:"default:1;comment:乐观锁版本号"`
	CreatedAt     time.Time      `gorm:"comment:创建时间"`
	UpdatedAt     time.Time      `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// GenreModel GORM分类模型
type GenreModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:50;not null;comment:分类名称"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (GenreModel) TableName() string {
	return "genres"
}

// BookModel GORM图书模型
// 设计说明:
// 1. ISBN使用指针类型:空白ISBN规范化为NULL,
//    MySQL唯一索引允许多个NULL,两本无ISBN的书不冲突
// 2. 价格库存等详情拆在book_details表(共享主键1:1)
// 3. 与分类多对多,关联表book_genres
type BookModel struct {
	ID        uint             `gorm:"primaryKey"`
	ISBN      *string          `gorm:"uniqueIndex;size:20;comment:ISBN号(可空)"`
	Title     string           `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author    string           `gorm:"index:idx_search;size:100;not null;comment:作者"`
	Version   int              `gorm:"default:1;comment:乐观锁版本号"`
	Detail    *BookDetailModel `gorm:"foreignKey:BookID"`
	Genres    []GenreModel     `gorm:"many2many:book_genres;joinForeignKey:BookID;joinReferences:GenreID"`
	CreatedAt time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time        `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt   `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// BookDetailModel GORM图书详情模型(与books共享主键)
// 价格使用int64存储最小货币单位(đồng),避免浮点精度问题
type BookDetailModel struct {
	BookID      uint       `gorm:"primaryKey;comment:图书ID"`
	Publisher   string     `gorm:"size:100;comment:出版社"`
	PublishDate *time.Time `gorm:"comment:出版日期"`
	Price       int64      `gorm:"index;not null;comment:价格(đồng)"`
	Stock       int        `gorm:"not null;default:0;comment:库存数量"`
	CoverURL    string     `gorm:"size:500;comment:封面图片URL"`
	Description string     `gorm:"type:text;comment:图书描述"`
	UpdatedAt   time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookDetailModel) TableName() string {
	return "book_details"
}

// CartModel GORM购物车模型(与用户1:1,首次访问惰性创建)
type CartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null;comment:用户ID"`
	Version   int             `gorm:"default:1;comment:乐观锁版本号"`
	Items     []CartItemModel `gorm:"foreignKey:CartID"`
	CreatedAt time.Time       `gorm:"comment:创建时间"`
	UpdatedAt time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel GORM购物车条目模型
// (cart_id, book_id)唯一:同一本书在车内只有一条,加购累加数量
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_book;not null;comment:购物车ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_cart_book;index;not null;comment:图书ID"`
	Quantity  int       `gorm:"not null;comment:数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel GORM订单模型
// Status使用tinyint存储(节省空间,便于索引)
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	UserID          uint             `gorm:"index;not null;comment:买家用户ID"`
	Total           int64            `gorm:"not null;comment:订单总金额(đồng)"`
	Status          int              `gorm:"index;type:tinyint;default:1;comment:订单状态(1待处理2已发货3已送达4已取消)"`
	ShippingAddress string           `gorm:"size:500;not null;comment:收货地址快照"`
	Version         int              `gorm:"default:1;comment:乐观锁版本号"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
	Payment         *PaymentModel    `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time        `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// 记录下单时的价格与书名快照,与图书当前数据解耦
type OrderItemModel struct {
	ID              uint   `gorm:"primaryKey"`
	OrderID         uint   `gorm:"index;not null;comment:订单ID"`
	BookID          uint   `gorm:"index;not null;comment:图书ID"`
	BookTitle       string `gorm:"size:200;not null;comment:下单时书名快照"`
	Quantity        int    `gorm:"not null;comment:购买数量"`
	PriceAtPurchase int64  `gorm:"not null;comment:下单时单价(đồng)"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}

// PaymentModel GORM支付单模型(与订单1:1)
type PaymentModel struct {
	ID              uint       `gorm:"primaryKey"`
	OrderID         uint       `gorm:"uniqueIndex;not null;comment:订单ID"`
	Method          int        `gorm:"type:tinyint;not null;comment:支付方式(1货到付款2二维码)"`
	Status          int        `gorm:"type:tinyint;default:1;comment:支付状态(1待支付2已支付3已失效)"`
	TransactionCode string     `gorm:"uniqueIndex;size:32;not null;comment:交易码"`
	PaidAt          *time.Time `gorm:"comment:支付时间"`
	CreatedAt       time.Time  `gorm:"comment:创建时间"`
	UpdatedAt       time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (PaymentModel) TableName() string {
	return "payments"
}

// ReviewModel GORM评价模型
// (user_id, book_id)唯一:每人每书一条评价
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_book;not null;comment:用户ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_user_book;index;not null;comment:图书ID"`
	Rating    int       `gorm:"type:tinyint;not null;comment:评分(1-5)"`
	Comment   string    `gorm:"type:text;comment:评价内容"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}

// ReviewEvaluationModel GORM评价表态模型
// (user_id, review_id)唯一:开关记录,不是计数器
type ReviewEvaluationModel struct {
	ID        uint      `gorm:"primaryKey"`
	ReviewID  uint      `gorm:"uniqueIndex:idx_user_review;index;not null;comment:评价ID"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_review;not null;comment:用户ID"`
	IsLike    bool      `gorm:"not null;comment:true赞false踩"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ReviewEvaluationModel) TableName() string {
	return "review_evaluations"
}
