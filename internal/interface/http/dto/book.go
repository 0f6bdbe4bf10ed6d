package dto

// PublishBookRequest HTTP上架请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值或长度范围校验
type PublishBookRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"Đắc Nhân Tâm"`
	Author      string `json:"author" binding:"required,max=100" example:"Dale Carnegie"`
	ISBN        string `json:"isbn" binding:"omitempty,max=20" example:"9786045427756"`
	Publisher   string `json:"publisher" binding:"omitempty,max=100" example:"NXB Tổng hợp"`
	PublishDate string `json:"publish_date" binding:"omitempty,len=10" example:"2016-01-01"` // YYYY-MM-DD
	Price       int64  `json:"price" binding:"required,min=1" example:"86000"`               // 价格（đồng）
	Stock       int    `json:"stock" binding:"min=0" example:"100"`
	CoverURL    string `json:"cover_url" binding:"omitempty,url,max=500" example:"https://example.com/cover.jpg"`
	Description string `json:"description" binding:"max=5000"`
	GenreIDs    []uint `json:"genre_ids" binding:"omitempty,max=10"`
}

// UpdateBookRequest HTTP修改请求
// 指针字段为null表示不修改
type UpdateBookRequest struct {
	Title       string  `json:"title" binding:"omitempty,max=200"`
	Author      string  `json:"author" binding:"omitempty,max=100"`
	ISBN        *string `json:"isbn" binding:"omitempty,max=20"`
	Publisher   string  `json:"publisher" binding:"omitempty,max=100"`
	PublishDate string  `json:"publish_date" binding:"omitempty,len=10"`
	Price       *int64  `json:"price" binding:"omitempty,min=1"`
	Stock       *int    `json:"stock" binding:"omitempty,min=0"`
	CoverURL    string  `json:"cover_url" binding:"omitempty,url,max=500"`
	Description string  `json:"description" binding:"max=5000"`
	GenreIDs    []uint  `json:"genre_ids" binding:"omitempty,max=10"`
}

// ListBooksRequest HTTP图书列表请求（query参数）
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Doraemon"`
	GenreID  uint   `form:"genre_id" binding:"omitempty"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=newest price_asc price_desc" example:"newest"`
}

// GenreRequest HTTP分类创建/改名请求
type GenreRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50" example:"Văn học"`
}
