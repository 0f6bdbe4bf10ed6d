package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/genre"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// genreRepository 分类仓储实现(MySQL)
type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建分类仓储
func NewGenreRepository(db *gorm.DB) genre.Repository {
	return &genreRepository{db: db}
}

// Create 创建分类
func (r *genreRepository) Create(ctx context.Context, g *genre.Genre) error {
	model := &GenreModel{Name: g.Name}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return genre.ErrGenreDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}

	g.ID = model.ID
	g.CreatedAt = model.CreatedAt
	g.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找分类
func (r *genreRepository) FindByID(ctx context.Context, id uint) (*genre.Genre, error) {
	var model GenreModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toGenreEntity(&model), nil
}

// List 查询全部分类(按名称排序,字典数据不分页)
func (r *genreRepository) List(ctx context.Context) ([]*genre.Genre, error) {
	var models []GenreModel
	if err := getDB(ctx, r.db).Order("name ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询分类列表失败")
	}

	genres := make([]*genre.Genre, len(models))
	for i := range models {
		genres[i] = toGenreEntity(&models[i])
	}
	return genres, nil
}

// Update 更新分类
func (r *genreRepository) Update(ctx context.Context, g *genre.Genre) error {
	result := getDB(ctx, r.db).Model(&GenreModel{}).
		Where("id = ?", g.ID).
		Update("name", g.Name)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return genre.ErrGenreDuplicate
		}
		return apperrors.Wrap(result.Error, "更新分类失败")
	}
	if result.RowsAffected == 0 {
		return genre.ErrGenreNotFound
	}
	return nil
}

// Delete 删除分类(同时清除图书关联)
func (r *genreRepository) Delete(ctx context.Context, id uint) error {
	db := getDB(ctx, r.db)

	if err := db.Exec("DELETE FROM book_genres WHERE genre_id = ?", id).Error; err != nil {
		return apperrors.Wrap(err, "清除分类关联失败")
	}

	result := db.Delete(&GenreModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return genre.ErrGenreNotFound
	}
	return nil
}

// toGenreEntity GORM模型 → 领域实体
func toGenreEntity(model *GenreModel) *genre.Genre {
	return &genre.Genre{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
