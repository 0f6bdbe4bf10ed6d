package genre

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/genre"
)

// ManageGenresUseCase 分类管理用例（后台管理）
// 分类是小而稳定的字典数据，增删改查合并为一个用例
type ManageGenresUseCase struct {
	genreRepo genre.Repository
}

// NewManageGenresUseCase 创建分类管理用例
func NewManageGenresUseCase(genreRepo genre.Repository) *ManageGenresUseCase {
	return &ManageGenresUseCase{genreRepo: genreRepo}
}

// GenreInfo 分类DTO
type GenreInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// List 查询全部分类
func (uc *ManageGenresUseCase) List(ctx context.Context) ([]GenreInfo, error) {
	genres, err := uc.genreRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]GenreInfo, 0, len(genres))
	for _, g := range genres {
		infos = append(infos, GenreInfo{ID: g.ID, Name: g.Name})
	}
	return infos, nil
}

// Create 新建分类（名称重复返回ErrGenreDuplicate）
func (uc *ManageGenresUseCase) Create(ctx context.Context, name string) (*GenreInfo, error) {
	g, err := genre.NewGenre(name)
	if err != nil {
		return nil, err
	}
	if err := uc.genreRepo.Create(ctx, g); err != nil {
		return nil, err
	}
	return &GenreInfo{ID: g.ID, Name: g.Name}, nil
}

// Rename 重命名分类
func (uc *ManageGenresUseCase) Rename(ctx context.Context, id uint, name string) error {
	g, err := uc.genreRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := g.Rename(name); err != nil {
		return err
	}
	return uc.genreRepo.Update(ctx, g)
}

// Delete 删除分类（仅解除图书关联，不影响图书本身）
func (uc *ManageGenresUseCase) Delete(ctx context.Context, id uint) error {
	if _, err := uc.genreRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.genreRepo.Delete(ctx, id)
}
