package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pdd_wms_v1/internal/model"
)

// ==================== UserRepository 后台账号仓库 ====================

// UserFilter 账号筛选条件
type UserFilter struct {
	Username    string `form:"username" search:"contains"`
	DisplayName string `form:"displayName" search:"contains"`
	IsActive    *bool  `form:"isActive" search:"exact"`
}

// UserRepository 后台账号仓库接口
type UserRepository interface {
	Create(ctx context.Context, user *model.SysUser) error
	GetByID(ctx context.Context, id string) (*model.SysUser, error)
	GetByUsername(ctx context.Context, username string) (*model.SysUser, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.SysUser, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter UserFilter, pq PageQuery) (*Page[model.SysUser], error)
	Count(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, id string, hashedPassword string) error
}

var userSortable = sortableColumns("created_at", "username")

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建账号仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.SysUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.SysUser, error) {
	var user model.SysUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.SysUser, error) {
	var user model.SysUser
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.SysUser, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	fields, err = NormalizeUpdates(&model.SysUser{}, fields)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		err = r.db.WithContext(ctx).
			Model(&model.SysUser{}).
			Where("id = ?", id).
			Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.SysUser{}).Error
}

func (r *userRepository) List(ctx context.Context, filter UserFilter, pq PageQuery) (*Page[model.SysUser], error) {
	return FindPage[model.SysUser](r.db.WithContext(ctx), MakeCondition(filter), pq, userSortable)
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SysUser{}).Count(&count).Error
	return count, err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id string, hashedPassword string) error {
	return r.db.WithContext(ctx).
		Model(&model.SysUser{}).
		Where("id = ?", id).
		Update("password", hashedPassword).Error
}
