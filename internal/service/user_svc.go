package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
)

// ==================== UserService 后台账号服务 ====================

// UserService 后台账号服务
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建后台账号服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create 创建账号，密码落库前 bcrypt 哈希
func (s *UserService) Create(ctx context.Context, username, password, displayName string) (*model.SysUser, error) {
	if username == "" {
		return nil, NewValidation("用户名不能为空")
	}
	if len(password) < 6 {
		return nil, NewValidation("密码长度至少6位")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, NewInternal(err)
	}
	if existing != nil {
		return nil, NewConflict("用户名已存在")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewInternal(err)
	}

	active := true
	user := &model.SysUser{
		Username:    username,
		Password:    string(hashed),
		DisplayName: displayName,
		IsActive:    &active,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, NewInternal(err)
	}
	user.Password = ""
	return user, nil
}

// Get 查询账号
func (s *UserService) Get(ctx context.Context, id string) (*model.SysUser, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternal(err)
	}
	if user == nil {
		return nil, NewNotFound("账号不存在")
	}
	user.Password = ""
	return user, nil
}

// Update 部分更新账号字段，传入密码时重新哈希
func (s *UserService) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.SysUser, error) {
	fields, err := repository.NormalizeUpdates(&model.SysUser{}, fields)
	if err != nil {
		return nil, fieldError(err)
	}

	if password, ok := fields["password"].(string); ok {
		if len(password) < 6 {
			return nil, NewValidation("密码长度至少6位")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, NewInternal(err)
		}
		fields["password"] = string(hashed)
	}

	user, err := s.userRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, NewInternal(err)
	}
	if user == nil {
		return nil, NewNotFound("账号不存在")
	}
	user.Password = ""
	return user, nil
}

// Delete 删除账号
// 系统必须始终保留至少一个账号，删最后一个返回冲突
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return NewInternal(err)
	}
	if user == nil {
		return NewNotFound("账号不存在")
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return NewInternal(err)
	}
	if count <= 1 {
		return NewConflict("系统必须保留至少一个账号")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return NewInternal(err)
	}
	return nil
}

// List 分页查询账号
func (s *UserService) List(ctx context.Context, filter repository.UserFilter, pq repository.PageQuery) (*repository.Page[model.SysUser], error) {
	page, err := s.userRepo.List(ctx, filter, pq)
	if err != nil {
		return nil, NewInternal(err)
	}
	for i := range page.Items {
		page.Items[i].Password = ""
	}
	return page, nil
}
