package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"pdd_wms_v1/internal/repository"
)

func newTestUserService(t *testing.T) (*UserService, repository.UserRepository) {
	db := setupServiceTestDB(t)
	userRepo := repository.NewUserRepository(db)
	return NewUserService(userRepo), userRepo
}

func TestUserService_CreateHashesPassword(t *testing.T) {
	svc, userRepo := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "admin", "admin123", "管理员")
	if err != nil {
		t.Fatalf("创建账号失败: %v", err)
	}
	if user.Password != "" {
		t.Error("返回的账号不应携带密码")
	}

	stored, _ := userRepo.GetByID(ctx, user.ID)
	if stored.Password == "admin123" {
		t.Error("密码不应明文落库")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("admin123")) != nil {
		t.Error("落库密码应为原口令的 bcrypt 哈希")
	}
}

func TestUserService_CreateValidation(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", "admin123", ""); KindOf(err) != KindValidation {
		t.Errorf("空用户名应为校验错误, got %v", KindOf(err))
	}
	if _, err := svc.Create(ctx, "admin", "123", ""); KindOf(err) != KindValidation {
		t.Errorf("短密码应为校验错误, got %v", KindOf(err))
	}

	if _, err := svc.Create(ctx, "admin", "admin123", ""); err != nil {
		t.Fatalf("创建账号失败: %v", err)
	}
	if _, err := svc.Create(ctx, "admin", "other123", ""); KindOf(err) != KindConflict {
		t.Errorf("重名应为冲突错误, got %v", KindOf(err))
	}
}

func TestUserService_DeleteKeepsLastAccount(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	only, err := svc.Create(ctx, "admin", "admin123", "")
	if err != nil {
		t.Fatalf("创建账号失败: %v", err)
	}

	// 最后一个账号不允许删除
	err = svc.Delete(ctx, only.ID)
	assertKind(t, err, KindConflict)

	second, err := svc.Create(ctx, "backup", "backup123", "")
	if err != nil {
		t.Fatalf("创建账号失败: %v", err)
	}
	if err := svc.Delete(ctx, second.ID); err != nil {
		t.Fatalf("有两个账号时删除应成功: %v", err)
	}

	// 又只剩一个，继续保护
	err = svc.Delete(ctx, only.ID)
	assertKind(t, err, KindConflict)
}

func TestUserService_UpdateRehashesPassword(t *testing.T) {
	svc, userRepo := newTestUserService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, "admin", "admin123", "")
	if err != nil {
		t.Fatalf("创建账号失败: %v", err)
	}

	if _, err := svc.Update(ctx, user.ID, map[string]interface{}{"password": "newpass1"}); err != nil {
		t.Fatalf("更新密码失败: %v", err)
	}

	stored, _ := userRepo.GetByID(ctx, user.ID)
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newpass1")) != nil {
		t.Error("新密码应为 bcrypt 哈希落库")
	}
}
