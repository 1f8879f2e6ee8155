package service

import (
	"context"
	"testing"
)

func TestEmployeeService_UpdateProtectsGeneratedCredentials(t *testing.T) {
	authSvc, _, employeeRepo := newTestAuthService(t)
	svc := NewEmployeeService(employeeRepo)
	ctx := context.Background()

	created := registerTestEmployee(t, authSvc, "张三", "13800000001")

	// 工号和登录码由系统生成，JSON 名写法同样改不动
	updated, err := svc.Update(ctx, created.ID, map[string]interface{}{
		"employeeNumber": "HACK9",
		"loginCode":      "BBBB2222",
		"realName":       "张三丰",
	})
	if err != nil {
		t.Fatalf("更新员工失败: %v", err)
	}
	if updated.EmployeeNumber != created.EmployeeNumber {
		t.Errorf("employeeNumber = %s, want %s", updated.EmployeeNumber, created.EmployeeNumber)
	}
	if updated.LoginCode != created.LoginCode {
		t.Errorf("loginCode = %s, want %s", updated.LoginCode, created.LoginCode)
	}
	if updated.RealName != "张三丰" {
		t.Errorf("realName = %s, want 张三丰", updated.RealName)
	}
}

func TestEmployeeService_UpdateUnknownFieldRejected(t *testing.T) {
	authSvc, _, employeeRepo := newTestAuthService(t)
	svc := NewEmployeeService(employeeRepo)

	created := registerTestEmployee(t, authSvc, "张三", "13800000001")

	_, err := svc.Update(context.Background(), created.ID, map[string]interface{}{"noSuchField": 1})
	assertKind(t, err, KindValidation)
}
