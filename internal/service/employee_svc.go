package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/internal/repository"
)

// ==================== EmployeeService 员工管理服务 ====================
// 注册和登录在 AuthService，这里只有后台的员工管理

// EmployeeService 员工管理服务
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeService 创建员工管理服务
func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// Get 查询员工
func (s *EmployeeService) Get(ctx context.Context, id string) (*model.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, NewInternal(err)
	}
	if employee == nil {
		return nil, NewNotFound("员工不存在")
	}
	employee.Password = ""
	return employee, nil
}

// Update 部分更新员工字段
// 工号、登录码由系统生成，不允许后台改写；传入密码时重新哈希
func (s *EmployeeService) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Employee, error) {
	fields, err := repository.NormalizeUpdates(&model.Employee{}, fields)
	if err != nil {
		return nil, fieldError(err)
	}
	delete(fields, "employee_number")
	delete(fields, "login_code")

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

	employee, err := s.employeeRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, NewInternal(err)
	}
	if employee == nil {
		return nil, NewNotFound("员工不存在")
	}
	employee.Password = ""
	return employee, nil
}

// Delete 删除员工
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return NewInternal(err)
	}
	if employee == nil {
		return NewNotFound("员工不存在")
	}
	return s.employeeRepo.Delete(ctx, id)
}

// List 分页查询员工
func (s *EmployeeService) List(ctx context.Context, filter repository.EmployeeFilter, pq repository.PageQuery) (*repository.Page[model.Employee], error) {
	page, err := s.employeeRepo.List(ctx, filter, pq)
	if err != nil {
		return nil, NewInternal(err)
	}
	for i := range page.Items {
		page.Items[i].Password = ""
	}
	return page, nil
}
