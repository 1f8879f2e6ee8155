package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"pdd_wms_v1/internal/model"
)

// ==================== EmployeeRepository 员工仓库 ====================

// EmployeeFilter 员工筛选条件
type EmployeeFilter struct {
	Name           string `form:"name" search:"contains"`
	RealName       string `form:"realName" search:"contains"`
	Phone          string `form:"phone" search:"contains"`
	EmployeeNumber string `form:"employeeNumber" search:"contains"`
}

// EmployeeRepository 员工仓库接口
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	GetByPhone(ctx context.Context, phone string) (*model.Employee, error)
	GetByLoginCode(ctx context.Context, code string) (*model.Employee, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Employee, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter, pq PageQuery) (*Page[model.Employee], error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByLoginCode(ctx context.Context, code string) (bool, error)
	NextNumberSuffix(ctx context.Context, prefix string) (int, error)
	TouchLastLogin(ctx context.Context, id string) error
}

var employeeSortable = sortableColumns("created_at", "name", "employee_number", "last_login_at")

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository 创建员工仓库
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *employeeRepository) GetByPhone(ctx context.Context, phone string) (*model.Employee, error) {
	return r.getBy(ctx, "phone = ?", phone)
}

func (r *employeeRepository) GetByLoginCode(ctx context.Context, code string) (*model.Employee, error) {
	return r.getBy(ctx, "login_code = ?", code)
}

func (r *employeeRepository) getBy(ctx context.Context, cond string, arg interface{}) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).Where(cond, arg).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Employee, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	fields, err = NormalizeUpdates(&model.Employee{}, fields)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		err = r.db.WithContext(ctx).
			Model(&model.Employee{}).
			Where("id = ?", id).
			Updates(fields).Error
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Employee{}).Error
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter, pq PageQuery) (*Page[model.Employee], error) {
	return FindPage[model.Employee](r.db.WithContext(ctx), MakeCondition(filter), pq, employeeSortable)
}

func (r *employeeRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone = ?", phone)
}

func (r *employeeRepository) ExistsByLoginCode(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, "login_code = ?", code)
}

func (r *employeeRepository) exists(ctx context.Context, cond string, arg interface{}) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).Where(cond, arg).Count(&count).Error
	return count > 0, err
}

// NextNumberSuffix 计算工号前缀下一个可用的数字后缀
// 工号形如 ZS1、ZS2，取同前缀的最大后缀加一
func (r *employeeRepository) NextNumberSuffix(ctx context.Context, prefix string) (int, error) {
	var numbers []string
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("employee_number LIKE ?", prefix+"%").
		Pluck("employee_number", &numbers).Error
	if err != nil {
		return 0, err
	}

	max := 0
	for _, n := range numbers {
		suffix := strings.TrimPrefix(n, prefix)
		v, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if v > max {
			max = v
		}
	}
	return max + 1, nil
}

// TouchLastLogin 更新最后登录时间
func (r *employeeRepository) TouchLastLogin(ctx context.Context, id string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("id = ?", id).
		Update("last_login_at", &now).Error
}
