package database

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
)

// ==================== 模式管理器 ====================

// SchemaMigration 已执行迁移记录
type SchemaMigration struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:128;uniqueIndex;not null"`
	AppliedAt time.Time
}

func (SchemaMigration) TableName() string { return "schema_migrations" }

// MigrationStep 单个向前迁移步骤
// 步骤只允许新增表/新增列，禁止删除和重命名
type MigrationStep struct {
	Name string
	Run  func(db *gorm.DB) error
}

// Manager 负责表结构初始化与向前迁移
// 除 Manager 之外的组件不允许直接操作表结构
type Manager struct {
	db    *gorm.DB
	steps []MigrationStep

	once    sync.Once
	initErr error
}

// NewManager 创建模式管理器
func NewManager(db *gorm.DB, steps []MigrationStep) *Manager {
	return &Manager{db: db, steps: steps}
}

// Init 初始化表结构，幂等，可在每个请求上调用
// 首次调用执行所有未记录的迁移步骤，之后调用是廉价的无操作
func (m *Manager) Init() error {
	m.once.Do(func() {
		m.initErr = m.applyAll()
	})
	return m.initErr
}

func (m *Manager) applyAll() error {
	if err := m.db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("创建迁移记录表失败: %w", err)
	}

	applied, err := m.appliedSet()
	if err != nil {
		return err
	}

	for _, step := range m.steps {
		if _, ok := applied[step.Name]; ok {
			continue
		}
		if err := step.Run(m.db); err != nil {
			return fmt.Errorf("迁移步骤 [%s] 执行失败: %w", step.Name, err)
		}
		record := SchemaMigration{Name: step.Name, AppliedAt: time.Now()}
		if err := m.db.Create(&record).Error; err != nil {
			return fmt.Errorf("记录迁移 [%s] 失败: %w", step.Name, err)
		}
	}
	return nil
}

func (m *Manager) appliedSet() (map[string]struct{}, error) {
	var names []string
	if err := m.db.Model(&SchemaMigration{}).Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set, nil
}

// Applied 判断某个迁移/导入标记是否已记录
func (m *Manager) Applied(name string) (bool, error) {
	var count int64
	err := m.db.Model(&SchemaMigration{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// ImportOnce 执行一次性数据导入
// name 作为永久标记写入 schema_migrations：标记存在则跳过，
// 导入和标记在同一事务中提交，任何一条记录失败整体回滚
func (m *Manager) ImportOnce(name string, apply func(tx *gorm.DB) error) error {
	done, err := m.Applied(name)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	return m.db.Transaction(func(tx *gorm.DB) error {
		if err := apply(tx); err != nil {
			return err
		}
		record := SchemaMigration{Name: name, AppliedAt: time.Now()}
		return tx.Create(&record).Error
	})
}

// AddColumnStep 构造"缺失则补列"的迁移步骤
// model: 带有目标字段定义的实体，field: 结构体字段名
func AddColumnStep(name string, model interface{}, fields ...string) MigrationStep {
	return MigrationStep{
		Name: name,
		Run: func(db *gorm.DB) error {
			migrator := db.Migrator()
			for _, field := range fields {
				if migrator.HasColumn(model, field) {
					continue
				}
				if err := migrator.AddColumn(model, field); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// AutoMigrateStep 构造建表步骤（建表 + 补缺失列，不删除不重命名）
func AutoMigrateStep(name string, models ...interface{}) MigrationStep {
	return MigrationStep{
		Name: name,
		Run: func(db *gorm.DB) error {
			return db.AutoMigrate(models...)
		},
	}
}

// ==================== 全局实例 ====================

var globalManager *Manager

// SetGlobal 设置全局实例
func SetGlobal(m *Manager) {
	globalManager = m
}

// Global 获取全局实例
func Global() *Manager {
	return globalManager
}
