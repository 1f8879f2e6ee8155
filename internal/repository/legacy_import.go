package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"gorm.io/gorm"

	"pdd_wms_v1/internal/model"
	"pdd_wms_v1/pkg/database"
)

// ==================== 旧版 JSON 库导入 ====================

// LegacyImportMarker 导入完成标记，固定来源标识
// 写入 schema_migrations 后导入永不重复，即使快照文件仍然存在
const LegacyImportMarker = "import:legacy-json-v1"

// LegacySnapshot 旧版平面文件快照结构
type LegacySnapshot struct {
	Merchants       []model.Merchant          `json:"merchants"`
	Products        []model.Product           `json:"products"`
	SalesOrders     []model.ProductSalesOrder `json:"productSalesOrders"`
	Users           []model.SysUser           `json:"users"`
	Employees       []model.Employee          `json:"employees"`
	DailyDeliveries []model.DailyDelivery     `json:"dailyDeliveries"`
	ReturnDetails   []model.ReturnDetail      `json:"returnDetails"`
	Settings        []model.Setting           `json:"settings"`
}

// ImportLegacySnapshot 一次性导入旧版 JSON 快照
// 快照文件不存在时不做任何事（也不写标记，之后文件出现仍可导入）；
// 整批记录与完成标记在同一事务中提交，任何一条失败整体回滚
func ImportLegacySnapshot(mgr *database.Manager, path string) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("读取旧版快照失败: %w", err)
	}

	var snapshot LegacySnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return fmt.Errorf("解析旧版快照失败: %w", err)
	}

	return mgr.ImportOnce(LegacyImportMarker, func(tx *gorm.DB) error {
		steps := []struct {
			name  string
			model interface{}
			load  func(tx *gorm.DB) error
		}{
			{"merchants", &model.Merchant{}, insertAll(snapshot.Merchants)},
			{"products", &model.Product{}, insertAll(snapshot.Products)},
			{"productSalesOrders", &model.ProductSalesOrder{}, insertAll(snapshot.SalesOrders)},
			{"users", &model.SysUser{}, insertAll(snapshot.Users)},
			{"employees", &model.Employee{}, insertAll(snapshot.Employees)},
			{"dailyDeliveries", &model.DailyDelivery{}, insertAll(snapshot.DailyDeliveries)},
			{"returnDetails", &model.ReturnDetail{}, insertAll(snapshot.ReturnDetails)},
			{"settings", &model.Setting{}, insertAll(snapshot.Settings)},
		}

		for _, step := range steps {
			// 目标表已有数据时跳过该集合，避免覆盖线上数据
			var count int64
			if err := tx.Model(step.model).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := step.load(tx); err != nil {
				return fmt.Errorf("导入 %s 失败: %w", step.name, err)
			}
		}
		return nil
	})
}

func insertAll[T any](records []T) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		for i := range records {
			if err := tx.Create(&records[i]).Error; err != nil {
				return err
			}
		}
		return nil
	}
}
