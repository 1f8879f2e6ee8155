package model

import "pdd_wms_v1/pkg/database"

// Models 全部实体表
func Models() []interface{} {
	return []interface{}{
		&Merchant{},
		&Product{},
		&ProductSalesOrder{},
		&SysUser{},
		&Employee{},
		&DailyDelivery{},
		&ReturnDetail{},
		&Setting{},
	}
}

// MigrationSteps 有序的向前迁移步骤
// 新版本加字段时在末尾追加 AddColumnStep，禁止修改已发布的步骤
func MigrationSteps() []database.MigrationStep {
	return []database.MigrationStep{
		database.AutoMigrateStep("0001_base_tables", Models()...),
		// 历史库升级：早期版本的商家表没有截图开关和@名单
		database.AddColumnStep("0002_merchant_notify_columns", &Merchant{}, "SendScreenshot", "MentionList"),
		// 员工登录码与最后登录时间为后续版本引入
		database.AddColumnStep("0003_employee_login_code", &Employee{}, "LoginCode", "LastLoginAt"),
		database.AddColumnStep("0004_return_tracking_number", &ReturnDetail{}, "TrackingNumber"),
	}
}
