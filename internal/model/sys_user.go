package model

// SysUser 管理后台账号
// 系统中必须始终保留至少一个账号，删除最后一个账号会被拒绝
type SysUser struct {
	BaseModel
	Username    string `gorm:"size:64;uniqueIndex;not null" json:"username"` // 登录名
	Password    string `gorm:"size:128;not null" json:"-"`                   // bcrypt 哈希
	DisplayName string `gorm:"size:64" json:"displayName"`                   // 展示名
	// 指针类型：值类型的 false 会被 gorm 当成未赋值，落库变成默认的 true
	IsActive *bool `gorm:"default:true" json:"isActive"` // 是否启用
}

func (SysUser) TableName() string { return "sys_users" }
