package model

// 系统设置项键名
const (
	SettingKeyAPIKey            = "apiKey"
	SettingKeyDriverPhone       = "driverPhone"
	SettingKeyHenganDriverPhone = "henganDriverPhone"
)

// Setting 键值设置
type Setting struct {
	BaseModel
	Key   string `gorm:"size:64;uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

func (Setting) TableName() string { return "settings" }
