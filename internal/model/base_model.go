package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel 公共模型属性
// ID 为不透明字符串主键，创建时分配，之后不可变
type BaseModel struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate 分配主键
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// StringList 逗号拼接存储的字符串数组（操作人列表、@名单）
type StringList []string

func (l *StringList) Scan(val interface{}) error {
	var s string
	switch v := val.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("无法将 %T 转换为 StringList", val)
	}
	if s == "" {
		*l = StringList{}
		return nil
	}
	*l = strings.Split(s, ",")
	return nil
}

func (l StringList) Value() (driver.Value, error) {
	return strings.Join(l, ","), nil
}

// Contains 判断是否已包含
func (l StringList) Contains(item string) bool {
	for _, v := range l {
		if v == item {
			return true
		}
	}
	return false
}
