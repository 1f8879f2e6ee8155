package model

import "time"

// Employee 仓库员工
type Employee struct {
	BaseModel
	EmployeeNumber string     `gorm:"size:32;uniqueIndex;not null" json:"employeeNumber"` // 工号：姓名拼音首字母+序号
	Name           string     `gorm:"size:64;not null" json:"name"`                       // 姓名
	RealName       string     `gorm:"size:64" json:"realName"`                            // 实名
	Phone          string     `gorm:"size:16;uniqueIndex;not null" json:"phone"`          // 手机号
	Password       string     `gorm:"size:128;not null" json:"-"`                         // bcrypt 哈希
	LoginCode      string     `gorm:"size:8;uniqueIndex;not null" json:"loginCode"`       // 8位大写字母数字登录码
	LastLoginAt    *time.Time `json:"lastLoginAt"`                                        // 最后登录时间
}

func (Employee) TableName() string { return "employees" }
