package model

// Merchant 商家
// warehouse1/warehouse2/defaultWarehouse/groupName 创建时必填
type Merchant struct {
	BaseModel
	Name             string     `gorm:"size:100;index" json:"name"`                 // 商家名称
	MerchantID       string     `gorm:"size:64;index" json:"merchantId"`            // 外部商家编号
	PinduoduoName    string     `gorm:"size:100" json:"pinduoduoName"`              // 拼多多店铺展示名
	Warehouse1       string     `gorm:"size:50;not null" json:"warehouse1"`         // 一号仓
	Warehouse2       string     `gorm:"size:50;not null" json:"warehouse2"`         // 二号仓
	DefaultWarehouse string     `gorm:"size:50;not null" json:"defaultWarehouse"`   // 默认仓
	GroupName        string     `gorm:"size:100;not null" json:"groupName"`         // 通知群名称
	SendMessage      bool       `gorm:"default:false" json:"sendMessage"`           // 是否发送群通知
	SendScreenshot   bool       `gorm:"default:false" json:"sendScreenshot"`        // 是否发送订单截图
	MentionList      StringList `gorm:"type:text" json:"mentionList"`               // 通知@名单，有序
	SubAccount       string     `gorm:"size:64" json:"subAccount"`                  // 子账号
	PddPassword      string     `gorm:"size:128" json:"pddPassword"`                // 店铺密码
	Cookie           string     `gorm:"type:text" json:"cookie"`                    // 会话 Cookie
	MallID           string     `gorm:"size:64;index" json:"mallId"`                // 拼多多店铺 ID
}

func (Merchant) TableName() string { return "merchants" }
