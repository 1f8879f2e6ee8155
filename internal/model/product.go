package model

// Product 商品，归属于唯一商家
// (goods_id, 商家 mall_id) 唯一确定一个商品，供外部对接查询
type Product struct {
	BaseModel
	GoodsID    string `gorm:"size:64;index" json:"goodsId"`             // 拼多多商品 ID
	GoodsImage string `gorm:"size:512" json:"goodsImage"`               // 商品图片 URL
	Name       string `gorm:"size:200;index" json:"name"`               // 内部商品名
	PddName    string `gorm:"size:200" json:"pddName"`                  // 拼多多商品名
	Spec       string `gorm:"size:100" json:"spec"`                     // 规格
	MerchantID string `gorm:"size:36;index;not null" json:"merchantId"` // 归属商家，必填
}

func (Product) TableName() string { return "products" }
