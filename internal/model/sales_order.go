package model

// ProductSalesOrder 商品销售单
// 由外部采集端写入，本系统只读
type ProductSalesOrder struct {
	BaseModel
	MallName       string `gorm:"size:100" json:"mallName"`        // 店铺名称
	MallID         string `gorm:"size:64;index" json:"mallId"`     // 店铺 ID
	GoodsID        string `gorm:"size:64;index" json:"goodsId"`    // 商品 ID
	GoodsName      string `gorm:"size:200" json:"goodsName"`       // 商品名称
	GoodsImage     string `gorm:"size:512" json:"goodsImage"`      // 商品图片
	SalesArea      string `gorm:"size:100" json:"salesArea"`       // 销售区域
	WarehouseInfo  string `gorm:"size:100" json:"warehouseInfo"`   // 仓库信息
	SalesDate      string `gorm:"size:10;index" json:"salesDate"`  // 销售日期 YYYY-MM-DD
	SalesSpec      string `gorm:"size:100" json:"salesSpec"`       // 销售规格
	TotalStock     int    `gorm:"default:0" json:"totalStock"`     // 总库存
	EstimatedSales int    `gorm:"default:0" json:"estimatedSales"` // 预估销量
	TotalSales     int    `gorm:"default:0" json:"totalSales"`     // 总销量
	SalesQuantity  int    `gorm:"default:0" json:"salesQuantity"`  // 当日销量
}

func (ProductSalesOrder) TableName() string { return "product_sales_orders" }
