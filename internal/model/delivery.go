package model

// 发货配货状态
const (
	DistributionPending = 0 // 待配货
	DistributionDone    = 1 // 已配货
)

// 入库状态
const (
	WarehousingPending = 0 // 待入库
	WarehousingDone    = 1 // 已入库
)

// DailyDelivery 每日发货记录
// 去重标识为 (merchant_name, product_name, delivery_date) 三元组，
// 与商家/商品之间仅按名称关联，不建外键（沿用旧数据格式的松耦合）
type DailyDelivery struct {
	BaseModel
	MerchantName       string     `gorm:"size:100;index:idx_delivery_key" json:"merchantName"` // 商家名称
	ProductName        string     `gorm:"size:200;index:idx_delivery_key" json:"productName"`  // 商品名称
	DeliveryDate       string     `gorm:"size:10;index:idx_delivery_key" json:"deliveryDate"`  // 发货日期 YYYY-MM-DD
	DistributionStatus int        `gorm:"default:0;index" json:"distributionStatus"`           // 0待配货 1已配货
	WarehousingStatus  int        `gorm:"default:0;index" json:"warehousingStatus"`            // 0待入库 1已入库
	Operators          StringList `gorm:"type:text" json:"operators"`                          // 经手员工工号，有序
}

func (DailyDelivery) TableName() string { return "daily_deliveries" }

// DuplicateKey 返回去重键 merchantName|productName|deliveryDate
func (d *DailyDelivery) DuplicateKey() string {
	return d.MerchantName + "|" + d.ProductName + "|" + d.DeliveryDate
}

// State 由两个状态位推导当前流转状态
func (d *DailyDelivery) State() string {
	switch {
	case d.DistributionStatus == DistributionPending:
		return DeliveryStatePending
	case d.WarehousingStatus == WarehousingPending:
		return DeliveryStateDistributed
	default:
		return DeliveryStateWarehoused
	}
}

// 发货记录流转状态
const (
	DeliveryStatePending     = "pending"     // 待配货
	DeliveryStateDistributed = "distributed" // 已配货待入库
	DeliveryStateWarehoused  = "warehoused"  // 已入库
)
