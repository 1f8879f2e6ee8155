package model

// 退货取件状态
const (
	RetrievalPending = 0 // 待取件
	RetrievalDone    = 1 // 已取件
)

// ReturnDetail 退货明细
// 与发货记录生命周期独立，仅在仓库看板上按日期联合查询
type ReturnDetail struct {
	BaseModel
	ReturnDate      string `gorm:"size:10;index" json:"returnDate"`        // 退货日期 YYYY-MM-DD
	RetrievalStatus int    `gorm:"default:0;index" json:"retrievalStatus"` // 0待取件 1已取件
	MerchantName    string `gorm:"size:100;index" json:"merchantName"`     // 商家名称
	ProductName     string `gorm:"size:200" json:"productName"`            // 商品名称
	Quantity        int    `gorm:"default:0" json:"quantity"`              // 数量
	Reason          string `gorm:"size:255" json:"reason"`                 // 退货原因
	TrackingNumber  string `gorm:"size:64" json:"trackingNumber"`          // 运单号
}

func (ReturnDetail) TableName() string { return "return_details" }
