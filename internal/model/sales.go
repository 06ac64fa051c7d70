package model

const (
	OrderStatusPending   = "pending"
	OrderStatusCancelled = "cancelled"
)

type OrderItem struct {
	ProductID string  `json:"productId"`
	VariantID string  `json:"variantId,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type Order struct {
	BaseModel
	Code          string      `json:"code"`
	UserID        string      `json:"userId"`
	OrderStatus   string      `json:"orderStatus"`
	PaymentMethod string      `json:"paymentMethod,omitempty"`
	TotalAmount   float64     `json:"totalAmount"`
	Items         []OrderItem `json:"items,omitempty"`
	CancelReason  string      `json:"cancelReason,omitempty"`
}

type Refund struct {
	BaseModel
	OrderID      string  `json:"orderId"`
	Amount       float64 `json:"amount"`
	Reason       string  `json:"reason,omitempty"`
	RefundStatus string  `json:"refundStatus"`
}

type Return struct {
	BaseModel
	OrderID      string      `json:"orderId"`
	Reason       string      `json:"reason,omitempty"`
	ReturnStatus string      `json:"returnStatus"`
	Items        []OrderItem `json:"items,omitempty"`
}

type Review struct {
	BaseModel
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	IsActive  bool   `json:"isActive"`
}

type User struct {
	BaseModel
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	Phone      string `json:"phone,omitempty"`
	UserRole   string `json:"userRole"`
	UserStatus string `json:"userStatus"`
}
