package types

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type EventStatus string

const (
	EVENT_DRAFT     EventStatus = "draft"
	EVENT_OPEN      EventStatus = "open"
	EVENT_ADMISSION EventStatus = "admission"
	EVENT_COMPLETED EventStatus = "completed"
	EVENT_CANCELED  EventStatus = "canceled"
)

type TicketStatus string

const (
	TICKET_VALID    TicketStatus = "valid"
	TICKET_USED     TicketStatus = "used"
	TICKET_REFUNDED TicketStatus = "refunded"
)

type OrderStatus string

const (
	ORDER_PENDING   OrderStatus = "pending"
	ORDER_COMPLETED OrderStatus = "completed"
	ORDER_REFUNDED  OrderStatus = "refunded"
	ORDER_CANCELED  OrderStatus = "cancelled"
)

type RefundStatus string

const (
	REFUND_PENDING   RefundStatus = "pending"
	REFUND_APPROVED  RefundStatus = "approved"
	REFUND_REJECTED  RefundStatus = "rejected"
	REFUND_COMPLETED RefundStatus = "completed"
)

type ActivityType string

const (
	ACTIVITY_ORDER_CREATION ActivityType = "order_creation"
	ACTIVITY_CHECKIN        ActivityType = "checkin"
	ACTIVITY_REFUND         ActivityType = "refund"
)

type Role string

const (
	ROLE_ADMIN     Role = "admin"
	ROLE_ORGANIZER Role = "organizer"
	ROLE_CUSTOMER  Role = "customer"
)

type CreateEventRequestBody struct {
	Title    string `json:"title" binding:"required"`
	About    string `json:"about,omitempty"`
	Location string `json:"location,omitempty" binding:"required"`
	DateTime string `json:"date_time" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	Seats    uint   `json:"seats,omitempty"`
	Publish  bool   `json:"publish,omitempty"`
}

type CreateTicketTypeRequestBody struct {
	EventID  uint    `json:"event" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Price    float32 `json:"price" binding:"gte=0"`
	Quantity uint    `json:"quantity" binding:"required,gt=0"`
}

type CartLine struct {
	TicketTypeID uint `json:"ticket_type" binding:"required"`
	Qty          uint `json:"qty" binding:"required"`
}

type CreateOrderRequestBody struct {
	EventID       uint       `json:"event" binding:"required"`
	Items         []CartLine `json:"items" binding:"required,min=1"`
	PaymentMethod string     `json:"payment_method,omitempty"`
}

type CreateAdmissionRequestBody struct {
	Code string `json:"code" binding:"required"`
}

type CreateRefundRequestBody struct {
	OrderID uint   `json:"order" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
}

type RegisterUserRequestBody struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role,omitempty" binding:"omitempty,oneof=admin organizer customer"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

// AttendeeRow is the record shape consumed by the CSV export collaborator.
// The core supplies rows, not CSV text.
type AttendeeRow struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	TicketTypeName string `json:"ticket_type_name"`
	PurchaseDate   string `json:"purchase_date"`
	QRCode         string `json:"qr_code"`
}

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
