package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WaterBill is one billing period for a house. The render flow treats it as
// read-only; mutation happens in the billing pipeline, not here.
type WaterBill struct {
	ID              string         `gorm:"type:text;primaryKey" json:"id"`
	BillNumber      string         `gorm:"unique;not null" json:"bill_number"`
	Month           string         `json:"month"`
	Year            int            `json:"year"`
	HouseID         string         `gorm:"index" json:"house_id"`
	House           *House         `gorm:"foreignKey:HouseID" json:"house,omitempty"`
	GramPanchayatID string         `gorm:"index" json:"gram_panchayat_id"`
	PreviousReading float64        `json:"previous_reading"`
	CurrentReading  float64        `json:"current_reading"`
	TotalUsage      float64        `json:"total_usage"`
	CurrentDemand   float64        `json:"current_demand"`
	Arrears         float64        `json:"arrears"`
	Interest        float64        `json:"interest"`
	InterestRate    float64        `json:"interest_rate"`
	PenaltyAmount   float64        `json:"penalty_amount"`
	Others          float64        `json:"others"`
	TotalAmount     float64        `json:"total_amount"`
	PaidAmount      float64        `json:"paid_amount"`
	RemainingAmount float64        `json:"remaining_amount"`
	Status          string         `json:"status"`
	DueDate         *time.Time     `json:"due_date,omitempty"`
	PaidDate        *time.Time     `json:"paid_date,omitempty"`
	PaymentMode     string         `json:"payment_mode,omitempty"`
	TransactionID   string         `json:"transaction_id,omitempty"`
	NoMeter         bool           `json:"no_meter"`
	DamagedMeter    bool           `json:"damaged_meter"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (b *WaterBill) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}
