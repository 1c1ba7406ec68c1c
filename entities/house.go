package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// House is a metered connection billed within a gram panchayat.
type House struct {
	ID               string         `gorm:"type:text;primaryKey" json:"id"`
	OwnerName        string         `gorm:"not null" json:"owner_name"`
	Address          string         `json:"address"`
	PropertyNumber   string         `json:"property_number"`
	WaterMeterNumber string         `json:"water_meter_number"`
	UsageType        string         `json:"usage_type"`
	MobileNumber     string         `json:"mobile_number"`
	VillageID        string         `gorm:"index" json:"village_id"`
	Village          *Village       `gorm:"foreignKey:VillageID" json:"village,omitempty"`
	GramPanchayatID  string         `gorm:"index" json:"gram_panchayat_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (h *House) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return
}
