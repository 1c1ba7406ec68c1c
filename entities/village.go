package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Village struct {
	ID              string         `gorm:"type:text;primaryKey" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	GramPanchayatID string         `gorm:"index" json:"gram_panchayat_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (v *Village) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}
