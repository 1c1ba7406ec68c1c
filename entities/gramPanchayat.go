package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GramPanchayat is the administrative unit scoping users, houses and bills.
type GramPanchayat struct {
	ID        string         `gorm:"type:text;primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	District  string         `json:"district"`
	Address   string         `json:"address"`
	DueDays   int            `json:"due_days"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (g *GramPanchayat) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return
}
