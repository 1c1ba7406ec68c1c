package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account in the water management system. Password holds the
// bcrypt hash and is never serialized. OTPCode and OTPExpires are transient
// second-factor state: both set while a code is pending, both nil otherwise.
type User struct {
	ID              string         `gorm:"type:text;primaryKey" json:"id"`
	Name            string         `gorm:"not null" json:"name"`
	Email           string         `gorm:"unique;not null" json:"email"`
	Mobile          string         `json:"mobile"`
	Password        string         `gorm:"not null" json:"-"`
	Role            Role           `gorm:"type:text;not null" json:"role"`
	GramPanchayatID *string        `gorm:"index" json:"gram_panchayat_id,omitempty"`
	GramPanchayat   *GramPanchayat `gorm:"foreignKey:GramPanchayatID" json:"gram_panchayat,omitempty"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	LastLogin       *time.Time     `json:"last_login,omitempty"`
	OTPCode         *string        `json:"-"`
	OTPExpires      *time.Time     `json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// SetOTP stores a pending code with its expiry.
func (u *User) SetOTP(code string, expires time.Time) {
	u.OTPCode = &code
	u.OTPExpires = &expires
}

// ClearOTP drops pending second-factor state.
func (u *User) ClearOTP() {
	u.OTPCode = nil
	u.OTPExpires = nil
}

// PublicUser is the projection returned by auth endpoints.
type PublicUser struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Mobile        string         `json:"mobile,omitempty"`
	Role          Role           `json:"role"`
	GramPanchayat *GramPanchayat `json:"gramPanchayat,omitempty"`
	IsActive      bool           `json:"is_active"`
	LastLogin     *time.Time     `json:"last_login,omitempty"`
}

// Public returns the user without credential or OTP state.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Mobile:        u.Mobile,
		Role:          u.Role,
		GramPanchayat: u.GramPanchayat,
		IsActive:      u.IsActive,
		LastLogin:     u.LastLogin,
	}
}
