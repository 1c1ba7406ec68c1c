package repositories

import (
	"time"

	"waterbill-server/entities"
)

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id string) (*entities.User, error)
	GetActiveByEmail(email string) (*entities.User, error)
	// GetActiveByEmailAndOTP matches only users whose stored code equals
	// code and whose expiry is after now.
	GetActiveByEmailAndOTP(email, code string, now time.Time) (*entities.User, error)
	ExistsByEmail(email string) (bool, error)
	Update(user *entities.User) error
}

type GramPanchayatRepository interface {
	Create(gp *entities.GramPanchayat) error
	GetByID(id string) (*entities.GramPanchayat, error)
	GetAll() ([]entities.GramPanchayat, error)
}

type WaterBillRepository interface {
	Create(bill *entities.WaterBill) error
	// GetByIDAndGramPanchayat scopes the lookup by tenant; a bill belonging
	// to another gram panchayat is indistinguishable from a missing one.
	GetByIDAndGramPanchayat(id, gramPanchayatID string) (*entities.WaterBill, error)
}
