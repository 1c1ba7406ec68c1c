package repositories

import (
	"time"

	"waterbill-server/db"
	"waterbill-server/entities"
)

type userPgRepository struct {
	db db.Database
}

func NewUserPgRepository(database db.Database) UserRepository {
	return &userPgRepository{db: database}
}

func (r *userPgRepository) Create(user *entities.User) error {
	return r.db.GetDB().Create(user).Error
}

func (r *userPgRepository) GetByID(id string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Preload("GramPanchayat").Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) GetActiveByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Preload("GramPanchayat").
		Where("email = ? AND is_active = ?", email, true).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) GetActiveByEmailAndOTP(email, code string, now time.Time) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().Preload("GramPanchayat").
		Where("email = ? AND is_active = ? AND otp_code = ? AND otp_expires > ?", email, true, code, now).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userPgRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.GetDB().Model(&entities.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *userPgRepository) Update(user *entities.User) error {
	// Save skips nil pointer columns, so clearing OTP state needs an
	// explicit column update.
	return r.db.GetDB().Model(user).
		Select("name", "email", "mobile", "password", "role", "gram_panchayat_id",
			"is_active", "last_login", "otp_code", "otp_expires", "updated_at").
		Updates(map[string]interface{}{
			"name":              user.Name,
			"email":             user.Email,
			"mobile":            user.Mobile,
			"password":          user.Password,
			"role":              user.Role,
			"gram_panchayat_id": user.GramPanchayatID,
			"is_active":         user.IsActive,
			"last_login":        user.LastLogin,
			"otp_code":          user.OTPCode,
			"otp_expires":       user.OTPExpires,
			"updated_at":        time.Now(),
		}).Error
}
