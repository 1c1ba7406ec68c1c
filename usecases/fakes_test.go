package usecases

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"waterbill-server/entities"
)

// In-memory repository doubles. They mirror the Postgres implementations'
// observable behavior, including gorm.ErrRecordNotFound on misses.

type fakeUserRepo struct {
	users map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) Create(user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetActiveByEmail(email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.IsActive {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetActiveByEmailAndOTP(email, code string, now time.Time) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.IsActive &&
			u.OTPCode != nil && *u.OTPCode == code &&
			u.OTPExpires != nil && u.OTPExpires.After(now) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(user *entities.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

type fakeGPRepo struct {
	gps map[string]*entities.GramPanchayat
}

func newFakeGPRepo() *fakeGPRepo {
	return &fakeGPRepo{gps: make(map[string]*entities.GramPanchayat)}
}

func (r *fakeGPRepo) Create(gp *entities.GramPanchayat) error {
	if gp.ID == "" {
		gp.ID = uuid.New().String()
	}
	cp := *gp
	r.gps[gp.ID] = &cp
	return nil
}

func (r *fakeGPRepo) GetByID(id string) (*entities.GramPanchayat, error) {
	gp, ok := r.gps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *gp
	return &cp, nil
}

func (r *fakeGPRepo) GetAll() ([]entities.GramPanchayat, error) {
	var out []entities.GramPanchayat
	for _, gp := range r.gps {
		out = append(out, *gp)
	}
	return out, nil
}

type fakeBillRepo struct {
	bills map[string]*entities.WaterBill
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{bills: make(map[string]*entities.WaterBill)}
}

func (r *fakeBillRepo) Create(bill *entities.WaterBill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	cp := *bill
	r.bills[bill.ID] = &cp
	return nil
}

func (r *fakeBillRepo) GetByIDAndGramPanchayat(id, gramPanchayatID string) (*entities.WaterBill, error) {
	bill, ok := r.bills[id]
	if !ok || bill.GramPanchayatID != gramPanchayatID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *bill
	return &cp, nil
}

type sentMail struct {
	email string
	name  string
	code  string
}

type fakeNotifier struct {
	sent []sentMail
	fail error
}

func (n *fakeNotifier) SendOTP(email, name, code string) error {
	if n.fail != nil {
		return n.fail
	}
	n.sent = append(n.sent, sentMail{email: email, name: name, code: code})
	return nil
}
