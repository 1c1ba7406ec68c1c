package repositories

import (
	"waterbill-server/db"
	"waterbill-server/entities"
)

type gramPanchayatPgRepository struct {
	db db.Database
}

func NewGramPanchayatPgRepository(database db.Database) GramPanchayatRepository {
	return &gramPanchayatPgRepository{db: database}
}

func (r *gramPanchayatPgRepository) Create(gp *entities.GramPanchayat) error {
	return r.db.GetDB().Create(gp).Error
}

func (r *gramPanchayatPgRepository) GetByID(id string) (*entities.GramPanchayat, error) {
	var gp entities.GramPanchayat
	err := r.db.GetDB().Where("id = ?", id).First(&gp).Error
	if err != nil {
		return nil, err
	}
	return &gp, nil
}

func (r *gramPanchayatPgRepository) GetAll() ([]entities.GramPanchayat, error) {
	var gps []entities.GramPanchayat
	err := r.db.GetDB().Order("name ASC").Find(&gps).Error
	return gps, err
}
