package repositories

import (
	"waterbill-server/db"
	"waterbill-server/entities"
)

type waterBillPgRepository struct {
	db db.Database
}

func NewWaterBillPgRepository(database db.Database) WaterBillRepository {
	return &waterBillPgRepository{db: database}
}

func (r *waterBillPgRepository) Create(bill *entities.WaterBill) error {
	return r.db.GetDB().Create(bill).Error
}

func (r *waterBillPgRepository) GetByIDAndGramPanchayat(id, gramPanchayatID string) (*entities.WaterBill, error) {
	var bill entities.WaterBill
	err := r.db.GetDB().
		Preload("House").
		Preload("House.Village").
		Where("id = ? AND gram_panchayat_id = ?", id, gramPanchayatID).
		First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}
