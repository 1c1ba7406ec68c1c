package usecases

import (
	"waterbill-server/entities"
	"waterbill-server/repositories"
)

// BillUseCase resolves bills for rendering. Lookups are always scoped by
// the requester's gram panchayat: a bill outside that scope is reported as
// not found, never as forbidden.
type BillUseCase struct {
	bills repositories.WaterBillRepository
	gps   repositories.GramPanchayatRepository
}

func NewBillUseCase(bills repositories.WaterBillRepository, gps repositories.GramPanchayatRepository) *BillUseCase {
	return &BillUseCase{bills: bills, gps: gps}
}

// GetBillForDownload fetches the bill with its house and village resolved,
// plus the owning gram panchayat.
func (uc *BillUseCase) GetBillForDownload(billID, gramPanchayatID string) (*entities.WaterBill, *entities.GramPanchayat, error) {
	if billID == "" || gramPanchayatID == "" {
		return nil, nil, &ValidationError{Message: "Bill ID or Gram Panchayat ID is missing"}
	}

	bill, err := uc.bills.GetByIDAndGramPanchayat(billID, gramPanchayatID)
	if err != nil {
		return nil, nil, &NotFoundError{Message: "Bill not found"}
	}
	if bill.House == nil {
		return nil, nil, &NotFoundError{Message: "Bill not found"}
	}

	gp, err := uc.gps.GetByID(gramPanchayatID)
	if err != nil {
		return nil, nil, &NotFoundError{Message: "Gram Panchayat not found"}
	}

	return bill, gp, nil
}
