package usecases

import (
	"waterbill-server/entities"
	"waterbill-server/repositories"
)

// GramPanchayatUseCase manages the administrative units themselves. The
// auth and bill flows treat them as read-only.
type GramPanchayatUseCase struct {
	gps repositories.GramPanchayatRepository
}

func NewGramPanchayatUseCase(gps repositories.GramPanchayatRepository) *GramPanchayatUseCase {
	return &GramPanchayatUseCase{gps: gps}
}

func (uc *GramPanchayatUseCase) Create(gp *entities.GramPanchayat) error {
	if gp.Name == "" {
		return &ValidationError{Message: "name is required"}
	}
	return uc.gps.Create(gp)
}

func (uc *GramPanchayatUseCase) GetAll() ([]entities.GramPanchayat, error) {
	return uc.gps.GetAll()
}

func (uc *GramPanchayatUseCase) GetByID(id string) (*entities.GramPanchayat, error) {
	if id == "" {
		return nil, &ValidationError{Message: "id is required"}
	}
	gp, err := uc.gps.GetByID(id)
	if err != nil {
		return nil, &NotFoundError{Message: "Gram Panchayat not found"}
	}
	return gp, nil
}
