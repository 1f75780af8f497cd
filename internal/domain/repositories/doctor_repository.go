package repositories

import (
	"context"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
)

// DoctorRepository define a interface para persistência de médicos e escalas
type DoctorRepository interface {
	Create(ctx context.Context, doctor *entities.Doctor) error
	FindByID(ctx context.Context, id string) (*entities.Doctor, error)
	// Update grava apenas os campos escalares; escalas ficam intactas
	Update(ctx context.Context, doctor *entities.Doctor) error
	// ReplaceSchedules apaga todas as escalas do médico e insere as informadas
	ReplaceSchedules(ctx context.Context, doctorID string, schedules []entities.Schedule) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params listquery.Params) ([]*entities.Doctor, int64, error)
}

var (
	DoctorFilterFields       = []string{"name", "specialty", "crm"}
	DoctorSortFields         = []string{"createdAt", "name", "visible"}
	PublicDoctorFilterFields = []string{"name", "specialty", "crm", "state"}
	PublicDoctorSortFields   = []string{"name", "specialty"}
)
