package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
	"github.com/ahbm/hospital-backend/internal/domain/repositories"
)

var doctorColumns = columns{
	"name":      {name: "name"},
	"specialty": {name: "specialty"},
	"crm":       {name: "crm"},
	"state":     {name: "state"},
	"visible":   {name: "visible", boolean: true},
	"createdAt": {name: "created_at"},
}

// DoctorRepository implementa repositories.DoctorRepository
type DoctorRepository struct {
	db *gorm.DB
}

// NewDoctorRepository cria um novo DoctorRepository
func NewDoctorRepository(db *gorm.DB) repositories.DoctorRepository {
	return &DoctorRepository{db: db}
}

// Create insere o médico e suas escalas na mesma transação
func (r *DoctorRepository) Create(ctx context.Context, doctor *entities.Doctor) error {
	if doctor.ID == "" {
		doctor.ID = uuid.NewString()
	}
	model := toDoctorModel(doctor)

	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Schedules", "CreatedBy", "UpdatedBy").Create(model).Error; err != nil {
			return err
		}
		return insertSchedules(tx, doctor.ID, doctor.Schedules)
	})
	if err != nil {
		return err
	}

	doctor.CreatedAt = time.UnixMilli(model.CreatedAt)
	doctor.UpdatedAt = time.UnixMilli(model.UpdatedAt)
	return nil
}

func (r *DoctorRepository) FindByID(ctx context.Context, id string) (*entities.Doctor, error) {
	var model DoctorModel

	if err := r.getDB(ctx).Scopes(preloadDoctorRelations).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDoctorEntity(&model), nil
}

func (r *DoctorRepository) Update(ctx context.Context, doctor *entities.Doctor) error {
	model := toDoctorModel(doctor)
	now := time.Now()

	result := r.getDB(ctx).Model(&DoctorModel{}).Where("id = ?", doctor.ID).Updates(map[string]interface{}{
		"name":          model.Name,
		"specialty":     model.Specialty,
		"crm":           model.CRM,
		"state":         model.State,
		"phone":         model.Phone,
		"email":         model.Email,
		"visible":       model.Visible,
		"updated_by_id": model.UpdatedByID,
		"updated_at":    now.UnixMilli(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	doctor.UpdatedAt = time.UnixMilli(now.UnixMilli())
	return nil
}

// ReplaceSchedules apaga todas as escalas e insere o novo conjunto (vazio zera as escalas)
func (r *DoctorRepository) ReplaceSchedules(ctx context.Context, doctorID string, schedules []entities.Schedule) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&ScheduleModel{}).Error; err != nil {
			return err
		}
		return insertSchedules(tx, doctorID, schedules)
	})
}

func (r *DoctorRepository) Delete(ctx context.Context, id string) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", id).Delete(&ScheduleModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&DoctorModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *DoctorRepository) List(ctx context.Context, params listquery.Params) ([]*entities.Doctor, int64, error) {
	var models []*DoctorModel

	total, err := findPage(ctx, r.getDB(ctx), params, doctorColumns, &models, preloadDoctorRelations)
	if err != nil {
		return nil, 0, err
	}

	doctors := make([]*entities.Doctor, 0, len(models))
	for _, model := range models {
		doctors = append(doctors, toDoctorEntity(model))
	}
	return doctors, total, nil
}

func (r *DoctorRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFrom(ctx, r.db)
}

func insertSchedules(tx *gorm.DB, doctorID string, schedules []entities.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}

	models := make([]ScheduleModel, 0, len(schedules))
	for i, s := range schedules {
		models = append(models, ScheduleModel{
			ID:        uuid.NewString(),
			DoctorID:  doctorID,
			Position:  i,
			DayOfWeek: string(s.DayOfWeek),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	return tx.Create(&models).Error
}

func preloadDoctorRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Schedules", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("CreatedBy").
		Preload("UpdatedBy")
}

func toDoctorModel(doctor *entities.Doctor) *DoctorModel {
	model := &DoctorModel{
		ID:          doctor.ID,
		Name:        doctor.Name,
		Specialty:   doctor.Specialty,
		CRM:         doctor.CRM,
		State:       doctor.State,
		Phone:       doctor.Phone,
		Email:       doctor.Email,
		Visible:     doctor.Visible,
		CreatedByID: doctor.CreatedBy.ID,
		CreatedAt:   millisOrZero(doctor.CreatedAt),
		UpdatedAt:   millisOrZero(doctor.UpdatedAt),
	}
	if doctor.UpdatedBy != nil {
		model.UpdatedByID = &doctor.UpdatedBy.ID
	}
	return model
}

func toDoctorEntity(model *DoctorModel) *entities.Doctor {
	doctor := &entities.Doctor{
		ID:        model.ID,
		Name:      model.Name,
		Specialty: model.Specialty,
		CRM:       model.CRM,
		State:     model.State,
		Phone:     model.Phone,
		Email:     model.Email,
		Visible:   model.Visible,
		Schedules: make([]entities.Schedule, 0, len(model.Schedules)),
		CreatedBy: toUserRef(&model.CreatedBy),
		CreatedAt: time.UnixMilli(model.CreatedAt),
		UpdatedAt: time.UnixMilli(model.UpdatedAt),
	}
	for _, s := range model.Schedules {
		doctor.Schedules = append(doctor.Schedules, entities.Schedule{
			DayOfWeek: entities.DayOfWeek(s.DayOfWeek),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}
	if model.UpdatedBy != nil {
		ref := toUserRef(model.UpdatedBy)
		doctor.UpdatedBy = &ref
	}
	return doctor
}
