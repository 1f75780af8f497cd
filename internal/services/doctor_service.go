package services

import (
	"context"
	"strings"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/errors"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/domain/repositories"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
)

// DoctorService contém a lógica de negócio do corpo clínico
type DoctorService struct {
	doctorRepo repositories.DoctorRepository
	uow        ports.UnitOfWork
	events     ports.EventPublisher
	logger     ports.Logger
}

// NewDoctorService cria um novo DoctorService
func NewDoctorService(
	doctorRepo repositories.DoctorRepository,
	uow ports.UnitOfWork,
	events ports.EventPublisher,
	logger ports.Logger,
) *DoctorService {
	return &DoctorService{
		doctorRepo: doctorRepo,
		uow:        uow,
		events:     events,
		logger:     logger,
	}
}

// CreateDoctorInput representa os dados para cadastrar um médico
type CreateDoctorInput struct {
	Name      string
	Specialty string
	CRM       string
	State     string
	Phone     *string
	Email     *string
	Visible   *bool
	Schedules []entities.Schedule
}

// CreateDoctor cadastra o médico com suas escalas
func (s *DoctorService) CreateDoctor(ctx context.Context, actor *entities.User, input CreateDoctorInput) (*entities.Doctor, error) {
	if err := validateSchedules(input.Schedules); err != nil {
		return nil, err
	}

	visible := true
	if input.Visible != nil {
		visible = *input.Visible
	}

	doctor := &entities.Doctor{
		Name:      strings.TrimSpace(input.Name),
		Specialty: strings.TrimSpace(input.Specialty),
		CRM:       strings.TrimSpace(input.CRM),
		State:     strings.ToUpper(input.State),
		Phone:     input.Phone,
		Email:     input.Email,
		Visible:   visible,
		Schedules: input.Schedules,
		CreatedBy: refOf(actor),
	}

	if err := s.doctorRepo.Create(ctx, doctor); err != nil {
		return nil, err
	}

	s.logger.Info("doctor created", "doctor_id", doctor.ID, "by", actor.ID)
	return doctor, nil
}

// GetDoctor busca um médico pelo ID
func (s *DoctorService) GetDoctor(ctx context.Context, id string) (*entities.Doctor, error) {
	doctor, err := s.doctorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, errors.ErrDoctorNotFound
	}
	return doctor, nil
}

// ListDoctors lista todos os médicos
func (s *DoctorService) ListDoctors(ctx context.Context, params listquery.Params) (*Page[*entities.Doctor], error) {
	doctors, total, err := s.doctorRepo.List(ctx, params.WithDefaultSort("createdAt", listquery.Desc))
	if err != nil {
		return nil, err
	}
	return newPage(doctors, total, params), nil
}

// ListVisibleDoctors lista apenas médicos visíveis no site, ordenados por nome
func (s *DoctorService) ListVisibleDoctors(ctx context.Context, params listquery.Params) (*Page[*entities.Doctor], error) {
	params = params.
		WithFilter("visible", listquery.Predicate{Operator: listquery.OpEq, Value: "true"}).
		WithDefaultSort("name", listquery.Asc)
	return s.ListDoctors(ctx, params)
}

// UpdateDoctorInput são os campos alteráveis de um médico.
// Schedules presente substitui todas as escalas (lista vazia remove todas).
type UpdateDoctorInput struct {
	Name      valueobjects.Field[string]
	Specialty valueobjects.Field[string]
	CRM       valueobjects.Field[string]
	State     valueobjects.Field[string]
	Phone     valueobjects.Field[string]
	Email     valueobjects.Field[string]
	Visible   valueobjects.Field[bool]
	Schedules valueobjects.Field[[]entities.Schedule]
}

// UpdateDoctor grava campos e escalas na mesma transação
func (s *DoctorService) UpdateDoctor(ctx context.Context, actor *entities.User, id string, input UpdateDoctorInput) (*entities.Doctor, error) {
	schedules, replaceSchedules := input.Schedules.Get()
	if input.Schedules.IsNull() {
		schedules, replaceSchedules = []entities.Schedule{}, true
	}
	if err := validateSchedules(schedules); err != nil {
		return nil, err
	}

	var updated *entities.Doctor
	err := s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		doctor, err := s.doctorRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		if doctor == nil {
			return errors.ErrDoctorNotFound
		}

		if v, ok := input.Name.Get(); ok {
			doctor.Name = strings.TrimSpace(v)
		}
		if v, ok := input.Specialty.Get(); ok {
			doctor.Specialty = strings.TrimSpace(v)
		}
		if v, ok := input.CRM.Get(); ok {
			doctor.CRM = strings.TrimSpace(v)
		}
		if v, ok := input.State.Get(); ok {
			doctor.State = strings.ToUpper(v)
		}
		if v, ok := input.Visible.Get(); ok {
			doctor.Visible = v
		}
		if input.Phone.IsPresent() {
			doctor.Phone = input.Phone.Ptr()
		}
		if input.Email.IsPresent() {
			doctor.Email = input.Email.Ptr()
		}

		ref := refOf(actor)
		doctor.UpdatedBy = &ref

		if err := s.doctorRepo.Update(txCtx, doctor); err != nil {
			return err
		}

		if replaceSchedules {
			if err := s.doctorRepo.ReplaceSchedules(txCtx, doctor.ID, schedules); err != nil {
				return err
			}
		}

		updated, err = s.doctorRepo.FindByID(txCtx, doctor.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("doctor updated", "doctor_id", id, "schedules_replaced", replaceSchedules, "by", actor.ID)
	return updated, nil
}

// DeleteDoctor remove o médico e suas escalas
func (s *DoctorService) DeleteDoctor(ctx context.Context, id string) error {
	if _, err := s.GetDoctor(ctx, id); err != nil {
		return err
	}
	return s.doctorRepo.Delete(ctx, id)
}

// ToggleVisibility alterna a exibição do médico no site
func (s *DoctorService) ToggleVisibility(ctx context.Context, actor *entities.User, id string) (*entities.Doctor, error) {
	doctor, err := s.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}

	visible := doctor.ToggleVisibility()
	ref := refOf(actor)
	doctor.UpdatedBy = &ref

	if err := s.doctorRepo.Update(ctx, doctor); err != nil {
		return nil, err
	}

	publish(ctx, s.events, ports.Event{
		Type:    ports.EventDoctorVisibility,
		ActorID: actor.ID,
		Subject: doctor.ID,
		Payload: map[string]any{"visible": visible, "name": doctor.Name},
	})

	return doctor, nil
}

// validateSchedules garante que cada escala termina depois de começar
func validateSchedules(schedules []entities.Schedule) error {
	for _, sc := range schedules {
		// HH:mm compara corretamente como texto
		if sc.EndTime <= sc.StartTime {
			return errors.ErrScheduleRange
		}
	}
	return nil
}
