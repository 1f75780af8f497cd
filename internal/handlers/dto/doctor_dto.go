package dto

import (
	"strings"
	"time"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
	"github.com/ahbm/hospital-backend/internal/services"
)

// ScheduleRequest é uma escala semanal
type ScheduleRequest struct {
	DayOfWeek string `json:"dayOfWeek" binding:"required,weekday"`
	StartTime string `json:"startTime" binding:"required,hhmm"`
	EndTime   string `json:"endTime" binding:"required,hhmm"`
}

func toSchedules(in []ScheduleRequest) []entities.Schedule {
	out := make([]entities.Schedule, len(in))
	for i, s := range in {
		out[i] = entities.Schedule{
			DayOfWeek: entities.DayOfWeek(s.DayOfWeek),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		}
	}
	return out
}

// CreateDoctorRequest representa o cadastro de um médico
type CreateDoctorRequest struct {
	Name      string            `json:"name" binding:"required,min=2,max=100"`
	Specialty string            `json:"specialty" binding:"required,max=100"`
	CRM       string            `json:"crm" binding:"required,min=1,max=8"`
	State     string            `json:"state" binding:"required,uf"`
	Phone     *string           `json:"phone" binding:"omitempty,br_phone"`
	Email     *string           `json:"email" binding:"omitempty,email"`
	Visible   *bool             `json:"visible"`
	Schedules []ScheduleRequest `json:"schedules" binding:"omitempty,dive"`
}

// ToInput converte para o input do serviço
func (r CreateDoctorRequest) ToInput() services.CreateDoctorInput {
	return services.CreateDoctorInput{
		Name:      r.Name,
		Specialty: r.Specialty,
		CRM:       r.CRM,
		State:     r.State,
		Phone:     r.Phone,
		Email:     r.Email,
		Visible:   r.Visible,
		Schedules: toSchedules(r.Schedules),
	}
}

// UpdateDoctorRequest é o PATCH de médico.
// Schedules presente substitui todas as escalas; [] ou null remove todas.
type UpdateDoctorRequest struct {
	Name      valueobjects.Field[string]            `json:"name" binding:"omitempty,min=2,max=100"`
	Specialty valueobjects.Field[string]            `json:"specialty" binding:"omitempty,max=100"`
	CRM       valueobjects.Field[string]            `json:"crm" binding:"omitempty,min=1,max=8"`
	State     valueobjects.Field[string]            `json:"state" binding:"omitempty,uf"`
	Phone     valueobjects.Field[string]            `json:"phone" binding:"omitempty,br_phone"`
	Email     valueobjects.Field[string]            `json:"email" binding:"omitempty,email"`
	Visible   valueobjects.Field[bool]              `json:"visible"`
	Schedules valueobjects.Field[[]ScheduleRequest] `json:"schedules" binding:"omitempty,dive"`
}

// ToInput converte para o input do serviço
func (r UpdateDoctorRequest) ToInput() services.UpdateDoctorInput {
	input := services.UpdateDoctorInput{
		Name:      r.Name,
		Specialty: r.Specialty,
		CRM:       r.CRM,
		State:     r.State,
		Phone:     r.Phone,
		Email:     r.Email,
		Visible:   r.Visible,
	}

	switch {
	case r.Schedules.IsNull():
		input.Schedules = valueobjects.Null[[]entities.Schedule]()
	case r.Schedules.IsPresent():
		schedules, _ := r.Schedules.Get()
		input.Schedules = valueobjects.Set(toSchedules(schedules))
	}
	return input
}

// ScheduleResponse é uma escala na resposta
type ScheduleResponse struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func toScheduleResponses(in []entities.Schedule) []ScheduleResponse {
	out := make([]ScheduleResponse, len(in))
	for i, s := range in {
		out[i] = ScheduleResponse{DayOfWeek: string(s.DayOfWeek), StartTime: s.StartTime, EndTime: s.EndTime}
	}
	return out
}

// DoctorResponse é a visão completa usada no painel
type DoctorResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Specialty string             `json:"specialty"`
	CRM       string             `json:"crm"`
	State     string             `json:"state"`
	Phone     *string            `json:"phone,omitempty"`
	Email     *string            `json:"email,omitempty"`
	Visible   bool               `json:"visible"`
	Schedules []ScheduleResponse `json:"schedules"`
	CreatedBy UserRefResponse    `json:"createdBy"`
	UpdatedBy *UserRefResponse   `json:"updatedBy,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// ToDoctorResponse converte a entidade
func ToDoctorResponse(doctor *entities.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:        doctor.ID,
		Name:      doctor.Name,
		Specialty: doctor.Specialty,
		CRM:       doctor.CRM,
		State:     strings.ToUpper(doctor.State),
		Phone:     doctor.Phone,
		Email:     doctor.Email,
		Visible:   doctor.Visible,
		Schedules: toScheduleResponses(doctor.Schedules),
		CreatedBy: toUserRef(doctor.CreatedBy),
		UpdatedBy: toOptionalUserRef(doctor.UpdatedBy),
		CreatedAt: doctor.CreatedAt,
		UpdatedAt: doctor.UpdatedAt,
	}
}

// ToDoctorResponses converte uma lista
func ToDoctorResponses(doctors []*entities.Doctor) []DoctorResponse {
	responses := make([]DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = ToDoctorResponse(doctor)
	}
	return responses
}

// PublicDoctorResponse é a projeção exibida no site
type PublicDoctorResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Specialty string             `json:"specialty"`
	State     string             `json:"state"`
	CRM       string             `json:"crm"`
	Schedules []ScheduleResponse `json:"schedules"`
}

// ToPublicDoctorResponses converte a lista pública
func ToPublicDoctorResponses(doctors []*entities.Doctor) []PublicDoctorResponse {
	responses := make([]PublicDoctorResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = PublicDoctorResponse{
			ID:        doctor.ID,
			Name:      doctor.Name,
			Specialty: doctor.Specialty,
			State:     doctor.State,
			CRM:       doctor.CRM,
			Schedules: toScheduleResponses(doctor.Schedules),
		}
	}
	return responses
}
