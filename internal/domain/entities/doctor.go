package entities

import (
	"regexp"
	"time"
)

// DayOfWeek é o dia de atendimento de uma escala
type DayOfWeek string

const (
	Monday    DayOfWeek = "segunda"
	Tuesday   DayOfWeek = "terca"
	Wednesday DayOfWeek = "quarta"
	Thursday  DayOfWeek = "quinta"
	Friday    DayOfWeek = "sexta"
	Saturday  DayOfWeek = "sabado"
	Sunday    DayOfWeek = "domingo"
)

// DaysOfWeek em ordem de exibição
var DaysOfWeek = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid verifica se o dia existe
func (d DayOfWeek) IsValid() bool {
	for _, day := range DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// States são as unidades federativas aceitas no registro do CRM
var States = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG", "PA",
	"PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

// IsValidState verifica se a UF existe
func IsValidState(uf string) bool {
	for _, s := range States {
		if s == uf {
			return true
		}
	}
	return false
}

var clockPattern = regexp.MustCompile(`^([0-1]\d|2[0-3]):[0-5]\d$`)

// IsValidClock verifica o formato HH:mm
func IsValidClock(value string) bool {
	return clockPattern.MatchString(value)
}

// Schedule é um horário semanal de atendimento
type Schedule struct {
	DayOfWeek DayOfWeek
	StartTime string
	EndTime   string
}

// Doctor representa um médico do corpo clínico
type Doctor struct {
	ID        string
	Name      string
	Specialty string
	CRM       string
	State     string
	Phone     *string
	Email     *string
	Visible   bool
	Schedules []Schedule
	CreatedBy UserRef
	UpdatedBy *UserRef
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToggleVisibility alterna a exibição no site e retorna o novo valor
func (d *Doctor) ToggleVisibility() bool {
	d.Visible = !d.Visible
	return d.Visible
}
