package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	domainerrors "github.com/ahbm/hospital-backend/internal/domain/errors"
	"github.com/ahbm/hospital-backend/internal/domain/listquery"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
	"github.com/ahbm/hospital-backend/internal/services"
)

var _ = Describe("DoctorService", func() {
	var (
		f     *fixture
		admin *entities.User
	)

	weekSchedules := []entities.Schedule{
		{DayOfWeek: entities.Monday, StartTime: "08:00", EndTime: "12:00"},
		{DayOfWeek: entities.Wednesday, StartTime: "13:00", EndTime: "17:30"},
	}

	create := func(name string, visible bool) *entities.Doctor {
		doctor, err := f.doctor.CreateDoctor(f.ctx, admin, services.CreateDoctorInput{
			Name:      name,
			Specialty: "Cardiologia",
			CRM:       "123456",
			State:     "sp",
			Visible:   &visible,
			Schedules: weekSchedules,
		})
		Expect(err).NotTo(HaveOccurred())
		return doctor
	}

	BeforeEach(func() {
		f = newFixture()
		admin = f.seedUser("maria", entities.RoleAdmin, true)
	})

	Describe("CreateDoctor", func() {
		It("cadastra o médico com as escalas em ordem", func() {
			doctor := create("Dra. Ana", true)
			Expect(doctor.State).To(Equal("SP"))

			stored, err := f.doctor.GetDoctor(f.ctx, doctor.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Schedules).To(Equal(weekSchedules))
			Expect(stored.CreatedBy.Username).To(Equal("maria"))
		})

		It("recusa escala que termina antes de começar", func() {
			_, err := f.doctor.CreateDoctor(f.ctx, admin, services.CreateDoctorInput{
				Name:      "Dr. Bruno",
				Specialty: "Pediatria",
				CRM:       "654321",
				State:     "PR",
				Schedules: []entities.Schedule{{DayOfWeek: entities.Friday, StartTime: "18:00", EndTime: "08:00"}},
			})
			Expect(err).To(MatchError(domainerrors.ErrScheduleRange))
		})
	})

	Describe("UpdateDoctor", func() {
		It("lista vazia remove todas as escalas e grava os campos enviados", func() {
			doctor := create("Dra. Ana", true)

			updated, err := f.doctor.UpdateDoctor(f.ctx, admin, doctor.ID, services.UpdateDoctorInput{
				Name:      valueobjects.Set("Dra. Ana Souza"),
				Specialty: valueobjects.Set("Cardiologia Pediátrica"),
				Schedules: valueobjects.Set([]entities.Schedule{}),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Schedules).To(BeEmpty())
			Expect(updated.Name).To(Equal("Dra. Ana Souza"))
			Expect(updated.Specialty).To(Equal("Cardiologia Pediátrica"))
			Expect(updated.CRM).To(Equal("123456"))
			Expect(updated.UpdatedBy).NotTo(BeNil())
		})

		It("mantém as escalas quando o campo não é enviado", func() {
			doctor := create("Dra. Ana", true)

			updated, err := f.doctor.UpdateDoctor(f.ctx, admin, doctor.ID, services.UpdateDoctorInput{
				Phone: valueobjects.Set("14999990000"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Schedules).To(Equal(weekSchedules))
			Expect(*updated.Phone).To(Equal("14999990000"))
		})

		It("substitui as escalas pelo novo conjunto", func() {
			doctor := create("Dra. Ana", true)
			replacement := []entities.Schedule{{DayOfWeek: entities.Saturday, StartTime: "07:00", EndTime: "11:00"}}

			updated, err := f.doctor.UpdateDoctor(f.ctx, admin, doctor.ID, services.UpdateDoctorInput{
				Schedules: valueobjects.Set(replacement),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Schedules).To(Equal(replacement))
		})

		It("falha para médico inexistente", func() {
			_, err := f.doctor.UpdateDoctor(f.ctx, admin, "00000000-0000-0000-0000-000000000000", services.UpdateDoctorInput{
				Name: valueobjects.Set("Ninguém"),
			})
			Expect(err).To(MatchError(domainerrors.ErrDoctorNotFound))
		})
	})

	Describe("visibilidade", func() {
		It("alterna sem mexer nas escalas", func() {
			doctor := create("Dra. Ana", true)

			toggled, err := f.doctor.ToggleVisibility(f.ctx, admin, doctor.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(toggled.Visible).To(BeFalse())
			Expect(f.events.types()).To(ContainElement(ports.EventDoctorVisibility))

			stored, err := f.doctor.GetDoctor(f.ctx, doctor.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Visible).To(BeFalse())
			Expect(stored.Schedules).To(HaveLen(2))
		})

		It("a listagem pública traz só os visíveis em ordem de nome", func() {
			create("Carlos Melo", true)
			create("Ana Lima", true)
			create("Otávio Reis", false)

			params := listquery.Params{Page: 1, Limit: 10}.WithFilter("visible", listquery.Predicate{
				Operator: listquery.OpEq,
				Value:    "false",
			})

			page, err := f.doctor.ListVisibleDoctors(f.ctx, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(2))
			Expect(page.Items[0].Name).To(Equal("Ana Lima"))
			Expect(page.Items[1].Name).To(Equal("Carlos Melo"))
		})
	})

	Describe("DeleteDoctor", func() {
		It("remove o médico e as escalas", func() {
			doctor := create("Dra. Ana", true)

			Expect(f.doctor.DeleteDoctor(f.ctx, doctor.ID)).To(Succeed())
			_, err := f.doctor.GetDoctor(f.ctx, doctor.ID)
			Expect(err).To(MatchError(domainerrors.ErrDoctorNotFound))
		})
	})
})
