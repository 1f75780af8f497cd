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

func newUserInput(username string, role entities.Role) services.CreateUserInput {
	return services.CreateUserInput{
		Username: username,
		Password: testPassword,
		Name:     "Novo " + username,
		Email:    username + "@ahbm.com.br",
		Role:     role,
	}
}

var _ = Describe("UserService", func() {
	var (
		f                 *fixture
		root, admin, joao *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		root = f.seedUser("raiz", entities.RoleRoot, true)
		admin = f.seedUser("maria", entities.RoleAdmin, true)
		joao = f.seedUser("joao", entities.RoleJournalist, true)
	})

	Describe("CreateUser", func() {
		It("root cria admin", func() {
			user, err := f.user.CreateUser(f.ctx, root, newUserInput("ana", entities.RoleAdmin))
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal(entities.RoleAdmin))
			Expect(user.PasswordHash).NotTo(Equal(testPassword))
			Expect(f.events.types()).To(ContainElement(ports.EventUserCreated))
		})

		It("rejeita username fora do padrão", func() {
			_, err := f.user.CreateUser(f.ctx, root, newUserInput("ana_maria", entities.RoleJournalist))
			Expect(err).To(MatchError(domainerrors.ErrInvalidUsername))
		})

		It("root não cria um segundo root", func() {
			_, err := f.user.CreateUser(f.ctx, root, newUserInput("ana", entities.RoleRoot))
			Expect(err).To(MatchError(domainerrors.ErrCannotCreateRole))
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindAuthorization))
		})

		It("admin só cria jornalista, qualquer que seja o pedido", func() {
			user, err := f.user.CreateUser(f.ctx, admin, newUserInput("ana", entities.RoleAdmin))
			Expect(err).NotTo(HaveOccurred())
			Expect(user.Role).To(Equal(entities.RoleJournalist))
		})

		It("jornalista não cria usuários", func() {
			_, err := f.user.CreateUser(f.ctx, joao, newUserInput("ana", entities.RoleJournalist))
			Expect(err).To(MatchError(domainerrors.ErrCannotCreateRole))
		})

		It("rejeita username e e-mail repetidos", func() {
			_, err := f.user.CreateUser(f.ctx, root, newUserInput("joao", entities.RoleJournalist))
			Expect(err).To(MatchError(domainerrors.ErrUsernameAlreadyExists))

			input := newUserInput("ana", entities.RoleJournalist)
			input.Email = "joao@ahbm.com.br"
			_, err = f.user.CreateUser(f.ctx, root, input)
			Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
		})
	})

	Describe("UpdateUser", func() {
		DescribeTable("e-mail nulo sempre falha com erro de validação",
			func(requester, target func() *entities.User) {
				input := services.UpdateUserInput{}
				input.Email = valueobjects.Null[string]()
				input.Name = valueobjects.Set("Outro Nome")

				_, err := f.user.UpdateUser(f.ctx, requester(), target().Username, input)
				Expect(err).To(MatchError(domainerrors.ErrEmailRequired))
				Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindValidation))
			},
			Entry("root editando jornalista", func() *entities.User { return root }, func() *entities.User { return joao }),
			Entry("root editando admin", func() *entities.User { return root }, func() *entities.User { return admin }),
			Entry("root editando a si mesmo", func() *entities.User { return root }, func() *entities.User { return root }),
			Entry("admin editando jornalista", func() *entities.User { return admin }, func() *entities.User { return joao }),
			Entry("admin editando root", func() *entities.User { return admin }, func() *entities.User { return root }),
			Entry("jornalista editando a si mesmo", func() *entities.User { return joao }, func() *entities.User { return joao }),
		)

		It("admin não edita outro admin nem o root", func() {
			f.seedUser("ana", entities.RoleAdmin, true)
			input := services.UpdateUserInput{}
			input.Name = valueobjects.Set("Outro")

			_, err := f.user.UpdateUser(f.ctx, admin, "ana", input)
			Expect(err).To(MatchError(domainerrors.ErrHierarchy))

			_, err = f.user.UpdateUser(f.ctx, admin, "raiz", input)
			Expect(err).To(MatchError(domainerrors.ErrHierarchy))
		})

		It("ignora o papel quando quem pede não é root", func() {
			input := services.UpdateUserInput{Role: valueobjects.Set(entities.RoleAdmin)}

			updated, err := f.user.UpdateUser(f.ctx, admin, "joao", input)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Role).To(Equal(entities.RoleJournalist))
		})

		It("root promove jornalista a admin", func() {
			input := services.UpdateUserInput{Role: valueobjects.Set(entities.RoleAdmin)}

			updated, err := f.user.UpdateUser(f.ctx, root, "joao", input)
			Expect(err).NotTo(HaveOccurred())
			Expect(f.reload(updated).Role).To(Equal(entities.RoleAdmin))
		})

		It("nunca atribui o papel root", func() {
			input := services.UpdateUserInput{Role: valueobjects.Set(entities.RoleRoot)}

			_, err := f.user.UpdateUser(f.ctx, root, "maria", input)
			Expect(err).To(MatchError(domainerrors.ErrCannotAssignRoot))
			Expect(f.countRoots()).To(Equal(1))
		})

		It("não rebaixa o root", func() {
			input := services.UpdateUserInput{Role: valueobjects.Set(entities.RoleAdmin)}

			_, err := f.user.UpdateUser(f.ctx, root, "raiz", input)
			Expect(err).To(MatchError(domainerrors.ErrCannotChangeRootRole))
		})

		It("reativa usuário desativado", func() {
			f.seedUser("ana", entities.RoleJournalist, false)
			input := services.UpdateUserInput{Active: valueobjects.Set(true)}

			updated, err := f.user.UpdateUser(f.ctx, admin, "ana", input)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Active).To(BeTrue())
		})

		It("recusa e-mail de outro usuário", func() {
			input := services.UpdateUserInput{}
			input.Email = valueobjects.Set("maria@ahbm.com.br")

			_, err := f.user.UpdateUser(f.ctx, root, "joao", input)
			Expect(err).To(MatchError(domainerrors.ErrEmailAlreadyExists))
		})
	})

	Describe("ToggleUserActive", func() {
		It("alterna o status de um jornalista", func() {
			updated, err := f.user.ToggleUserActive(f.ctx, admin, "joao")
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Active).To(BeFalse())

			updated, err = f.user.ToggleUserActive(f.ctx, admin, "joao")
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Active).To(BeTrue())
		})

		It("nunca desativa o root", func() {
			_, err := f.user.ToggleUserActive(f.ctx, root, "raiz")
			Expect(err).To(MatchError(domainerrors.ErrCannotDeactivateRoot))
		})

		It("não alterna a própria conta", func() {
			_, err := f.user.ToggleUserActive(f.ctx, admin, "maria")
			Expect(err).To(MatchError(domainerrors.ErrCannotToggleSelf))
		})
	})

	Describe("UpdateMe", func() {
		It("altera o perfil e remove campos opcionais enviados como null", func() {
			joao.Phone = strPtr("11999990000")
			Expect(f.users.Update(f.ctx, joao)).To(Succeed())

			updated, err := f.user.UpdateMe(f.ctx, joao.ID, services.ProfileInput{
				Name:  valueobjects.Set("João Silva"),
				Email: valueobjects.Set("JOAO.SILVA@ahbm.com.br"),
				Phone: valueobjects.Null[string](),
			})
			Expect(err).NotTo(HaveOccurred())

			stored := f.reload(updated)
			Expect(stored.Name).To(Equal("João Silva"))
			Expect(stored.Email.String()).To(Equal("joao.silva@ahbm.com.br"))
			Expect(stored.Phone).To(BeNil())
		})

		It("recusa e-mail nulo", func() {
			_, err := f.user.UpdateMe(f.ctx, joao.ID, services.ProfileInput{Email: valueobjects.Null[string]()})
			Expect(err).To(MatchError(domainerrors.ErrEmailRequired))
		})
	})

	Describe("DeactivateOwnAccount", func() {
		It("root não pode se desativar", func() {
			err := f.user.DeactivateOwnAccount(f.ctx, root.ID)
			Expect(err).To(MatchError(domainerrors.ErrCannotDeactivateRoot))
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindAuthorization))
			Expect(f.reload(root).Active).To(BeTrue())
		})

		It("desativa a conta de quem não é root", func() {
			Expect(f.user.DeactivateOwnAccount(f.ctx, joao.ID)).To(Succeed())
			Expect(f.reload(joao).Active).To(BeFalse())
			Expect(f.events.types()).To(ContainElement(ports.EventAccountDeactivated))
		})
	})

	Describe("ListUsers", func() {
		It("pagina e conta o total do filtro", func() {
			page, err := f.user.ListUsers(f.ctx, listquery.Params{Page: 1, Limit: 2, Skip: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(2))
			Expect(page.Total).To(BeEquivalentTo(3))
			Expect(page.TotalPages()).To(Equal(2))
		})

		It("filtra por papel", func() {
			params := listquery.Params{Page: 1, Limit: 10}.WithFilter("role", listquery.Predicate{
				Operator: listquery.OpEq,
				Value:    "admin",
			})

			page, err := f.user.ListUsers(f.ctx, params)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].Username).To(Equal("maria"))
		})
	})
})
