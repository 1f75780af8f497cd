package services_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	domainerrors "github.com/ahbm/hospital-backend/internal/domain/errors"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/services"
)

func rootInput(username string) services.CreateUserInput {
	return services.CreateUserInput{
		Username: username,
		Password: testPassword,
		Name:     "Provedoria",
		Email:    username + "@ahbm.com.br",
		Role:     entities.RoleJournalist,
	}
}

var _ = Describe("RootService", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	Describe("Status", func() {
		It("informa ausência de root", func() {
			status, err := f.root.Status(f.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(services.RootStatus{}))
		})

		It("informa root inativo", func() {
			f.seedUser("raiz", entities.RoleRoot, false)

			status, err := f.root.Status(f.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(services.RootStatus{Exists: true, Active: false}))
		})

		It("informa root ativo", func() {
			f.seedUser("raiz", entities.RoleRoot, true)

			status, err := f.root.Status(f.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(services.RootStatus{Exists: true, Active: true}))
		})
	})

	Describe("CreateRoot", func() {
		It("cria o root uma única vez, ignorando o papel enviado", func() {
			root, err := f.root.CreateRoot(f.ctx, rootInput("provedoria"))
			Expect(err).NotTo(HaveOccurred())
			Expect(root.Role).To(Equal(entities.RoleRoot))
			Expect(root.Active).To(BeTrue())
			Expect(f.events.types()).To(ContainElement(ports.EventRootCreated))

			_, err = f.root.CreateRoot(f.ctx, rootInput("outro"))
			Expect(err).To(MatchError(domainerrors.ErrRootAlreadyExists))
			Expect(f.countRoots()).To(Equal(1))
		})

		It("bloqueia criação mesmo com root inativo", func() {
			f.seedUser("raiz", entities.RoleRoot, false)

			_, err := f.root.CreateRoot(f.ctx, rootInput("provedoria"))
			Expect(err).To(MatchError(domainerrors.ErrRootAlreadyExists))
		})

		It("rejeita e-mail inválido", func() {
			input := rootInput("provedoria")
			input.Email = "sem-arroba"

			_, err := f.root.CreateRoot(f.ctx, input)
			Expect(err).To(MatchError(domainerrors.ErrInvalidEmail))
		})

		It("aplica as regras da entidade abaixo da API", func() {
			input := rootInput("pro.vedoria")
			_, err := f.root.CreateRoot(f.ctx, input)
			Expect(err).To(MatchError(domainerrors.ErrInvalidUsername))
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindValidation))

			input = rootInput("provedoria")
			input.Name = ""
			_, err = f.root.CreateRoot(f.ctx, input)
			Expect(err).To(MatchError(domainerrors.ErrNameRequired))
			Expect(f.countRoots()).To(Equal(0))
		})

		It("deixa no máximo um root com chamadas concorrentes", func() {
			var wg sync.WaitGroup
			errs := make([]error, 2)

			for i, name := range []string{"primeiro", "segundo"} {
				wg.Add(1)
				go func(i int, name string) {
					defer GinkgoRecover()
					defer wg.Done()
					_, errs[i] = f.root.CreateRoot(f.ctx, rootInput(name))
				}(i, name)
			}
			wg.Wait()

			succeeded := 0
			for _, err := range errs {
				if err == nil {
					succeeded++
				}
			}
			Expect(succeeded).To(Equal(1))
			Expect(f.countRoots()).To(Equal(1))
		})
	})

	Describe("TransferRoot", func() {
		var root, admin *entities.User

		BeforeEach(func() {
			root = f.seedUser("raiz", entities.RoleRoot, true)
			admin = f.seedUser("maria", entities.RoleAdmin, true)
		})

		It("troca os papéis de forma atômica", func() {
			result, err := f.root.TransferRoot(f.ctx, root.ID, "maria", testPassword)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.NewRoot.ID).To(Equal(admin.ID))

			Expect(f.reload(root).Role).To(Equal(entities.RoleAdmin))
			Expect(f.reload(admin).Role).To(Equal(entities.RoleRoot))
			Expect(f.countRoots()).To(Equal(1))
			Expect(f.events.types()).To(ContainElement(ports.EventRootTransferred))
		})

		It("não altera nada quando a transação falha no meio", func() {
			f.users = failOnPromotion{UserRepository: f.users}
			f.wire()

			_, err := f.root.TransferRoot(f.ctx, root.ID, "maria", testPassword)
			Expect(err).To(MatchError(errSimulated))

			Expect(f.reload(root).Role).To(Equal(entities.RoleRoot))
			Expect(f.reload(admin).Role).To(Equal(entities.RoleAdmin))
		})

		It("exige a senha do root", func() {
			_, err := f.root.TransferRoot(f.ctx, root.ID, "maria", "errada")
			Expect(err).To(MatchError(domainerrors.ErrWrongPassword))
			Expect(f.reload(root).Role).To(Equal(entities.RoleRoot))
		})

		It("recusa transferir para si mesmo", func() {
			_, err := f.root.TransferRoot(f.ctx, root.ID, "raiz", testPassword)
			Expect(err).To(MatchError(domainerrors.ErrTransferToSelf))
		})

		It("recusa alvo inexistente", func() {
			_, err := f.root.TransferRoot(f.ctx, root.ID, "fantasma", testPassword)
			Expect(err).To(MatchError(domainerrors.ErrTargetUserNotFound))
		})

		It("recusa jornalista e admin inativo", func() {
			f.seedUser("joao", entities.RoleJournalist, true)
			f.seedUser("ana", entities.RoleAdmin, false)

			_, err := f.root.TransferRoot(f.ctx, root.ID, "joao", testPassword)
			Expect(err).To(MatchError(domainerrors.ErrTransferTargetInvalid))

			_, err = f.root.TransferRoot(f.ctx, root.ID, "ana", testPassword)
			Expect(err).To(MatchError(domainerrors.ErrTransferTargetInvalid))
		})

		It("recusa quem não é root", func() {
			_, err := f.root.TransferRoot(f.ctx, admin.ID, "raiz", testPassword)
			Expect(err).To(MatchError(domainerrors.ErrForbidden))
		})
	})

	Describe("EligibleForTransfer", func() {
		It("lista apenas admins ativos", func() {
			f.seedUser("raiz", entities.RoleRoot, true)
			f.seedUser("maria", entities.RoleAdmin, true)
			f.seedUser("ana", entities.RoleAdmin, false)
			f.seedUser("joao", entities.RoleJournalist, true)

			users, err := f.root.EligibleForTransfer(f.ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(1))
			Expect(users[0].Username).To(Equal("maria"))
		})
	})

	Describe("DeleteUser", func() {
		var root *entities.User

		BeforeEach(func() {
			root = f.seedUser("raiz", entities.RoleRoot, true)
		})

		It("remove usuário comum após conferir a senha", func() {
			joao := f.seedUser("joao", entities.RoleJournalist, true)

			Expect(f.root.DeleteUser(f.ctx, root.ID, "joao", testPassword)).To(Succeed())

			gone, err := f.users.FindByID(f.ctx, joao.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(gone).To(BeNil())
		})

		It("nunca remove o root", func() {
			err := f.root.DeleteUser(f.ctx, root.ID, "raiz", testPassword)
			Expect(err).To(MatchError(domainerrors.ErrCannotDeleteRoot))
		})

		It("falha com senha errada", func() {
			f.seedUser("joao", entities.RoleJournalist, true)

			err := f.root.DeleteUser(f.ctx, root.ID, "joao", "errada")
			Expect(err).To(MatchError(domainerrors.ErrWrongPassword))
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindAuthentication))
		})

		It("falha para usuário inexistente", func() {
			err := f.root.DeleteUser(f.ctx, root.ID, "fantasma", testPassword)
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
		})
	})

	Describe("UpdatePassword", func() {
		It("define a nova senha do usuário", func() {
			joao := f.seedUser("joao", entities.RoleJournalist, true)

			_, err := f.root.UpdatePassword(f.ctx, "joao", "definida-pelo-root")
			Expect(err).NotTo(HaveOccurred())
			Expect(f.hasher.Compare("definida-pelo-root", f.reload(joao).PasswordHash)).To(BeTrue())
		})
	})
})
