package services_test

import (
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	domainerrors "github.com/ahbm/hospital-backend/internal/domain/errors"
	"github.com/ahbm/hospital-backend/internal/infrastructure/security"
)

var _ = Describe("AuthService", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	Describe("Login", func() {
		It("emite token para credenciais válidas", func() {
			f.seedUser("maria", entities.RoleAdmin, true)

			session, err := f.auth.Login(f.ctx, "Maria", testPassword)
			Expect(err).NotTo(HaveOccurred())
			Expect(session.Token).NotTo(BeEmpty())
			Expect(session.User.Username).To(Equal("maria"))
			Expect(session.RootInactive).To(BeFalse())
		})

		It("rejeita senha errada", func() {
			f.seedUser("maria", entities.RoleAdmin, true)

			_, err := f.auth.Login(f.ctx, "maria", "outra-senha")
			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
		})

		It("rejeita usuário inexistente com o mesmo erro", func() {
			_, err := f.auth.Login(f.ctx, "fantasma", testPassword)
			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
		})

		It("rejeita usuário inativo", func() {
			f.seedUser("joao", entities.RoleJournalist, false)

			_, err := f.auth.Login(f.ctx, "joao", testPassword)
			Expect(err).To(MatchError(domainerrors.ErrInvalidCredentials))
		})

		It("avisa quando o root está inativo", func() {
			f.seedUser("raiz", entities.RoleRoot, false)
			f.seedUser("maria", entities.RoleAdmin, true)

			session, err := f.auth.Login(f.ctx, "maria", testPassword)
			Expect(err).NotTo(HaveOccurred())
			Expect(session.RootInactive).To(BeTrue())
		})
	})

	Describe("Authenticate", func() {
		var user *entities.User
		var token string

		BeforeEach(func() {
			user = f.seedUser("maria", entities.RoleAdmin, true)
			session, err := f.auth.IssueSession(user)
			Expect(err).NotTo(HaveOccurred())
			token = session.Token
		})

		It("carrega o usuário do token", func() {
			got, err := f.auth.Authenticate(f.ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(user.ID))
		})

		It("falha quando o usuário foi removido", func() {
			Expect(f.users.Delete(f.ctx, user.ID)).To(Succeed())

			_, err := f.auth.Authenticate(f.ctx, token)
			Expect(err).To(MatchError(domainerrors.ErrTokenUserGone))
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindAuthentication))
		})

		It("falha com 403 quando o usuário foi desativado", func() {
			user.Active = false
			Expect(f.users.Update(f.ctx, user)).To(Succeed())

			_, err := f.auth.Authenticate(f.ctx, token)
			Expect(err).To(MatchError(domainerrors.ErrUserInactive))
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindAuthorization))
		})

		It("invalida tokens emitidos antes da troca de senha", func() {
			later := time.Now().Add(5 * time.Second)
			user.PasswordChangedAt = &later
			Expect(f.users.Update(f.ctx, user)).To(Succeed())

			_, err := f.auth.Authenticate(f.ctx, token)
			Expect(err).To(MatchError(domainerrors.ErrPasswordChanged))
		})

		It("repassa erros de assinatura", func() {
			other := security.NewJWTSessions("outro-segredo-com-pelo-menos-32b", time.Hour)
			forged, err := other.Issue(user.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = f.auth.Authenticate(f.ctx, forged)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ForgotPassword / ResetPassword", func() {
		var user *entities.User

		BeforeEach(func() {
			user = f.seedUser("maria", entities.RoleJournalist, true)
		})

		It("envia o token em texto puro e guarda apenas o hash", func() {
			Expect(f.auth.ForgotPassword(f.ctx, "maria", "pt-BR")).To(Succeed())

			Expect(f.mailer.sent).To(HaveLen(1))
			msg := f.mailer.sent[0]
			Expect(msg.To).To(Equal("maria@ahbm.com.br"))
			Expect(msg.Language).To(Equal("pt-BR"))

			plain := msg.ResetURL[strings.LastIndex(msg.ResetURL, "/")+1:]
			stored := f.reload(user)
			Expect(stored.PasswordResetToken).NotTo(BeNil())
			Expect(*stored.PasswordResetToken).NotTo(Equal(plain))
			Expect(*stored.PasswordResetToken).To(Equal(security.NewResetTokenGenerator().Hash(plain)))
			Expect(*stored.PasswordResetExpires).To(BeTemporally("~", time.Now().Add(10*time.Minute), 5*time.Second))
		})

		It("redefine a senha uma única vez com o token", func() {
			Expect(f.auth.ForgotPassword(f.ctx, "maria", "pt-BR")).To(Succeed())
			url := f.mailer.sent[0].ResetURL
			plain := url[strings.LastIndex(url, "/")+1:]

			Expect(f.auth.ResetPassword(f.ctx, plain, "nova-senha-456")).To(Succeed())

			stored := f.reload(user)
			Expect(stored.PasswordResetToken).To(BeNil())
			Expect(stored.PasswordChangedAt).NotTo(BeNil())

			_, err := f.auth.Login(f.ctx, "maria", "nova-senha-456")
			Expect(err).NotTo(HaveOccurred())

			err = f.auth.ResetPassword(f.ctx, plain, "terceira-senha")
			Expect(err).To(MatchError(domainerrors.ErrResetTokenInvalid))
		})

		It("rejeita token expirado", func() {
			Expect(f.auth.ForgotPassword(f.ctx, "maria", "en")).To(Succeed())
			url := f.mailer.sent[0].ResetURL
			plain := url[strings.LastIndex(url, "/")+1:]

			stored := f.reload(user)
			past := time.Now().Add(-time.Minute)
			stored.PasswordResetExpires = &past
			Expect(f.users.Update(f.ctx, stored)).To(Succeed())

			err := f.auth.ResetPassword(f.ctx, plain, "nova-senha-456")
			Expect(err).To(MatchError(domainerrors.ErrResetTokenInvalid))
		})

		It("descarta o token quando o e-mail falha", func() {
			f.mailer.err = errors.New("smtp indisponível")

			err := f.auth.ForgotPassword(f.ctx, "maria", "pt-BR")
			Expect(err).To(MatchError(domainerrors.ErrEmailDelivery))
			Expect(domainerrors.KindOf(err)).To(Equal(domainerrors.KindUnexpected))

			stored := f.reload(user)
			Expect(stored.PasswordResetToken).To(BeNil())
			Expect(stored.PasswordResetExpires).To(BeNil())
		})

		It("falha para usuário inexistente", func() {
			err := f.auth.ForgotPassword(f.ctx, "fantasma", "pt-BR")
			Expect(err).To(MatchError(domainerrors.ErrUserNotFound))
			Expect(f.mailer.sent).To(BeEmpty())
		})
	})

	Describe("UpdateMyPassword", func() {
		It("exige a senha atual", func() {
			user := f.seedUser("maria", entities.RoleJournalist, true)

			_, err := f.auth.UpdateMyPassword(f.ctx, user.ID, "errada", "nova-senha-456")
			Expect(err).To(MatchError(domainerrors.ErrWrongCurrentPassword))

			updated, err := f.auth.UpdateMyPassword(f.ctx, user.ID, testPassword, "nova-senha-456")
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.PasswordChangedAt).NotTo(BeNil())
			Expect(f.hasher.Compare("nova-senha-456", f.reload(user).PasswordHash)).To(BeTrue())
		})
	})
})
