package services

import (
	"context"
	"strings"
	"time"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/errors"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/domain/repositories"
)

// ResetTokenTTL é a validade do token de redefinição de senha
const ResetTokenTTL = 10 * time.Minute

// AuthService cuida de login, sessão e redefinição de senha
type AuthService struct {
	userRepo     repositories.UserRepository
	hasher       ports.PasswordHasher
	sessions     ports.SessionTokens
	resetTokens  ports.ResetTokens
	mailer       ports.Mailer
	logger       ports.Logger
	resetBaseURL string
	now          func() time.Time
}

// NewAuthService cria um novo AuthService.
// resetBaseURL recebe o token no final: <resetBaseURL>/<token>.
func NewAuthService(
	userRepo repositories.UserRepository,
	hasher ports.PasswordHasher,
	sessions ports.SessionTokens,
	resetTokens ports.ResetTokens,
	mailer ports.Mailer,
	logger ports.Logger,
	resetBaseURL string,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		hasher:       hasher,
		sessions:     sessions,
		resetTokens:  resetTokens,
		mailer:       mailer,
		logger:       logger,
		resetBaseURL: strings.TrimRight(resetBaseURL, "/"),
		now:          time.Now,
	}
}

// Session é o resultado de um login bem-sucedido
type Session struct {
	User  *entities.User
	Token string
	// RootInactive avisa que a conta root existe mas está desativada
	RootInactive bool
}

// Login valida as credenciais de um usuário ativo
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active || !s.hasher.Compare(password, user.PasswordHash) {
		s.logger.Debug("login rejected", "username", username)
		return nil, errors.ErrInvalidCredentials
	}

	session, err := s.IssueSession(user)
	if err != nil {
		return nil, err
	}

	root, err := s.userRepo.FindRoot(ctx)
	if err != nil {
		return nil, err
	}
	if root != nil && !root.Active {
		s.logger.Warn("root account is inactive", "login", user.Username)
		session.RootInactive = true
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return session, nil
}

// IssueSession gera um token de sessão para o usuário
func (s *AuthService) IssueSession(user *entities.User) (*Session, error) {
	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

// SessionTTL é a validade dos tokens emitidos
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessions.TTL()
}

// Authenticate verifica o token e carrega o usuário da sessão.
// Erros de assinatura/expiração do token sobem sem tradução.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	claims, err := s.sessions.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrTokenUserGone
	}
	if !user.Active {
		return nil, errors.ErrUserInactive
	}
	if user.PasswordChangedAfter(claims.IssuedAt) {
		return nil, errors.ErrPasswordChanged
	}

	return user, nil
}

// ForgotPassword gera o token de redefinição e entrega o e-mail.
// Se a entrega falhar, o token é descartado.
func (s *AuthService) ForgotPassword(ctx context.Context, username, language string) error {
	user, err := requireUsername(ctx, s.userRepo, username)
	if err != nil {
		return err
	}

	plain, hash, err := s.resetTokens.Generate()
	if err != nil {
		return err
	}

	expires := s.now().Add(ResetTokenTTL)
	user.PasswordResetToken = &hash
	user.PasswordResetExpires = &expires
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	err = s.mailer.SendPasswordReset(ctx, ports.PasswordResetEmail{
		To:       user.Email.String(),
		Name:     user.Name,
		ResetURL: s.resetBaseURL + "/" + plain,
		Language: language,
	})
	if err != nil {
		s.logger.Error("password reset e-mail failed", "email", user.Email.Masked(), "error", err)

		user.ClearResetToken()
		if clearErr := s.userRepo.Update(ctx, user); clearErr != nil {
			s.logger.Error("failed to clear reset token", "user_id", user.ID, "error", clearErr)
		}
		return errors.ErrEmailDelivery.Wrap(err)
	}

	s.logger.Info("password reset token issued", "email", user.Email.Masked())
	return nil
}

// ResetPassword troca a senha de quem apresentar um token válido e não expirado
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(ctx, s.resetTokens.Hash(token), s.now())
	if err != nil {
		return err
	}
	if user == nil {
		return errors.ErrResetTokenInvalid
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.SetPassword(hash, s.now())
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("password reset", "user_id", user.ID)
	return nil
}

// UpdateMyPassword troca a senha do próprio usuário após conferir a atual
func (s *AuthService) UpdateMyPassword(ctx context.Context, userID, currentPassword, newPassword string) (*entities.User, error) {
	user, err := requireUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	if !s.hasher.Compare(currentPassword, user.PasswordHash) {
		return nil, errors.ErrWrongCurrentPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, err
	}

	user.SetPassword(hash, s.now())
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
