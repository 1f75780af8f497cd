package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/domain/repositories"
	"github.com/ahbm/hospital-backend/internal/domain/valueobjects"
	httphandlers "github.com/ahbm/hospital-backend/internal/handlers/http"
	"github.com/ahbm/hospital-backend/internal/handlers/validation"
	"github.com/ahbm/hospital-backend/internal/infrastructure/i18n"
	"github.com/ahbm/hospital-backend/internal/infrastructure/logging"
	"github.com/ahbm/hospital-backend/internal/infrastructure/persistence/postgres"
	"github.com/ahbm/hospital-backend/internal/infrastructure/persistence/sqlitetest"
	"github.com/ahbm/hospital-backend/internal/infrastructure/sanitizer"
	"github.com/ahbm/hospital-backend/internal/infrastructure/security"
	"github.com/ahbm/hospital-backend/internal/services"
)

const testPassword = "senha-forte-123"

type captureMailer struct {
	mu   sync.Mutex
	sent []ports.PasswordResetEmail
}

func (m *captureMailer) SendPasswordReset(_ context.Context, msg ports.PasswordResetEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *captureMailer) last() ports.PasswordResetEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

type fakePresigner struct{}

func (fakePresigner) PresignUpload(_ context.Context, key, _ string) (*ports.PresignedUpload, error) {
	return &ports.PresignedUpload{
		UploadURL: "https://bucket.s3.amazonaws.com/" + key + "?X-Amz-Signature=abc",
		PublicURL: "https://cdn.ahbm.com.br/" + key,
		Key:       key,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

// testAPI sobe o router completo sobre um SQLite em memória
type testAPI struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	users  repositories.UserRepository
	hasher *security.BcryptHasher
	mailer *captureMailer
}

type apiOptions struct {
	development bool
	rateLimit   int64
}

func newTestAPI(t *testing.T, opts ...apiOptions) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.Register())

	opt := apiOptions{rateLimit: 1000}
	if len(opts) > 0 {
		opt = opts[0]
		if opt.rateLimit == 0 {
			opt.rateLimit = 1000
		}
	}

	db := sqlitetest.Open(t)
	logger := logging.Nop()

	i18nService, err := i18n.NewDefaultService("pt-BR")
	require.NoError(t, err)

	users := postgres.NewUserRepository(db)
	uow := postgres.NewUnitOfWork(db)
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	sessions := security.NewJWTSessions("segredo-de-teste-com-32-bytes!!!", time.Hour)
	mailer := &captureMailer{}
	events := ports.NopPublisher{}

	authService := services.NewAuthService(users, hasher, sessions, security.NewResetTokenGenerator(), mailer, logger,
		"http://localhost:3001/reset-password")
	rootService := services.NewRootService(users, uow, hasher, events, logger)
	userService := services.NewUserService(users, hasher, events, logger)
	articleService := services.NewArticleService(postgres.NewArticleRepository(db), sanitizer.NewArticleSanitizer(), events, logger)
	doctorService := services.NewDoctorService(postgres.NewDoctorRepository(db), uow, events, logger)

	cookie := httphandlers.CookieConfig{Path: "/api/v1/admin", MaxAge: 24 * time.Hour}

	router := httphandlers.NewRouter(httphandlers.RouterDeps{
		Config: httphandlers.RouterConfig{
			Errors:      httphandlers.ErrorConfig{BaseURL: "http://api.test", Development: opt.development},
			CORSOrigins: []string{"http://localhost:3001"},
			BodyLimit:   10 * 1024,
			RateLimit:   limiter.Rate{Period: time.Hour, Limit: opt.rateLimit},
		},
		Logger:         logger,
		I18n:           i18nService,
		Authenticator:  authService,
		RateLimitStore: memory.NewStore(),
		Auth:           httphandlers.NewAuthHandler(authService, rootService, cookie),
		Users:          httphandlers.NewUserHandler(userService, rootService, authService, cookie),
		Articles:       httphandlers.NewArticleHandler(articleService),
		Doctors:        httphandlers.NewDoctorHandler(doctorService),
		Health:         httphandlers.NewHealthHandler("test", postgres.Pinger(db)),
		Uploads:        httphandlers.NewUploadHandler(fakePresigner{}),
	})

	return &testAPI{t: t, db: db, router: router, users: users, hasher: hasher, mailer: mailer}
}

// envelope é a forma comum das respostas
type envelope struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Results  *int            `json:"results"`
	Data     json.RawMessage `json:"data"`
	Errors   []fieldError    `json:"errors"`
	Type     string          `json:"type"`
	Title    string          `json:"title"`
	Code     int             `json:"code"`
	Instance string          `json:"instance"`
	Stack    string          `json:"stack"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type response struct {
	*httptest.ResponseRecorder
	body envelope
}

func (r response) data(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body.Data, out))
}

func (a *testAPI) do(method, path, token string, payload interface{}) response {
	a.t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if raw, ok := payload.(string); ok {
			body.WriteString(raw)
		} else {
			require.NoError(a.t, json.NewEncoder(&body).Encode(payload))
		}
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	res := response{ResponseRecorder: w}
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &res.body), w.Body.String())
	}
	return res
}

func (a *testAPI) seedUser(username string, role entities.Role, active bool) *entities.User {
	a.t.Helper()

	hash, err := a.hasher.Hash(testPassword)
	require.NoError(a.t, err)
	email, err := valueobjects.NewEmail(username + "@ahbm.com.br")
	require.NoError(a.t, err)

	user := &entities.User{
		Username:     username,
		PasswordHash: hash,
		Name:         "Usuário " + username,
		Email:        email,
		Role:         role,
		Active:       active,
	}
	require.NoError(a.t, a.users.Create(context.Background(), user))
	return user
}

// login devolve o token de sessão do usuário
func (a *testAPI) login(username string) string {
	a.t.Helper()

	res := a.do(http.MethodPost, "/api/v1/admin/auth/login", "", map[string]string{
		"username": username,
		"password": testPassword,
	})
	require.Equal(a.t, http.StatusOK, res.Code, res.Body.String())

	var session struct {
		Token string `json:"token"`
	}
	res.data(a.t, &session)
	require.NotEmpty(a.t, session.Token)
	return session.Token
}

func newRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}
