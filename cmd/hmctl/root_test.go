package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domainerrors "github.com/ahbm/hospital-backend/internal/domain/errors"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/infrastructure/logging"
	"github.com/ahbm/hospital-backend/internal/infrastructure/persistence/postgres"
	"github.com/ahbm/hospital-backend/internal/infrastructure/persistence/sqlitetest"
	"github.com/ahbm/hospital-backend/internal/infrastructure/security"
	"github.com/ahbm/hospital-backend/internal/services"
)

func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("sem mais respostas")
		}
		next := answers[0]
		answers = answers[1:]
		return []byte(next), nil
	}
}

func newRootService(t *testing.T) *services.RootService {
	db := sqlitetest.Open(t)
	return services.NewRootService(
		postgres.NewUserRepository(db),
		postgres.NewUnitOfWork(db),
		security.NewBcryptHasher(bcrypt.MinCost),
		ports.NopPublisher{},
		logging.Nop(),
	)
}

func TestPromptNewPassword(t *testing.T) {
	t.Run("confirmação igual", func(t *testing.T) {
		stubPasswords(t, "senha-forte-123", "senha-forte-123")
		var out bytes.Buffer

		password, err := promptNewPassword(&out)
		require.NoError(t, err)
		assert.Equal(t, "senha-forte-123", password)
		assert.Contains(t, out.String(), "Confirme a senha:")
	})

	t.Run("confirmação diferente", func(t *testing.T) {
		stubPasswords(t, "senha-forte-123", "outra-senha-456")
		_, err := promptNewPassword(&bytes.Buffer{})
		assert.EqualError(t, err, "as senhas não coincidem")
	})

	t.Run("senha curta nem pede confirmação", func(t *testing.T) {
		stubPasswords(t, "curta")
		_, err := promptNewPassword(&bytes.Buffer{})
		assert.Error(t, err)
	})

	t.Run("erro do terminal", func(t *testing.T) {
		stubPasswords(t)
		_, err := promptNewPassword(&bytes.Buffer{})
		assert.Error(t, err)
	})
}

func TestCreateRootCommand(t *testing.T) {
	ctx := context.Background()
	svc := newRootService(t)
	flags := createRootFlags{username: " Diretoria ", name: "Diretoria AHBM", email: "diretoria@ahbm.com.br"}

	var out bytes.Buffer
	require.NoError(t, printRootStatus(ctx, svc, &out))
	assert.Equal(t, "root: não criado\n", out.String())

	out.Reset()
	require.NoError(t, createRoot(ctx, svc, flags, "senha-forte-123", &out))
	assert.Contains(t, out.String(), "root diretoria criado")

	out.Reset()
	require.NoError(t, printRootStatus(ctx, svc, &out))
	assert.Equal(t, "root: ativo\n", out.String())

	flags.username = "outro"
	flags.email = "outro@ahbm.com.br"
	err := createRoot(ctx, svc, flags, "senha-forte-123", &bytes.Buffer{})
	assert.ErrorIs(t, err, domainerrors.ErrRootAlreadyExists)
}

func TestCommandTree(t *testing.T) {
	root := newRootCommand()

	for _, path := range [][]string{{"migrate"}, {"root", "status"}, {"root", "create"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	create, _, _ := root.Find([]string{"root", "create"})
	assert.NotNil(t, create.Flags().Lookup("username"))
}
