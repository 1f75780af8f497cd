package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ahbm/hospital-backend/internal/domain/entities"
	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/infrastructure/persistence/postgres"
	"github.com/ahbm/hospital-backend/internal/infrastructure/security"
	"github.com/ahbm/hospital-backend/internal/services"
)

func newRootAccountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "root",
		Short: "Consulta ou cria a conta root",
	}
	cmd.AddCommand(newRootStatusCommand(), newRootCreateCommand())
	return cmd
}

func rootService(e *env) *services.RootService {
	return services.NewRootService(
		postgres.NewUserRepository(e.db),
		postgres.NewUnitOfWork(e.db),
		security.NewBcryptHasher(security.PasswordCost),
		ports.NopPublisher{},
		e.logger,
	)
}

func newRootStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Informa se o root existe e está ativo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := connect()
			if err != nil {
				return err
			}
			defer e.close()

			return printRootStatus(cmd.Context(), rootService(e), cmd.OutOrStdout())
		},
	}
}

func printRootStatus(ctx context.Context, svc *services.RootService, w io.Writer) error {
	status, err := svc.Status(ctx)
	if err != nil {
		return err
	}

	switch {
	case !status.Exists:
		fmt.Fprintln(w, "root: não criado")
	case !status.Active:
		fmt.Fprintln(w, "root: inativo")
	default:
		fmt.Fprintln(w, "root: ativo")
	}
	return nil
}

type createRootFlags struct {
	username string
	name     string
	email    string
	phone    string
}

func newRootCreateCommand() *cobra.Command {
	var flags createRootFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Cria o root pedindo a senha no terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := promptNewPassword(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			e, err := connect()
			if err != nil {
				return err
			}
			defer e.close()

			return createRoot(cmd.Context(), rootService(e), flags, password, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&flags.username, "username", "", "username do root (minúsculas e números)")
	cmd.Flags().StringVar(&flags.name, "name", "", "nome completo")
	cmd.Flags().StringVar(&flags.email, "email", "", "e-mail")
	cmd.Flags().StringVar(&flags.phone, "phone", "", "telefone (opcional)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func createRoot(ctx context.Context, svc *services.RootService, flags createRootFlags, password string, w io.Writer) error {
	input := services.CreateUserInput{
		Username: strings.ToLower(strings.TrimSpace(flags.username)),
		Password: password,
		Name:     strings.TrimSpace(flags.name),
		Email:    strings.TrimSpace(flags.email),
		Role:     entities.RoleRoot,
	}
	if phone := strings.TrimSpace(flags.phone); phone != "" {
		input.Phone = &phone
	}

	user, err := svc.CreateRoot(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "root %s criado (%s)\n", user.Username, user.ID)
	return nil
}

// promptNewPassword lê a senha duas vezes sem eco
func promptNewPassword(w io.Writer) (string, error) {
	first, err := readSecret(w, "Senha: ")
	if err != nil {
		return "", err
	}
	if len(first) < 8 || len(first) > 72 {
		return "", errors.New("a senha deve ter entre 8 e 72 caracteres")
	}

	second, err := readSecret(w, "Confirme a senha: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("as senhas não coincidem")
	}
	return first, nil
}

func readSecret(w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	secret, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(secret), "\r\n"), nil
}
