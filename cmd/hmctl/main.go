// Command hmctl administra o banco do painel: migrations e bootstrap do root.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/ahbm/hospital-backend/internal/domain/ports"
	"github.com/ahbm/hospital-backend/internal/infrastructure/config"
	"github.com/ahbm/hospital-backend/internal/infrastructure/logging"
	"github.com/ahbm/hospital-backend/internal/infrastructure/persistence/postgres"
)

// env agrupa o que os subcomandos precisam depois de conectar
type env struct {
	cfg    *config.Config
	logger ports.Logger
	db     *gorm.DB
}

func connect() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.NewSlogLogger(cfg.Logging.Level)
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger, cfg.IsProduction())
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, db: db}, nil
}

func (e *env) close() {
	_ = postgres.Close(e.db)
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hmctl",
		Short:         "Ferramentas de administração do HM Dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCommand(), newRootAccountCommand())
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "hmctl:", err)
		os.Exit(1)
	}
}
