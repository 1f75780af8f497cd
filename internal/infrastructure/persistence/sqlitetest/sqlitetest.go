// Package sqlitetest abre bancos SQLite em memória com o schema da aplicação,
// para testes de repositórios, serviços e handlers.
package sqlitetest

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ahbm/hospital-backend/internal/infrastructure/persistence/postgres"
)

var counter atomic.Int64

// Open cria um banco isolado por teste; é fechado no Cleanup
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := New(fmt.Sprintf("file:hm_test_%d?mode=memory&cache=shared&_foreign_keys=on", counter.Add(1)))
	if err != nil {
		t.Fatalf("sqlitetest: %v", err)
	}

	t.Cleanup(func() {
		_ = postgres.Close(db)
	})

	return db
}

// New abre o DSN informado e cria as tabelas
func New(dsn string) (*gorm.DB, error) {
	cfg := postgres.NewGormConfig(true)
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(dialector{sqlite.Open(dsn)}, cfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// uma conexão só: SQLite serializa escritas e o banco em memória vive nela
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(postgres.AllModels()...); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_single_root ON users (role) WHERE role = 'root'`).Error; err != nil {
		return nil, fmt.Errorf("single root index: %w", err)
	}

	return db, nil
}

// NewMemory abre um banco em memória isolado, para suítes que não têm testing.TB
func NewMemory() (*gorm.DB, error) {
	return New(fmt.Sprintf("file:hm_mem_%d?mode=memory&cache=shared&_foreign_keys=on", counter.Add(1)))
}

// dialector completa a tradução de erros do driver SQLite: violação de chave
// estrangeira vira gorm.ErrForeignKeyViolated, como acontece no Postgres.
type dialector struct {
	gorm.Dialector
}

func (d dialector) Translate(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return gorm.ErrForeignKeyViolated
	}
	if translator, ok := d.Dialector.(gorm.ErrorTranslator); ok {
		return translator.Translate(err)
	}
	return err
}

func (d dialector) SavePoint(tx *gorm.DB, name string) error {
	return d.Dialector.(gorm.SavePointerDialectorInterface).SavePoint(tx, name)
}

func (d dialector) RollbackTo(tx *gorm.DB, name string) error {
	return d.Dialector.(gorm.SavePointerDialectorInterface).RollbackTo(tx, name)
}
