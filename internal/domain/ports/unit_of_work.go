package ports

import "context"

// UnitOfWork define a interface para gerenciamento de transações.
// Repositórios chamados com o contexto devolvido por Begin/WithTransaction
// participam da mesma transação.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
