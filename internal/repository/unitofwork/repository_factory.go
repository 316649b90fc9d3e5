package unitofwork

import "context"

// RepositoryFactory hands out fresh units of work; each one owns at most
// one transaction.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
