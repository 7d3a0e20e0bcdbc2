package postgres

import (
	"context"
	"database/sql"
	"share-safely/internal/core/port"
)

type sqlUnitOfWork struct {
	db *sql.DB
	tx *sql.Tx
}

func NewUnitOfWork(db *sql.DB) port.UnitOfWork {
	return &sqlUnitOfWork{db: db}
}

func (u *sqlUnitOfWork) FileRepo() port.FileRepository {
	if u.tx != nil {
		return NewSqlFileRepository(u.tx)
	}
	return NewSqlFileRepository(u.db)
}

func (u *sqlUnitOfWork) LinkRepo() port.LinkRepository {
	if u.tx != nil {
		return NewSqlLinkRepository(u.tx)
	}
	return NewSqlLinkRepository(u.db)
}

func (u *sqlUnitOfWork) AccessLogRepo() port.AccessLogRepository {
	if u.tx != nil {
		return NewSqlAccessLogRepository(u.tx)
	}
	return NewSqlAccessLogRepository(u.db)
}

func (u *sqlUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	uowWithTx := &sqlUnitOfWork{db: u.db, tx: tx}

	if err := fn(uowWithTx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
