package db

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type txKey struct{}

// Gateway is the single path to the relational store. Handles returned
// by Conn follow the transaction carried by the context, so repositories
// join an enclosing Transaction without knowing about it.
type Gateway struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewGateway(db *gorm.DB, log *zap.Logger) *Gateway {
	return &Gateway{db: db, log: log}
}

func (g *Gateway) Conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return g.db.WithContext(ctx)
}

func (g *Gateway) InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*gorm.DB)
	return ok
}

func (g *Gateway) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return g.fail("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return g.fail("ping", err)
	}
	return nil
}

// Run executes fn against the context's handle. A connection-class
// failure outside a transaction is retried once after a ping.
func (g *Gateway) Run(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	err := fn(g.Conn(ctx))

	if err != nil && !g.InTx(ctx) && isConnectionError(err) {
		g.log.Warn("store connection lost, retrying", zap.String("op", op), zap.Error(err))
		if pingErr := g.Ping(ctx); pingErr == nil {
			err = fn(g.Conn(ctx))
		}
	}

	if err != nil {
		return g.fail(op, err)
	}
	return nil
}

// Query runs a row-returning statement. Each row keeps its column order.
func (g *Gateway) Query(ctx context.Context, stmt string, args ...any) ([]Row, error) {
	var out []Row

	err := g.Run(ctx, "query", func(tx *gorm.DB) error {
		out = out[:0]

		rows, err := tx.Raw(stmt, args...).Rows()
		if err != nil {
			return err
		}
		defer rows.Close()

		cols, err := rows.Columns()
		if err != nil {
			return err
		}

		for rows.Next() {
			vals := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range vals {
				ptrs[i] = &vals[i]
			}
			if err := rows.Scan(ptrs...); err != nil {
				return err
			}
			out = append(out, Row{cols: cols, vals: vals})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Exec runs a mutating statement and reports the affected row count.
func (g *Gateway) Exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	var affected int64

	err := g.Run(ctx, "exec", func(tx *gorm.DB) error {
		res := tx.Exec(stmt, args...)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

// Create inserts value and fills its primary key.
func (g *Gateway) Create(ctx context.Context, value any) error {
	return g.Run(ctx, "create", func(tx *gorm.DB) error {
		return tx.Create(value).Error
	})
}

// Transaction commits when fn returns nil and rolls back otherwise.
// Nested calls run inside the outer transaction.
func (g *Gateway) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if g.InTx(ctx) {
		return fn(ctx)
	}

	var fnErr error
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(context.WithValue(ctx, txKey{}, tx))
		return fnErr
	})

	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return g.fail("commit", err)
	}
	return nil
}

func (g *Gateway) fail(op string, err error) error {
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}

	kind := classify(err)
	if kind == ErrNotFound {
		g.log.Debug("store miss", zap.String("op", op))
	} else {
		g.log.Error("store failure", zap.String("op", op), zap.String("kind", kind.Error()), zap.Error(err))
	}

	return &StoreError{Op: op, Kind: kind, Err: err}
}
