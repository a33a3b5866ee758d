// Package ioschema creates the database schema from the DDL-tagged
// models in pkg/schema. This is an impure I/O package.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/gnames/gnvern/pkg/config"
	"github.com/gnames/gnvern/pkg/db"
	"github.com/gnames/gnvern/pkg/gnvern"
	"github.com/gnames/gnvern/pkg/schema"
)

// manager implements gnvern.SchemaManager.
type manager struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a new SchemaManager.
func New(cfg *config.Config, op db.Operator) gnvern.SchemaManager {
	return &manager{cfg: cfg, operator: op}
}

// Create creates tables and indexes for every model. Statements use
// IF NOT EXISTS, so re-running against an existing database is safe.
func (m *manager) Create(ctx context.Context, force bool) error {
	handle := m.operator.DB()
	if handle == nil {
		return NotConnectedError()
	}

	if force {
		slog.Info("Dropping existing tables")
		if err := m.operator.DropAllTables(ctx); err != nil {
			return err
		}
	}

	for _, model := range schema.All() {
		slog.Info("Creating table", "table", model.TableName())

		if _, err := handle.ExecContext(ctx, model.TableDDL()); err != nil {
			return CreateError(model.TableName(), err)
		}
		for _, idx := range model.IndexDDL() {
			if _, err := handle.ExecContext(ctx, idx); err != nil {
				return CreateError(model.TableName(), err)
			}
		}
	}

	gn.Message("<em>Created schema with %d tables</em>", len(schema.All()))
	return nil
}
