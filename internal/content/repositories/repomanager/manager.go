package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/blogmesh/internal/content/repositories/posts"
	"github.com/dmitrijs2005/blogmesh/internal/dbx"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Posts(db dbx.DBTX) posts.Repository
}
