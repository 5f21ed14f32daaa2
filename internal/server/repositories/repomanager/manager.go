// Package repomanager wires repository constructors together so services
// can obtain repositories bound to either a plain connection or a
// transaction, and exposes the schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/Chuseok22/Malsami-BE/internal/dbx"
	"github.com/Chuseok22/Malsami-BE/internal/server/repositories/loginhistory"
	"github.com/Chuseok22/Malsami-BE/internal/server/repositories/members"
	"github.com/Chuseok22/Malsami-BE/internal/server/repositories/refreshtokens"
)

// RepositoryManager vends repositories bound to the provided DBTX.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Members(db dbx.DBTX) members.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	LoginHistory(db dbx.DBTX) loginhistory.Repository
}
