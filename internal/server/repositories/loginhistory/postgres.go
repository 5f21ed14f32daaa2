package loginhistory

import (
	"context"
	"fmt"

	"github.com/Chuseok22/Malsami-BE/internal/dbx"
	"github.com/Chuseok22/Malsami-BE/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Record(ctx context.Context, record *models.LoginRecord) error {
	query := `
		INSERT INTO login_history (member_id, logged_in_at, remote_addr)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, record.MemberID, record.LoggedInAt, record.RemoteAddr); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
