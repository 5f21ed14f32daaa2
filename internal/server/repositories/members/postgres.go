package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Chuseok22/Malsami-BE/internal/common"
	"github.com/Chuseok22/Malsami-BE/internal/dbx"
	"github.com/Chuseok22/Malsami-BE/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const memberColumns = `member_id, student_id, student_name, major, academic_year, enrollment_status, nickname, role, last_login_at, created_at`

func scanMember(row *sql.Row) (*models.Member, error) {
	m := &models.Member{}
	err := row.Scan(
		&m.MemberID, &m.StudentID, &m.StudentName, &m.Major,
		&m.AcademicYear, &m.EnrollmentStatus, &m.Nickname, &m.Role,
		&m.LastLoginAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) FindByStudentID(ctx context.Context, studentID int64) (*models.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE student_id = $1
	`
	return scanMember(r.db.QueryRowContext(ctx, query, studentID))
}

func (r *PostgresRepository) FindByMemberID(ctx context.Context, memberID string) (*models.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE member_id = $1
	`
	return scanMember(r.db.QueryRowContext(ctx, query, memberID))
}

func (r *PostgresRepository) Insert(ctx context.Context, member *models.Member) error {
	query := `
		INSERT INTO members (member_id, student_id, student_name, major, academic_year, enrollment_status, nickname, role, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		member.MemberID, member.StudentID, member.StudentName, member.Major,
		member.AcademicYear, member.EnrollmentStatus, member.Nickname,
		member.Role, member.LastLoginAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return common.ErrDuplicateStudentID
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, memberID string, at time.Time) error {
	query := `
		UPDATE members SET last_login_at = $2
		WHERE member_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, memberID, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
