// Package services contains server-side business logic. This file
// implements MemberService, the sign-in orchestration: portal verification,
// member resolution or provisioning, token minting, refresh-token
// persistence, and refresh-cookie construction.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Chuseok22/Malsami-BE/internal/common"
	"github.com/Chuseok22/Malsami-BE/internal/dbx"
	"github.com/Chuseok22/Malsami-BE/internal/logging"
	"github.com/Chuseok22/Malsami-BE/internal/server/auth"
	"github.com/Chuseok22/Malsami-BE/internal/server/config"
	"github.com/Chuseok22/Malsami-BE/internal/server/models"
	"github.com/Chuseok22/Malsami-BE/internal/server/portal"
	"github.com/Chuseok22/Malsami-BE/internal/server/repositories/refreshtokens"
	"github.com/Chuseok22/Malsami-BE/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SignInResult is returned by SignIn and Refresh. The refresh token is
// carried only inside the cookie descriptor, never as a standalone field,
// so it cannot leak into a response body.
type SignInResult struct {
	Member        *models.Member
	AccessToken   string
	RefreshCookie *http.Cookie
	// Created reports whether this sign-in provisioned a new member.
	Created bool
}

// AuthContext identifies the caller of an authenticated request. It is
// derived from a verified access token plus a member lookup and carries the
// granted role for downstream authorization checks.
type AuthContext struct {
	MemberID  string
	StudentID int64
	Nickname  string
	Role      string
}

// MemberService handles sign-in, token refresh, sign-out, and access-token
// authentication.
type MemberService struct {
	db            *sql.DB
	rm            repomanager.RepositoryManager
	refreshTokens refreshtokens.Repository
	verifier      portal.Verifier
	issuer        *auth.Issuer
	cookieSecure  bool
	logger        logging.Logger
}

// NewMemberService constructs a MemberService from its collaborators and
// server config.
func NewMemberService(
	db *sql.DB,
	rm repomanager.RepositoryManager,
	refreshTokens refreshtokens.Repository,
	verifier portal.Verifier,
	issuer *auth.Issuer,
	cfg *config.Config,
	logger logging.Logger,
) *MemberService {
	return &MemberService{
		db:            db,
		rm:            rm,
		refreshTokens: refreshTokens,
		verifier:      verifier,
		issuer:        issuer,
		cookieSecure:  cfg.CookieSecure,
		logger:        logger.With("module", "member_service"),
	}
}

// SignIn runs the full sign-in sequence. The result is only returned after
// the refresh record has been persisted; a minted-but-unpersisted refresh
// token is never handed to the caller.
func (s *MemberService) SignIn(ctx context.Context, creds portal.Credentials, remoteAddr string) (*SignInResult, error) {
	identity, err := s.verifier.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}

	member, created, err := s.resolveOrProvision(ctx, identity, remoteAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAccountResolution, err)
	}
	if created {
		s.logger.Info(ctx, "new member provisioned", "student_id", member.StudentID)
	}

	result, err := s.issueSession(ctx, member)
	if err != nil {
		return nil, err
	}
	result.Created = created

	s.logger.Info(ctx, "member signed in", "student_id", member.StudentID)
	return result, nil
}

// Authenticate resolves an access token back to an authenticated identity.
// It never touches the refresh store.
func (s *MemberService) Authenticate(ctx context.Context, accessToken string) (*AuthContext, error) {
	claims, err := s.issuer.Verify(accessToken)
	if err != nil {
		return nil, err
	}

	member, err := s.rm.Members(s.db).FindByMemberID(ctx, claims.Subject)
	if err != nil {
		// The member may have been deleted after the token was minted.
		return nil, err
	}

	return &AuthContext{
		MemberID:  member.MemberID,
		StudentID: member.StudentID,
		Nickname:  member.Nickname,
		Role:      member.Role,
	}, nil
}

// Refresh exchanges a persisted refresh token for a fresh token pair,
// invalidating the presented token. Expired tokens yield
// common.ErrRefreshTokenExpired; unknown tokens yield
// common.ErrorUnauthorized.
func (s *MemberService) Refresh(ctx context.Context, refreshToken string) (*SignInResult, error) {
	record, err := s.refreshTokens.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if record.ExpiresAt.Before(time.Now()) {
		_ = s.refreshTokens.Delete(ctx, refreshToken)
		return nil, common.ErrRefreshTokenExpired
	}

	member, err := s.rm.Members(s.db).FindByMemberID(ctx, record.MemberID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading member: %w", err)
	}

	// Persist the replacement before invalidating the presented token, so a
	// failure mid-rotation never leaves the member without a valid token.
	result, err := s.issueSession(ctx, member)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokens.Delete(ctx, refreshToken); err != nil {
		_ = s.refreshTokens.Delete(ctx, result.RefreshCookie.Value)
		return nil, fmt.Errorf("error deleting refresh token: %w", err)
	}

	s.logger.Info(ctx, "session refreshed", "student_id", member.StudentID)
	return result, nil
}

// SignOut invalidates the presented refresh token. The access token stays
// valid until its own expiry.
func (s *MemberService) SignOut(ctx context.Context, refreshToken string) error {
	if err := s.refreshTokens.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// ExpiredRefreshCookie returns the descriptor that clears the refresh
// cookie, built with the service's secure-flag configuration.
func (s *MemberService) ExpiredRefreshCookie() *http.Cookie {
	return ExpiredRefreshCookie(s.cookieSecure)
}

// --- internals ---

// resolveOrProvision finds the member for the verified identity or
// provisions a new one, updating last-login metadata either way. The bool
// result reports whether a new member was created.
//
// Two concurrent first-time sign-ins for the same student can race between
// lookup and insert; the unique constraint on student_id arbitrates, and
// the loser re-resolves exactly once.
func (s *MemberService) resolveOrProvision(ctx context.Context, identity *portal.Identity, remoteAddr string) (*models.Member, bool, error) {
	now := time.Now()

	member, err := s.rm.Members(s.db).FindByStudentID(ctx, identity.StudentID)
	switch {
	case err == nil:
		if err := s.recordLogin(ctx, member, now, remoteAddr); err != nil {
			return nil, false, err
		}
		return member, false, nil
	case errors.Is(err, common.ErrorNotFound):
		// fall through to provisioning
	default:
		return nil, false, err
	}

	member = newMember(identity, now)
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Members(tx).Insert(ctx, member); err != nil {
			return err
		}
		return s.rm.LoginHistory(tx).Record(ctx, &models.LoginRecord{
			MemberID:   member.MemberID,
			LoggedInAt: now,
			RemoteAddr: remoteAddr,
		})
	})
	if err == nil {
		return member, true, nil
	}
	if !errors.Is(err, common.ErrDuplicateStudentID) {
		return nil, false, err
	}

	// Lost the provisioning race: a concurrent sign-in created the member
	// between lookup and insert. Re-resolve once.
	s.logger.Warn(ctx, "provisioning conflict, re-resolving", "student_id", identity.StudentID)
	existing, ferr := s.rm.Members(s.db).FindByStudentID(ctx, identity.StudentID)
	if ferr != nil {
		return nil, false, fmt.Errorf("re-resolve after conflict: %w", ferr)
	}
	if err := s.recordLogin(ctx, existing, now, remoteAddr); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// recordLogin updates last_login_at and appends the login-history row in
// one transaction.
func (s *MemberService) recordLogin(ctx context.Context, member *models.Member, now time.Time, remoteAddr string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Members(tx).UpdateLastLogin(ctx, member.MemberID, now); err != nil {
			return err
		}
		return s.rm.LoginHistory(tx).Record(ctx, &models.LoginRecord{
			MemberID:   member.MemberID,
			LoggedInAt: now,
			RemoteAddr: remoteAddr,
		})
	})
	if err != nil {
		return err
	}
	member.LastLoginAt = now
	return nil
}

// issueSession mints the token pair, persists the refresh record, and
// builds the cookie descriptor.
func (s *MemberService) issueSession(ctx context.Context, member *models.Member) (*SignInResult, error) {
	accessToken, err := s.issuer.MintAccess(member.MemberID, member.Role)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshToken, err := s.issuer.MintRefresh(member.MemberID, member.Role)
	if err != nil {
		return nil, common.ErrorInternal
	}

	record := &models.RefreshToken{
		Token:    refreshToken,
		MemberID: member.MemberID,
		// Same instant the credential embeds, so the stored expiry and the
		// token's own expiry cannot drift.
		ExpiresAt: s.issuer.RefreshExpiry(),
	}
	if err := s.refreshTokens.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSessionPersist, err)
	}

	return &SignInResult{
		Member:        member,
		AccessToken:   accessToken,
		RefreshCookie: RefreshCookie(refreshToken, record.ExpiresAt, s.cookieSecure),
	}, nil
}

func newMember(identity *portal.Identity, now time.Time) *models.Member {
	return &models.Member{
		MemberID:         uuid.NewString(),
		StudentID:        identity.StudentID,
		StudentName:      identity.StudentName,
		Major:            identity.Major,
		AcademicYear:     identity.AcademicYear,
		EnrollmentStatus: identity.EnrollmentStatus,
		Nickname:         uuid.NewString()[:common.NicknameLength],
		Role:             common.DefaultMemberRole,
		LastLoginAt:      now,
		CreatedAt:        now,
	}
}
