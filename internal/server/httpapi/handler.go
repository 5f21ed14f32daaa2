package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Chuseok22/Malsami-BE/internal/common"
	"github.com/Chuseok22/Malsami-BE/internal/server/models"
	"github.com/Chuseok22/Malsami-BE/internal/server/portal"
)

type signInRequest struct {
	PortalID       string `json:"portalId"`
	PortalPassword string `json:"portalPassword"`
}

// memberPayload is the public-safe projection of a member returned to
// clients.
type memberPayload struct {
	MemberID         string    `json:"memberId"`
	StudentID        int64     `json:"studentId"`
	StudentName      string    `json:"studentName"`
	Major            string    `json:"major"`
	AcademicYear     string    `json:"academicYear"`
	EnrollmentStatus string    `json:"enrollmentStatus"`
	Nickname         string    `json:"nickname"`
	Role             string    `json:"role"`
	LastLoginAt      time.Time `json:"lastLoginAt"`
}

type signInResponse struct {
	Member      memberPayload `json:"member"`
	AccessToken string        `json:"accessToken"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toMemberPayload(m *models.Member) memberPayload {
	return memberPayload{
		MemberID:         m.MemberID,
		StudentID:        m.StudentID,
		StudentName:      m.StudentName,
		Major:            m.Major,
		AcademicYear:     m.AcademicYear,
		EnrollmentStatus: m.EnrollmentStatus,
		Nickname:         m.Nickname,
		Role:             m.Role,
		LastLoginAt:      m.LastLoginAt,
	}
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PortalID == "" || req.PortalPassword == "" {
		s.writeError(w, http.StatusBadRequest, "portalId and portalPassword are required")
		return
	}

	result, err := s.members.SignIn(r.Context(), portal.Credentials{
		PortalID:       req.PortalID,
		PortalPassword: req.PortalPassword,
	}, r.RemoteAddr)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrVerificationFailed):
			s.writeError(w, http.StatusUnauthorized, "invalid login")
		default:
			s.logger.Error(r.Context(), "sign-in failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "sign-in failed")
		}
		return
	}

	http.SetCookie(w, result.RefreshCookie)
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	s.writeJSON(w, status, signInResponse{
		Member:      toMemberPayload(result.Member),
		AccessToken: result.AccessToken,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(common.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		s.writeError(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	result, err := s.members.Refresh(r.Context(), cookie.Value)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorUnauthorized),
			errors.Is(err, common.ErrRefreshTokenExpired),
			errors.Is(err, common.ErrInvalidToken):
			s.writeError(w, http.StatusUnauthorized, "session expired, please sign in again")
		default:
			s.logger.Error(r.Context(), "refresh failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "refresh failed")
		}
		return
	}

	http.SetCookie(w, result.RefreshCookie)
	s.writeJSON(w, http.StatusOK, signInResponse{
		Member:      toMemberPayload(result.Member),
		AccessToken: result.AccessToken,
	})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(common.RefreshTokenCookieName)
	if err == nil && cookie.Value != "" {
		if err := s.members.SignOut(r.Context(), cookie.Value); err != nil {
			s.logger.Error(r.Context(), "sign-out failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "sign-out failed")
			return
		}
	}

	http.SetCookie(w, s.members.ExpiredRefreshCookie())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	authCtx, ok := AuthContextFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"memberId":  authCtx.MemberID,
		"studentId": authCtx.StudentID,
		"nickname":  authCtx.Nickname,
		"role":      authCtx.Role,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error(context.Background(), "encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
