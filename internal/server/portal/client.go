package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Chuseok22/Malsami-BE/internal/common"
)

// Client is the HTTP implementation of Verifier. It posts the credentials
// to the portal's authentication endpoint and decodes the profile payload.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a portal client for the given base URL. A zero timeout
// falls back to 10 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type authRequest struct {
	PortalID       string `json:"portalId"`
	PortalPassword string `json:"portalPassword"`
}

type authResponse struct {
	StudentID        string `json:"studentId"`
	StudentName      string `json:"studentName"`
	Major            string `json:"major"`
	AcademicYear     string `json:"academicYear"`
	EnrollmentStatus string `json:"enrollmentStatus"`
}

// Authenticate implements Verifier. Any transport failure, non-200 status,
// or malformed payload is reported as common.ErrVerificationFailed; the
// caller cannot distinguish a rejected login from an unreachable portal and
// must not retry automatically.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (*Identity, error) {
	body, err := json.Marshal(authRequest{
		PortalID:       creds.PortalID,
		PortalPassword: creds.PortalPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encoding request: %v", common.ErrVerificationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", common.ErrVerificationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: portal unreachable: %v", common.ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: portal returned status %d", common.ErrVerificationFailed, resp.StatusCode)
	}

	var payload authResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", common.ErrVerificationFailed, err)
	}

	studentID, err := strconv.ParseInt(payload.StudentID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid student id %q", common.ErrVerificationFailed, payload.StudentID)
	}

	return &Identity{
		StudentID:        studentID,
		StudentName:      payload.StudentName,
		Major:            payload.Major,
		AcademicYear:     payload.AcademicYear,
		EnrollmentStatus: payload.EnrollmentStatus,
	}, nil
}
