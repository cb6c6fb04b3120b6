//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"room-reservation-api/internal/handler/dto/request"
	"room-reservation-api/internal/handler/dto/response"
	"room-reservation-api/internal/handler/middleware"
	"room-reservation-api/tests/common/dbtest"
	"room-reservation-api/tests/common/httptest"
	"room-reservation-api/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const loginURL = "/api/auth/login"

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "guest@example.com", middleware.RoleGuest)
	dbtest.CreateTestUser(s.T(), s.DB, "admin@example.com", middleware.RoleAdmin)
	inactiveID := dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", middleware.RoleGuest)

	ctx := s.T().Context()
	_, err := s.DB.Exec(ctx, "UPDATE users SET is_active = false WHERE id = $1", inactiveID)
	require.NoError(s.T(), err)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
		expectedRole   string
	}{
		{
			name:           "guest logs in with valid credentials",
			email:          "guest@example.com",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusOK,
			expectedRole:   middleware.RoleGuest,
		},
		{
			name:           "admin logs in with valid credentials",
			email:          "admin@example.com",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusOK,
			expectedRole:   middleware.RoleAdmin,
		},
		{
			name:           "unknown user is rejected",
			email:          "nobody@example.com",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong password is rejected",
			email:          "guest@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "inactive account is rejected",
			email:          "inactive@example.com",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty email is a bad request",
			email:          "",
			password:       dbtest.TestUserPassword,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty password is a bad request",
			email:          "guest@example.com",
			password:       "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp response.LoginResponse
				require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &resp))
				require.NotEmpty(t, resp.AccessToken)
				require.Equal(t, tt.expectedRole, resp.Role)

				// The token must satisfy the auth middleware on a protected route.
				list := httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/reservations", nil, resp.AccessToken)
				require.Equal(t, http.StatusOK, list.Code)
			}
		})
	}
}
