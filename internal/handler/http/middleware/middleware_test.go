package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestWithClaims(t *testing.T, ja *jwtauth.JWTAuth, claims map[string]interface{}) *http.Request {
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(jwtauth.NewContext(req.Context(), token, nil))
}

func TestAuthRequired(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	handler := AuthRequired(ja)(okHandler)

	t.Run("accepts access token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithClaims(t, ja, map[string]interface{}{
			"user_id": "u1",
			"role":    "EMPLOYEE",
			"type":    "access",
		}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects refresh token on protected route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithClaims(t, ja, map[string]interface{}{
			"user_id": "u1",
			"type":    "refresh",
		}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects request without token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireSuperAdmin(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	handler := RequireSuperAdmin(okHandler)

	t.Run("allows super admin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithClaims(t, ja, map[string]interface{}{"role": "SUPER_ADMIN", "type": "access"}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects company manager", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithClaims(t, ja, map[string]interface{}{"role": "COMPANY_MANAGER", "type": "access"}))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRequirePermission(t *testing.T) {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	handler := RequirePermission(user.PermissionEmployeeManage)(okHandler)

	tests := []struct {
		role string
		want int
	}{
		{"COMPANY_MANAGER", http.StatusOK},
		{"HR_EMPLOYEE", http.StatusOK},
		{"EMPLOYEE", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestWithClaims(t, ja, map[string]interface{}{"role": tt.role, "type": "access"}))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
