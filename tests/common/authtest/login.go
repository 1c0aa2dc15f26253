//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	reqdto "hotel-backoffice/internal/handler/dto/request"
	resdto "hotel-backoffice/internal/handler/dto/response"
	"hotel-backoffice/tests/common/dbtest"
	"hotel-backoffice/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func LoginStaff(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		reqdto.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body resdto.LoginResponse
	httptest.DecodeResponseBody(t, w.Body, &body)
	require.NotEmpty(t, body.Token, "Login response carries no token")

	return body.Token
}

func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, role string) string {
	t.Helper()
	dbtest.CreateTestStaff(t, db, email, role)
	return LoginStaff(t, router, email, "password123")
}
