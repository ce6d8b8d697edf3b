package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

func signToken(t *testing.T, userID string, role Role, secret string) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func newAuthRouter(cap Capability) *gin.Engine {
	r := gin.New()
	r.GET("/protected", Auth(testSecret), RequireCapability(cap), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingToken(t *testing.T) {
	w := doRequest(newAuthRouter(CapCatalogRead), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signToken(t, uuid.NewString(), RoleAdmin, "other-secret")
	w := doRequest(newAuthRouter(CapCatalogRead), token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRequireCapability_Granted(t *testing.T) {
	token := signToken(t, uuid.NewString(), RoleOperator, testSecret)
	w := doRequest(newAuthRouter(CapTripsRecord), token)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestRequireCapability_Denied(t *testing.T) {
	// Analysts may compute analytics but never record trips.
	token := signToken(t, uuid.NewString(), RoleAnalyst, testSecret)
	w := doRequest(newAuthRouter(CapTripsRecord), token)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequireCapability_CustomerCannotAdministerCatalog(t *testing.T) {
	token := signToken(t, uuid.NewString(), RoleCustomer, testSecret)
	w := doRequest(newAuthRouter(CapCatalogAdmin), token)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestRequireCapability_UnknownRole(t *testing.T) {
	token := signToken(t, uuid.NewString(), Role("intern"), testSecret)
	w := doRequest(newAuthRouter(CapCatalogRead), token)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}
