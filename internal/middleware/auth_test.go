package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/service"
	"github.com/azimeazdhan1231/trynex-lifestyle-live-sub004/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestExtractBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc.def.ghi":       "abc.def.ghi",
		"bearer \"abc.def.ghi\"":   "abc.def.ghi",
		"Bearer abc.def.ghi, more": "abc.def.ghi",
	}
	for in, want := range cases {
		got, ok := ExtractBearerToken(in)
		if !ok || got != want {
			t.Fatalf("%q: got %q ok=%v", in, got, ok)
		}
	}
	if _, ok := ExtractBearerToken("Basic xyz"); ok {
		t.Fatalf("basic scheme must be rejected")
	}
}

func TestAdminRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := token.NewHSProvider("secret", "trynex", "admin")

	r := gin.New()
	r.GET("/admin", AdminRequired(tokens, zap.NewNop()), func(c *gin.Context) {
		role, _ := service.RoleFromContext(c.Request.Context())
		sub, _ := service.SubjectFromContext(c.Request.Context())
		c.String(http.StatusOK, string(role)+"|"+sub)
	})

	do := func(authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := do(""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no header: %d", w.Code)
	}
	if w := do("Bearer garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: %d", w.Code)
	}

	customer, _, _ := tokens.Sign("buyer", string(service.RoleCustomer), time.Hour)
	if w := do("Bearer " + customer); w.Code != http.StatusForbidden {
		t.Fatalf("customer token: %d", w.Code)
	}

	admin, _, _ := tokens.Sign("owner", string(service.RoleAdmin), time.Hour)
	w := do("Bearer " + admin)
	if w.Code != http.StatusOK || w.Body.String() != "ROLE_ADMIN|owner" {
		t.Fatalf("admin token: %d %s", w.Code, w.Body.String())
	}
}
