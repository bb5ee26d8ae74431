package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"carcrm/pkg/config"
	"carcrm/prometheus"

	"github.com/labstack/echo/v4"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{
		Metrics: config.MetricsConfig{Prefix: "crm_middleware_test"},
	})
	os.Exit(m.Run())
}

func runSessionAuth(req *http.Request) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := SessionAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestSessionAuthMissingCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/buyers", nil)
	rec := runSessionAuth(req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "unauthorized") {
		t.Errorf("body = %q, want unauthorized error", body)
	}
}

func TestSessionAuthEmptyCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/buyers", nil)
	req.AddCookie(&http.Cookie{Name: CookieName(), Value: ""})
	rec := runSessionAuth(req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionAuthMalformedToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/buyers", nil)
	req.AddCookie(&http.Cookie{Name: CookieName(), Value: "not-a-valid-token"})
	rec := runSessionAuth(req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionAuthIgnoresOtherCookies(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/buyers", nil)
	req.AddCookie(&http.Cookie{Name: "some_other_cookie", Value: "value"})
	rec := runSessionAuth(req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSetCookieName(t *testing.T) {
	original := CookieName()
	defer SetCookieName(original)

	SetCookieName("custom_session")
	if CookieName() != "custom_session" {
		t.Errorf("CookieName = %q, want custom_session", CookieName())
	}

	SetCookieName("")
	if CookieName() != "custom_session" {
		t.Error("empty name should leave the cookie name unchanged")
	}
}
