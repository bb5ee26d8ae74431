package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

// postJSON runs a handler against a synthetic JSON request and decodes
// the response body.
func postJSON(t *testing.T, h echo.HandlerFunc, body string) (int, map[string]interface{}) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return rec.Code, resp
}

func assertBadRequest(t *testing.T, code int, resp map[string]interface{}, wantError string) {
	t.Helper()
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
	if resp["error"] != wantError {
		t.Errorf("error = %q, want %q", resp["error"], wantError)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing password", `{"email": "admin@example.com"}`},
		{"missing email", `{"password": "secret"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := postJSON(t, Login, tt.body)
			assertBadRequest(t, code, resp, "email and password are required")
		})
	}
}

func TestCreateBuyerRequiresNameAndPhone(t *testing.T) {
	for _, body := range []string{`{}`, `{"name": "Alice"}`, `{"phone": "9876543210"}`} {
		code, resp := postJSON(t, CreateBuyer, body)
		assertBadRequest(t, code, resp, "name and phone are required")
	}
}

func TestCreateSellerRequiresNameAndPhone(t *testing.T) {
	code, resp := postJSON(t, CreateSeller, `{"name": "Bob"}`)
	assertBadRequest(t, code, resp, "name and phone are required")
}

func TestCreateCarRequiresBrandModelPrice(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing price", `{"brand": "Honda", "model": "City"}`},
		{"zero price", `{"brand": "Honda", "model": "City", "price": 0}`},
		{"negative price", `{"brand": "Honda", "model": "City", "price": -500}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := postJSON(t, CreateCar, tt.body)
			assertBadRequest(t, code, resp, "brand, model and price are required")
		})
	}
}

func TestCreateCarRejectsUnknownStatus(t *testing.T) {
	code, resp := postJSON(t, CreateCar,
		`{"brand": "Honda", "model": "City", "price": 300000, "status": "scrapped"}`)
	assertBadRequest(t, code, resp, "invalid status")
}

func TestCreateLeadRejectsUnknownStatus(t *testing.T) {
	code, resp := postJSON(t, CreateLead, `{"status": "bogus"}`)
	assertBadRequest(t, code, resp, "invalid status")
}

func TestCreateFollowUpRequiresTypeAndSchedule(t *testing.T) {
	for _, body := range []string{`{}`, `{"type": "call"}`, `{"scheduledAt": "2025-08-01T10:00:00Z"}`} {
		code, resp := postJSON(t, CreateFollowUp, body)
		assertBadRequest(t, code, resp, "type and scheduledAt are required")
	}
}

func TestCreateWaLinkRequiresPhone(t *testing.T) {
	code, resp := postJSON(t, CreateWaLink, `{"body": "hi"}`)
	assertBadRequest(t, code, resp, "receiver phone number is required")
}

func TestCreateWaLinkRejectsUnknownRecipientType(t *testing.T) {
	code, resp := postJSON(t, CreateWaLink,
		`{"phone": "9876543210", "recipientType": "dealer"}`)
	assertBadRequest(t, code, resp, "invalid recipient type")
}

func TestExportCSVRejectsUnknownType(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?type=admins", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := ExportCSV(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetBuyerRejectsInvalidID(t *testing.T) {
	e := echo.New()
	for _, raw := range []string{"abc", "0", "-3", ""} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(raw)

		if err := GetBuyer(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("id %q: status = %d, want 400", raw, rec.Code)
		}
	}
}
