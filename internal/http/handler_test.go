package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Yasser-Essafi/SRM/internal/auth"
	"github.com/Yasser-Essafi/SRM/internal/http/middleware"
	"github.com/Yasser-Essafi/SRM/internal/report"
	"github.com/Yasser-Essafi/SRM/internal/repository"
	"github.com/Yasser-Essafi/SRM/internal/service"
)

const testSecret = "test-secret"

type fakeRecognizer struct {
	text string
	err  error
}

func (f fakeRecognizer) ExtractText(ctx context.Context, filename, contentType string, image io.Reader) (string, error) {
	return f.text, f.err
}

func newTestRouter(t *testing.T, recognizer TextRecognizer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore(repository.DemoDataset())
	log := zerolog.Nop()

	statusService := service.NewStatusService(store, log)
	reportService := service.NewReportService(store, report.NewExcelGenerator(), report.NewPDFGenerator(""), log)

	handler := NewHandler(statusService, reportService, nil, recognizer, log)
	authMiddleware := middleware.Auth(auth.NewParser(testSecret))
	return NewRouter(handler, authMiddleware, "test")
}

func signToken(t *testing.T, subject, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, fakeRecognizer{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestContractStatusOK(t *testing.T) {
	router := newTestRouter(t, fakeRecognizer{})

	body := `{"service": "water", "contract_number": "3701455890"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/contracts/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp statusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ContractNumber != "3701455890 / 1014875" {
		t.Fatalf("contract = %q, want canonical number", resp.ContractNumber)
	}
	if resp.Cause != "UNPAID" {
		t.Fatalf("cause = %q, want UNPAID", resp.Cause)
	}
	if resp.ZoneMaintenanceActive {
		t.Fatal("electricity maintenance reported for a water contract")
	}
}

func TestContractStatusErrors(t *testing.T) {
	router := newTestRouter(t, fakeRecognizer{})

	cases := []struct {
		body string
		code int
	}{
		{`{"service": "water", "contract_number": "3701999999"}`, http.StatusNotFound},
		{`{"service": "water", "contract_number": "nonsense"}`, http.StatusBadRequest},
		{`{"service": "gas", "contract_number": "3701455886"}`, http.StatusBadRequest},
		{`{"service": "water"}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/contracts/status", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != tc.code {
			t.Fatalf("body %s: status = %d, want %d", tc.body, w.Code, tc.code)
		}
	}
}

func TestChatDisabledAgent(t *testing.T) {
	router := newTestRouter(t, fakeRecognizer{})

	body := `{"message": "سلام"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func uploadImage(t *testing.T, router *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "invoice.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("fake image bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	writer.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ocr/extract-contract", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)
	return w
}

func TestExtractContractFromImage(t *testing.T) {
	router := newTestRouter(t, fakeRecognizer{text: "فاتورة الماء رقم العقد 3701455886 / 1014871"})

	w := uploadImage(t, router)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "3701455886 / 1014871") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestExtractContractNoMatch(t *testing.T) {
	router := newTestRouter(t, fakeRecognizer{text: "no contract in this text"})

	w := uploadImage(t, router)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error_ar") {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestExtractContractOCRFailure(t *testing.T) {
	router := newTestRouter(t, fakeRecognizer{err: errors.New("ocr service down")})

	w := uploadImage(t, router)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}
}

func TestReportExportAuth(t *testing.T) {
	router := newTestRouter(t, fakeRecognizer{})

	// No token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/reports/export", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", w.Code)
	}

	// Valid token, wrong role.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/reports/export", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "7", "DRIVER"))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status for non-admin = %d, want 403", w.Code)
	}

	// Admin gets the workbook.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/admin/reports/export", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "1", "ADMIN"))
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status for admin = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), ".xlsx") {
		t.Fatalf("content-disposition = %q", w.Header().Get("Content-Disposition"))
	}
	if w.Body.Len() == 0 {
		t.Fatal("empty workbook")
	}
}
