package analyses

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"

	localstore "jobshield-backend/internal/shared/storage/object/local"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(t)
	store := localstore.New(t.TempDir())
	svc.Reports.Store = store

	r := gin.New()
	h := NewHandler(svc, store)
	h.RegisterRoutes(r.Group("/api/v1"))
	return r, svc
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnalyzeEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/api/v1/analyze", gin.H{
		"job_text":       "Pay Rs 5000 registration fee within 24 hours. Contact on WhatsApp only.",
		"company_name":   "",
		"contact_method": "whatsapp",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	for _, key := range []string{
		"analysis_id", "risk_score", "risk_tier", "recommendation",
		"component_scores", "ml_result", "triggered_rules", "explanations",
		"company_verification", "recruiter_score", "spam_lines", "pdf_report",
	} {
		if _, ok := resp[key]; !ok {
			t.Errorf("response missing %q", key)
		}
	}
	if resp["status"] != StatusCompleted {
		t.Fatalf("status = %v, want %v", resp["status"], StatusCompleted)
	}
}

func postDocument(t *testing.T, r *gin.Engine, contentType, fileName string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %q: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/document", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnalyzeDocumentEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	posting := []byte("Pay Rs 5000 registration fee within 24 hours. Contact on WhatsApp only.")
	w := postDocument(t, r, "text/plain", "posting.txt", posting, map[string]string{
		"company_name":    "Acme",
		"recruiter_email": "hr@acme.com",
		"contact_method":  "whatsapp",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	for _, key := range []string{"analysis_id", "risk_score", "risk_tier", "company_verification", "pdf_report"} {
		if _, ok := resp[key]; !ok {
			t.Errorf("response missing %q", key)
		}
	}
	verification, _ := resp["company_verification"].(map[string]any)
	if verification == nil || verification["email_match"] == nil {
		t.Fatalf("expected email_match in company verification, got %v", resp["company_verification"])
	}
}

func TestAnalyzeDocumentUnsupportedType(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postDocument(t, r, "image/png", "posting.png", []byte{0x89, 0x50, 0x4e, 0x47}, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("unsupported document type")) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestAnalyzeDocumentRequiresFile(t *testing.T) {
	r, _ := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("company_name", "Acme"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze/document", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAnalyzeEndpointRequiresJobText(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/api/v1/analyze", gin.H{"company_name": "Acme"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAnalyzeEndpointShortText(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/api/v1/analyze", gin.H{"job_text": "short"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDownloadReport(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postJSON(t, r, "/api/v1/analyze", gin.H{
		"job_text": "Pay Rs 5000 registration fee within 24 hours. Contact on WhatsApp only.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("analyze status = %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	filename, _ := resp["pdf_report"].(string)
	if filename == "" {
		t.Fatal("missing pdf_report handle")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+filename, nil)
	dw := httptest.NewRecorder()
	r.ServeHTTP(dw, req)
	if dw.Code != http.StatusOK {
		t.Fatalf("download status = %d", dw.Code)
	}
	if !bytes.Contains(dw.Body.Bytes(), []byte("Fraud Analysis Report")) {
		t.Fatalf("unexpected report body: %s", dw.Body.String())
	}
}

func TestDownloadReportMissing(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/does_not_exist.txt", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
