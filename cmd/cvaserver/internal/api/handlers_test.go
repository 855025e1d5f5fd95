package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/meenmo/cvalib/marketdata"
)

func newTestRouter() (*gin.Engine, *MemoryCache) {
	gin.SetMode(gin.TestMode)
	cache := NewMemoryCache()
	router := gin.New()
	SetupRoutes(router, NewHandlers(cache, marketdata.DefaultCreditFeed()))
	return router, cache
}

func postCVA(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/cva", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validRequest() AnalyzeRequest {
	return AnalyzeRequest{
		Counterparty:  "ABC Corporation",
		NotionalMM:    100,
		FixedRatePct:  2.5,
		MaturityYears: 1,
		SpreadBP:      150,
		RecoveryPct:   40,
		Simulations:   64,
		Seed:          42,
	}
}

func TestAnalyze_OK(t *testing.T) {
	router, _ := newTestRouter()

	rec := postCVA(t, router, validRequest())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.CVA < 0 {
		t.Fatalf("CVA = %v, want >= 0", resp.CVA)
	}
	if len(resp.TimeGrid) != 13 || len(resp.EPE) != 13 {
		t.Fatalf("grid/epe lengths = %d/%d, want 13 for a 1y monthly run", len(resp.TimeGrid), len(resp.EPE))
	}
	if resp.SamplePaths != nil {
		t.Fatal("sample paths returned without include_paths")
	}
}

func TestAnalyze_IncludePaths(t *testing.T) {
	router, _ := newTestRouter()

	req := validRequest()
	req.IncludePaths = true
	rec := postCVA(t, router, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.SamplePaths) != 20 {
		t.Fatalf("sample path rows = %d, want 20", len(resp.SamplePaths))
	}
	if len(resp.SamplePaths[0]) != 13 {
		t.Fatalf("sample path columns = %d, want 13", len(resp.SamplePaths[0]))
	}
}

func TestAnalyze_CachesIdenticalRequests(t *testing.T) {
	router, cache := newTestRouter()

	first := postCVA(t, router, validRequest())
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}
	if len(cache.entries) != 1 {
		t.Fatalf("cache entries = %d, want 1", len(cache.entries))
	}

	second := postCVA(t, router, validRequest())
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d", second.Code)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Fatal("cached response differs from original")
	}
}

func TestAnalyze_BadRequests(t *testing.T) {
	router, _ := newTestRouter()

	missingNotional := validRequest()
	missingNotional.NotionalMM = 0
	if rec := postCVA(t, router, missingNotional); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing notional: status = %d, want 400", rec.Code)
	}

	badRecovery := validRequest()
	badRecovery.RecoveryPct = 150
	if rec := postCVA(t, router, badRecovery); rec.Code != http.StatusBadRequest {
		t.Fatalf("recovery > 100: status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/cva", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: status = %d, want 400", rec.Code)
	}
}

func TestCounterparties(t *testing.T) {
	router, _ := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/counterparties", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listResp struct {
		Counterparties []CounterpartyResponse `json:"counterparties"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(listResp.Counterparties) == 0 {
		t.Fatal("expected non-empty counterparty list")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/counterparties/Nordbank%20AG", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/counterparties/Unknown%20Co", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown counterparty status = %d, want 404", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal health: %v", err)
	}
	if resp["cache_backend"] != "memory" {
		t.Fatalf("cache_backend = %q, want memory", resp["cache_backend"])
	}
}
