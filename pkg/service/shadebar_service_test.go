package service

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func newSqliteTestService(t *testing.T) *ShadebarService {
	t.Helper()
	svc, err := NewShadebarService(&ShadebarServiceConfig{
		SqlitePath: filepath.Join(t.TempDir(), "shadebar.db"),
		Port:       5000,
	})
	if err != nil {
		t.Fatalf("error creating service: %s", err.Error())
	}
	return svc
}

func TestNewShadebarService_sqlite_service(t *testing.T) {
	svc := newSqliteTestService(t)

	req := httptest.NewRequest(http.MethodGet, healthAPIRoute, nil)
	recorder := httptest.NewRecorder()
	svc.Router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), `"ok":true`) {
		t.Errorf("expected a passing health check, got %s", recorder.Body.String())
	}

	// The schema is set up, so a write through the full router lands.
	req = httptest.NewRequest(http.MethodPost, itemsAPIBaseRoute, strings.NewReader(`{"itemNumber":"A_100","name":"Aviator Classic"}`))
	req.Header.Set("Content-Type", "application/json")
	recorder = httptest.NewRecorder()
	svc.Router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusCreated {
		t.Errorf("expected status %d got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}
}

func TestRouter_suggestCategoryRoutesBeforeIdPattern_service(t *testing.T) {
	svc := newSqliteTestService(t)

	req := httptest.NewRequest(http.MethodGet, suggestCategoryAPIRoute+"?itemNumber=P_7", nil)
	recorder := httptest.NewRecorder()
	svc.Router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), "Polarized") {
		t.Errorf("expected a Polarized suggestion, got %s", recorder.Body.String())
	}
}
