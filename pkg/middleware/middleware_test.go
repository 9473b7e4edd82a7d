package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCors(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		allowed        []string
		method         string
		origin         string
		expectedStatus int
		expectedOrigin string
	}{
		{name: "Origem liberada", allowed: []string{"http://caixa.local"}, method: http.MethodGet, origin: "http://caixa.local", expectedStatus: http.StatusOK, expectedOrigin: "http://caixa.local"},
		{name: "Origem bloqueada", allowed: []string{"http://caixa.local"}, method: http.MethodGet, origin: "http://outro.local", expectedStatus: http.StatusOK},
		{name: "Curinga libera qualquer origem", allowed: []string{"*"}, method: http.MethodGet, origin: "http://outro.local", expectedStatus: http.StatusOK, expectedOrigin: "http://outro.local"},
		{name: "Preflight responde sem chamar o handler", allowed: []string{"*"}, method: http.MethodOptions, origin: "http://caixa.local", expectedStatus: http.StatusNoContent, expectedOrigin: "http://caixa.local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/sales", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			Cors(tt.allowed)(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestLogPanicMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	handler := LoggingMiddleware()(LogPanicMiddleware()(panicking))
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/report", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"SRV_001"`)
}
