package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fundihub/internal/delivery/http/handler"
	"fundihub/internal/delivery/http/middleware"

	"github.com/stretchr/testify/assert"
)

// newTestRouter builds the routing table with empty handlers. Requests sent
// without a token stop at the auth middleware, so a 401 proves the route and
// method are registered while a 405 proves they are not.
func newTestRouter() http.Handler {
	r := NewRouter(
		&handler.AuthHandler{},
		&handler.BookingHandler{},
		&handler.ServiceHandler{},
		&handler.MessageHandler{},
		&handler.ReviewHandler{},
		&handler.PaymentHandler{},
		&handler.ClientHandler{},
		&handler.WorkerHandler{},
		&handler.DashboardHandler{},
		middleware.NewAuthMiddleware(nil, nil),
		middleware.NewCORSMiddleware(),
	)
	return r.Setup()
}

func TestBookingMutationVerbs(t *testing.T) {
	router := newTestRouter()

	registered := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/api/v1/bookings/abc"},
		{http.MethodPatch, "/api/v1/bookings/abc"},
		{http.MethodPut, "/api/v1/bookings/abc/confirm"},
		{http.MethodPost, "/api/v1/bookings/abc/confirm"},
		{http.MethodPut, "/api/v1/bookings/abc/cancel"},
		{http.MethodPost, "/api/v1/bookings/abc/cancel"},
		{http.MethodPost, "/api/v1/bookings"},
		{http.MethodGet, "/api/v1/bookings"},
		{http.MethodGet, "/api/v1/bookings/abc"},
	}
	for _, route := range registered {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	unregistered := []struct {
		method string
		path   string
	}{
		{http.MethodDelete, "/api/v1/bookings/abc"},
		{http.MethodPut, "/api/v1/bookings"},
	}
	for _, route := range unregistered {
		t.Run(route.method+" "+route.path+" is rejected", func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestHealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}
