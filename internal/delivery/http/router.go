package http

import (
	"net/http"

	"fundihub/internal/delivery/http/handler"
	"fundihub/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router           *mux.Router
	authHandler      *handler.AuthHandler
	bookingHandler   *handler.BookingHandler
	serviceHandler   *handler.ServiceHandler
	messageHandler   *handler.MessageHandler
	reviewHandler    *handler.ReviewHandler
	paymentHandler   *handler.PaymentHandler
	clientHandler    *handler.ClientHandler
	workerHandler    *handler.WorkerHandler
	dashboardHandler *handler.DashboardHandler
	authMiddleware   *middleware.AuthMiddleware
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	bookingHandler *handler.BookingHandler,
	serviceHandler *handler.ServiceHandler,
	messageHandler *handler.MessageHandler,
	reviewHandler *handler.ReviewHandler,
	paymentHandler *handler.PaymentHandler,
	clientHandler *handler.ClientHandler,
	workerHandler *handler.WorkerHandler,
	dashboardHandler *handler.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		authHandler:      authHandler,
		bookingHandler:   bookingHandler,
		serviceHandler:   serviceHandler,
		messageHandler:   messageHandler,
		reviewHandler:    reviewHandler,
		paymentHandler:   paymentHandler,
		clientHandler:    clientHandler,
		workerHandler:    workerHandler,
		dashboardHandler: dashboardHandler,
		authMiddleware:   authMiddleware,
		corsMiddleware:   corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/client", r.authHandler.RegisterClient).Methods(http.MethodPost)
	auth.HandleFunc("/register/worker", r.authHandler.RegisterWorker).Methods(http.MethodPost)
	auth.HandleFunc("/register/admin", r.authHandler.RegisterAdmin).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Service catalogue (public)
	api.HandleFunc("/services", r.serviceHandler.ListServices).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", r.serviceHandler.GetService).Methods(http.MethodGet)
	api.HandleFunc("/workers/{worker_id}/reviews", r.reviewHandler.ListWorkerReviews).Methods(http.MethodGet)

	// M-Pesa callback (public, called by Safaricom)
	api.HandleFunc("/payments/mpesa/callback", r.paymentHandler.HandleCallback).Methods(http.MethodPost)

	// Booking routes (protected)
	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.Use(r.authMiddleware.Authenticate)
	bookings.HandleFunc("", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	bookings.HandleFunc("", r.bookingHandler.ListBookings).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}", r.bookingHandler.GetBooking).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}", r.bookingHandler.UpdateBooking).Methods(http.MethodPut, http.MethodPatch)
	bookings.HandleFunc("/{id}/confirm", r.bookingHandler.ConfirmBooking).Methods(http.MethodPut, http.MethodPost)
	bookings.HandleFunc("/{id}/cancel", r.bookingHandler.CancelBooking).Methods(http.MethodPut, http.MethodPost)
	bookings.HandleFunc("/{id}/messages", r.messageHandler.GetBookingMessages).Methods(http.MethodGet)

	// Worker routes (protected - worker only)
	worker := api.PathPrefix("/worker").Subrouter()
	worker.Use(r.authMiddleware.Authenticate)
	worker.Use(middleware.RequireWorker)
	worker.HandleFunc("/profile", r.workerHandler.GetMyProfile).Methods(http.MethodGet)
	worker.HandleFunc("/profile", r.workerHandler.UpdateMyProfile).Methods(http.MethodPatch)
	worker.HandleFunc("/subscription/renew", r.workerHandler.RenewSubscription).Methods(http.MethodPost)
	worker.HandleFunc("/services", r.serviceHandler.CreateService).Methods(http.MethodPost)
	worker.HandleFunc("/services", r.serviceHandler.ListMyServices).Methods(http.MethodGet)

	// Client routes (protected - client only)
	client := api.PathPrefix("/client").Subrouter()
	client.Use(r.authMiddleware.Authenticate)
	client.Use(middleware.RequireClient)
	client.HandleFunc("/profile", r.clientHandler.GetMyProfile).Methods(http.MethodGet)
	client.HandleFunc("/profile", r.clientHandler.UpdateMyProfile).Methods(http.MethodPatch)

	// Service management (protected - owner or admin enforced in usecase)
	services := api.PathPrefix("/services").Subrouter()
	services.Use(r.authMiddleware.Authenticate)
	services.HandleFunc("/{id}", r.serviceHandler.UpdateService).Methods(http.MethodPatch)
	services.HandleFunc("/{id}", r.serviceHandler.DeleteService).Methods(http.MethodDelete)

	// Messaging routes (protected)
	messages := api.PathPrefix("/messages").Subrouter()
	messages.Use(r.authMiddleware.Authenticate)
	messages.HandleFunc("", r.messageHandler.SendMessage).Methods(http.MethodPost)
	messages.HandleFunc("/unread", r.messageHandler.CountUnread).Methods(http.MethodGet)
	messages.HandleFunc("/conversations/{user_id}", r.messageHandler.GetConversation).Methods(http.MethodGet)

	// Review routes (protected)
	reviews := api.PathPrefix("/reviews").Subrouter()
	reviews.Use(r.authMiddleware.Authenticate)
	reviews.HandleFunc("", r.reviewHandler.CreateReview).Methods(http.MethodPost)

	// Payment routes (protected)
	payments := api.PathPrefix("/payments").Subrouter()
	payments.Use(r.authMiddleware.Authenticate)
	payments.HandleFunc("", r.paymentHandler.InitiatePayment).Methods(http.MethodPost)
	payments.HandleFunc("/me", r.paymentHandler.ListMyPayments).Methods(http.MethodGet)
	payments.HandleFunc("/{id}", r.paymentHandler.GetPayment).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/dashboard", r.dashboardHandler.GetDashboard).Methods(http.MethodGet)
	admin.HandleFunc("/actions", r.dashboardHandler.ListAdminActions).Methods(http.MethodGet)
	admin.HandleFunc("/clients", r.clientHandler.ListClients).Methods(http.MethodGet)
	admin.HandleFunc("/workers", r.workerHandler.ListWorkers).Methods(http.MethodGet)
	admin.HandleFunc("/reviews", r.reviewHandler.ListReviews).Methods(http.MethodGet)
	admin.HandleFunc("/reviews/{id}", r.reviewHandler.DeleteReview).Methods(http.MethodDelete)
	admin.HandleFunc("/payments", r.paymentHandler.ListPayments).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", r.bookingHandler.DeleteBooking).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
