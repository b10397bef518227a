package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

func NewRouter(h *HTTPHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ok", nil) })

	r.Route("/v1", func(r chi.Router) {
		r.Use(h.sessionMiddleware)
		r.Get("/catalog", h.catalog)

		r.Get("/cart", h.viewCart)
		r.Post("/cart/items", h.addToCart)
		r.Delete("/cart", h.resetCart)
		r.Post("/registrations", h.register)

		r.Post("/shop/login", h.login)
		r.Post("/shop/logout", h.logout)
		r.Get("/shop/lookup", h.lookup)
		r.Post("/shop/redemptions", h.redeem)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  middleware.GetReqID(r.Context()),
		}).Info("HTTP request")
	})
}
