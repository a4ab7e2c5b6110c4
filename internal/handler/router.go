/*
Package handler provides the HTTP handlers and routing setup for the Nexora
edge functions and API.

Browser clients call the function routes under /functions/v1 directly, so
those answer every preflight with a fixed set of permissive CORS headers.
The /api routes use origin-checked CORS and require a signed-in user.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"nexora/internal/pkg/auth/jwt"
	"nexora/internal/pkg/logx"
	"nexora/internal/pkg/resp"
)

// functionHeaders are sent on every function response, preflight or not.
var functionHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "authorization, x-client-info, apikey, content-type",
	"Access-Control-Allow-Methods": "POST, OPTIONS",
}

// FunctionHeaders sets the function CORS headers and answers OPTIONS with
// 200 "ok" without reaching the handler.
func FunctionHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for key, value := range functionHeaders {
			w.Header().Set(key, value)
		}

		if r.Method == http.MethodOptions {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Router sets up the main HTTP routing table for the application.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", HandleHealth(deps))

	r.Route("/functions/v1", func(fn chi.Router) {
		fn.Use(FunctionHeaders)

		fn.With(deps.TokenLimiter.Middleware).Post("/get-zego-token", HandleIssueVideoToken(deps))

		if deps.Enrollment != nil {
			fn.With(jwt.RequireUser(deps.Config.BaaSJWTSecret)).Post("/enroll-free-courses", HandleEnrollFreeCourses(deps))
		}

		if deps.Checkout != nil {
			fn.Group(func(pay chi.Router) {
				pay.Use(jwt.RequireUser(deps.Config.BaaSJWTSecret))
				pay.Post("/create-checkout", HandleCreateCheckout(deps))
				pay.Post("/process-payment", HandleProcessPayment(deps))
			})
		}
	})

	corsAllowedOrigins := deps.Config.AllowedOrigins
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(c.Handler)
		api.Use(jwt.RequireUser(deps.Config.BaaSJWTSecret))

		if deps.Storage != nil {
			api.With(deps.UploadLimiter.Middleware).Post("/content/presign-upload", HandlePresignContentUpload(deps))
			api.Get("/content/download", HandleContentDownload(deps))
		}
	})

	return r
}

// HandleHealth reports liveness and which optional features are enabled.
func HandleHealth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{
			"status":  "ok",
			"service": "Nexora",
			"features": map[string]bool{
				"video_token": deps.Issuer.Configured(),
				"enrollment":  deps.Enrollment != nil,
				"payments":    deps.Checkout != nil,
				"content":     deps.Storage != nil,
			},
		})
	}
}
