package middleware

import (
	"net/http"
	"runtime/debug"

	"pet-adoption-marketplace/internal/platform/httpjson"
	"pet-adoption-marketplace/internal/platform/logger"
)

// Recover reemplaza a chimw.Recoverer: loguea el panic con el logger del request
// y responde con el sobre de error uniforme.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered", map[string]any{
				"panic": rec,
				"stack": string(debug.Stack()),
				"path":  r.URL.Path,
			})

			if r.Header.Get("Connection") != "Upgrade" {
				httpjson.WriteError(w, http.StatusInternalServerError, "internal error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
