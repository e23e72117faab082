package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/shashiranjanraj/servicehub/pkg/logger"
	"github.com/shashiranjanraj/servicehub/pkg/response"
)

// Recovery turns a panic in any downstream handler into a logged stack trace
// and a generic 500 body. Mount it after reqid and Logger so the stack line
// carries the request_id.
//
//	r.Use(reqid.Middleware())
//	r.Use(middleware.Logger)
//	r.Use(middleware.Recovery)
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.WithCtx(r.Context()).Error("panic recovered",
				"error", fmt.Sprintf("%v", rec),
				"stack", string(debug.Stack()),
				"method", r.Method,
				"path", r.URL.Path,
			)
			response.ServerError(w)
		}()
		next.ServeHTTP(w, r)
	})
}
