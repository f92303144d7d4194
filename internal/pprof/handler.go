package pprof

import (
	"crypto/subtle"
	"expvar"
	"fmt"
	"net/http"
	"net/http/pprof"

	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	mux *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(prefix string) *Handler {
	mux := &http.ServeMux{}

	mux.HandleFunc(fmt.Sprintf("%s/", prefix), pprof.Index)
	mux.HandleFunc(fmt.Sprintf("%s/cmdline", prefix), pprof.Cmdline)
	mux.HandleFunc(fmt.Sprintf("%s/profile", prefix), pprof.Profile)
	mux.HandleFunc(fmt.Sprintf("%s/symbol", prefix), pprof.Symbol)
	mux.HandleFunc(fmt.Sprintf("%s/trace", prefix), pprof.Trace)
	mux.Handle(fmt.Sprintf("%s/vars", prefix), expvar.Handler())

	mux.HandleFunc(fmt.Sprintf("%s/{name}", prefix), func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		pprof.Handler(name).ServeHTTP(w, r)
	})

	return &Handler{mux}
}

// BasicAuth gates the profiling endpoints behind an operator account.
// The password is checked against a bcrypt hash from the configuration.
func BasicAuth(username, passwordHash string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqUsername, reqPassword, ok := r.BasicAuth()
			if ok {
				usernameMatches := subtle.ConstantTimeCompare([]byte(reqUsername), []byte(username)) == 1
				passwordMatches := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(reqPassword)) == nil

				if usernameMatches && passwordMatches {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}
}

var _ http.Handler = &Handler{}
