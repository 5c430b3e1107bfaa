package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Chain lists middleware from the outermost in. Nil entries are skipped.
type Chain []Middleware

func (c Chain) Then(h http.Handler) http.Handler {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i] != nil {
			h = c[i](h)
		}
	}
	return h
}
