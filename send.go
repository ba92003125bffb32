package bresp

import (
	"io"
	"iter"
	"net/http"

	"github.com/advdv/bresp/headers"
	"github.com/cockroachdb/errors"
)

// HandlerFunc handles a request by mutating a fresh response builder.
// Returning an error discards the builder and yields a plain 500.
type HandlerFunc func(resp *Response, req *http.Request) error

// Send writes a finished triple onto a standard library response
// writer. Headers go out first in insertion order, then the status,
// then every body fragment. The writer is flushed after each fragment
// when it supports flushing, so fragments produced live by a finish
// callback reach the client as they are written.
func Send(w http.ResponseWriter, status int, hdr *headers.Map, body iter.Seq[string]) error {
	for name, vals := range hdr.All() {
		for _, val := range vals {
			w.Header().Add(name, val)
		}
	}

	w.WriteHeader(status)

	rc := http.NewResponseController(w)

	var werr error
	for frag := range body {
		if _, err := io.WriteString(w, frag); err != nil {
			werr = errors.Wrap(err, "write body fragment")
			break
		}

		if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			werr = errors.Wrap(err, "flush body fragment")
			break
		}
	}

	return werr
}

// SendResponse finalizes r and writes the resulting triple to w. An
// optional callback is passed through to [Response.Finish] to enable
// streaming.
func SendResponse(w http.ResponseWriter, r *Response, callback ...func(*Response)) error {
	status, hdr, body := r.Finish(callback...)
	return Send(w, status, hdr, body)
}

// ToStd converts a handler into a standard library http.Handler. The
// implementation creates a response builder per request and sends it
// implicitly after the handler returns.
func ToStd(h HandlerFunc, logs Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp := MustNew(nil)

		if err := h(resp, req); err != nil {
			logs.LogUnhandledServeError(err)

			// if all fails we don't want the client to end up with a white screen so
			// we render a 500 error with the standard text.
			http.Error(w,
				http.StatusText(http.StatusInternalServerError),
				http.StatusInternalServerError)

			return
		}

		if err := SendResponse(w, resp); err != nil {
			logs.LogSendError(err)
		}
	})
}
