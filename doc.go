// Package bresp provides a mutable builder for HTTP-style responses.
//
// # Overview
//
// bresp accumulates a response in memory before anything is sent to a
// client: a status code, a case-insensitive ordered header collection
// and an ordered sequence of body fragments. The builder performs no
// I/O itself; it finalizes into a (status, headers, body) triple that
// an enclosing serving layer streams out.
//
// A minimal example:
//
//	resp, err := bresp.New("<h1>hello</h1>",
//	    bresp.WithStatus(http.StatusOK),
//	    bresp.WithHeader("Content-Type", "text/html; charset=utf-8"))
//	if err != nil {
//	    return err
//	}
//	resp.SetCookie("session", "abc123")
//
//	status, hdr, body := resp.Finish()
//	bresp.Send(w, status, hdr, body)
//
// # Construction
//
// [New] accepts the initial body as a string-like value (string,
// []byte, fmt.Stringer) or a sequence of string-like parts; the shape
// is resolved exactly once at the boundary and anything else fails
// fast with [ErrBodyType]. The header collection is seeded with
// "Content-Type: text/html" unless overridden.
//
// # Cookies
//
// [Response.SetCookie] and [Response.SetCookieWith] append to the
// Set-Cookie sequence, modelling HTTP's allowance of repeated
// Set-Cookie fields. [Response.DeleteCookie] removes matching entries
// and issues an expiring overwrite cookie so the client discards it.
//
// # Finalization and streaming
//
// [Response.Finish] produces the outgoing triple. The body is an
// iter.Seq[string] with a two-phase contract: buffered fragments are
// replayed first, then an optional finish callback runs with the
// builder while writes are forwarded to the consumer immediately. A
// handler therefore chooses between eager buffering (write before
// Finish) and true streaming (write inside the callback) with a single
// code path. The bodyless statuses 201, 204 and 304 yield an empty
// body and drop Content-Type.
//
// # Serving glue
//
// [ToStd] adapts a [HandlerFunc] to a standard http.Handler with a
// plain-text 500 fallback when the handler errors, and [Send] writes
// any finished triple onto an http.ResponseWriter, flushing between
// fragments. Routing, middleware and request parsing are out of scope.
//
// A [Response] is a single-owner, single-use value. It must not be
// mutated concurrently from multiple goroutines.
package bresp
