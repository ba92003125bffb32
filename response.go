package bresp

import (
	"iter"
	"net/http"
	"slices"

	"github.com/advdv/bresp/headers"
)

// writeState is the write target of the builder. Writes buffer until a
// [Response.Finish] drain flips the builder into forwarding mode for
// the duration of the finish callback.
type writeState int

const (
	stateBuffering writeState = iota
	stateForwarding
)

// bodylessStatuses are finalized without a body and without a
// Content-Type header.
var bodylessStatuses = []int{
	http.StatusCreated,
	http.StatusNoContent,
	http.StatusNotModified,
}

// Response accumulates an HTTP-style response: a status code, a
// case-insensitive ordered header collection and an ordered sequence
// of body fragments. It is a single-owner, single-use value: created
// per request, mutated during handling and finalized exactly once with
// [Response.Finish]. It is not safe for concurrent use.
type Response struct {
	status    int
	header    *headers.Map
	fragments []string

	state    writeState
	sink     func(string) bool
	callback func(*Response)
}

type options struct {
	status int
	header *headers.Map
	setup  func(*Response)
}

// Option configures construction of a [Response].
type Option func(*options)

// WithStatus sets the initial status code, overriding the default 200.
func WithStatus(code int) Option {
	return func(o *options) { o.status = code }
}

// WithHeader sets an initial header, overriding any default seed for
// the same name. It may be repeated.
func WithHeader(name, value string) Option {
	return func(o *options) {
		if o.header == nil {
			o.header = headers.New()
		}

		o.header.Set(name, value)
	}
}

// WithHeaders applies every header of m as initial headers.
func WithHeaders(m *headers.Map) Option {
	return func(o *options) {
		if o.header == nil {
			o.header = m.Clone()
			return
		}

		for name, vals := range m.All() {
			o.header.Set(name, vals...)
		}
	}
}

// WithSetup registers a callback invoked with the constructed builder
// right after the initial body is populated, for inline configuration.
func WithSetup(fn func(*Response)) Option {
	return func(o *options) { o.setup = fn }
}

// New constructs a response builder. The body may be a string-like
// value (string, []byte, fmt.Stringer), a sequence of string-like
// parts, or nil for an empty body; anything else fails with
// [ErrBodyType]. The header collection is seeded with
// "Content-Type: text/html" unless an option overrides it.
func New(body any, opts ...Option) (*Response, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := &Response{status: http.StatusOK, header: headers.New()}
	r.header.Set("Content-Type", "text/html")

	if o.status != 0 {
		r.status = o.status
	}

	if o.header != nil {
		for name, vals := range o.header.All() {
			r.header.Set(name, vals...)
		}
	}

	frags, err := resolveBody(body)
	if err != nil {
		return nil, err
	}

	for _, frag := range frags {
		r.writeString(frag)
	}

	if o.setup != nil {
		o.setup(r)
	}

	return r, nil
}

// MustNew is [New] but panics on a body type error. Useful when the
// body is a literal and the error branch is statically impossible.
func MustNew(body any, opts ...Option) *Response {
	r, err := New(body, opts...)
	if err != nil {
		panic("bresp: " + err.Error())
	}

	return r
}

// Status returns the current status code.
func (r *Response) Status() int { return r.status }

// SetStatus replaces the status code. It may be called any time before
// the finish drain is consumed.
func (r *Response) SetStatus(code int) { r.status = code }

// Header returns the underlying header collection.
func (r *Response) Header() *headers.Map { return r.header }

// Get reads a header value, case-insensitively.
func (r *Response) Get(name string) string { return r.header.Get(name) }

// Set writes a header value with replace semantics, case-insensitively.
func (r *Response) Set(name, value string) { r.header.Set(name, value) }

// Write appends p as one body fragment. It implements io.Writer and
// never fails; during the live phase of a finish drain the fragment is
// forwarded to the consumer instead of buffered.
func (r *Response) Write(p []byte) (int, error) {
	r.writeString(string(p))
	return len(p), nil
}

// WriteString appends s as one body fragment, see [Response.Write].
func (r *Response) WriteString(s string) (int, error) {
	r.writeString(s)
	return len(s), nil
}

// writeString is the single body-mutation primitive. Construction-time
// body population funnels through it as well.
func (r *Response) writeString(s string) {
	if r.state == stateForwarding {
		if r.sink != nil && !r.sink(s) {
			r.sink = nil // consumer stopped, drop the rest
		}

		return
	}

	r.fragments = append(r.fragments, s)
}

// Empty reports whether nothing has been written and no finish
// callback is pending.
func (r *Response) Empty() bool {
	return r.callback == nil && len(r.fragments) == 0
}

// Finish finalizes the builder into the outgoing triple: the status
// code, the header collection and the body as an iterable of string
// fragments. For the bodyless statuses 201, 204 and 304 the
// Content-Type header is removed and the body iterates nothing,
// regardless of prior writes.
//
// An optional callback enables streaming: the body sequence first
// replays every buffered fragment in order, then invokes the callback
// exactly once with the builder. Writes performed inside the callback
// are handed to the consumer immediately instead of being buffered.
func (r *Response) Finish(callback ...func(*Response)) (int, *headers.Map, iter.Seq[string]) {
	if len(callback) > 0 {
		r.callback = callback[0]
	}

	if slices.Contains(bodylessStatuses, r.status) {
		r.header.Del("Content-Type")
		return r.status, r.header, func(func(string) bool) {}
	}

	return r.status, r.header, r.drain
}

// drain implements the two-phase iteration contract: buffered replay
// first, then live pass-through while the finish callback runs.
func (r *Response) drain(yield func(string) bool) {
	for _, frag := range r.fragments {
		if !yield(frag) {
			return
		}
	}

	if r.callback == nil {
		return
	}

	r.state = stateForwarding
	r.sink = yield
	r.callback(r)
	r.state = stateBuffering
	r.sink = nil
}
