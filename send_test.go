package bresp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/advdv/bresp"
	"github.com/carlmjohnson/requests"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestToStdBasic(t *testing.T) {
	logs := bresp.NewTestLogger(t)
	hdlr := bresp.ToStd(func(resp *bresp.Response, req *http.Request) error {
		resp.Set("Is-Bar", "rab")
		resp.SetStatus(http.StatusAccepted)
		_, _ = resp.WriteString("hello at " + req.URL.Path)
		return nil
	}, logs)

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bar", nil)
	hdlr.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "rab", rec.Header().Get("Is-Bar"))
	require.Equal(t, "text/html", rec.Header().Get("Content-Type"))
	require.Equal(t, "hello at /bar", rec.Body.String())
	assert.Zero(t, logs.NumLogUnhandledServeError)
}

func TestToStdUnhandledError(t *testing.T) {
	logs := bresp.NewTestLogger(t)
	hdlr := bresp.ToStd(func(resp *bresp.Response, req *http.Request) error {
		_, _ = resp.WriteString("discarded")
		return errors.New("triggered error")
	}, logs)

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil)
	hdlr.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Internal Server Error\n", rec.Body.String())
	assert.Equal(t, int64(1), logs.NumLogUnhandledServeError)
}

func TestToStdBodylessStatus(t *testing.T) {
	logs := bresp.NewTestLogger(t)
	hdlr := bresp.ToStd(func(resp *bresp.Response, req *http.Request) error {
		resp.SetStatus(http.StatusNoContent)
		_, _ = resp.WriteString("must not leave the builder")
		return nil
	}, logs)

	rec, req := httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)
	hdlr.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Header().Values("Content-Type"))
	assert.Zero(t, rec.Body.Len())
}

func TestSendCookieHeaders(t *testing.T) {
	resp := bresp.MustNew(nil)
	resp.SetCookie("name1", "value1")
	resp.SetCookie("name2", "value2")

	rec := httptest.NewRecorder()
	require.NoError(t, bresp.SendResponse(rec, resp))

	assert.Equal(t, []string{"name1=value1", "name2=value2"}, rec.Header().Values("Set-Cookie"),
		"every entry of the Set-Cookie sequence must go out as its own header line")
}

func TestSendOverWire(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := bresp.MustNew(nil, bresp.WithHeader("Content-Type", "application/json"))
		require.NoError(t, json.NewEncoder(resp).Encode(map[string]any{
			"path":  r.URL.Path,
			"count": 3,
		}))

		status, hdr, body := resp.Finish()
		assert.NoError(t, bresp.Send(w, status, hdr, body))
	}))
	defer srv.Close()

	var got string
	err := requests.URL(srv.URL + "/items").
		ToString(&got).
		Fetch(context.Background())
	require.NoError(t, err, "request must succeed")

	require.Equal(t, "/items", gjson.Get(got, "path").String())
	assert.Equal(t, int64(3), gjson.Get(got, "count").Int())
}

func TestSendStreamingOverWire(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := bresp.MustNew("first,", bresp.WithHeader("Content-Type", "text/plain"))
		err := bresp.SendResponse(w, resp, func(r *bresp.Response) {
			_, _ = r.WriteString("second,")
			_, _ = r.WriteString("third")
		})
		assert.NoError(t, err)
	}))
	defer srv.Close()

	var got string
	err := requests.URL(srv.URL).
		ToString(&got).
		Fetch(context.Background())
	require.NoError(t, err, "request must succeed")

	assert.Equal(t, "first,second,third", got,
		"buffered and live fragments must arrive in order")
}
