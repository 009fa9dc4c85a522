package httpapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crux/internal/contract"
	apperrors "crux/internal/platform/errors"
	"crux/internal/platform/httpapi"
	"crux/internal/platform/id"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newClient(t *testing.T, srv *httptest.Server, token string) *httpapi.Client {
	t.Helper()
	c, err := httpapi.New(httpapi.Options{
		BaseURL: srv.URL + "/",
		Timeout: 2 * time.Second,
		Tokens:  staticToken(token),
		IDs:     &id.Sequence{Prefix: "req"},
	})
	require.NoError(t, err)
	return c
}

func TestDoSendsHeadersAndDecodes(t *testing.T) {
	var got *http.Request
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"climbs":1,"sends":1,"elapsedSeconds":30,"isActive":true}`))
	}))
	defer srv.Close()

	c := newClient(t, srv, "tok-1")
	event := contract.ClimbEventRequest{Status: contract.ClimbStatusFlash, Attempts: 1, DurationSeconds: 30}
	snap, err := httpapi.Do[contract.TodaySessionResponse](context.Background(), c, http.MethodPost, "/api/users/u1/sessions/today/climbs", event)
	require.NoError(t, err)

	assert.Equal(t, contract.TodaySessionResponse{Climbs: 1, Sends: 1, ElapsedSeconds: 30, IsActive: true}, snap)
	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/api/users/u1/sessions/today/climbs", got.URL.Path)
	assert.Equal(t, "Bearer tok-1", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "req-1", got.Header.Get("X-Request-ID"))
	assert.JSONEq(t, `{"status":"FLASH","attempts":1,"durationSeconds":30}`, string(body))
}

func TestDoWithoutTokenOmitsAuthorization(t *testing.T) {
	var auth, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"climbs":0,"sends":0,"elapsedSeconds":0,"isActive":false}`))
	}))
	defer srv.Close()

	_, err := httpapi.Do[contract.TodaySessionResponse](context.Background(), newClient(t, srv, ""), http.MethodGet, "/api/users/u1/sessions/today", nil)
	require.NoError(t, err)
	assert.Empty(t, auth)
	assert.Empty(t, contentType)
}

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "detail", status: http.StatusNotFound, body: `{"detail":"Session not found"}`, message: "Session not found"},
		{name: "message", status: http.StatusBadRequest, body: `{"message":"bad attempts"}`, message: "bad attempts"},
		{name: "error", status: http.StatusConflict, body: `{"error":"already ended"}`, message: "already ended"},
		{name: "validation list", status: http.StatusUnprocessableEntity, body: `{"detail":[{"loc":["body"]}]}`, message: "Unprocessable Entity"},
		{name: "plain text", status: http.StatusInternalServerError, body: `boom`, message: "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := httpapi.Do[contract.TodaySessionResponse](context.Background(), newClient(t, srv, ""), http.MethodGet, "/x", nil)
			var apiErr *httpapi.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, httpapi.KindAPI, httpapi.Kind(err))
		})
	}
}

func TestDecodingErrorOnMismatchedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"climbs":"many"}`))
	}))
	defer srv.Close()

	_, err := httpapi.Do[contract.TodaySessionResponse](context.Background(), newClient(t, srv, ""), http.MethodGet, "/x", nil)
	var decErr *httpapi.DecodingError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, httpapi.KindDecoding, httpapi.Kind(err))
}

func TestNetworkErrorOnTimeoutAndCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := httpapi.New(httpapi.Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)
	_, err = httpapi.Do[contract.TodaySessionResponse](context.Background(), c, http.MethodGet, "/slow", nil)
	assert.Equal(t, httpapi.KindNetwork, httpapi.Kind(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = httpapi.Do[contract.TodaySessionResponse](ctx, newClient(t, srv, ""), http.MethodGet, "/slow", nil)
	assert.Equal(t, httpapi.KindNetwork, httpapi.Kind(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestInvalidPathFailsBeforeIO(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hits++ }))
	defer srv.Close()

	_, err := httpapi.Do[contract.TodaySessionResponse](context.Background(), newClient(t, srv, ""), http.MethodGet, "api/users", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = httpapi.Do[contract.TodaySessionResponse](context.Background(), newClient(t, srv, ""), "TRACE", "/x", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Zero(t, hits)
}

func TestNewRejectsRelativeBaseURL(t *testing.T) {
	_, err := httpapi.New(httpapi.Options{BaseURL: "localhost:8000"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUploadMultipartShape(t *testing.T) {
	var (
		filename, partType, field string
		data                      []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		for name, files := range r.MultipartForm.File {
			field = name
			filename = files[0].Filename
			partType = files[0].Header.Get("Content-Type")
			f, err := files[0].Open()
			if !assert.NoError(t, err) {
				return
			}
			data, _ = io.ReadAll(f)
			_ = f.Close()
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	out, err := newClient(t, srv, "tok").UploadMultipart(context.Background(), "/boulder/generate", []byte{0xff, 0xd8, 0x01}, "wall.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(out))
	assert.Equal(t, "file", field)
	assert.Equal(t, "wall.jpg", filename)
	assert.Equal(t, "image/jpeg", partType)
	assert.Equal(t, []byte{0xff, 0xd8, 0x01}, data)
}

func TestKindClassification(t *testing.T) {
	assert.Equal(t, httpapi.KindUnknown, httpapi.Kind(nil))
	assert.Equal(t, httpapi.KindUnknown, httpapi.Kind(errors.New("x")))
	assert.Equal(t, httpapi.KindPayloadTooLarge, httpapi.Kind(apperrors.ErrPayloadTooLarge))
	assert.Equal(t, "network", httpapi.KindNetwork.String())
}
