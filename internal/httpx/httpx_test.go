package httpx_test

import (
    "errors"
    "io"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/stretchr/testify/require"
    "go.uber.org/mock/gomock"

    "cryptofeed/internal/httpx"
)

func TestGet_ReturnsBodyOn2xx(t *testing.T) {
    t.Parallel()

    // Arrange
    ctrl := gomock.NewController(t)
    doer := NewMockDoer(ctrl)
    doer.EXPECT().
        Do(gomock.Any()).
        DoAndReturn(func(req *http.Request) (*http.Response, error) {
            require.Equal(t, "k", req.Header.Get("X-Key"))
            require.Equal(t, "application/json", req.Header.Get("Accept"))
            return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(`{"ok":true}`))}, nil
        }).
        Times(1)

    // Act
    b, err := httpx.Get(t.Context(), doer, "http://example.test/x", http.Header{"X-Key": []string{"k"}})

    // Assert
    require.NoError(t, err)
    require.JSONEq(t, `{"ok":true}`, string(b))
}

func TestGet_StatusError(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    doer := NewMockDoer(ctrl)
    doer.EXPECT().
        Do(gomock.Any()).
        Return(&http.Response{StatusCode: http.StatusTooManyRequests, Body: io.NopCloser(strings.NewReader("slow down"))}, nil)

    _, err := httpx.Get(t.Context(), doer, "http://example.test/x", nil)

    var se *httpx.StatusError
    require.ErrorAs(t, err, &se)
    require.Equal(t, http.StatusTooManyRequests, se.Code)
}

func TestGet_TransportError(t *testing.T) {
    t.Parallel()

    ctrl := gomock.NewController(t)
    doer := NewMockDoer(ctrl)
    boom := errors.New("connection reset")
    doer.EXPECT().Do(gomock.Any()).Return(nil, boom)

    _, err := httpx.Get(t.Context(), doer, "http://example.test/x", nil)
    require.ErrorIs(t, err, boom)
}

func TestClient_SetsUserAgentAndDefaultHeaders(t *testing.T) {
    t.Parallel()

    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, "cryptofeed/1.0", r.Header.Get("User-Agent"))
        require.Equal(t, "yes", r.Header.Get("X-Default"))
        w.WriteHeader(http.StatusNoContent)
    }))
    defer srv.Close()

    c := httpx.New(2 * time.Second)
    c.Headers = map[string]string{"X-Default": "yes"}
    _, err := httpx.Get(t.Context(), c, srv.URL, nil)
    require.NoError(t, err)
}
