package netx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	type place struct {
		Lat string `json:"lat"`
	}

	t.Run("success 200 OK", func(t *testing.T) {
		var gotUA, gotAccept string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotAccept = r.Header.Get("Accept")
			_, _ = w.Write([]byte(`[{"lat":"-34.6"}]`))
		}))
		defer ts.Close()

		var got []place
		err := GetJSON(context.Background(), ts.Client(), ts.URL, http.Header{"User-Agent": {"baconnect-test"}}, &got)
		require.NoError(t, err)
		assert.Equal(t, []place{{Lat: "-34.6"}}, got)
		assert.Equal(t, "baconnect-test", gotUA)
		assert.Equal(t, "application/json", gotAccept)
	})

	t.Run("non-200 returns StatusError", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "slow down", http.StatusTooManyRequests)
		}))
		defer ts.Close()

		var got []place
		err := GetJSON(context.Background(), ts.Client(), ts.URL, nil, &got)
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Contains(t, se.Status, "429")
		assert.Contains(t, se.Body, "slow down")
	})

	t.Run("bad json", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{oops`))
		}))
		defer ts.Close()

		var got []place
		require.Error(t, GetJSON(context.Background(), ts.Client(), ts.URL, nil, &got))
	})

	t.Run("client timeout", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer ts.Close()

		client := &http.Client{Timeout: 20 * time.Millisecond}
		var got []place
		require.Error(t, GetJSON(context.Background(), client, ts.URL, nil, &got))
	})
}
