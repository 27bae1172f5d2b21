package roboflow

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"car-damage-bot/internal/domain/entity"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newTestClient(url string, maxSide int) *Client {
	return New(Options{
		URL:       url,
		Model:     "car-damage/3",
		APIKey:    "secret",
		MaxSide:   maxSide,
		Attempts:  3,
		BaseDelay: time.Millisecond,
	})
}

func TestClient_Detect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/car-damage/3", r.URL.Path)
		require.Equal(t, "secret", r.URL.Query().Get("api_key"))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		fmt.Fprint(w, `{"image":{"width":64,"height":32},"predictions":[{"x":10,"y":10,"width":6,"height":4,"confidence":0.8,"class":"Tail-Light"}]}`)
	}))
	defer srv.Close()

	batch, err := newTestClient(srv.URL, 0).Detect(context.Background(), pngBytes(t, 64, 32))
	require.NoError(t, err)
	require.Equal(t, 64, batch.ImageWidth)
	require.Equal(t, 32, batch.ImageHeight)
	require.Equal(t, []entity.Detection{{Class: "Tail-Light", Confidence: 0.8, X: 10, Y: 10, Width: 6, Height: 4}}, batch.Detections)
}

func TestClient_DownscalesAndMapsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		cfg, _, err := image.DecodeConfig(file)
		require.NoError(t, err)
		require.Equal(t, 100, cfg.Width)
		require.Equal(t, 50, cfg.Height)

		fmt.Fprint(w, `{"image":{"width":100,"height":50},"predictions":[{"x":50,"y":25,"width":10,"height":5,"confidence":0.6,"class":"hood"}]}`)
	}))
	defer srv.Close()

	batch, err := newTestClient(srv.URL, 100).Detect(context.Background(), pngBytes(t, 400, 200))
	require.NoError(t, err)
	require.Equal(t, 400, batch.ImageWidth)
	require.Equal(t, 200, batch.ImageHeight)

	d := batch.Detections[0]
	require.InDelta(t, 200.0, d.X, 1e-9)
	require.InDelta(t, 100.0, d.Y, 1e-9)
	require.InDelta(t, 40.0, d.Width, 1e-9)
	require.InDelta(t, 20.0, d.Height, 1e-9)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"predictions":[]}`)
	}))
	defer srv.Close()

	batch, err := newTestClient(srv.URL, 0).Detect(context.Background(), pngBytes(t, 8, 8))
	require.NoError(t, err)
	require.Empty(t, batch.Detections)
	require.Equal(t, int32(2), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad api key", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).Detect(context.Background(), pngBytes(t, 8, 8))
	require.ErrorContains(t, err, "status 403")
	require.Equal(t, int32(1), calls.Load())
}

func TestClient_GivesUpAfterAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).Detect(context.Background(), pngBytes(t, 8, 8))
	require.ErrorContains(t, err, "status 502")
	require.Equal(t, int32(3), calls.Load())
}

func TestClient_InvalidPrediction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"predictions":[{"x":1,"y":1,"width":2,"confidence":0.5,"class":"door"}]}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).Detect(context.Background(), pngBytes(t, 8, 8))
	require.ErrorIs(t, err, entity.ErrValidation)
}

func TestClient_UndecodableImage(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:0", 0).Detect(context.Background(), []byte("nope"))
	require.ErrorIs(t, err, entity.ErrImageIO)
}

func TestRetry_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry(ctx, 5, time.Millisecond, func() error {
		calls++
		return fmt.Errorf("boom")
	})
	require.EqualError(t, err, "boom")
	require.Equal(t, 1, calls)
}
