package beacon

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/cenkalti/backoff/v4"
)

const testRandomness = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

// zeroBackOff removes retry delays in tests.
func zeroBackOff() backoff.BackOff {
	return &backoff.ZeroBackOff{}
}

func newTestClient(url string, opts ...Option) *Client {
	base := []Option{
		WithChain("test-chain"),
		WithBackOffFactory(zeroBackOff),
	}
	return NewClient(url, append(base, opts...)...)
}

func TestRandomness(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test-chain/42" {
			t.Errorf("path = %q, want /test-chain/42", r.URL.Path)
		}
		fmt.Fprintf(w, `{"round":42,"randomness":"%s","signature":"deadbeef"}`, testRandomness)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	raw, err := client.Randomness(context.Background(), RoundFromNumber(42))
	if err != nil {
		t.Fatalf("Randomness() error = %v", err)
	}
	if !bytes.Equal(raw, bytes.Repeat([]byte{0xAA}, 32)) {
		t.Errorf("Randomness() = %x, want 32 bytes of 0xAA", raw)
	}
}

func TestRandomness_NoChainSegment(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/7" {
			t.Errorf("path = %q, want /7", r.URL.Path)
		}
		fmt.Fprintf(w, `{"round":7,"randomness":"%s"}`, testRandomness)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, WithChain(""), WithBackOffFactory(zeroBackOff))
	if _, err := client.Randomness(context.Background(), RoundFromNumber(7)); err != nil {
		t.Fatalf("Randomness() error = %v", err)
	}
}

func TestRandomness_EmptyRound(t *testing.T) {
	client := newTestClient("http://beacon.invalid")
	if _, err := client.Randomness(context.Background(), ""); !errors.Is(err, ErrRoundRequired) {
		t.Errorf("Randomness() error = %v, want ErrRoundRequired", err)
	}
}

func TestRandomness_ProtocolErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "missing randomness field",
			body:    `{"round":42,"signature":"deadbeef"}`,
			wantMsg: "randomness",
		},
		{
			name:    "empty randomness field",
			body:    `{"round":42,"randomness":""}`,
			wantMsg: "randomness",
		},
		{
			name:    "invalid hex",
			body:    `{"round":42,"randomness":"not-hex"}`,
			wantMsg: "hex",
		},
		{
			name:    "undecodable json",
			body:    `<html>gateway error</html>`,
			wantMsg: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts.Add(1)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			client := newTestClient(ts.URL, WithRetries(3))
			_, err := client.Randomness(context.Background(), RoundFromNumber(42))
			if !errors.Is(err, ErrProtocol) {
				t.Fatalf("Randomness() error = %v, want ErrProtocol", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
			// Malformed data is never retried.
			if got := attempts.Load(); got != 1 {
				t.Errorf("attempts = %d, want 1", got)
			}
		})
	}
}

func TestRandomness_RetriesTransientThenSucceeds(t *testing.T) {
	var attempts atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, `{"round":42,"randomness":"%s"}`, testRandomness)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, WithRetries(3))
	if _, err := client.Randomness(context.Background(), RoundFromNumber(42)); err != nil {
		t.Fatalf("Randomness() error = %v", err)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestRandomness_ExhaustsRetries(t *testing.T) {
	var attempts atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, WithRetries(2))
	_, err := client.Randomness(context.Background(), RoundFromNumber(42))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Randomness() error = %v, want ErrUnavailable", err)
	}
	// The failing URL is surfaced for diagnosis.
	if !strings.Contains(err.Error(), ts.URL) {
		t.Errorf("error %q does not contain the URL %q", err, ts.URL)
	}
	// Initial attempt plus two retries.
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestRandomness_ZeroRetries(t *testing.T) {
	var attempts atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL, WithRetries(0))
	if _, err := client.Randomness(context.Background(), RoundFromNumber(42)); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Randomness() error = %v, want ErrUnavailable", err)
	}
	if got := attempts.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1", got)
	}
}

func TestRandomness_ContextCanceled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(ts.URL, WithRetries(3))
	_, err := client.Randomness(ctx, RoundFromNumber(42))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Randomness() error = %v, want context.Canceled", err)
	}
}

func TestInfo(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test-chain/info" {
			t.Errorf("path = %q, want /test-chain/info", r.URL.Path)
		}
		fmt.Fprint(w, `{"public_key":"8200fc24","period":30,"genesis_time":1595431050,"hash":"8990e7a9","schemeID":"pedersen-bls-chained"}`)
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)
	info, err := client.Info(context.Background())
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info.Period != 30 {
		t.Errorf("Period = %d, want 30", info.Period)
	}
	if info.Hash != "8990e7a9" {
		t.Errorf("Hash = %q, want 8990e7a9", info.Hash)
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://example.com/", WithChain("c"))
	if got := client.endpoint("1"); got != "http://example.com/c/1" {
		t.Errorf("endpoint = %q, want http://example.com/c/1", got)
	}
}
