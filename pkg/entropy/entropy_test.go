package entropy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bft-labs/fairdraw/pkg/beacon"
)

func TestBeaconSource(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"round":9,"randomness":"ffee00112233445566778899aabbccddeeff00112233445566778899aabbccdd"}`)
	}))
	defer ts.Close()

	source := NewBeaconSource(beacon.NewClient(ts.URL, beacon.WithChain("")))
	raw, err := source.Entropy(context.Background(), beacon.RoundFromNumber(9))
	if err != nil {
		t.Fatalf("Entropy() error = %v", err)
	}
	if len(raw) != 32 {
		t.Errorf("len(raw) = %d, want 32", len(raw))
	}
	if raw[0] != 0xFF || raw[1] != 0xEE {
		t.Errorf("raw[0:2] = %x, want ffee", raw[0:2])
	}
}

func TestBeaconSource_EmptyRound(t *testing.T) {
	source := NewBeaconSource(beacon.NewClient("http://beacon.invalid"))
	if _, err := source.Entropy(context.Background(), ""); !errors.Is(err, beacon.ErrRoundRequired) {
		t.Errorf("Entropy() error = %v, want ErrRoundRequired", err)
	}
}

func TestLocalSource(t *testing.T) {
	source := NewLocalSource()

	raw, err := source.Entropy(context.Background(), "")
	if err != nil {
		t.Fatalf("Entropy() error = %v", err)
	}
	if len(raw) != 32 {
		t.Errorf("len(raw) = %d, want 32", len(raw))
	}
}

func TestLocalSource_NotDeterministic(t *testing.T) {
	source := NewLocalSource()
	round := beacon.RoundFromNumber(1)

	// The round argument has no effect and every call returns fresh
	// bytes. Twenty identical 32-byte draws in a row would mean the
	// CSPRNG is broken.
	first, err := source.Entropy(context.Background(), round)
	if err != nil {
		t.Fatalf("Entropy() error = %v", err)
	}
	varied := false
	for i := 0; i < 20; i++ {
		raw, err := source.Entropy(context.Background(), round)
		if err != nil {
			t.Fatalf("Entropy() error = %v", err)
		}
		if !bytes.Equal(raw, first) {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("local source returned identical entropy on every call")
	}
}
