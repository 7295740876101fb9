package dominance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBTCDominance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"market_cap_percentage":{"btc":56.23,"eth":12.8}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	got, err := c.BTCDominance(context.Background())
	if err != nil {
		t.Fatalf("btc dominance: %v", err)
	}
	if got != 56.23 {
		t.Errorf("got %v, want 56.23", got)
	}
}

func TestBTCDominanceMissingShare(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"market_cap_percentage":{}}}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL, time.Second).BTCDominance(context.Background()); err == nil {
		t.Fatal("expected an error for a response without btc share")
	}
}

func TestBTCDominanceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := New(srv.URL, time.Second).BTCDominance(context.Background()); err == nil {
		t.Fatal("expected an error on 502")
	}
}

func TestBTCDominanceNoURL(t *testing.T) {
	if _, err := New("", time.Second).BTCDominance(context.Background()); err == nil {
		t.Fatal("expected an error when url is not configured")
	}
}
