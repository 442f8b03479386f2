package relayer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testPayload() VerifyRequest {
	return VerifyRequest{
		Proof:         json.RawMessage(`{"pi_a":["1","2"]}`),
		PublicSignals: json.RawMessage(`["42"]`),
	}
}

func TestVerifyResultShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s; want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %s; want application/json", ct)
		}

		var req VerifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}

		_, _ = w.Write([]byte(`{"result":{"valid":true}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	valid, err := c.Verify(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !valid {
		t.Fatal("Verify = false; want true")
	}
}

func TestVerifyVerifiedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"verified":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	valid, err := c.Verify(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !valid {
		t.Fatal("Verify = false; want true")
	}
}

func TestVerifyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"valid":false}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	valid, err := c.Verify(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if valid {
		t.Fatal("Verify = true; want false")
	}
}

func TestVerifyRelayerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if _, err := c.Verify(context.Background(), testPayload()); err == nil {
		t.Fatal("Verify on 500 = nil error; want error")
	}
}

func TestVerifyNotConfigured(t *testing.T) {
	c := NewClient("", time.Second)
	_, err := c.Verify(context.Background(), testPayload())
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v; want ErrNotConfigured", err)
	}
}

func TestVerifyUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, 200*time.Millisecond)
	if _, err := c.Verify(context.Background(), testPayload()); err == nil {
		t.Fatal("Verify against closed server = nil error; want error")
	}
}
