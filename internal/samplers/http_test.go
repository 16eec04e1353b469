package samplers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPSamplerSuccessfulGET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Reply", "yes")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	s := NewHTTPSampler("get", "GET", srv.URL)
	res := s.Sample(context.Background())

	if !res.Success {
		t.Fatalf("expected success, got message %q", res.ResponseMessage)
	}
	if res.ResponseCode != "200" {
		t.Fatalf("expected 200, got %q", res.ResponseCode)
	}
	if res.ResponseData != "hello" {
		t.Fatalf("expected body \"hello\", got %q", res.ResponseData)
	}
	if res.ResponseHeaders["X-Reply"] != "yes" {
		t.Fatalf("expected X-Reply header to be captured, got %v", res.ResponseHeaders)
	}
	if res.EndTime.IsZero() {
		t.Fatal("expected Mark() to have set EndTime")
	}
}

func TestHTTPSamplerMarksNon2xxAsUnsuccessful(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewHTTPSampler("fail", "GET", srv.URL)
	res := s.Sample(context.Background())

	if res.Success {
		t.Fatal("expected a 500 response to be marked unsuccessful")
	}
	if res.ResponseCode != "500" {
		t.Fatalf("expected 500, got %q", res.ResponseCode)
	}
}

func TestHTTPSamplerSendsCustomHeadersAndBody(t *testing.T) {
	var gotHeader, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Custom")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := NewHTTPSampler("post", "POST", srv.URL)
	s.SetProperty("body", `{"ok":true}`)
	s.SetHeader("X-Custom", "abc")

	res := s.Sample(context.Background())
	if res.ResponseCode != "201" {
		t.Fatalf("expected 201, got %q", res.ResponseCode)
	}
	if gotHeader != "abc" {
		t.Fatalf("expected the custom header to reach the server, got %q", gotHeader)
	}
	if gotBody != `{"ok":true}` {
		t.Fatalf("expected the body to reach the server, got %q", gotBody)
	}
}

func TestHTTPSamplerConnectionFailureIsUnsuccessful(t *testing.T) {
	s := NewHTTPSampler("bad", "GET", "http://127.0.0.1:1")
	res := s.Sample(context.Background())
	if res.Success {
		t.Fatal("expected a connection failure to be marked unsuccessful")
	}
	if res.ResponseMessage == "" {
		t.Fatal("expected a non-empty error message")
	}
}
