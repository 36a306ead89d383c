package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPushover_OK(t *testing.T) {
	var form map[string][]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		form = r.PostForm
		w.WriteHeader(200)
	}))
	defer ts.Close()

	p := NewPushover("user-key", "app-token")
	if p == nil {
		t.Fatal("expected pushover client")
	}
	p.APIURL = ts.URL

	if err := p.Send(context.Background(), "Title", "Hello"); err != nil {
		t.Fatalf("send err: %v", err)
	}
	if got := form["token"]; len(got) != 1 || got[0] != "app-token" {
		t.Fatalf("token not posted: %v", form)
	}
	if got := form["user"]; len(got) != 1 || got[0] != "user-key" {
		t.Fatalf("user not posted: %v", form)
	}
	if got := form["title"]; len(got) != 1 || got[0] != "Title" {
		t.Fatalf("title not posted: %v", form)
	}
	if got := form["message"]; len(got) != 1 || got[0] != "Hello" {
		t.Fatalf("message not posted: %v", form)
	}
}

func TestPushover_NonOK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		_, _ = w.Write([]byte(`{"errors":["application token is invalid"]}`))
	}))
	defer ts.Close()

	p := NewPushover("u", "t")
	p.APIURL = ts.URL

	err := p.Send(context.Background(), "X", "Y")
	if err == nil {
		t.Fatal("expected error on non-200")
	}
	if !strings.Contains(err.Error(), "HTTP 400") || !strings.Contains(err.Error(), "token is invalid") {
		t.Fatalf("error should carry status and body: %v", err)
	}
}

func TestPushover_MissingCreds(t *testing.T) {
	if NewPushover("", "token") != nil {
		t.Fatal("expected nil client without user key")
	}
	if NewPushover("user", "") != nil {
		t.Fatal("expected nil client without app token")
	}
}

func TestMulti_FirstError(t *testing.T) {
	ok := notifierFunc(func(ctx context.Context, title, msg string) error { return nil })
	bad := notifierFunc(func(ctx context.Context, title, msg string) error {
		return context.DeadlineExceeded
	})

	m := Multi{nil, ok, bad, ok}
	if err := m.Send(context.Background(), "t", "m"); err != context.DeadlineExceeded {
		t.Fatalf("want first error, got %v", err)
	}
}

type notifierFunc func(ctx context.Context, title, message string) error

func (f notifierFunc) Send(ctx context.Context, title, message string) error {
	return f(ctx, title, message)
}
