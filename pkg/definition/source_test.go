package definition

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

func TestRead_File(t *testing.T) {
	data, err := Read(context.Background(), filepath.Join("testdata", "forms", "send_money.yaml"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	def, err := Parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.ID != "sendMoney" {
		t.Fatalf("id = %q", def.ID)
	}
}

func TestRead_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forms/login.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("id: login\nfields:\n  - name: email\n    type: email\n"))
	}))
	defer srv.Close()

	ctx := context.Background()
	if _, err := Read(ctx, srv.URL+"/forms/login.yaml"); !errors.Is(err, ErrRemoteDisabled) {
		t.Fatalf("expected ErrRemoteDisabled, got %v", err)
	}

	data, err := Read(ctx, srv.URL+"/forms/login.yaml", WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if def, err := Parse(data); err != nil || def.ID != "login" {
		t.Fatalf("parse = %+v, %v", def, err)
	}

	if _, err := Read(ctx, srv.URL+"/missing", WithHTTPFallback(0)); err == nil {
		t.Fatalf("expected status error")
	}
}
