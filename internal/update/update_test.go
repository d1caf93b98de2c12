package update

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newReleaseServer serves a latest-release payload with the given tag.
func newReleaseServer(t *testing.T, tag string, status int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"tag_name": %q}`, tag)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckerCheck(t *testing.T) {
	t.Parallel()

	t.Run("newer release available", func(t *testing.T) {
		t.Parallel()

		srv := newReleaseServer(t, "v1.2.0", http.StatusOK)
		c := NewChecker(WithEndpoint(srv.URL))

		latest, ok := c.Check(context.Background(), "v1.1.0")
		if !ok {
			t.Fatal("expected an update")
		}
		if latest != "v1.2.0" {
			t.Errorf("unexpected tag: %q", latest)
		}
	})

	t.Run("already current", func(t *testing.T) {
		t.Parallel()

		srv := newReleaseServer(t, "v1.2.0", http.StatusOK)
		c := NewChecker(WithEndpoint(srv.URL))

		if _, ok := c.Check(context.Background(), "1.2.0"); ok {
			t.Error("tag prefix difference should not count as an update")
		}
	})

	t.Run("dev build never checks", func(t *testing.T) {
		t.Parallel()

		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++
			fmt.Fprint(w, `{"tag_name": "v9.9.9"}`)
		}))
		t.Cleanup(srv.Close)

		c := NewChecker(WithEndpoint(srv.URL))
		for _, version := range []string{"dev", "(devel)", ""} {
			if _, ok := c.Check(context.Background(), version); ok {
				t.Errorf("dev build %q should not report an update", version)
			}
		}
		if calls != 0 {
			t.Errorf("dev builds must not hit the network, got %d calls", calls)
		}
	})

	t.Run("non-200 response is silent", func(t *testing.T) {
		t.Parallel()

		srv := newReleaseServer(t, "v1.2.0", http.StatusForbidden)
		c := NewChecker(WithEndpoint(srv.URL))

		if _, ok := c.Check(context.Background(), "v1.0.0"); ok {
			t.Error("rate-limited response should not report an update")
		}
	})

	t.Run("unreachable endpoint is silent", func(t *testing.T) {
		t.Parallel()

		c := NewChecker(WithEndpoint("http://127.0.0.1:1/releases/latest"))
		if _, ok := c.Check(context.Background(), "v1.0.0"); ok {
			t.Error("connection failure should not report an update")
		}
	})

	t.Run("malformed payload is silent", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "not json")
		}))
		t.Cleanup(srv.Close)

		c := NewChecker(WithEndpoint(srv.URL))
		if _, ok := c.Check(context.Background(), "v1.0.0"); ok {
			t.Error("malformed payload should not report an update")
		}
	})
}

func TestCheckerNotice(t *testing.T) {
	t.Parallel()

	srv := newReleaseServer(t, "v2.0.0", http.StatusOK)
	c := NewChecker(WithEndpoint(srv.URL))

	notice := c.Notice(context.Background(), "v1.0.0")
	if !strings.Contains(notice, "v2.0.0") || !strings.Contains(notice, "v1.0.0") {
		t.Errorf("unexpected notice: %q", notice)
	}

	if got := c.Notice(context.Background(), "v2.0.0"); got != "" {
		t.Errorf("expected empty notice, got %q", got)
	}
}
