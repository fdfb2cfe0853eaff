package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chr33s/mcpdoc/internal/core/domain"
)

func newTestServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var endHits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<p>hello</p>")
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusFound)
	})
	mux.HandleFunc("/start", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><META HTTP-EQUIV="Refresh" CONTENT="0; URL=/middle"></head></html>`)
	})
	mux.HandleFunc("/middle", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><head><meta http-equiv="refresh" content="0;url=/end"></head><body>middle</body></html>`)
	})
	mux.HandleFunc("/end", func(w http.ResponseWriter, _ *http.Request) {
		endHits.Add(1)
		fmt.Fprint(w, "end")
	})
	mux.HandleFunc("/ftp", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<meta http-equiv="refresh" content="0;url=ftp://example.com/x">`)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		fmt.Fprint(w, "late")
	})
	mux.HandleFunc("/big", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 100))
	})
	mux.HandleFunc("/ua", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, r.Header.Get("User-Agent"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &endHits
}

func settings(follow bool) domain.Settings {
	s := domain.DefaultSettings()
	s.FollowRedirects = follow
	s.Timeout = 2 * time.Second
	return s
}

func TestRetrieve_Success(t *testing.T) {
	srv, _ := newTestServer(t)

	doc, err := New(settings(false), nil).Retrieve(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/ok", doc.URI)
	assert.Equal(t, "text/html", doc.MIMEType)
	assert.Equal(t, "<p>hello</p>", string(doc.Content))
	assert.Equal(t, http.StatusOK, doc.Metadata["status"])
	assert.Equal(t, false, doc.Metadata["redirected"])
}

func TestRetrieve_HTTPError(t *testing.T) {
	srv, _ := newTestServer(t)

	_, err := New(settings(true), nil).Retrieve(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHTTP)

	fe, ok := domain.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, fe.Status)
	assert.Equal(t, "Encountered an HTTP error: 404 Not Found", err.Error())
}

func TestRetrieve_RedirectPolicy(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("manual surfaces the 3xx", func(t *testing.T) {
		_, err := New(settings(false), nil).Retrieve(context.Background(), srv.URL+"/moved")
		require.Error(t, err)

		fe, ok := domain.AsFetchError(err)
		require.True(t, ok)
		assert.Equal(t, domain.KindHTTP, fe.Kind)
		assert.Equal(t, http.StatusFound, fe.Status)
		assert.Equal(t, "Found", fe.StatusText)
	})

	t.Run("follow reaches the target", func(t *testing.T) {
		doc, err := New(settings(true), nil).Retrieve(context.Background(), srv.URL+"/moved")
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/ok", doc.URI)
		assert.Equal(t, true, doc.Metadata["redirected"])
		assert.Equal(t, "<p>hello</p>", string(doc.Content))
	})
}

func TestRetrieve_MetaRefresh(t *testing.T) {
	t.Run("followed once to an allowed target", func(t *testing.T) {
		srv, endHits := newTestServer(t)

		var mu sync.Mutex
		var validated []string
		validator := func(target string) error {
			mu.Lock()
			defer mu.Unlock()
			validated = append(validated, target)
			return nil
		}

		doc, err := New(settings(true), validator).Retrieve(context.Background(), srv.URL+"/start")
		require.NoError(t, err)
		assert.Contains(t, string(doc.Content), "middle")
		assert.Equal(t, srv.URL+"/middle", doc.URI)
		assert.Equal(t, srv.URL+"/start", doc.Metadata["meta_refresh_from"])
		assert.Equal(t, []string{srv.URL + "/middle"}, validated)
		assert.Equal(t, int32(0), endHits.Load())
	})

	t.Run("denied target is not requested", func(t *testing.T) {
		srv, _ := newTestServer(t)

		denied := &domain.FetchError{Kind: domain.KindAccessDenied, Source: domain.SourceRemote, Allowed: []string{"https://a.com/"}}
		validator := func(string) error { return denied }

		_, err := New(settings(true), validator).Retrieve(context.Background(), srv.URL+"/start")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})

	t.Run("ignored when redirects are not followed", func(t *testing.T) {
		srv, _ := newTestServer(t)

		called := false
		validator := func(string) error { called = true; return nil }

		doc, err := New(settings(false), validator).Retrieve(context.Background(), srv.URL+"/start")
		require.NoError(t, err)
		assert.Contains(t, string(doc.Content), "Refresh")
		assert.False(t, called)
	})

	t.Run("non-http target is rejected", func(t *testing.T) {
		srv, _ := newTestServer(t)

		_, err := New(settings(true), nil).Retrieve(context.Background(), srv.URL+"/ftp")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrHTTP)
		assert.Contains(t, err.Error(), "unsupported url")
	})
}

func TestRetrieve_Timeout(t *testing.T) {
	srv, _ := newTestServer(t)

	s := settings(false)
	s.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := New(s, nil).Retrieve(context.Background(), srv.URL+"/slow")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, err, domain.ErrTimeout)

	fe, ok := domain.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, 50*time.Millisecond, fe.Timeout)
	assert.Equal(t, "Encountered an HTTP error: request timed out after 50ms", err.Error())
}

func TestRetrieve_RateLimitBeyondDeadline(t *testing.T) {
	srv, _ := newTestServer(t)

	s := settings(false)
	s.Timeout = 50 * time.Millisecond
	s.RateLimit = 0.001
	s.RateBurst = 1
	r := New(s, nil)

	_, err := r.Retrieve(context.Background(), srv.URL+"/ok")
	require.NoError(t, err)

	start := time.Now()
	_, err = r.Retrieve(context.Background(), srv.URL+"/ok")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, err, domain.ErrTimeout)
	assert.Equal(t, "Encountered an HTTP error: request timed out after 50ms", err.Error())
}

func TestRetrieve_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL + "/gone"
	srv.Close()

	_, err := New(settings(false), nil).Retrieve(context.Background(), target)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHTTP)

	fe, ok := domain.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, 0, fe.Status)
	assert.NotNil(t, fe.Err)
}

func TestRetrieve_MaxBodyBytes(t *testing.T) {
	srv, _ := newTestServer(t)

	s := settings(false)
	s.MaxBodyBytes = 10
	_, err := New(s, nil).Retrieve(context.Background(), srv.URL+"/big")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrHTTP)
	assert.Contains(t, err.Error(), "too large")

	s.MaxBodyBytes = 100
	doc, err := New(s, nil).Retrieve(context.Background(), srv.URL+"/big")
	require.NoError(t, err)
	assert.Len(t, doc.Content, 100)
}

func TestRetrieve_UserAgent(t *testing.T) {
	srv, _ := newTestServer(t)

	s := settings(false)
	s.UserAgent = "mcpdoc/test"
	doc, err := New(s, nil).Retrieve(context.Background(), srv.URL+"/ua")
	require.NoError(t, err)
	assert.Equal(t, "mcpdoc/test", string(doc.Content))
}

func TestRetrieve_Concurrent(t *testing.T) {
	srv, _ := newTestServer(t)
	r := New(settings(true), nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Retrieve(context.Background(), srv.URL+"/ok")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestNew_DefaultsTimeout(t *testing.T) {
	r := New(domain.Settings{}, nil)
	assert.Equal(t, domain.DefaultTimeout, r.settings.Timeout)
	assert.Nil(t, r.limiter)
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, "text/html", mediaType("text/html; charset=UTF-8"))
	assert.Equal(t, "text/markdown", mediaType("Text/Markdown"))
	assert.Equal(t, "", mediaType(""))
	assert.Equal(t, "", mediaType("/"))
}
