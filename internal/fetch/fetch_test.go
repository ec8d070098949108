package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjzar/freedom/internal/errors"
)

type progressCall struct {
	done, total int64
}

func recorder(calls *[]progressCall) ProgressFunc {
	return func(done, total int64) {
		*calls = append(*calls, progressCall{done, total})
	}
}

func TestFetch_WithContentLength(t *testing.T) {
	body := bytes.Repeat([]byte("x"), 100_000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.UserAgent(), "freedom/")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Write(body)
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "data", "tor", "installers", "tor-Linux.tar.xz")
	var calls []progressCall
	require.NoError(t, New().Fetch(context.Background(), srv.URL, dst, recorder(&calls)))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, body, got)

	require.NotEmpty(t, calls)
	last := calls[len(calls)-1]
	assert.Equal(t, progressCall{int64(len(body)), int64(len(body))}, last)
	for i := 1; i < len(calls); i++ {
		assert.Greater(t, calls[i].done, calls[i-1].done)
	}
}

func TestFetch_WithoutContentLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// flushing before the body ends forces chunked encoding
		w.Write([]byte("hello "))
		w.(http.Flusher).Flush()
		w.Write([]byte("world"))
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "installer")
	var calls []progressCall
	require.NoError(t, New().Fetch(context.Background(), srv.URL, dst, recorder(&calls)))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got))
	assert.Equal(t, []progressCall{{11, -1}}, calls)
}

func TestFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "installer")
	err := New().Fetch(context.Background(), srv.URL, dst, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTypeFetch))
	assert.Contains(t, err.Error(), "404")
	assert.NoFileExists(t, dst)
}

func TestFetch_TruncatedBodyLeavesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		w.Write([]byte("short"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	dst := filepath.Join(dir, "installer")
	err := New().Fetch(context.Background(), srv.URL, dst, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTypeFetch))
	entries, rerr := os.ReadDir(dir)
	require.NoError(t, rerr)
	assert.Empty(t, entries, "no partial download may remain")
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New().Fetch(context.Background(), url, filepath.Join(t.TempDir(), "installer"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTypeFetch))
}

func TestFetch_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New().Fetch(ctx, srv.URL, filepath.Join(t.TempDir(), "installer"), nil)
	require.Error(t, err)
}

func TestProgressBar_Terminal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, true)

	bar.Update(50, 100)
	bar.Update(100, 100)

	out := buf.String()
	assert.Contains(t, out, "\r")
	assert.Contains(t, out, "100 B / 100 B")
	assert.Equal(t, byte('\n'), out[len(out)-1])
}

func TestProgressBar_UnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	NewProgressBar(&buf, true).Update(2500, -1)
	assert.True(t, strings.HasPrefix(buf.String(), "\rDownloaded "))
	assert.Contains(t, buf.String(), "2.5 kB")

	buf.Reset()
	NewProgressBar(&buf, false).Update(2500, -1)
	assert.Empty(t, buf.String())
}

func TestProgressBar_PlainLogsSteps(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, false)

	bar.Update(1, 100)
	assert.Equal(t, 0, bar.lastStep)
	bar.Update(5, 100)
	assert.Equal(t, 0, bar.lastStep)
	bar.Update(55, 100)
	assert.Equal(t, 5, bar.lastStep)
	bar.Update(100, 100)
	assert.Equal(t, 10, bar.lastStep)
	assert.Empty(t, buf.String(), "plain mode reports through the logger")
}
