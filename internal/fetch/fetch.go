package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	ierrors "github.com/sjzar/freedom/internal/errors"
	"github.com/sjzar/freedom/pkg/util"
	"github.com/sjzar/freedom/pkg/version"
)

const (
	DefaultChunkSize    = 32 * 1024
	DefaultMaxRedirects = 10
	PartSuffix          = ".part"
)

// ProgressFunc receives the bytes written so far and the declared total.
// total is -1 when the server sent no Content-Length.
type ProgressFunc func(done, total int64)

// Fetcher downloads a remote artifact to a local path.
type Fetcher interface {
	Fetch(ctx context.Context, url, dst string, progress ProgressFunc) error
}

// HTTPFetcher downloads over HTTP(S). The body is streamed to a temporary
// file next to dst and renamed into place once complete, so dst never holds
// a partial download.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	chunkSize int
}

func New() *HTTPFetcher {
	client := &http.Client{
		// no overall timeout, installers are large; cancel through ctx
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			TLSHandshakeTimeout:   30 * time.Second,
			ResponseHeaderTimeout: 60 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= DefaultMaxRedirects {
				return errors.New("too many redirects")
			}
			return nil
		},
	}
	return NewWithClient(client)
}

func NewWithClient(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{
		client:    client,
		userAgent: version.UserAgent("freedom"),
		chunkSize: DefaultChunkSize,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url, dst string, progress ProgressFunc) error {
	if progress == nil {
		progress = func(int64, int64) {}
	}

	if err := util.PrepareDir(filepath.Dir(dst)); err != nil {
		return ierrors.FileWriteFailed(dst, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ierrors.DownloadFailed(url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	log.Debug().Str("url", url).Str("dst", dst).Msg("download started")
	resp, err := f.client.Do(req)
	if err != nil {
		return ierrors.DownloadFailed(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ierrors.DownloadBadStatus(url, resp.StatusCode)
	}

	tmp := dst + "." + uuid.New().String() + PartSuffix
	out, err := os.Create(tmp)
	if err != nil {
		return ierrors.FileWriteFailed(tmp, err)
	}

	written, err := f.copy(out, resp.Body, resp.ContentLength, progress)
	if err := ierrors.JoinErrors(err, out.Close()); err != nil {
		os.Remove(tmp)
		return ierrors.DownloadFailed(url, err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return ierrors.FileWriteFailed(dst, err)
	}

	log.Debug().Str("dst", dst).Str("size", util.ByteCountSI(written)).Msg("download finished")
	return nil
}

func (f *HTTPFetcher) copy(w io.Writer, r io.Reader, total int64, progress ProgressFunc) (int64, error) {
	// without a declared length there is nothing to measure against
	if total <= 0 {
		n, err := io.Copy(w, r)
		if err != nil {
			return n, err
		}
		progress(n, -1)
		return n, nil
	}

	buf := make([]byte, f.chunkSize)
	var done int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return done, werr
			}
			done += int64(n)
			progress(done, total)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return done, err
		}
	}

	if done != total {
		return done, io.ErrUnexpectedEOF
	}
	return done, nil
}
