package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// releaseServer serves one repository's latest release and its assets the
// way the GitHub API and download host do.
type releaseServer struct {
	owner, repo string
	latest      string
	assets      map[string][]byte // "tag/file" -> body
	requests    []string
}

func newReleaseServer(owner, repo, latest string) *releaseServer {
	return &releaseServer{owner: owner, repo: repo, latest: latest, assets: map[string][]byte{}}
}

func (rs *releaseServer) addAsset(tag, file string, body []byte) {
	rs.assets[tag+"/"+file] = body
}

// addArchive publishes archive under asset plus a matching checksums.txt.
func (rs *releaseServer) addArchive(tag, asset string, archive []byte) {
	rs.addAsset(tag, asset, archive)
	sum := sha256.Sum256(archive)
	rs.addAsset(tag, "checksums.txt", fmt.Appendf(nil, "%s  %s\n", hex.EncodeToString(sum[:]), asset))
}

func (rs *releaseServer) start(t *testing.T) *Checker {
	t.Helper()
	mux := http.NewServeMux()
	prefix := fmt.Sprintf("/%s/%s", rs.owner, rs.repo)

	mux.HandleFunc("GET /repos"+prefix+"/releases/latest", func(w http.ResponseWriter, r *http.Request) {
		rs.requests = append(rs.requests, r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"tag_name": rs.latest,
			"html_url": "https://example.test" + prefix + "/releases/tag/" + rs.latest,
		})
	})
	mux.HandleFunc("GET "+prefix+"/releases/download/{tag}/{file}", func(w http.ResponseWriter, r *http.Request) {
		rs.requests = append(rs.requests, r.URL.Path)
		body, ok := rs.assets[r.PathValue("tag")+"/"+r.PathValue("file")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewChecker(
		WithHTTPClient(srv.Client()),
		WithSource(Source{
			Owner:       rs.owner,
			Repo:        rs.repo,
			Binary:      rs.repo,
			APIURL:      srv.URL,
			DownloadURL: srv.URL,
		}),
		WithPlatform(Platform{OS: "linux", Arch: "amd64"}),
	)
}

func tarGz(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o755,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func zipped(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
