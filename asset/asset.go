// Package asset resolves an image source identifier (local path or URL)
// into a decoded image.
package asset

import (
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"

	// Blank imports for image decoders so image.Decode can handle them.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Global client with a custom User-Agent header.
var httpClient = &http.Client{
	Transport: &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	},
}

type headerTransport struct {
	Transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "https://github.com/richinsley/glasspane")
	return t.Transport.RoundTrip(req)
}

func init() {
	httpClient.Transport = &headerTransport{Transport: http.DefaultTransport}
}

// IsURL reports whether the source should be fetched over HTTP rather
// than read from disk.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Resolve loads and decodes the image at the given source identifier.
// The returned image's bounds are its natural pixel dimensions.
func Resolve(source string) (image.Image, error) {
	if IsURL(source) {
		return fetchURL(source)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", source, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", source, err)
	}
	return img, nil
}

func fetchURL(url string) (image.Image, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image %s: status %s", url, resp.Status)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", url, err)
	}
	return img, nil
}
