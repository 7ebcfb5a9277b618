// Package circuitimage fetches the layout picture of a circuit from Wikimedia.
package circuitimage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "https://upload.wikimedia.org/wikipedia/commons/thumb/0/0c"
	DefaultTimeout = 5 * time.Second

	maxImageBytes = 10 << 20
)

// ErrUnavailable marks a failed fetch. Callers show a warning and carry on.
var ErrUnavailable = errors.New("circuit image unavailable")

type UnavailableError struct {
	Circuit string
	URL     string
	Status  int
	Err     error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s for %q: %s", ErrUnavailable, e.Circuit, e.Err)
	}
	return fmt.Sprintf("%s for %q: status %d", ErrUnavailable, e.Circuit, e.Status)
}

func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// SearchName turns a display name into the file stem used on Wikimedia.
func SearchName(circuit string) string {
	return strings.ReplaceAll(circuit, " ", "_") + "_circuit"
}

type Image struct {
	Circuit     string
	URL         string
	ContentType string
	Data        []byte
}

type Fetcher struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

func NewFetcher(baseURL string, timeout time.Duration, client *http.Client) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client:  client,
	}
}

// URL builds the 800px thumbnail URL for the circuit.
func (f *Fetcher) URL(circuit string) string {
	name := SearchName(circuit)
	return fmt.Sprintf("%s/%s.png/800px-%s.png", f.baseURL, name, name)
}

// Fetch downloads the picture. Anything but a 200 is an *UnavailableError.
func (f *Fetcher) Fetch(ctx context.Context, circuit string) (Image, error) {
	url := f.URL(circuit)
	unavailable := func(status int, err error) (Image, error) {
		return Image{}, &UnavailableError{Circuit: circuit, URL: url, Status: status, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return unavailable(0, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return unavailable(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return unavailable(resp.StatusCode, nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return unavailable(resp.StatusCode, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return Image{
		Circuit:     circuit,
		URL:         url,
		ContentType: contentType,
		Data:        data,
	}, nil
}
