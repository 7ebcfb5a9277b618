// Package postgrest loads tables from a hosted PostgREST endpoint, such as
// the REST interface of a Supabase project.
package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"f1acleaderboard/pkg/tables"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultPageSize matches the default max-rows of a hosted Supabase project.
const DefaultPageSize = 1000

type Source struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	pageSize int
}

func NewSource(baseURL, apiKey string, client *http.Client) *Source {
	if client == nil {
		client = http.DefaultClient
	}
	return &Source{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		client:   client,
		pageSize: DefaultPageSize,
	}
}

// SetPageSize changes how many rows are asked for per request. It must not
// exceed the server max-rows, or pages come back short and loading stops early.
func (s *Source) SetPageSize(n int) {
	if n > 0 {
		s.pageSize = n
	}
}

func (s *Source) tableURL(name string, offset int) string {
	return fmt.Sprintf("%s/rest/v1/%s?select=*&limit=%d&offset=%d", s.baseURL, url.PathEscape(name), s.pageSize, offset)
}

// LoadTable selects every row of the table, page by page, until a page comes
// back shorter than the page size.
func (s *Source) LoadTable(ctx context.Context, name string) (tables.Table, error) {
	var rows []tables.Row
	for offset := 0; ; {
		page, err := s.loadPage(ctx, name, offset)
		if err != nil {
			return tables.Table{}, err
		}
		rows = append(rows, page...)
		if len(page) < s.pageSize {
			break
		}
		offset += len(page)
		logrus.Debugf("fetched %d rows from %s, continuing", offset, name)
	}
	return tables.NewTable(name, rows), nil
}

func (s *Source) loadPage(ctx context.Context, name string, offset int) ([]tables.Row, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.tableURL(name, offset), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// 206 is what PostgREST answers for a partial range
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, errors.Errorf("select from %s: %s", name, resp.Status)
	}

	var rows []tables.Row
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", name)
	}
	return rows, nil
}
