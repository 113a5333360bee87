package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	puppiesTable  = "puppies"
	puppiesSelect = "puppy_name,call_name,sex,color,pattern,price,dob,status"
	dobLayout     = "2006-01-02"
)

// SupabaseStore reads the puppies table through the Supabase REST (PostgREST) endpoint.
type SupabaseStore struct {
	url        string
	key        string
	httpClient *http.Client
}

// NewSupabaseStore creates a store for the project at baseURL using the anon key.
func NewSupabaseStore(baseURL, anonKey string) (*SupabaseStore, error) {
	if baseURL == "" || anonKey == "" {
		return nil, errors.New("missing SUPABASE_URL or SUPABASE_ANON_KEY")
	}
	return &SupabaseStore{
		url: strings.TrimRight(baseURL, "/"),
		key: anonKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// supabaseRow mirrors the JSON shape returned by PostgREST; dob arrives as an ISO date string.
type supabaseRow struct {
	Item
	DOB *string `json:"dob"`
}

// ListAvailable issues GET /rest/v1/puppies filtered on status and ordered by dob.
func (s *SupabaseStore) ListAvailable(ctx context.Context) ([]Item, error) {
	q := url.Values{}
	q.Set("select", puppiesSelect)
	q.Set("status", "eq."+StatusAvailable)
	q.Set("order", "dob.asc")
	endpoint := s.url + "/rest/v1/" + puppiesTable + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase: build request: %w", err)
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("supabase: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("supabase: query failed with status %d: %s", resp.StatusCode, body)
	}

	var rows []supabaseRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("supabase: unmarshal response: %w", err)
	}

	items := make([]Item, 0, len(rows))
	for _, r := range rows {
		it := r.Item
		if r.DOB != nil && *r.DOB != "" {
			if t, err := time.Parse(dobLayout, (*r.DOB)[:min(len(*r.DOB), len(dobLayout))]); err == nil {
				it.BornOn = &t
			}
		}
		items = append(items, it)
	}
	return items, nil
}
