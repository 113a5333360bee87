package availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewSupabaseStore_MissingCredentials(t *testing.T) {
	if _, err := NewSupabaseStore("", "key"); err == nil {
		t.Error("expected error for missing url")
	}
	if _, err := NewSupabaseStore("https://example.supabase.co", ""); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestSupabaseStore_ListAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/puppies" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("select") != puppiesSelect {
			t.Errorf("select = %q", q.Get("select"))
		}
		if q.Get("status") != "eq.Available" {
			t.Errorf("status filter = %q", q.Get("status"))
		}
		if q.Get("order") != "dob.asc" {
			t.Errorf("order = %q", q.Get("order"))
		}
		if r.Header.Get("apikey") != "anon" || r.Header.Get("Authorization") != "Bearer anon" {
			t.Errorf("auth headers = %q / %q", r.Header.Get("apikey"), r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"puppy_name":"Biscuit","call_name":null,"sex":"Male","color":"Fawn","pattern":null,"price":1800,"dob":"2025-03-02","status":"Available"},
			{"puppy_name":null,"call_name":"Peanut","sex":"Female","color":"Chocolate","pattern":"Merle","price":null,"dob":null,"status":"Available"}
		]`))
	}))
	defer srv.Close()

	store, err := NewSupabaseStore(srv.URL+"/", "anon")
	if err != nil {
		t.Fatalf("NewSupabaseStore: %v", err)
	}

	items, err := store.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("ListAvailable: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0]
	if first.PuppyName == nil || *first.PuppyName != "Biscuit" {
		t.Errorf("PuppyName = %v", first.PuppyName)
	}
	if first.Price == nil || *first.Price != 1800 {
		t.Errorf("Price = %v", first.Price)
	}
	if first.BornOn == nil || !first.BornOn.Equal(time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("BornOn = %v", first.BornOn)
	}

	second := items[1]
	if second.PuppyName != nil || second.CallName == nil || *second.CallName != "Peanut" {
		t.Errorf("names = %v / %v", second.PuppyName, second.CallName)
	}
	if second.BornOn != nil || second.Price != nil {
		t.Errorf("expected nil dob and price, got %v / %v", second.BornOn, second.Price)
	}
}

func TestSupabaseStore_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied for table puppies"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	store, err := NewSupabaseStore(srv.URL, "anon")
	if err != nil {
		t.Fatalf("NewSupabaseStore: %v", err)
	}
	if _, err := store.ListAvailable(context.Background()); err == nil {
		t.Error("expected error for 401 response")
	}

	svc := NewService(store)
	if res := svc.Fetch(context.Background()); res.Outcome != OutcomeQueryError {
		t.Errorf("Outcome = %s, want %s", res.Outcome, OutcomeQueryError)
	}
}

func TestSupabaseStore_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	store, err := NewSupabaseStore(srv.URL, "anon")
	if err != nil {
		t.Fatalf("NewSupabaseStore: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	svc := NewService(store)
	if res := svc.Fetch(ctx); res.Outcome != OutcomeQueryError {
		t.Errorf("Outcome = %s, want %s", res.Outcome, OutcomeQueryError)
	}
}
