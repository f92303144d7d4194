package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
)

func newTestClient(url string) *Client {
	opts := NewDefaultOptions()
	opts.RetryMax = 0

	return NewClient(url, opts)
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if req.Email != "ada@fair.example" || req.Password == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"message": "bad credentials"})
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"message": "ok",
			"item": map[string]any{
				"accessToken":   "tok-123",
				"roleIndicator": 1,
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ctx := context.Background()

	creds, err := client.Login(ctx, "ada@fair.example", "secret")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "tok-123", creds.AccessToken; e != g {
		t.Errorf("creds.AccessToken: expected '%v', got '%v'", e, g)
	}

	if e, g := 1, creds.RoleIndicator; e != g {
		t.Errorf("creds.RoleIndicator: expected '%v', got '%v'", e, g)
	}
}

func TestLoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if _, err := client.Login(context.Background(), "ada@fair.example", "wrong"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %+v", err)
	}
}

func TestUnavailable(t *testing.T) {
	// A closed listener port: the dial fails, which must surface as
	// ErrUnavailable and not as bad credentials.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(url)

	if _, err := client.Login(context.Background(), "ada@fair.example", "secret"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %+v", err)
	}
}

func TestSessionExpired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if _, err := client.ListVenues(context.Background(), "stale-token", 1); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %+v", err)
	}
}

func TestForbiddenKeepsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.ListVenues(context.Background(), "tok", 1)

	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %+v", err)
	}

	if errors.Is(err, ErrSessionExpired) {
		t.Error("a permission denial must not count as an expired session")
	}
}

func TestNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	if _, err := client.GetVenue(context.Background(), "tok", 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %+v", err)
	}
}

func TestListVenues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if e, g := "Bearer tok", r.Header.Get("Authorization"); e != g {
			t.Errorf("Authorization: expected '%v', got '%v'", e, g)
		}

		if e, g := "2", r.URL.Query().Get("page"); e != g {
			t.Errorf("page: expected '%v', got '%v'", e, g)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"message": "ok",
			"items": []map[string]any{
				{"id": 1, "name": "Messehalle Nord", "city": "Hamburg", "country": "DE", "capacity": 12000},
				{"id": 2, "name": "Palais des Congrès", "city": "Lyon", "country": "FR", "capacity": 3000},
			},
			"hasMore":     true,
			"currentPage": 2,
			"totalPages":  7,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	page, err := client.ListVenues(context.Background(), "tok", 2)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(page.Items); e != g {
		t.Fatalf("len(page.Items): expected '%v', got '%v'", e, g)
	}

	if e, g := "Messehalle Nord", page.Items[0].Name; e != g {
		t.Errorf("page.Items[0].Name: expected '%v', got '%v'", e, g)
	}

	if !page.HasMore {
		t.Error("page.HasMore: expected true")
	}

	if e, g := 7, page.TotalPages; e != g {
		t.Errorf("page.TotalPages: expected '%v', got '%v'", e, g)
	}
}

func TestApproveStaff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/staff/7/approve" {
			http.NotFound(w, r)
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"message": "ok",
			"item":    map[string]any{"id": 7, "name": "Lou", "status": StaffStatusApproved},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	member, err := client.ApproveStaff(context.Background(), "tok", 7)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := StaffStatusApproved, member.Status; e != g {
		t.Errorf("member.Status: expected '%v', got '%v'", e, g)
	}
}
