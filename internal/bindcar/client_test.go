/*
Copyright 2025 firestoned.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package bindcar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-logr/logr"
)

func TestBuildAPIURL(t *testing.T) {
	cases := map[string]string{
		"127.0.0.1:8080":       "http://127.0.0.1:8080",
		"http://example:8080/": "http://example:8080",
		"https://example":      "https://example",
	}
	for in, want := range cases {
		if got := buildAPIURL(in); got != want {
			t.Errorf("buildAPIURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReloadZoneSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/zones/example.com/reload" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "", logr.Discard())
	if err := c.ReloadZone(context.Background(), "example.com"); err != nil {
		t.Fatalf("ReloadZone() error = %v", err)
	}
}

func TestReloadZoneNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("zone not found"))
	}))
	defer srv.Close()

	c := New(srv.URL, "", logr.Discard())
	err := c.ReloadZone(context.Background(), "missing.com")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "zone missing.com not found on "+buildAPIURL(srv.URL) {
		t.Errorf("error = %q", got)
	}
}

func TestAddPrimaryZoneAlreadyExistsIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"message":"zone already exists"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", logr.Discard())
	added, err := c.AddPrimaryZone(context.Background(), "example.com", ZoneConfig{SOA: SOARecord{PrimaryNS: "ns1.example.com"}}, "", nil)
	if err != nil {
		t.Fatalf("AddPrimaryZone() error = %v", err)
	}
	if added {
		t.Error("added = true, want false for an already-existing zone")
	}
}

func TestAddPrimaryZoneRefreshesPeersOnConflict(t *testing.T) {
	var modifyCalled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"success":false,"message":"already exists"}`))
		case r.Method == http.MethodPatch:
			modifyCalled = true
			var body ModifyZoneRequest
			_ = json.NewDecoder(r.Body).Decode(&body)
			if len(body.AlsoNotify) != 1 || body.AlsoNotify[0] != "10.0.0.5" {
				t.Errorf("unexpected modify body: %+v", body)
			}
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "", logr.Discard())
	added, err := c.AddPrimaryZone(context.Background(), "example.com",
		ZoneConfig{SOA: SOARecord{PrimaryNS: "ns1.example.com"}}, "", []string{"10.0.0.5"})
	if err != nil {
		t.Fatalf("AddPrimaryZone() error = %v", err)
	}
	if added {
		t.Error("added = true, want false")
	}
	if !modifyCalled {
		t.Error("expected ModifyZone to be called to refresh peers")
	}
}

func TestCreateZoneHTTPSkipsCreateWhenZoneExists(t *testing.T) {
	var createCalled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/zones/example.com/status":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{}`))
		case r.Method == http.MethodPost:
			createCalled = true
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "", logr.Discard())
	added, err := c.CreateZoneHTTP(context.Background(), ZoneTypePrimary, "example.com",
		ZoneConfig{SOA: SOARecord{PrimaryNS: "ns1.example.com"}}, "", nil, nil, 5353)
	if err != nil {
		t.Fatalf("CreateZoneHTTP() error = %v", err)
	}
	if added {
		t.Error("added = true, want false when the zone already exists")
	}
	if createCalled {
		t.Error("create should not have been called once the probe confirmed existence")
	}
}

func TestZoneExistsPropagatesNon404Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "", logr.Discard())
	_, err := c.ZoneExists(context.Background(), "example.com")
	if err == nil {
		t.Fatal("expected a propagated error on 429, not a false negative")
	}
}

func TestDeleteZoneNotFoundIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			// freeze attempt for a primary zone; ignore outcome either way
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("zone not found"))
	}))
	defer srv.Close()

	c := New(srv.URL, "", logr.Discard())
	if err := c.DeleteZone(context.Background(), ZoneTypePrimary, "example.com"); err != nil {
		t.Fatalf("DeleteZone() error = %v", err)
	}
}

func TestDoRetriesOnRetryableStatus(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "", logr.Discard())
	if err := c.ReloadAllZones(context.Background()); err != nil {
		t.Fatalf("ReloadAllZones() error = %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestDoDoesNotRetryOnPermanentStatus(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(srv.URL, "", logr.Discard())
	err := c.ReloadAllZones(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (400 should not be retried)", attempts)
	}
}

func TestAuthorizationHeaderSentWhenTokenSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization header = %q", got)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-token", logr.Discard())
	if err := c.ReloadAllZones(context.Background()); err != nil {
		t.Fatalf("ReloadAllZones() error = %v", err)
	}
}
