package frigate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEventsParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/events" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Write([]byte(`[{"id":"1719000000.0-abc","camera":"front_door","label":"person","start_time":1719000000,"end_time":1719000060,"has_clip":true,"has_snapshot":false,"zones":["porch"]}]`))
	}))
	defer srv.Close()

	e := NewEngine(Config{ID: "a", URL: srv.URL})
	events, err := e.Events(context.Background(), EventsParams{
		Cameras: []string{"front_door", "back_door"},
		Labels:  []string{"person"},
		After:   1718990000,
		Before:  1719090000,
		Limit:   50,
		HasClip: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].ID != "1719000000.0-abc" {
		t.Fatalf("unexpected events %+v", events)
	}
	if events[0].EndTime == nil || *events[0].EndTime != 1719000060 {
		t.Fatalf("end_time not decoded: %+v", events[0])
	}

	checks := map[string]string{
		"cameras":            "front_door,back_door",
		"labels":             "person",
		"after":              "1718990000",
		"before":             "1719090000",
		"limit":              "50",
		"has_clip":           "1",
		"include_thumbnails": "0",
	}
	for k, want := range checks {
		if got := gotQuery[k]; len(got) != 1 || got[0] != want {
			t.Errorf("param %s=%v want %s", k, got, want)
		}
	}
	if _, ok := gotQuery["has_snapshot"]; ok {
		t.Error("unset has_snapshot must be omitted")
	}
}

func TestRecordingSummaryFlexHour(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("timezone"); got != "Europe/Berlin" {
			t.Errorf("timezone=%q", got)
		}
		// Older releases quote the hour, newer ones do not.
		w.Write([]byte(`[{"day":"2024-06-21","events":5,"hours":[{"hour":"18","events":3,"duration":3600},{"hour":19,"events":2,"duration":1800}]}]`))
	}))
	defer srv.Close()

	e := NewEngine(Config{ID: "a", URL: srv.URL})
	days, err := e.RecordingSummary(context.Background(), "front_door", "Europe/Berlin")
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || len(days[0].Hours) != 2 {
		t.Fatalf("unexpected summary %+v", days)
	}
	if days[0].Hours[0].Hour != 18 || days[0].Hours[1].Hour != 19 {
		t.Fatalf("flex hour decode failed: %+v", days[0].Hours)
	}
}

func TestRetainFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method=%s want DELETE", r.Method)
		}
		w.Write([]byte(`{"success":false,"message":"event not found"}`))
	}))
	defer srv.Close()

	e := NewEngine(Config{ID: "a", URL: srv.URL})
	err := e.Retain(context.Background(), "ev1", false)
	var re *RetainError
	if !errors.As(err, &re) {
		t.Fatalf("want RetainError, got %v", err)
	}
	if re.EventID != "ev1" || re.Retain || re.Message != "event not found" {
		t.Fatalf("unexpected RetainError %+v", re)
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "camera not found", http.StatusNotFound)
	}))
	defer srv.Close()

	e := NewEngine(Config{ID: "a", URL: srv.URL})
	_, err := e.RecordingSegments(context.Background(), "nope", 0, 1)
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("want *Error, got %v", err)
	}
	if fe.Status != http.StatusNotFound || fe.Instance != "a" {
		t.Fatalf("unexpected error %+v", fe)
	}
}
