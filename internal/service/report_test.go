package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestReporterDisabled(t *testing.T) {
	r := NewReporter("")
	if r.IsEnabled() {
		t.Error("IsEnabled() = true for empty URL, want false")
	}
	if err := r.Send(context.Background(), &TrainReport{}); err != nil {
		t.Errorf("Send() on disabled reporter error = %v, want nil", err)
	}
}

func TestReporterSend(t *testing.T) {
	var got TrainReport
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding report: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	report := &TrainReport{
		FitID:      "fit-abc",
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Rows:       42,
	}
	if err := NewReporter(srv.URL).Send(context.Background(), report); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got.FitID != "fit-abc" || got.Rows != 42 {
		t.Errorf("delivered report = %+v, want fit-abc/42", got)
	}
}

func TestReporterSendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewReporter(srv.URL).Send(context.Background(), &TrainReport{}); err == nil {
		t.Fatal("Send() to failing webhook should return an error")
	}
}
