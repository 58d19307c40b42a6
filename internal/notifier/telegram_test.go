package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"RSISentinel/internal/alert"
	"RSISentinel/internal/model"
)

func TestValidDestination(t *testing.T) {
	tests := []struct {
		dest string
		want bool
	}{
		{"@abc123", true},
		{"@my_channel", true},
		{"-1001234567890", true},
		{"abc123", false},          // missing @
		{"-100123", false},         // too short
		{"-10012345678901", false}, // too long
		{"@", false},
		{"@with space", false},
		{"1234567890", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidDestination(tt.dest); got != tt.want {
			t.Errorf("ValidDestination(%q) = %v, want %v", tt.dest, got, tt.want)
		}
	}
}

func TestSendTo(t *testing.T) {
	var gotPath string
	var gotPayload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TESTTOKEN", "")
	tn.BaseURL = srv.URL
	if err := tn.SendTo("@alerts", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/botTESTTOKEN/sendMessage" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotPayload["chat_id"] != "@alerts" || gotPayload["text"] != "hello" {
		t.Errorf("unexpected payload: %v", gotPayload)
	}
	if gotPayload["parse_mode"] != "HTML" {
		t.Errorf("expected HTML parse mode, got %q", gotPayload["parse_mode"])
	}
}

func TestSendTo_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"chat not found"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TESTTOKEN", "")
	tn.BaseURL = srv.URL
	err := tn.SendTo("@missing", "hello")
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("error should carry the API body: %v", err)
	}
}

func TestCheckAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTESTTOKEN/getMe" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"username":"rsi_sentinel_bot"}}`))
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("TESTTOKEN", "")
	tn.BaseURL = srv.URL
	username, err := tn.CheckAuth()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if username != "rsi_sentinel_bot" {
		t.Errorf("unexpected username: %s", username)
	}
}

func TestCheckAuth_BadToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"error_code":401,"description":"Unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	tn := NewTelegramNotifier("WRONG", "")
	tn.BaseURL = srv.URL
	if _, err := tn.CheckAuth(); err == nil {
		t.Fatal("expected error for unauthorized token")
	}
}

func TestFormatAlert(t *testing.T) {
	cfg := model.NewSubscriberConfig(1)
	reading := model.Reading{Value: 24.5, ReferencePrice: 43000.12}

	over := FormatAlert("BTCUSDT", reading, alert.Oversold, cfg)
	if !strings.Contains(over, "oversold") || !strings.Contains(over, "24.50") {
		t.Errorf("unexpected oversold message: %q", over)
	}

	reading.Value = 81.2
	ob := FormatAlert("BTCUSDT", reading, alert.Overbought, cfg)
	if !strings.Contains(ob, "overbought") || !strings.Contains(ob, "81.20") {
		t.Errorf("unexpected overbought message: %q", ob)
	}
}

func TestFormatStatus(t *testing.T) {
	cfg := model.NewSubscriberConfig(1)
	cfg.Destinations = []string{"@a"}

	noReading := FormatStatus("BTCUSDT", cfg, nil)
	if !strings.Contains(noReading, "No reading yet") {
		t.Errorf("expected pending note without a reading: %q", noReading)
	}

	withReading := FormatStatus("BTCUSDT", cfg, &model.Reading{Value: 55.5, ReferencePrice: 42000})
	if !strings.Contains(withReading, "55.50") {
		t.Errorf("expected latest RSI in status: %q", withReading)
	}
	if !strings.Contains(withReading, "Channels: 1") {
		t.Errorf("expected channel count in status: %q", withReading)
	}
}

func TestFormatChannelList(t *testing.T) {
	if got := FormatChannelList(nil); !strings.Contains(got, "No channels") {
		t.Errorf("unexpected empty-list message: %q", got)
	}
	got := FormatChannelList([]string{"@a", "-1001234567890"})
	if !strings.Contains(got, "@a") || !strings.Contains(got, "-1001234567890") {
		t.Errorf("expected all destinations listed: %q", got)
	}
}
