package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

var (
	handleRe = regexp.MustCompile(`^@\w+$`)
	chatIDRe = regexp.MustCompile(`^-100\d{10}$`)
)

// ValidDestination reports whether dest is a well-formed channel handle
// ("@name") or supergroup/channel numeric id ("-100" + 10 digits).
func ValidDestination(dest string) bool {
	return handleRe.MatchString(dest) || chatIDRe.MatchString(dest)
}

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken string
	BaseURL  string
	Client   *http.Client
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, proxyURL string) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken: botToken,
		BaseURL:  "https://api.telegram.org",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// SendTo sends a message to the given destination: a numeric chat id or
// a "@handle" channel name.
func (t *TelegramNotifier) SendTo(dest, text string) error {
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.BotToken)
	payload := map[string]string{
		"chat_id":    dest,
		"text":       text,
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := t.Client.Post(apiURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, dest, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := t.SendTo(dest, text); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[WARN] Telegram send failed (attempt %d/%d): %v, retrying in %v", i+1, maxRetries+1, err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}

// CheckAuth calls getMe to verify the bot token and connectivity.
// Returns the bot username on success.
func (t *TelegramNotifier) CheckAuth() (string, error) {
	apiURL := fmt.Sprintf("%s/bot%s/getMe", t.BaseURL, t.BotToken)
	resp, err := t.Client.Get(apiURL)
	if err != nil {
		return "", fmt.Errorf("getMe: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("getMe: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	var result struct {
		OK     bool `json:"ok"`
		Result struct {
			Username string `json:"username"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode getMe: %w", err)
	}
	if !result.OK {
		return "", fmt.Errorf("getMe: not ok")
	}
	return result.Result.Username, nil
}

// Probe verifies a destination is deliverable by sending a short test
// message to it.
func (t *TelegramNotifier) Probe(dest string) error {
	return t.SendTo(dest, "✅ RSISentinel connected. Alerts will be delivered here.")
}
