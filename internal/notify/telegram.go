// Package notify posts order notifications to a Telegram bot chat.
//
// The notifier is environment-gated: without a bot token and chat id it is
// disabled and every call is a no-op. It is strictly best-effort — failures
// are logged and swallowed, because failing to send a notification must
// never prevent an order from being placed.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/kyluxehaven/storefront/internal/order"
)

const defaultAPIBase = "https://api.telegram.org"

// Telegram sends formatted messages through the Bot API.
type Telegram struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

// NewTelegram builds a notifier. Either credential being empty disables it.
func NewTelegram(botToken, chatID string) *Telegram {
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NewTelegramWithBase is used by tests to point the notifier at a fake API.
func NewTelegramWithBase(botToken, chatID, apiBase string) *Telegram {
	t := NewTelegram(botToken, chatID)
	t.apiBase = apiBase
	return t
}

// Enabled reports whether both credentials are configured.
func (t *Telegram) Enabled() bool {
	return t.botToken != "" && t.chatID != ""
}

// OrderPlaced posts a Markdown summary of a freshly placed order.
func (t *Telegram) OrderPlaced(ctx context.Context, o order.Order, phone string) {
	if !t.Enabled() {
		slog.DebugContext(ctx, "telegram notifier not configured, skipping order notification")
		return
	}

	var items strings.Builder
	for _, it := range o.Items {
		fmt.Fprintf(&items, "- %s (Qty: %d) - ₦%.2f\n", it.Name, it.Quantity, it.Subtotal())
	}

	message := fmt.Sprintf(`*New Shipping Information from KyluxeHaven*

A new order has been placed.

*Customer Details:*
- *Name:* %s
- *Phone:* %s
- *Shipping Address:* %s

*Order Summary:*
%s
*Total Amount:* ₦%.2f`,
		o.CustomerName, phone, o.ShippingAddress, items.String(), o.TotalAmount)

	t.sendMessage(ctx, message)
}

// ProofSubmitted posts the uploaded proof image with a caption so the admin
// can review the bank transfer without opening the dashboard.
func (t *Telegram) ProofSubmitted(ctx context.Context, o order.Order, proof []byte, filename string) {
	if !t.Enabled() {
		return
	}

	caption := fmt.Sprintf("Payment proof for order %s (%s, ₦%.2f)", o.ID, o.CustomerName, o.TotalAmount)
	if len(proof) == 0 {
		t.sendMessage(ctx, caption)
		return
	}
	t.sendPhoto(ctx, caption, proof, filename)
}

func (t *Telegram) sendMessage(ctx context.Context, text string) {
	body, err := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode telegram message", "error", err)
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.botToken)
	t.post(ctx, url, "application/json", bytes.NewReader(body))
}

func (t *Telegram) sendPhoto(ctx context.Context, caption string, photo []byte, filename string) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	_ = mw.WriteField("chat_id", t.chatID)
	_ = mw.WriteField("caption", caption)
	if filename == "" {
		filename = "proof.jpg"
	}
	part, err := mw.CreateFormFile("photo", filename)
	if err == nil {
		_, err = part.Write(photo)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to build telegram photo upload", "error", err)
		return
	}
	if err := mw.Close(); err != nil {
		slog.ErrorContext(ctx, "failed to finalise telegram photo upload", "error", err)
		return
	}

	url := fmt.Sprintf("%s/bot%s/sendPhoto", t.apiBase, t.botToken)
	t.post(ctx, url, mw.FormDataContentType(), &buf)
}

func (t *Telegram) post(ctx context.Context, url, contentType string, body io.Reader) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build telegram request", "error", err)
		return
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := t.client.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send telegram notification", "error", err)
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		slog.ErrorContext(ctx, "telegram API rejected notification", "status", resp.StatusCode)
	}
}
