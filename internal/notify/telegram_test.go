package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyluxehaven/storefront/internal/order"
)

func sampleOrder() order.Order {
	return order.Order{
		ID:              "order-1",
		CustomerName:    "Jane Doe",
		ShippingAddress: "12 Palm St, Lagos, 100001",
		TotalAmount:     48000,
		Items: []order.Item{
			{Name: "Classic Wristband", Quantity: 2, UnitPrice: 24000},
		},
	}
}

func TestOrderPlacedPostsMarkdownMessage(t *testing.T) {
	var captured map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bottoken/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := NewTelegramWithBase("token", "chat-42", srv.URL)
	tg.OrderPlaced(context.Background(), sampleOrder(), "08012345678")

	require.NotNil(t, captured)
	assert.Equal(t, "chat-42", captured["chat_id"])
	assert.Equal(t, "Markdown", captured["parse_mode"])
	assert.Contains(t, captured["text"], "Jane Doe")
	assert.Contains(t, captured["text"], "08012345678")
	assert.Contains(t, captured["text"], "Classic Wristband (Qty: 2)")
	assert.Contains(t, captured["text"], "₦48000.00")
}

func TestProofSubmittedPostsPhoto(t *testing.T) {
	var path, contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "chat-42", r.FormValue("chat_id"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tg := NewTelegramWithBase("token", "chat-42", srv.URL)
	tg.ProofSubmitted(context.Background(), sampleOrder(), []byte("image bytes"), "receipt.png")

	assert.Equal(t, "/bottoken/sendPhoto", path)
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data"))
}

func TestDisabledNotifierNeverCallsAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("disabled notifier must not reach the API")
	}))
	defer srv.Close()

	tg := NewTelegramWithBase("", "", srv.URL)
	assert.False(t, tg.Enabled())

	tg.OrderPlaced(context.Background(), sampleOrder(), "080")
	tg.ProofSubmitted(context.Background(), sampleOrder(), nil, "")
}

func TestAPIFailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	// Must not panic or propagate anything.
	tg := NewTelegramWithBase("token", "chat-42", srv.URL)
	tg.OrderPlaced(context.Background(), sampleOrder(), "080")
}
