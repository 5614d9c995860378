package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

func TestSummarizeSendsOrderAndReturnsText(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "Hello Jane Doe, thank you for your order!"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "test-model")
	text, err := c.Summarize(context.Background(), sampleOrder())
	require.NoError(t, err)
	assert.Equal(t, "Hello Jane Doe, thank you for your order!", text)

	assert.Equal(t, "test-model", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Contains(t, captured.Messages[1].Content, "Customer Name: Jane Doe")
	assert.Contains(t, captured.Messages[1].Content, "Order ID: order-1")
	assert.Contains(t, captured.Messages[1].Content, "Quantity: 2")
}

func TestSummarizeWithoutAPIKey(t *testing.T) {
	c := NewClient("", "", "")
	_, err := c.Summarize(context.Background(), sampleOrder())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSummarizeSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "")
	_, err := c.Summarize(context.Background(), sampleOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestSummarizeRejectsEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "")
	_, err := c.Summarize(context.Background(), sampleOrder())
	assert.Error(t, err)
}

func TestBuildPromptListsEveryItem(t *testing.T) {
	o := sampleOrder()
	o.Items = append(o.Items, order.Item{Name: "Urban Explorer Cap", Quantity: 1, UnitPrice: 34500})

	prompt := BuildPrompt(o)
	assert.Contains(t, prompt, "Classic Wristband")
	assert.Contains(t, prompt, "Urban Explorer Cap")
	assert.Contains(t, prompt, "₦48000.00")
}
