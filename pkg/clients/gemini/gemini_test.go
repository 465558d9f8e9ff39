package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pureclean/platform/internal/domain/models"
)

func testClient(serverURL string) *geminiClient {
	return &geminiClient{
		httpClient: resty.New().SetTimeout(2 * time.Second),
		apiKey:     "test-key",
		base:       serverURL,
	}
}

func writeCandidate(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
}

func TestOrderSummary(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotEmpty(t, req.Contents)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Bekzod")

		writeCandidate(w, "  Handle with care, silk items.  ")
	}))
	defer server.Close()

	client := testClient(server.URL)
	order := models.Order{
		Customer: models.Customer{FirstName: "Bekzod", LastName: "Karimov"},
		Details:  models.OrderDetails{ItemCount: 3, ServiceType: "Dry cleaning"},
		Status:   models.StatusWashing,
	}

	note, err := client.OrderSummary(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "Handle with care, silk items.", note)
	assert.Equal(t, "test-key", gotKey)
}

func TestOrderSummaryFallsBackOnAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	note, err := testClient(server.URL).OrderSummary(context.Background(), models.Order{})
	require.Error(t, err)
	assert.Equal(t, FallbackOrderSummary, note)
}

func TestOrderSummaryEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(generateResponse{})
	}))
	defer server.Close()

	note, err := testClient(server.URL).OrderSummary(context.Background(), models.Order{})
	require.NoError(t, err)
	assert.Equal(t, emptyOrderSummary, note)
}

func TestDailyBriefingSkipsDelivered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt := req.Contents[0].Parts[0].Text
		assert.Contains(t, prompt, "2 active orders")
		assert.Contains(t, prompt, "PC-0001")
		assert.NotContains(t, prompt, "PC-0003")

		writeCandidate(w, "Prioritize PC-0001.")
	}))
	defer server.Close()

	orders := []models.Order{
		{ID: "PC-0001", Status: models.StatusReady},
		{ID: "PC-0002", Status: models.StatusWashing},
		{ID: "PC-0003", Status: models.StatusDelivered},
	}

	briefing, err := testClient(server.URL).DailyBriefing(context.Background(), orders)
	require.NoError(t, err)
	assert.Equal(t, "Prioritize PC-0001.", briefing)
}

func TestDisabledClient(t *testing.T) {
	note, err := Disabled{}.OrderSummary(context.Background(), models.Order{})
	require.NoError(t, err)
	assert.Equal(t, emptyOrderSummary, note)

	briefing, err := Disabled{}.DailyBriefing(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, emptyBriefing, briefing)
}
