package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pureclean/platform/internal/domain/models"
)

const (
	baseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	model   = "gemini-3-flash-preview"
)

// Static fallbacks. AI summaries are best-effort: any failure substitutes
// these and is never surfaced to the user.
const (
	FallbackOrderSummary = "Error generating insights."
	FallbackBriefing     = "Operational summary unavailable."
	emptyOrderSummary    = "No insights available."
	emptyBriefing        = "Keep up the good work!"
)

// Client produces short natural-language notes for staff. Implementations
// must return a usable string even on failure.
type Client interface {
	OrderSummary(ctx context.Context, order models.Order) (string, error)
	DailyBriefing(ctx context.Context, orders []models.Order) (string, error)
}

type geminiClient struct {
	httpClient *resty.Client
	apiKey     string
	base       string
}

// NewClient creates a configured Gemini client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("content-type", "application/json").
		SetTimeout(15 * time.Second)

	return &geminiClient{httpClient: client, apiKey: apiKey, base: baseURL}
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// OrderSummary asks for a short internal note about one order. On any
// failure the fallback string is returned alongside the error; callers log
// the error and show the string.
func (c *geminiClient) OrderSummary(ctx context.Context, order models.Order) (string, error) {
	notes := "None"
	if order.Details.Notes != nil && *order.Details.Notes != "" {
		notes = *order.Details.Notes
	}

	prompt := fmt.Sprintf(`Provide a very short, professional internal note for a laundry staff regarding this order:
Customer: %s %s
Items: %d
Service: %s
Notes: %s
Status: %s

Keep it under 20 words. Focus on urgency or special care if applicable.`,
		order.Customer.FirstName, order.Customer.LastName,
		order.Details.ItemCount, order.Details.ServiceType, notes, order.Status)

	text, err := c.generate(ctx, prompt,
		"You are a laundry shop operations expert helping the staff manage tasks efficiently.", 0.5)
	if err != nil {
		return FallbackOrderSummary, err
	}
	if text == "" {
		return emptyOrderSummary, nil
	}
	return text, nil
}

// DailyBriefing asks for a two-sentence priority update over the active
// (non-delivered) orders.
func (c *geminiClient) DailyBriefing(ctx context.Context, orders []models.Order) (string, error) {
	var lines []string
	for _, o := range orders {
		if o.Status == models.StatusDelivered {
			continue
		}
		pickup := ""
		if o.Details.PickupDate != nil {
			pickup = *o.Details.PickupDate
		}
		lines = append(lines, fmt.Sprintf("{id: %s, status: %s, pickup: %s}", o.ID, o.Status, pickup))
	}

	prompt := fmt.Sprintf(`You have %d active orders.
Details: [%s]
Provide a brief priority update (2 sentences) for the shop manager.`,
		len(lines), strings.Join(lines, ", "))

	text, err := c.generate(ctx, prompt,
		"You are a business consultant for a high-end laundry shop.", 0.7)
	if err != nil {
		return FallbackBriefing, err
	}
	if text == "" {
		return emptyBriefing, nil
	}
	return text, nil
}

func (c *geminiClient) generate(ctx context.Context, prompt, system string, temperature float64) (string, error) {
	reqBody := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: system}}},
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig:  generationConfig{Temperature: temperature},
	}

	var respBody generateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(fmt.Sprintf("%s/%s:generateContent", c.base, model))

	if err != nil {
		return "", fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini api error: %s", resp.String())
	}
	if len(respBody.Candidates) == 0 || len(respBody.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	return strings.TrimSpace(respBody.Candidates[0].Content.Parts[0].Text), nil
}

// Disabled is the no-key client: every call returns the empty-result
// fallback without touching the network.
type Disabled struct{}

// OrderSummary always returns the static note.
func (Disabled) OrderSummary(ctx context.Context, order models.Order) (string, error) {
	return emptyOrderSummary, nil
}

// DailyBriefing always returns the static note.
func (Disabled) DailyBriefing(ctx context.Context, orders []models.Order) (string, error) {
	return emptyBriefing, nil
}
