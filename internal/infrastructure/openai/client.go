package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"journal-service/internal/domain/entity"
	domainservice "journal-service/internal/domain/service"
)

const (
	defaultModel   = "gpt-4o"
	defaultTimeout = 15 * time.Second
	apiURL         = "https://api.openai.com/v1/chat/completions"
)

const parseSystemPrompt = `You are a productivity data extractor. Analyze the user's note and extract structured data. Return ONLY valid JSON with this exact structure:
{
  "activity": "brief activity description",
  "duration_minutes": number or null,
  "sentiment": "positive, neutral, or negative"
}
Rules:
- If no time is mentioned, set duration_minutes to null
- Keep activity description concise (under 50 chars)
- Base sentiment on the tone of the note`

const matchSystemPrompt = `You are a smart category matcher for a productivity tracking app. Your job is to determine if a new activity fits into existing categories or needs a new one.

Rules:
- Check if this activity semantically fits into any existing category
- Consider synonyms and related concepts (e.g., 'jogging' fits 'Fitness', 'coding tutorial' fits 'Learning')
- Use a confidence threshold of 70% - if less confident, suggest a new category
- If suggesting a new category, it MUST be a single, broad classification (e.g. "Fitness", NOT "Running/Cardio")
- Category names should be: Single word or short phrase, Capitalized, Generic not specific
- Do NOT return multiple options. Pick the single best fit.

Return ONLY valid JSON in this format:
If it matches existing category:
{
"matches": true,
"category_name": "Existing Category Name",
"confidence": 85,
"reasoning": "Brief explanation why it matches"
}
If it needs a new category:
{
"matches": false,
"suggested_category": "Proposed Category Name",
"confidence": 45,
"reasoning": "Why existing categories don't fit and why this name is appropriate"
}`

const goalMatchSystemPrompt = `You are a goal matching assistant. Determine if an activity matches a user's goal. Answer only "yes" or "no".`

const summarySystemPrompt = `You are a supportive productivity coach. Generate a warm, encouraging weekly summary based on the user's data. Be specific, celebrate their achievements, and make them feel proud. Tone: Encouraging, personal, proud, motivational. Length: 3 paragraphs.`

// Client talks to the OpenAI chat completions API. It implements the
// Classifier boundary; every method applies a bounded timeout and reports
// network or decoding problems as errors so callers can fall back locally.
type Client struct {
	apiKey  string
	model   string
	timeout time.Duration
	baseURL string
	client  *http.Client
}

// NewClient creates a new classification client
func NewClient(apiKey, model string, timeout time.Duration) *Client {
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		baseURL: apiURL,
		client:  &http.Client{},
	}
}

var _ domainservice.Classifier = (*Client)(nil)

func (c *Client) ParseEntry(ctx context.Context, text string) (entity.ParsedEntry, error) {
	fallback := entity.FallbackParse(text)

	content, err := c.chat(ctx, parseSystemPrompt, text, 0.3, 150)
	if err != nil {
		return fallback, err
	}

	var parsed struct {
		Activity        string `json:"activity"`
		DurationMinutes *int32 `json:"duration_minutes"`
		Sentiment       string `json:"sentiment"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(content)), &parsed); err != nil {
		return fallback, fmt.Errorf("failed to decode parse result: %w", err)
	}

	if parsed.Activity == "" {
		parsed.Activity = text
	}

	sentiment := entity.SentimentNeutral
	switch entity.Sentiment(parsed.Sentiment) {
	case entity.SentimentPositive, entity.SentimentNeutral, entity.SentimentNegative:
		sentiment = entity.Sentiment(parsed.Sentiment)
	}

	return entity.ParsedEntry{
		Activity:        parsed.Activity,
		DurationMinutes: parsed.DurationMinutes,
		Sentiment:       sentiment,
	}, nil
}

func (c *Client) MatchCategory(ctx context.Context, activity string, categories []*entity.Category) (domainservice.CategoryMatch, error) {
	names := make([]string, 0, len(categories))
	for _, cat := range categories {
		names = append(names, cat.Name)
	}

	userPrompt := fmt.Sprintf("Activity: %s, Existing categories: %s", activity, strings.Join(names, ", "))

	content, err := c.chat(ctx, matchSystemPrompt, userPrompt, 0.3, 200)
	if err != nil {
		return domainservice.CategoryMatch{}, err
	}

	var match struct {
		Matches           bool   `json:"matches"`
		CategoryName      string `json:"category_name"`
		SuggestedCategory string `json:"suggested_category"`
		Confidence        int    `json:"confidence"`
		Reasoning         string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(content)), &match); err != nil {
		return domainservice.CategoryMatch{}, fmt.Errorf("failed to decode match result: %w", err)
	}

	return domainservice.CategoryMatch{
		Matches:           match.Matches,
		CategoryName:      match.CategoryName,
		SuggestedCategory: match.SuggestedCategory,
		Confidence:        match.Confidence,
		Reasoning:         match.Reasoning,
	}, nil
}

func (c *Client) MatchGoal(ctx context.Context, activity, goalTitle, goalDescription string) (bool, error) {
	if goalDescription == "" {
		goalDescription = "None"
	}

	userPrompt := fmt.Sprintf(`Does this activity match the goal?
Activity: %q
Goal: %q
Goal description: %q

Answer with only "yes" or "no".`, activity, goalTitle, goalDescription)

	content, err := c.chat(ctx, goalMatchSystemPrompt, userPrompt, 0.2, 10)
	if err != nil {
		return false, err
	}

	return strings.Contains(strings.ToLower(strings.TrimSpace(content)), "yes"), nil
}

func (c *Client) SummarizeWeek(ctx context.Context, stats entity.WeekStats) (string, error) {
	content, err := c.chat(ctx, summarySystemPrompt, buildSummaryPrompt(stats), 0.7, 300)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(content), nil
}

func buildSummaryPrompt(stats entity.WeekStats) string {
	topCategory := "None"
	if stats.TopCategory != nil {
		topCategory = *stats.TopCategory
	}

	bestDay := "N/A"
	if stats.BestDay != nil {
		bestDay = stats.BestDay.Format("Jan 2, 2006")
	}

	activities := stats.TopCategoryActivities
	if len(activities) > 5 {
		activities = activities[:5]
	}
	activitySample := "None"
	if len(activities) > 0 {
		activitySample = strings.Join(activities, ", ")
	}

	return fmt.Sprintf(`Generate a weekly summary for this data:

Total time tracked: %dh %dm
Total activities: %d
Active days: %d/7
Top category: %s (%dh %dm)
Best day: %s (%dh %dm)

Activities in %s: %s

Create an encouraging, personal summary that makes them feel proud of their week. Keep it to 3 short paragraphs.`,
		stats.TotalMinutes/60, stats.TotalMinutes%60,
		stats.TotalEntries,
		stats.ActiveDays,
		topCategory, stats.TopCategoryMinutes/60, stats.TopCategoryMinutes%60,
		bestDay, stats.BestDayMinutes/60, stats.BestDayMinutes%60,
		topCategory, activitySample,
	)
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// chat performs one chat-completion round trip and returns the assistant
// message content
func (c *Client) chat(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("api key is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api error: status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("api error: %s", parsed.Error.Message)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no content received")
	}

	return parsed.Choices[0].Message.Content, nil
}

// cleanJSON strips markdown code fences the model sometimes wraps around
// JSON payloads
func cleanJSON(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}
