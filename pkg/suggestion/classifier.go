package suggestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Klea100/Expense-management-system/internal/config"
	"github.com/Klea100/Expense-management-system/pkg/expense"
)

// Classifier is an optional external categorization strategy. Implementations
// may fail freely: the suggester falls back to keyword matching.
type Classifier interface {
	Classify(ctx context.Context, description string) (*Classification, error)
}

type Classification struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// classifyRequest carries the description plus the closed category set, so
// the classifier answers within the vocabulary the service validates against.
type classifyRequest struct {
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

type HTTPClassifier struct {
	url    string
	client *http.Client
}

func NewHTTPClassifier(cfg config.Classifier) *HTTPClassifier {
	return &HTTPClassifier{
		url: cfg.URL,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

func (c *HTTPClassifier) Classify(ctx context.Context, description string) (*Classification, error) {
	categories := make([]string, 0, len(expense.Categories))
	for _, category := range expense.Categories {
		categories = append(categories, string(category))
	}
	body, err := json.Marshal(classifyRequest{Description: description, Categories: categories})
	if err != nil {
		return nil, fmt.Errorf("encoding classify request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building classify request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("calling classifier: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("classifier returned status %d", response.StatusCode)
	}

	var classification Classification
	if err := json.NewDecoder(response.Body).Decode(&classification); err != nil {
		return nil, fmt.Errorf("decoding classifier response: %w", err)
	}
	return &classification, nil
}
