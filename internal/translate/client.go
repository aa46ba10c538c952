// Package translate talks to a MyMemory-style machine translation endpoint.
// The service is unreliable and optional: callers must treat every error as
// "keep the original text".
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"pharma-match/internal/match/model"
)

const langPair = "en|ar" // source/target fixed by the catalog's languages

type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

type response struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus int `json:"responseStatus"`
}

// NewClient builds a client with an explicit request timeout so a stalled
// service cannot stall the batch. The free tier allows roughly one request
// per second sustained.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(1), 3),
	}
}

// Translate performs a single attempt, no retries. Any transport error, bad
// status, or unusable payload comes back as ErrTranslateUnavailable.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTranslateUnavailable, err)
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("langpair", langPair)
	reqURL := fmt.Sprintf("%s/get?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTranslateUnavailable, err)
	}
	req.Header.Set("User-Agent", "pharma-match/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTranslateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", model.ErrTranslateUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTranslateUnavailable, err)
	}
	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrTranslateUnavailable, err)
	}
	if out.ResponseStatus != 0 && out.ResponseStatus != http.StatusOK {
		return "", fmt.Errorf("%w: service status %d", model.ErrTranslateUnavailable, out.ResponseStatus)
	}
	return out.ResponseData.TranslatedText, nil
}
