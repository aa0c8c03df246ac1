package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"textchunk/pkg/langdetect"
)

const (
	defaultModel   = "gemma-3n-e4b-it-text"
	defaultTimeout = 15 * time.Second
)

// LMStudioClient asks a local LM Studio server whether a candidate
// span opens a new topic relative to the prior span. Every failure is
// returned to the caller; the adapter takes no fallback decision of
// its own.
type LMStudioClient struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewLMStudioClient(baseURL string, timeout time.Duration) *LMStudioClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &LMStudioClient{
		BaseURL: baseURL,
		Model:   defaultModel,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Decide dispatches a locale-appropriate topic-shift prompt and parses
// the label out of the completion. The locale selects the prompt
// wording and the expected answer labels; it does not change how the
// boolean is interpreted.
func (c *LMStudioClient) Decide(ctx context.Context, prior, candidate string, lang langdetect.Lang) (bool, error) {
	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "user", Content: topicShiftPrompt(prior, candidate, lang)},
		},
		Temperature: 0.1,
		MaxTokens:   50,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return false, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("LM Studio returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return false, fmt.Errorf("response contained no choices")
	}

	answer := strings.ToLower(strings.TrimSpace(parsed.Choices[0].Message.Content))
	if lang == langdetect.Japanese {
		return strings.Contains(answer, "話題転換"), nil
	}
	return strings.Contains(answer, "topic shift"), nil
}

func topicShiftPrompt(prior, candidate string, lang langdetect.Lang) string {
	if lang == langdetect.Japanese {
		return fmt.Sprintf(`以下のテキストを読んで、新しく追加される文が現在のテキストと明らかに異なる話題を扱っているかどうかを判定してください。

現在のテキスト:
%s

新しく追加される文:
%s

判定基準:
- 新しい文が現在のテキストと明らかに異なる話題を扱っている場合: 話題転換
- 新しい文が現在のテキストの続きや関連する内容の場合: 同じ話題

回答は「話題転換」または「同じ話題」のいずれかで答えてください。`, prior, candidate)
	}

	return fmt.Sprintf(`Read the following text and determine if the new sentence deals with a clearly different topic from the current text.

Current text:
%s

New sentence to add:
%s

Criteria:
- If the new sentence deals with a clearly different topic from the current text: topic shift
- If the new sentence is a continuation or related content to the current text: same topic

Answer with either "topic shift" or "same topic".`, prior, candidate)
}
