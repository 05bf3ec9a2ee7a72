// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"

	"github.com/pdiddy/novel-writer/internal/httputil"
)

// pagePromptTmpl is the prompt sent to the Claude API for each daily page.
// It asks for a single page of prose in the novel's voice, weaving in the
// day's inspiration context without naming it directly.
var pagePromptTmpl = template.Must(template.New("page").Parse(`You are ghost-writing a {{.Genre}} novel titled "{{.Title}}". Write the next page (roughly 250-300 words) of chapter {{.Chapter}}, narrated in {{.Voice}} voice, following the protagonist {{.Protagonist}}.

Style parameters:
{{- range $k, $v := .Style}}
- {{$k}}: {{$v}}
{{- end}}

Today's inspiration (weave in subtly, never mention directly):
- mood: {{.Mood}}, tone: {{.Tone}}, energy: {{.Energy}}
{{- if .Atmosphere}}
- atmosphere: {{.Atmosphere}}
{{- end}}
{{- if .Themes}}
- news themes: {{.Themes}}
{{- end}}

Maintain narrative continuity with a novel already {{.TotalWords}} words long. Respond with the page prose only, no headings or commentary.`))

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeGenerator calls the Claude API to write daily pages.
type ClaudeGenerator struct {
	APIKey string
	Model  string
	Client *http.Client
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// GeneratePage calls the Claude API with the page prompt. Rate-limited
// responses are retried with backoff by the shared HTTP helper.
func (c *ClaudeGenerator) GeneratePage(ctx context.Context, req Request) (string, error) {
	prompt, err := renderPagePrompt(req)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	reqBody := claudeRequest{
		Model:     c.Model,
		MaxTokens: 1024,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, httpReq, 0)
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Claude API returned %d: %s", resp.StatusCode, string(body))
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding Claude response: %w", err)
	}

	for _, block := range cResp.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Claude API response")
}

// renderPagePrompt executes the page prompt template for the request.
func renderPagePrompt(req Request) (string, error) {
	data := struct {
		Title, Genre, Voice, Protagonist string
		Chapter, TotalWords              int
		Style                            map[string]string
		Mood, Tone, Energy               string
		Atmosphere, Themes               string
	}{
		Title:       req.Profile.Title,
		Genre:       req.Profile.Genre,
		Voice:       req.Profile.Voice,
		Protagonist: req.Profile.Protagonist,
		Chapter:     req.Chapter,
		TotalWords:  req.TotalWords,
		Style:       req.Profile.WritingStyle,
		Mood:        req.Mood.OverallMood,
		Tone:        req.Mood.EmotionalTone,
		Energy:      req.Mood.EnergyLevel,
		Atmosphere:  strings.Join(req.Mood.AtmosphericElements, ", "),
		Themes:      strings.Join(req.News.Themes, ", "),
	}

	var buf bytes.Buffer
	if err := pagePromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
