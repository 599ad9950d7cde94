// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ask

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"text/template"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
)

var queryPromptTmpl = template.Must(template.New("query").Parse(`You translate questions about a metadata knowledge graph into SQLite queries.

The graph is stored in one SQLite table described below.

{{.Schema}}
Rules:
- Write exactly one SELECT (or WITH ... SELECT) statement.
- Compare IRIs using their full form.
- Give every output column a short readable alias.
- Respond with the query only. No explanation and no Markdown.

Question: {{.Question}}
`))

// claudeAPIURL is the Claude Messages endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// Claude generates queries with the Claude Messages API. Requests are sent
// once; failures are returned to the caller.
type Claude struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Generate implements QueryGenerator.
func (c *Claude) Generate(ctx context.Context, question, schemaContext string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("no Anthropic API key configured")
	}
	prompt, err := renderPrompt(question, schemaContext)
	if err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}

	u, err := url.Parse(claudeAPIURL)
	if err != nil {
		return "", fmt.Errorf("parsing API url: %w", err)
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	client := fastshot.NewClient(u.Scheme+"://"+u.Host).
		Config().SetTimeout(timeout).
		Header().Add("Content-Type", "application/json").
		Header().Add("x-api-key", c.APIKey).
		Header().Add("anthropic-version", "2023-06-01").
		Build()

	resp, err := client.POST(u.Path).
		Context().Set(ctx).
		Body().AsJSON(claudeRequest{
			Model:     c.Model,
			MaxTokens: maxTokens,
			Messages:  []claudeMessage{{Role: "user", Content: prompt}},
		}).
		Send()
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body().Close()

	if resp.Status().IsError() {
		msg, _ := resp.Body().AsString()
		return "", fmt.Errorf("Claude API error: %s", strings.TrimSpace(msg))
	}

	var cResp claudeResponse
	if err := resp.Body().AsJSON(&cResp); err != nil {
		return "", fmt.Errorf("decoding Claude response: %w", err)
	}
	for _, block := range cResp.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in Claude API response")
}

func renderPrompt(question, schema string) (string, error) {
	var buf bytes.Buffer
	data := struct{ Question, Schema string }{Question: question, Schema: schema}
	if err := queryPromptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
