// Package narrative generates short battle summaries through an
// OpenAI-compatible chat-completions endpoint once a battle has ended.
// Generation is fire-and-forget: the battle outcome never depends on it,
// and failures fall back to a canned summary line.
package narrative

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/SonicDMG/dnd-arena/internal/constants"
	"github.com/SonicDMG/dnd-arena/internal/dedupe"
	"github.com/SonicDMG/dnd-arena/internal/game"
	"github.com/SonicDMG/dnd-arena/internal/logging"
)

// summaryPromptTemplate can be set at application startup to customize the
// prompt used when requesting battle summaries. Use the tokens {{events}}
// and {{outcome}} where the battle-log excerpt and the result line will be
// substituted.
var summaryPromptTemplate string

// SetSummaryPromptTemplate sets a custom prompt template for summary
// generation. Call from main after loading configuration.
func SetSummaryPromptTemplate(t string) {
	summaryPromptTemplate = strings.TrimSpace(t)
}

// SummarySaver is the slice of the repository the generator needs.
type SummarySaver interface {
	SaveSummary(battleID uint, summary string) error
}

// maximum battle-log lines included in the prompt
const promptEventLimit = 30

func buildPrompt(b *game.Battle) string {
	lines := make([]string, 0, promptEventLimit)
	start := 0
	if len(b.Events) > promptEventLimit {
		start = len(b.Events) - promptEventLimit
	}
	for _, ev := range b.Events[start:] {
		lines = append(lines, ev.Message)
	}
	outcome := b.Message
	if outcome == "" {
		outcome = "The battle has ended."
	}

	prompt := summaryPromptTemplate
	if prompt == "" {
		prompt = "Here is the log of a fantasy arena battle:\n{{events}}\nOutcome: {{outcome}}\nWrite a dramatic two-sentence summary of the battle. Return only the summary."
	}
	prompt = strings.ReplaceAll(prompt, "{{events}}", strings.Join(lines, "\n"))
	prompt = strings.ReplaceAll(prompt, "{{outcome}}", outcome)
	return prompt
}

// callChatCompletions invokes the chat-completions API and returns the
// generated summary text.
func callChatCompletions(prompt string) (string, error) {
	apiKey := os.Getenv(constants.EnvOpenAIAPIKey)
	if apiKey == "" {
		return "", fmt.Errorf("%s not set", constants.EnvOpenAIAPIKey)
	}
	baseURL := os.Getenv(constants.EnvNarrativeBase)
	if baseURL == "" {
		baseURL = constants.NarrativeBaseURL
	}

	payload := map[string]interface{}{
		"model": constants.NarrativeChatModel,
		"messages": []map[string]string{
			{"role": "system", "content": "You are the bard narrating arena battles in a fantasy game."},
			{"role": "user", "content": prompt},
		},
	}
	b, _ := json.Marshal(payload)
	req, err := http.NewRequest("POST", strings.TrimRight(baseURL, "/")+constants.NarrativeChatCompletionsPath, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+apiKey)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("narrative api error: %d %s", resp.StatusCode, string(body))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("empty response from narrative api")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// GenerateBattleSummary produces and persists the victory narrative for a
// finished battle. Concurrent calls for the same battle are deduplicated
// via singleflight. On any failure a fallback summary is stored instead so
// clients always have something to show; errors are logged, never raised
// to the battle flow.
func GenerateBattleSummary(saver SummarySaver, b *game.Battle) {
	if b == nil || !b.Finished() {
		return
	}
	key := b.JoinCode
	if key == "" {
		key = fmt.Sprintf("battle:%d", b.ID)
	}

	_, _, _ = dedupe.SummaryGroup.Do(key, func() (interface{}, error) {
		summary, err := callChatCompletions(buildPrompt(b))
		if err != nil || summary == "" {
			logging.Error("battle summary generation failed", err, logging.Fields{constants.LogFieldCode: b.JoinCode})
			summary = fallbackSummary(b)
		} else {
			logging.Info("battle summary generated", logging.Fields{constants.LogFieldCode: b.JoinCode, constants.LogFieldSource: "api"})
		}
		if err := saver.SaveSummary(b.ID, summary); err != nil {
			logging.Error("failed to save battle summary", err, logging.Fields{constants.LogFieldCode: b.JoinCode})
		}
		return summary, nil
	})
}

func fallbackSummary(b *game.Battle) string {
	if b.Victor == game.SideHeroes {
		if m := b.Monster(); m != nil {
			return "The party stood victorious over " + m.Name + "."
		}
		return "The party stood victorious."
	}
	return "The party fought bravely, but the arena claimed them."
}
