// Package llm extracts structured movie mentions from videos through
// the Gemini generateContent API.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	errors "github.com/Laisky/errors/v2"
)

const (
	defaultAPIBase = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
)

// extractionPrompt asks for a bare JSON array so the reply parses
// without free-text cleanup beyond fence stripping.
const extractionPrompt = `List every movie mentioned or recommended in this video. ` +
	`Reply with only a JSON array, no other text, where each element is ` +
	`an object with a "title" field (the movie's original title) and, when ` +
	`stated or inferable, a "year" field (the release year as a string). ` +
	`Reply with [] if no movie is mentioned.`

// MovieMention is one movie extracted from a video.
type MovieMention struct {
	Title string `json:"title"`
	Year  string `json:"year,omitempty"`
}

// Gemini calls the Gemini generateContent endpoint.
type Gemini struct {
	apiBase    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGemini creates a Gemini client with safe defaults. Video
// understanding runs well over the request timeout of a typical API
// client, hence the long default.
func NewGemini(apiBase, apiKey string, httpClient *http.Client) *Gemini {
	trimmedBase := strings.TrimSpace(apiBase)
	if trimmedBase == "" {
		trimmedBase = defaultAPIBase
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}

	return &Gemini{
		apiBase:    strings.TrimRight(trimmedBase, "/"),
		apiKey:     apiKey,
		model:      defaultModel,
		httpClient: httpClient,
	}
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	FileData *fileData `json:"file_data,omitempty"`
	Text     string    `json:"text,omitempty"`
}

type fileData struct {
	FileURI string `json:"file_uri"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ExtractMovieMentions asks the model which movies a video mentions and
// parses the structured reply. Mentions without a title are dropped.
func (g *Gemini) ExtractMovieMentions(ctx context.Context, videoURL string) ([]MovieMention, error) {
	if strings.TrimSpace(g.apiKey) == "" {
		return nil, errors.New("missing api key")
	}
	if strings.TrimSpace(videoURL) == "" {
		return nil, errors.New("missing video url")
	}

	body, err := json.Marshal(generateContentRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{FileData: &fileData{FileURI: videoURL}},
				{Text: extractionPrompt},
			},
		}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal generate request")
	}

	endpoint := g.apiBase + "/v1beta/models/" + g.model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build generate request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "call generate endpoint")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("generate endpoint status %d", resp.StatusCode)
	}

	var decoded generateContentResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "decode generate response")
	}
	if len(decoded.Candidates) == 0 {
		return nil, errors.New("generate response has no candidates")
	}

	var reply strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		reply.WriteString(p.Text)
	}

	return parseMentions(reply.String())
}

// fenceRe matches a whole reply wrapped in a markdown code fence.
var fenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// parseMentions strips an optional markdown fence from the model reply
// and decodes the JSON array of mentions. Anything that is not an array
// is a parse error; `null` in particular would otherwise unmarshal into
// the slice as a silent no-op.
func parseMentions(reply string) ([]MovieMention, error) {
	reply = strings.TrimSpace(reply)
	if m := fenceRe.FindStringSubmatch(reply); m != nil {
		reply = m[1]
	}
	if !strings.HasPrefix(reply, "[") {
		return nil, errors.Errorf("mentions reply is not a JSON array: %.40q", reply)
	}

	mentions := []MovieMention{}
	if err := json.Unmarshal([]byte(reply), &mentions); err != nil {
		return nil, errors.Wrap(err, "parse mentions reply")
	}

	kept := mentions[:0]
	for _, m := range mentions {
		if strings.TrimSpace(m.Title) == "" {
			continue
		}
		kept = append(kept, m)
	}

	return kept, nil
}
