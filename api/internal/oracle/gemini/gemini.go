package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"food-analyzer/api/internal/oracle"
	"food-analyzer/api/internal/util"
)

// Engine holds one genai client for the whole process.
type Engine struct {
	Model string
	cl    *genai.Client
}

func New(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*Engine, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Engine{Model: strings.TrimSpace(model), cl: cl}, nil
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Close() error {
	if e.cl == nil {
		return nil
	}
	return e.cl.Close()
}

func (e *Engine) Complete(ctx context.Context, req oracle.Request) (string, error) {
	parts, err := buildParts(req)
	if err != nil {
		return "", err
	}

	// GenerativeModel is a cheap per-call handle over the shared client
	m := e.cl.GenerativeModel(e.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}

	start := time.Now()
	resp, err := m.GenerateContent(ctx, parts...)
	log.WithFields(log.Fields{"oracle": e.Name(), "model": e.Model, "duration_ms": time.Since(start).Milliseconds()}).Debug("gemini generate")
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	txt := firstText(resp)
	if strings.TrimSpace(txt) == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return txt, nil
}

// buildParts keeps the instruction-then-image order of the request.
func buildParts(req oracle.Request) ([]genai.Part, error) {
	imgBytes, mime, err := util.DecodeBase64MaybeDataURL(req.ImageDataURI)
	if err != nil {
		return nil, fmt.Errorf("gemini: bad image data URI: %w", err)
	}
	if len(imgBytes) == 0 {
		return nil, fmt.Errorf("gemini: empty image")
	}
	if mime == "" {
		mime = util.SniffMimeHTTP(imgBytes)
	}
	return []genai.Part{
		genai.Text(req.Instruction),
		genai.Blob{MIMEType: mime, Data: imgBytes},
	}, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
