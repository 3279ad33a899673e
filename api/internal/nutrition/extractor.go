package nutrition

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"

	"food-analyzer/api/internal/imaging"
	"food-analyzer/api/internal/metrics"
	"food-analyzer/api/internal/oracle"
)

// Extractor asks an oracle about a normalized image and parses the answer.
// It holds no per-request state and is shared by all requests.
type Extractor struct {
	Instruction string
}

func NewExtractor(instruction string) *Extractor {
	if strings.TrimSpace(instruction) == "" {
		instruction = DefaultInstruction
	}
	return &Extractor{Instruction: instruction}
}

// Extract sends the instruction and the base64 PNG to eng and parses its reply.
// Errors are ErrOracle (the call failed) or ErrExtraction (the reply did not match).
func (x *Extractor) Extract(ctx context.Context, eng oracle.Engine, b64png string) (Record, error) {
	req := oracle.Request{
		Instruction:  x.Instruction,
		ImageDataURI: imaging.DataURI(b64png),
	}

	start := time.Now()
	text, err := eng.Complete(ctx, req)
	metrics.OracleDurationSeconds.WithLabelValues(eng.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s: %w", ErrOracle, eng.Name(), err)
	}

	rec, err := Parse(text)
	if err != nil {
		log.WithFields(log.Fields{"oracle": eng.Name(), "model": eng.GetModel(), "reply": text}).Debug("reply did not match template")
		return Record{}, err
	}
	return rec, nil
}

// Analyze runs the whole pipeline on raw upload bytes: normalize, ask, parse.
func (x *Extractor) Analyze(ctx context.Context, eng oracle.Engine, raw []byte) (Record, error) {
	b64, err := imaging.Normalize(raw)
	if err != nil {
		return Record{}, err
	}
	return x.Extract(ctx, eng, b64)
}
