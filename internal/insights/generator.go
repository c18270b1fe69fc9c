package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/souravdey/hospiagent-notify/pkg/logging"
)

// Kind names a category of operational insight.
type Kind string

const (
	KindScheduling Kind = "scheduling"
	KindInventory  Kind = "inventory"
	KindRevenue    Kind = "revenue"
	KindPatient    Kind = "patient"
)

// Insight is one recommendation produced by the analysis model.
type Insight struct {
	Kind        Kind            `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    string          `json:"priority,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

const systemPrompt = `You are an analytics assistant for a hospital administration platform.
Analyze the provided operational data and respond with actionable insights.
Reply with a JSON array of insight objects, each with "type", "title",
"description", "priority" and "data" fields, wrapped in a single
<output></output> block. Do not include any other <output> blocks.`

// Generator turns operational aggregates into insights via an LLM.
type Generator struct {
	llm    LLMClient
	logger *logging.Logger
	now    func() time.Time
}

// NewGenerator creates an insight generator. The LLM client may be nil, in
// which case every generation returns no insights.
func NewGenerator(llm LLMClient, logger *logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Generator{llm: llm, logger: logger, now: time.Now}
}

// Generate asks the model for insights of one kind over the caller-provided
// aggregate data. Failures are logged and yield an empty slice so one kind
// never blocks the others.
func (g *Generator) Generate(ctx context.Context, kind Kind, data any) []Insight {
	if g.llm == nil {
		return []Insight{}
	}

	payload, err := json.Marshal(data)
	if err != nil {
		g.logger.Error("failed to encode insight data", "kind", kind, "error", err)
		return []Insight{}
	}

	prompt := fmt.Sprintf("Here is the data regarding: %s - %s. The current datetime is %s",
		kind, payload, g.now().UTC().Format(time.RFC3339))

	reply, err := g.llm.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		g.logger.Error("insight generation failed", "kind", kind, "error", err)
		return []Insight{}
	}

	raw, err := ExtractOutput(reply)
	if err != nil {
		g.logger.Error("unusable insight response", "kind", kind, "error", err)
		return []Insight{}
	}

	var insights []Insight
	if err := json.Unmarshal(raw, &insights); err != nil {
		g.logger.Error("failed to decode insights", "kind", kind, "error", err)
		return []Insight{}
	}

	stamp := g.now().UTC()
	for i := range insights {
		if insights[i].Kind == "" {
			insights[i].Kind = kind
		}
		insights[i].CreatedAt = stamp
		insights[i].UpdatedAt = stamp
	}
	return insights
}

// GenerateAll runs every insight kind over its aggregate and concatenates the
// results.
func (g *Generator) GenerateAll(ctx context.Context, aggregates map[Kind]any) []Insight {
	all := []Insight{}
	for _, kind := range []Kind{KindScheduling, KindInventory, KindRevenue, KindPatient} {
		data, ok := aggregates[kind]
		if !ok {
			continue
		}
		all = append(all, g.Generate(ctx, kind, data)...)
	}
	return all
}
