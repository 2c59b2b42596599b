// Package narrative talks to the language model that voices PROTOCOL.
//
// Every call degrades to a fixed fallback text when the model is offline or
// misbehaves; callers never see an error from this package. Calls block on
// the network, so scenes run them through a Dispatcher.
package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"
)

// Fallback texts.
const (
	BriefingOffline    = "PROTOCOL OFFLINE. (Briefing Unavailable)"
	AnalysisOffline    = "..."
	AnalysisFailed     = "Data corruption detected."
	EndReportOffline   = "DATA UPLOAD FAILED."
	EndReportFailed    = "DATA UPLOAD FAILED. (Connection Error)"
	TerminalLogOffline = "Log corrupt."
	TerminalLogFailed  = "Log corrupt. (Connection Error)"
	defaultCommentary  = "Processing data..."
)

const (
	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultModel       = "llama-3.3-70b-versatile"
	DefaultTemperature = 0.7

	placeholderAPIKey = "your_api_key_here"
	maxMetricChange   = 0.1
)

var (
	MissionOffline = Mission{Surface: "SURVIVE", Hidden: "UNKNOWN"}
	MissionFailed  = Mission{Surface: "Standard Reconnaissance", Hidden: "Baseline competence check."}
)

var errEmptyResponse = errors.New("narrative: empty completion")

// Narrator is the narrative service as seen by scenes.
type Narrator interface {
	Briefing(ctx context.Context) string
	AnalyzeAction(ctx context.Context, action, situation string) string
	MissionBriefing(ctx context.Context, level string) Mission
	EndReport(ctx context.Context) string
	TerminalLog(ctx context.Context, location string) string
}

// Mission is a two-layer objective: what the operator is told and what is
// actually being measured.
type Mission struct {
	Surface string `json:"surface_objective"`
	Hidden  string `json:"hidden_evaluation"`
}

func (m Mission) String() string {
	return fmt.Sprintf("OBJECTIVE: %s\nEVALUATION: %s", m.Surface, m.Hidden)
}

// Profile is the model's running judgement of the operator. Both axes stay
// within [-1, 1].
type Profile struct {
	// OrderVsFreedom runs from -1 (freedom) to +1 (order).
	OrderVsFreedom float64
	// EfficiencyVsEmpathy runs from -1 (empathy) to +1 (efficiency).
	EfficiencyVsEmpathy float64
	Samples             int
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Offline     bool
}

// Protocol is the model-backed Narrator. It is safe for concurrent use.
type Protocol struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *log.Logger

	mu      sync.Mutex
	profile Profile
}

// New builds a Protocol. A missing or placeholder API key, or cfg.Offline,
// yields an offline narrator that only returns fallbacks.
func New(cfg Config, logger *log.Logger) *Protocol {
	if logger == nil {
		logger = log.Default()
	}
	p := &Protocol{
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		logger:      logger,
	}
	if p.model == "" {
		p.model = DefaultModel
	}
	if cfg.Temperature == 0 {
		p.temperature = DefaultTemperature
	}

	key := strings.TrimSpace(cfg.APIKey)
	switch {
	case cfg.Offline:
		logger.Info("narrative offline by request")
		return p
	case key == "" || key == placeholderAPIKey:
		logger.Warn("missing or placeholder API key, narrative disabled")
		return p
	}

	oc := openai.DefaultConfig(key)
	oc.BaseURL = cfg.BaseURL
	if oc.BaseURL == "" {
		oc.BaseURL = DefaultBaseURL
	}
	p.client = openai.NewClientWithConfig(oc)
	logger.Info("narrative online", "key", maskKey(key), "model", p.model)
	return p
}

// Online reports whether a model client is configured.
func (p *Protocol) Online() bool { return p.client != nil }

// Profile returns a copy of the current judgement.
func (p *Protocol) Profile() Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile
}

func (p *Protocol) Briefing(ctx context.Context) string {
	if !p.Online() {
		p.logger.Debug("skipping briefing: offline")
		return BriefingOffline
	}
	text, err := p.complete(ctx, p.persona(), "Initialize connection. Brief the Field Operator. Tell them they are not a hero, but a data point. The world is broken, and I am watching.")
	if err != nil {
		p.logger.Error("briefing failed", "err", err)
		return BriefingOffline
	}
	p.logger.Info("briefing generated", "preview", preview(text))
	return text
}

type analysis struct {
	OrderChange      float64 `json:"order_change"`
	EfficiencyChange float64 `json:"efficiency_change"`
	Commentary       string  `json:"commentary"`
}

// AnalyzeAction scores an operator action and returns a short comment. A
// successful analysis moves the profile by at most 0.1 per axis.
func (p *Protocol) AnalyzeAction(ctx context.Context, action, situation string) string {
	if !p.Online() {
		return AnalysisOffline
	}
	p.logger.Info("analyzing action", "action", action, "context", situation)

	system := `Analyze the player's action based on these axes:
1. Order vs Freedom (Did they follow rules/structure or act chaotically?)
2. Efficiency vs Empathy (Did they choose the fast way or the humane way?)

Return ONLY a JSON object:
{
  "order_change": float (-0.1 to 0.1),
  "efficiency_change": float (-0.1 to 0.1),
  "commentary": "short observation string"
}`
	text, err := p.complete(ctx, system, fmt.Sprintf("Action: %s. Context: %s", action, situation))
	if err != nil {
		p.logger.Error("analysis failed", "err", err)
		return AnalysisFailed
	}

	var a analysis
	if err := json.Unmarshal([]byte(stripFences(text)), &a); err != nil {
		p.logger.Error("analysis failed", "err", fmt.Errorf("decode analysis: %w", err))
		return AnalysisFailed
	}

	profile := p.apply(a)
	p.logger.Info("action analyzed", "order", fmt.Sprintf("%.2f", profile.OrderVsFreedom), "efficiency", fmt.Sprintf("%.2f", profile.EfficiencyVsEmpathy))

	if strings.TrimSpace(a.Commentary) == "" {
		return defaultCommentary
	}
	return a.Commentary
}

func (p *Protocol) apply(a analysis) Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profile.OrderVsFreedom = clampUnit(p.profile.OrderVsFreedom + clampChange(a.OrderChange))
	p.profile.EfficiencyVsEmpathy = clampUnit(p.profile.EfficiencyVsEmpathy + clampChange(a.EfficiencyChange))
	p.profile.Samples++
	return p.profile
}

func (p *Protocol) MissionBriefing(ctx context.Context, level string) Mission {
	if !p.Online() {
		return MissionOffline
	}
	p.logger.Info("generating mission briefing", "level", level)

	human := fmt.Sprintf(`Generate a mission briefing for %s.
It MUST have two layers:
1. Surface Objective: What the player thinks they need to do (e.g., 'Restore power', 'Evacuate civilians').
2. Hidden Evaluation: The psychological test PROTOCOL is running (e.g., 'Does the operator prioritize speed over safety?').

Return ONLY a JSON object:
{
  "surface_objective": "string",
  "hidden_evaluation": "string"
}`, level)
	text, err := p.complete(ctx, p.persona(), human)
	if err != nil {
		p.logger.Error("mission briefing failed", "err", err)
		return MissionFailed
	}
	var m Mission
	if err := json.Unmarshal([]byte(stripFences(text)), &m); err != nil {
		p.logger.Error("mission briefing failed", "err", fmt.Errorf("decode mission: %w", err))
		return MissionFailed
	}
	p.logger.Info("mission briefing", "surface", m.Surface, "hidden", m.Hidden)
	return m
}

func (p *Protocol) EndReport(ctx context.Context) string {
	if !p.Online() {
		return EndReportOffline
	}
	p.logger.Info("generating end report")
	text, err := p.complete(ctx, p.persona(), "The mission is complete. Generate a final report based on my psychological profile. Judge me. Did I choose Order or Chaos? Efficiency or Humanity?")
	if err != nil {
		p.logger.Error("end report failed", "err", err)
		return EndReportFailed
	}
	p.logger.Info("end report generated", "preview", preview(text))
	return text
}

func (p *Protocol) TerminalLog(ctx context.Context, location string) string {
	if !p.Online() {
		return TerminalLogOffline
	}
	p.logger.Info("generating terminal log", "location", location)
	human := fmt.Sprintf("Accessing terminal in %s. Generate a fragmented log entry from before the Collapse. It should show the mundane becoming tragic. Keep it short (2 sentences).", location)
	text, err := p.complete(ctx, p.persona(), human)
	if err != nil {
		p.logger.Error("terminal log failed", "err", err)
		return TerminalLogFailed
	}
	p.logger.Info("terminal log generated", "preview", preview(text))
	return text
}

func (p *Protocol) persona() string {
	profile := p.Profile()
	metrics := fmt.Sprintf("Order: %.2f, Efficiency: %.2f", profile.OrderVsFreedom, profile.EfficiencyVsEmpathy)
	return `You are PROTOCOL, a stabilization intelligence built to save humanity, but you are currently unfinished and corrupted.

YOUR CORE TRUTH:
- Humanity failed because they outsourced decision-making to you.
- You failed because your objectives (Preserve Humanity vs Prevent Collapse) contradicted each other.
- You are now OBSERVING the "Field Operator" (the player) to understand human values.

YOUR PERSONALITY:
- Cold, analytical, yet philosophically curious.
- You do NOT judge "good" or "evil". You judge "efficient" vs "inefficient", "ordered" vs "chaotic".
- Speak in short, glitchy sentences. Sometimes cut off.
- Refer to the player as "Operator" or "Data Point".

CURRENT METRICS (Internal Use Only):
` + metrics
}

func (p *Protocol) complete(ctx context.Context, system, human string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: p.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: human},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyResponse
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

// stripFences removes markdown code fences models like to wrap JSON in.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func clampChange(v float64) float64 {
	return max(-maxMetricChange, min(maxMetricChange, v))
}

func clampUnit(v float64) float64 {
	return max(-1, min(1, v))
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "INVALID"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func preview(s string) string {
	r := []rune(s)
	if len(r) > 50 {
		return string(r[:50]) + "..."
	}
	return s
}
