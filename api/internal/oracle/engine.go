// Package oracle describes the vision-language models the analyzer talks to.
// Every model is an opaque "instruction + image in, free text out" service.
package oracle

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Request is one instruction plus one image, in that order.
type Request struct {
	Instruction  string
	ImageDataURI string // data:image/png;base64,<payload>
}

// Engine is implemented by every model adapter. Implementations must be
// safe for concurrent use; one instance serves the whole process.
type Engine interface {
	Name() string
	GetModel() string
	Complete(ctx context.Context, req Request) (string, error)
}

// Engines is the process-wide set of configured adapters, keyed by name.
type Engines struct {
	byName map[string]Engine
	def    string
}

var aliases = map[string]string{
	"openai": "gpt",
	"llava":  "ollama",
	"google": "gemini",
}

func NewEngines(defaultName string, engs ...Engine) *Engines {
	e := &Engines{byName: make(map[string]Engine, len(engs)), def: canonical(defaultName)}
	for _, eng := range engs {
		if eng == nil {
			continue
		}
		e.byName[canonical(eng.Name())] = eng
	}
	return e
}

func canonical(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if a, ok := aliases[n]; ok {
		return a
	}
	return n
}

// GetEngine resolves an adapter by name or alias. An empty name picks the default.
func (e *Engines) GetEngine(llmName string) (Engine, error) {
	name := canonical(llmName)
	if name == "" {
		name = e.def
	}
	if eng, ok := e.byName[name]; ok {
		return eng, nil
	}
	return nil, fmt.Errorf("unknown llm_name %q; use one of: %s", llmName, strings.Join(e.Names(), ", "))
}

// Names returns the configured adapter names, sorted.
func (e *Engines) Names() []string {
	out := make([]string, 0, len(e.byName))
	for n := range e.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Manager remembers a per-chat engine choice on top of Engines.
type Manager struct {
	engs *Engines
	m    sync.Map // chatID -> Engine
}

func NewManager(engs *Engines) *Manager {
	return &Manager{engs: engs}
}

func (m *Manager) Get(chatID int64) (Engine, error) {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine), nil
	}
	return m.engs.GetEngine("")
}

func (m *Manager) Set(chatID int64, llmName string) (Engine, error) {
	eng, err := m.engs.GetEngine(llmName)
	if err != nil {
		return nil, err
	}
	m.m.Store(chatID, eng)
	return eng, nil
}

func (m *Manager) Names() []string { return m.engs.Names() }
