package tooltip

import (
	"fmt"
	"sort"

	"golang-lwcharts/pkg/lwc/serialize"
	"golang-lwcharts/pkg/lwc/types"
)

// Manager keeps the named tooltip configs of a chart plus the formatters they reference.
type Manager struct {
	configs    map[string]*Config
	formatters map[string]func(any) string
}

func NewManager() *Manager {
	return &Manager{
		configs:    make(map[string]*Config),
		formatters: make(map[string]func(any) string),
	}
}

// Add registers cfg under name, replacing any previous config with that name.
func (m *Manager) Add(name string, cfg *Config) error {
	if name == "" {
		return types.RequiredError("tooltip.name")
	}
	if cfg == nil {
		return types.RequiredError("tooltip.config")
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("tooltip %q: %w", name, err)
	}
	m.configs[name] = cfg
	return nil
}

func (m *Manager) Remove(name string) bool {
	if _, ok := m.configs[name]; !ok {
		return false
	}
	delete(m.configs, name)
	return true
}

func (m *Manager) Get(name string) (*Config, bool) {
	cfg, ok := m.configs[name]
	return cfg, ok
}

func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.configs))
	for n := range m.configs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (m *Manager) Len() int { return len(m.configs) }

// AddFormatter makes fn available to fields whose Formatter is name.
func (m *Manager) AddFormatter(name string, fn func(any) string) *Manager {
	m.formatters[name] = fn
	return m
}

// Format renders the named tooltip with the registered formatters.
func (m *Manager) Format(name string, values map[string]any, t any) (string, error) {
	cfg, ok := m.configs[name]
	if !ok {
		return "", fmt.Errorf("tooltip %q: %w", name, types.ErrNotFound)
	}
	return cfg.format(values, t, m.formatters), nil
}

// AsDict maps each tooltip name to its frontend config. Names are used verbatim as keys.
func (m *Manager) AsDict() map[string]any {
	out := make(map[string]any, len(m.configs))
	for name, cfg := range m.configs {
		out[name] = serialize.ToMap(cfg)
	}
	return out
}

// OHLC is the standard candle tooltip.
func OHLC() *Config {
	c := NewConfig(types.TooltipTypeOHLC)
	for _, f := range []Field{
		NewField("Open", "open").WithPrecision(2),
		NewField("High", "high").WithPrecision(2),
		NewField("Low", "low").WithPrecision(2),
		NewField("Close", "close").WithPrecision(2),
		NewField("Volume", "volume").WithPrecision(0),
	} {
		c.AddField(f)
	}
	return c
}

// Trade describes a closed trade; values come from data.TradeData.AsDict.
func Trade() *Config {
	c := NewConfig(types.TooltipTypeTrade)
	for _, f := range []Field{
		NewField("Type", "tradeType"),
		NewField("Entry", "entryPrice").WithPrecision(2).WithAffixes("$", ""),
		NewField("Exit", "exitPrice").WithPrecision(2).WithAffixes("$", ""),
		NewField("Quantity", "quantity"),
		NewField("P&L", "pnl").WithPrecision(2).WithAffixes("$", ""),
		NewField("P&L %", "pnlPercentage").WithPrecision(2).WithAffixes("", "%"),
	} {
		c.AddField(f)
	}
	return c
}

func Custom(template string, fields []Field) *Config {
	c := NewConfig(types.TooltipTypeCustom)
	c.Template = template
	c.Fields = append(c.Fields, fields...)
	return c
}

// MultiSeries shows one line per series, keyed by series name.
func MultiSeries(names []string) *Config {
	c := NewConfig(types.TooltipTypeMulti)
	for _, n := range names {
		c.AddField(NewField(n, n).WithPrecision(2))
	}
	return c
}
