package data

import (
	"fmt"
	"math"
	"strings"

	"golang-lwcharts/pkg/lwc/serialize"
	"golang-lwcharts/pkg/lwc/types"
)

// TradeData is a closed trade drawn on top of a price series.
type TradeData struct {
	EntryTime  types.Time      `json:"entryTime"`
	EntryPrice float64         `json:"entryPrice" validate:"gt=0"`
	ExitTime   types.Time      `json:"exitTime" validate:"gtefield=EntryTime"`
	ExitPrice  float64         `json:"exitPrice" validate:"gt=0"`
	Quantity   float64         `json:"quantity" validate:"gt=0"`
	TradeType  types.TradeType `json:"tradeType" validate:"lwcenum"`
	ID         string          `json:"id,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

func NewTradeData(entryTime any, entryPrice float64, exitTime any, exitPrice, quantity float64, tradeType types.TradeType) (*TradeData, error) {
	entry, err := types.NormalizeTime(entryTime)
	if err != nil {
		return nil, fmt.Errorf("entryTime: %w", err)
	}
	exit, err := types.NormalizeTime(exitTime)
	if err != nil {
		return nil, fmt.Errorf("exitTime: %w", err)
	}
	t := &TradeData{
		EntryTime:  types.Time(entry),
		EntryPrice: entryPrice,
		ExitTime:   types.Time(exit),
		ExitPrice:  exitPrice,
		Quantity:   quantity,
		TradeType:  tradeType,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TradeData) WithID(id string) *TradeData {
	t.ID = id
	return t
}

func (t *TradeData) WithNotes(notes string) *TradeData {
	t.Notes = notes
	return t
}

func (t TradeData) Validate() error {
	for name, v := range map[string]float64{"entryPrice": t.EntryPrice, "exitPrice": t.ExitPrice, "quantity": t.Quantity} {
		if math.IsInf(v, 0) {
			return types.NewValidationError(name, v, "must be finite")
		}
	}
	return types.Validate(t)
}

// PnL is the profit of the trade in quote currency.
func (t TradeData) PnL() float64 {
	if t.TradeType == types.TradeTypeShort {
		return (t.EntryPrice - t.ExitPrice) * t.Quantity
	}
	return (t.ExitPrice - t.EntryPrice) * t.Quantity
}

// PnLPercentage is the return relative to the entry price, in percent.
func (t TradeData) PnLPercentage() float64 {
	if t.EntryPrice == 0 {
		return 0
	}
	diff := t.ExitPrice - t.EntryPrice
	if t.TradeType == types.TradeTypeShort {
		diff = -diff
	}
	return diff / t.EntryPrice * 100
}

func (t TradeData) IsProfitable() bool { return t.PnL() > 0 }

// ToMarkers returns the entry and exit markers of the trade.
// Long trades enter below the bar with an up arrow; short trades are mirrored.
func (t TradeData) ToMarkers(entryColor, exitColor string, showPnL bool) []Marker {
	entryPos, entryShape := types.MarkerPositionBelowBar, types.MarkerShapeArrowUp
	exitPos, exitShape := types.MarkerPositionAboveBar, types.MarkerShapeArrowDown
	if t.TradeType == types.TradeTypeShort {
		entryPos, entryShape = types.MarkerPositionAboveBar, types.MarkerShapeArrowDown
		exitPos, exitShape = types.MarkerPositionBelowBar, types.MarkerShapeArrowUp
	}

	exitText := fmt.Sprintf("Exit: $%.2f", t.ExitPrice)
	if showPnL {
		exitText += fmt.Sprintf(" (P&L: $%.2f)", t.PnL())
	}

	entry := Marker{
		Time: t.EntryTime, Position: entryPos, Shape: entryShape, Color: entryColor, Size: 1,
		Text: fmt.Sprintf("Entry: $%.2f", t.EntryPrice),
	}
	exit := Marker{
		Time: t.ExitTime, Position: exitPos, Shape: exitShape, Color: exitColor, Size: 1,
		Text: exitText,
	}
	if t.ID != "" {
		entry.ID = t.ID + "_entry"
		exit.ID = t.ID + "_exit"
	}
	return []Marker{entry, exit}
}

// TooltipText is the multi-line description shown when hovering the trade.
func (t TradeData) TooltipText() string {
	var b strings.Builder
	if t.ID != "" {
		fmt.Fprintf(&b, "Trade %s\n", t.ID)
	}
	fmt.Fprintf(&b, "Type: %s\n", strings.ToUpper(string(t.TradeType)))
	fmt.Fprintf(&b, "Entry: $%.2f\n", t.EntryPrice)
	fmt.Fprintf(&b, "Exit: $%.2f\n", t.ExitPrice)
	fmt.Fprintf(&b, "Qty: %g\n", t.Quantity)
	fmt.Fprintf(&b, "P&L: $%.2f (%.2f%%)", t.PnL(), t.PnLPercentage())
	if t.Notes != "" {
		fmt.Fprintf(&b, "\n%s", t.Notes)
	}
	return b.String()
}

func (t TradeData) AsDict() map[string]any {
	out := serialize.StructFields(t)
	out["pnl"] = types.NormalizeFloat(t.PnL())
	out["pnlPercentage"] = types.NormalizeFloat(t.PnLPercentage())
	out["isProfitable"] = t.IsProfitable()
	out["text"] = t.TooltipText()
	return out
}
