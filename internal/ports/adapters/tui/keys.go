package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/forPelevin/ytsnip/internal/domain/refine"
)

type keyMap struct {
	ExtendLeft  key.Binding
	ExtendRight key.Binding
	ShrinkLeft  key.Binding
	ShrinkRight key.Binding
	Skip        key.Binding
	Confirm     key.Binding
	Quit        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		ExtendLeft:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "extend left")),
		ExtendRight: key.NewBinding(key.WithKeys("."), key.WithHelp(".", "extend right")),
		ShrinkLeft:  key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "shrink from left")),
		ShrinkRight: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "shrink from right")),
		Skip:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "download")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k *keyMap) binding(a refine.Action) *key.Binding {
	switch a {
	case refine.ExtendLeft:
		return &k.ExtendLeft
	case refine.ExtendRight:
		return &k.ExtendRight
	case refine.ShrinkLeft:
		return &k.ShrinkLeft
	case refine.ShrinkRight:
		return &k.ShrinkRight
	case refine.Skip:
		return &k.Skip
	case refine.Confirm:
		return &k.Confirm
	}
	return nil
}

var allActions = []refine.Action{
	refine.ExtendLeft, refine.ExtendRight,
	refine.ShrinkLeft, refine.ShrinkRight,
	refine.Skip, refine.Confirm,
}

// sync enables exactly the bindings whose action v offers, so help only shows
// keys that do something.
func (k *keyMap) sync(v refine.View) {
	for _, a := range allActions {
		k.binding(a).SetEnabled(v.Can(a))
	}
}

func (k keyMap) extendHelp() []key.Binding { return []key.Binding{k.ExtendLeft, k.ExtendRight} }
func (k keyMap) shrinkHelp() []key.Binding { return []key.Binding{k.ShrinkLeft, k.ShrinkRight} }
func (k keyMap) finishHelp() []key.Binding { return []key.Binding{k.Skip, k.Confirm, k.Quit} }
