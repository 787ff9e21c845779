package widgets

import (
	"fmt"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
)

type filter struct {
	Required key.Modifiers
	Optional key.Modifiers
	names    []key.Name
}

type Shortcut struct {
	Key filter
	F   func(key.Name, key.Modifiers)
}

// Shortcuts dispatches key presses on the whole window area to their
// handlers.
type Shortcuts struct {
	receiver     any
	eventFilters []event.Filter
	shortcuts    map[key.Name]Shortcut
}

func NewShortcut(required, optional key.Modifiers, names ...key.Name) filter {
	return filter{
		Required: required,
		Optional: optional,
		names:    names,
	}
}

// NewShortcuts panics on an empty set or on a key name bound twice.
func NewShortcuts(receiver any, shortcuts ...Shortcut) *Shortcuts {
	if len(shortcuts) == 0 {
		panic("no shortcut provided")
	}

	ss := &Shortcuts{
		receiver:  receiver,
		shortcuts: make(map[key.Name]Shortcut, len(shortcuts)),
	}
	for _, s := range shortcuts {
		for _, keyName := range s.Key.names {
			if _, ok := ss.shortcuts[keyName]; ok {
				panic(fmt.Errorf("repeated key: %s", keyName))
			}
			ss.eventFilters = append(ss.eventFilters, key.Filter{
				Required: s.Key.Required,
				Optional: s.Key.Optional,
				Name:     keyName,
			})
			ss.shortcuts[keyName] = s
		}
	}
	return ss
}

// Lookup returns the shortcut bound to name.
func (ss *Shortcuts) Lookup(name key.Name) (Shortcut, bool) {
	s, ok := ss.shortcuts[name]
	return s, ok
}

// Match runs the handlers of key presses queued for this frame.
func (ss *Shortcuts) Match(gtx layout.Context) error {
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	defer area.Pop()
	event.Op(gtx.Ops, ss.receiver)

	for {
		ev, ok := gtx.Event(ss.eventFilters...)
		if !ok {
			return nil
		}
		e, ok := ev.(key.Event)
		if !ok {
			return fmt.Errorf("unknown key event[%T]: %v", ev, ev)
		}
		if e.State != key.Press {
			continue
		}
		if s, ok := ss.shortcuts[e.Name]; ok && e.Modifiers.Contain(s.Key.Required) {
			s.F(e.Name, e.Modifiers)
		}
	}
}
