// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	tab       key.Binding
	enter     key.Binding
	esc       key.Binding
	quit      key.Binding
	logout    key.Binding
	newItem   key.Binding
	newSensor key.Binding
	edit      key.Binding
	delete    key.Binding
	sync      key.Binding
	cancel    key.Binding
	copy      key.Binding
	wipe      key.Binding
	info      key.Binding
	yes       key.Binding
	no        key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	quit:      key.NewBinding(key.WithKeys("q", "ctrl+c")),
	logout:    key.NewBinding(key.WithKeys("L")),
	newItem:   key.NewBinding(key.WithKeys("a")),
	newSensor: key.NewBinding(key.WithKeys("r")),
	edit:      key.NewBinding(key.WithKeys("e")),
	delete:    key.NewBinding(key.WithKeys("ctrl+d")),
	sync:      key.NewBinding(key.WithKeys("s")),
	cancel:    key.NewBinding(key.WithKeys("x")),
	copy:      key.NewBinding(key.WithKeys("c")),
	wipe:      key.NewBinding(key.WithKeys("W")),
	info:      key.NewBinding(key.WithKeys("f1")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n", "esc")),
}
