// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/study-companion/models"
)

// RootModel wraps a page:
// 1) handles global Ctrl+C quit
// 2) toggles the build info window
// 3) finishes the login flow on success
// 4) delegates all other messages to the page
type RootModel struct {
	page      tea.Model
	buildInfo models.AppBuildInfo

	quitByUser    bool
	session       models.Session
	showBuildInfo bool
}

// NewRootModel wraps page.
func NewRootModel(page tea.Model, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{page: page, buildInfo: buildInfo}
}

func (r RootModel) Init() tea.Cmd {
	if r.page == nil {
		return nil
	}
	return r.page.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMsg.String() == "ctrl+c":
			r.quitByUser = true
			return r, tea.Quit
		case key.Matches(keyMsg, keys.info):
			r.showBuildInfo = !r.showBuildInfo
			return r, nil
		case r.showBuildInfo && key.Matches(keyMsg, keys.esc):
			r.showBuildInfo = false
			return r, nil
		}

		if r.showBuildInfo {
			return r, nil
		}
	}

	if result, ok := msg.(loginDoneMsg); ok && result.err == nil {
		r.session = result.session
		return r, tea.Quit
	}

	if r.page == nil {
		return r, nil
	}

	updated, cmd := r.page.Update(msg)
	r.page = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	if r.page == nil {
		return renderPage("TUI", "", "")
	}
	return r.page.View()
}
