// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type syncPhase int

const (
	syncPhaseIdle syncPhase = iota
	syncPhaseStarting
	syncPhaseDownloading
	syncPhaseUploading
)

// syncModel renders the progress of the active round.
type syncModel struct {
	spinner spinner.Model
	phase   syncPhase

	pending    int
	uploaded   int
	downloaded int
}

func newSyncModel() syncModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return syncModel{spinner: s}
}

func (m syncModel) running() bool {
	return m.phase != syncPhaseIdle
}

// start switches to a running phase and returns the spinner tick when the
// model was idle.
func (m *syncModel) start(phase syncPhase) tea.Cmd {
	wasIdle := !m.running()
	if wasIdle {
		m.pending, m.uploaded, m.downloaded = 0, 0, 0
	}
	m.phase = phase
	if wasIdle {
		return m.spinner.Tick
	}
	return nil
}

func (m *syncModel) stop() {
	m.phase = syncPhaseIdle
}

func (m syncModel) Update(msg tea.Msg) (syncModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case syncDownloadingMsg:
		cmd = m.start(syncPhaseDownloading)
	case syncUploadingMsg:
		cmd = m.start(syncPhaseUploading)
		m.pending = msg.pending
	case syncProgressMsg:
		m.uploaded = msg.uploaded
		m.downloaded = msg.downloaded
	case syncCompletedMsg:
		m.uploaded = msg.uploaded
		m.downloaded = msg.downloaded
		m.stop()
	case syncCancelledMsg:
		m.stop()
	case spinner.TickMsg:
		if m.running() {
			m.spinner, cmd = m.spinner.Update(msg)
		}
	}
	return m, cmd
}

func (m syncModel) View() string {
	switch m.phase {
	case syncPhaseStarting:
		return progressBox.Render(m.spinner.View() + " Подключение к серверу...")
	case syncPhaseDownloading:
		return progressBox.Render(fmt.Sprintf("%s Загрузка с сервера: получено %d", m.spinner.View(), m.downloaded))
	case syncPhaseUploading:
		return progressBox.Render(fmt.Sprintf("%s Отправка на сервер: %d из %d", m.spinner.View(), m.uploaded, m.pending))
	}
	return ""
}
