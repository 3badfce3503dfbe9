// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/study-companion/internal/service"
)

// LoginModel asks for the bearer token issued by the study server and
// dispatches an async login. On success a loginDoneMsg is produced and
// handled by [RootModel] to finish the flow.
type LoginModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	input      textinput.Model
	submitting bool
	errMsg     string
}

// NewLoginModel creates a [LoginModel] with a focused, masked token input.
func NewLoginModel(ctx context.Context, auth service.ClientAuthService) *LoginModel {
	input := textinput.New()
	input.Placeholder = "token"
	input.CharLimit = 4096
	input.Width = 60
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.Focus()

	return &LoginModel{ctx: ctx, auth: auth, input: input}
}

// Init implements [tea.Model]. Starts the cursor-blink animation.
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model].
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(loginDoneMsg); ok {
		m.submitting = false
		if result.err != nil {
			m.errMsg = humanizeError(result.err)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.enter) {
		if m.submitting {
			return m, nil
		}

		token := strings.TrimSpace(m.input.Value())
		if token == "" {
			m.errMsg = "Токен обязателен"
			return m, nil
		}

		m.errMsg = ""
		m.submitting = true
		return m, m.cmdLogin(token)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements [tea.Model].
func (m *LoginModel) View() string {
	var b strings.Builder
	b.WriteString("Токен │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Войти...]\n")
	} else {
		b.WriteString("\n[Войти]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Ошибка: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("ВХОД", strings.TrimRight(b.String(), "\n"), "enter: подтвердить │ f1: о программе")
}

func (m *LoginModel) cmdLogin(token string) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		session, err := auth.Login(ctx, token)
		return loginDoneMsg{session: session, err: err}
	}
}
