// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/study-companion/internal/service"
	"github.com/MKhiriev/study-companion/models"
)

// dataTabs are the data types that can be browsed on the device.
var dataTabs = []models.DataType{models.UserData, models.LabData}

type mainLoopModel struct {
	ctx      context.Context
	services *service.ClientServices
	session  models.Session
	listener service.SyncListener

	tab     int
	items   []models.SyncableRecord
	idx     int
	loading bool

	sync     syncModel
	lastSync *time.Time
	modified bool

	editor      textinput.Model
	editing     bool
	editType    models.DataType
	editID      *int64
	confirmWipe bool

	status string
	errMsg string
	logout bool
}

func newMainLoopModel(ctx context.Context, services *service.ClientServices, session models.Session, listener service.SyncListener) *mainLoopModel {
	editor := textinput.New()
	editor.Placeholder = `{"question": "answer"}`
	editor.CharLimit = 4096
	editor.Width = 60

	return &mainLoopModel{
		ctx:      ctx,
		services: services,
		session:  session,
		listener: listener,
		loading:  true,
		sync:     newSyncModel(),
		lastSync: services.SyncStatus.LastSyncDate.Get(),
		modified: services.SyncStatus.ModifiedSinceLastSync.Get(),
		editor:   editor,
	}
}

func (m *mainLoopModel) Init() tea.Cmd {
	return m.cmdLoad()
}

func (m *mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordsLoadedMsg:
		if msg.dataType != m.currentType() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.items = msg.items
		m.clampIndex()
		return m, nil

	case syncDownloadingMsg, syncUploadingMsg, syncProgressMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.sync, cmd = m.sync.Update(msg)
		return m, cmd

	case syncCompletedMsg:
		m.sync, _ = m.sync.Update(msg)
		m.errMsg = ""
		m.status = fmt.Sprintf("Синхронизация завершена: отправлено %d, получено %d", msg.uploaded, msg.downloaded)
		m.loading = true
		return m, tea.Batch(m.cmdLoad(), cmdClearStatus())

	case syncCancelledMsg:
		m.sync, _ = m.sync.Update(msg)
		m.status = "Синхронизация отменена"
		return m, cmdClearStatus()

	case syncErrorMsg:
		if errors.Is(msg.err, service.ErrSyncInProgress) {
			m.status = humanizeError(msg.err)
			return m, cmdClearStatus()
		}
		m.sync.stop()
		m.errMsg = "Синхронизация не выполнена: " + humanizeError(msg.err)
		return m, nil

	case syncRequestedMsg:
		// отказ из-за идущего раунда уже пришёл через listener
		if msg.err == nil || errors.Is(msg.err, service.ErrSyncInProgress) {
			return m, nil
		}
		m.sync.stop()
		m.errMsg = humanizeError(msg.err)
		return m, nil

	case lastSyncMsg:
		m.lastSync = msg.at
		return m, nil

	case modifiedMsg:
		m.modified = msg.modified
		return m, nil

	case recordSavedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка сохранения: %s", humanizeError(msg.err))
			return m, nil
		}
		m.errMsg = ""
		m.status = "Запись сохранена"
		m.loading = true
		return m, tea.Batch(m.cmdLoad(), cmdClearStatus())

	case recordDeletedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка удаления: %s", humanizeError(msg.err))
			return m, nil
		}
		if !msg.changed {
			m.status = "Запись уже удалена"
			return m, cmdClearStatus()
		}
		m.errMsg = ""
		m.status = "Запись удалена"
		m.loading = true
		return m, tea.Batch(m.cmdLoad(), cmdClearStatus())

	case wipedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка очистки: %s", humanizeError(msg.err))
			return m, nil
		}
		m.status = "Данные на устройстве удалены"
		m.loading = true
		return m, tea.Batch(m.cmdLoad(), cmdClearStatus())

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = fmt.Sprintf("Ошибка копирования: %v", msg.err)
			return m, nil
		}
		m.status = "Скопировано"
		return m, cmdClearStatus()

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.editing {
		return m.updateEditor(keyMsg)
	}
	if m.confirmWipe {
		return m.updateConfirmWipe(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	case key.Matches(keyMsg, keys.up):
		if m.idx > 0 {
			m.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.idx < len(m.items)-1 {
			m.idx++
		}
	case key.Matches(keyMsg, keys.tab):
		m.tab = (m.tab + 1) % len(dataTabs)
		m.items = nil
		m.idx = 0
		m.loading = true
		return m, m.cmdLoad()
	case key.Matches(keyMsg, keys.newItem):
		return m, m.startEditor(models.UserData, nil, "")
	case key.Matches(keyMsg, keys.newSensor):
		return m, m.startEditor(models.SensorData, nil, "")
	case key.Matches(keyMsg, keys.edit):
		item, ok := m.current()
		if !ok || item.DataType != models.UserData {
			m.status = "Редактировать можно только свои ответы"
			return m, cmdClearStatus()
		}
		raw, _ := json.Marshal(item.Payload)
		id := item.LocalID
		return m, m.startEditor(models.UserData, &id, string(raw))
	case key.Matches(keyMsg, keys.delete):
		item, ok := m.current()
		if !ok {
			m.status = "Нет записей"
			return m, cmdClearStatus()
		}
		return m, m.cmdDelete(item.LocalID)
	case key.Matches(keyMsg, keys.sync):
		if m.sync.running() {
			m.status = humanizeError(service.ErrSyncInProgress)
			return m, cmdClearStatus()
		}
		m.errMsg = ""
		return m, tea.Batch(m.sync.start(syncPhaseStarting), m.cmdSync())
	case key.Matches(keyMsg, keys.cancel):
		if !m.services.SyncService.IsSyncInProgress() {
			m.status = "Нет активной синхронизации"
			return m, cmdClearStatus()
		}
		m.services.SyncService.Cancel()
		m.status = "Отмена синхронизации..."
	case key.Matches(keyMsg, keys.copy):
		report, ok := syncReport(m.services.SyncService.LastResult())
		if !ok {
			m.status = "Нечего копировать"
			return m, cmdClearStatus()
		}
		return m, cmdCopy(report)
	case key.Matches(keyMsg, keys.wipe):
		m.confirmWipe = true
	case key.Matches(keyMsg, keys.logout):
		m.logout = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *mainLoopModel) updateEditor(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.esc):
		m.stopEditor()
		return m, nil
	case key.Matches(keyMsg, keys.enter):
		payload, err := parsePayload(m.editor.Value())
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		dataType, id := m.editType, m.editID
		m.stopEditor()
		return m, m.cmdSave(dataType, payload, id)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(keyMsg)
	return m, cmd
}

func (m *mainLoopModel) updateConfirmWipe(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		m.confirmWipe = false
		if m.sync.running() {
			m.status = "Дождитесь окончания синхронизации"
			return m, cmdClearStatus()
		}
		return m, m.cmdWipe()
	case key.Matches(keyMsg, keys.no):
		m.confirmWipe = false
	}
	return m, nil
}

func (m *mainLoopModel) View() string {
	var b strings.Builder

	modified := "нет"
	if m.modified {
		modified = "да"
	}
	fmt.Fprintf(&b, "Последняя синхронизация: %s │ Есть изменения: %s\n\n", formatSyncDate(m.lastSync), modified)

	for i, dt := range dataTabs {
		style := tabStyle
		if i == m.tab {
			style = activeTab
		}
		b.WriteString(style.Render(dt.String()))
	}
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString("Загрузка...\n")
	case len(m.items) == 0:
		b.WriteString("Нет записей\n")
	default:
		for i, item := range m.items {
			line := renderRecordLine(item)
			if i == m.idx {
				line = selectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if view := m.sync.View(); view != "" {
		b.WriteString("\n")
		b.WriteString(view)
		b.WriteString("\n")
	}

	if m.editing {
		fmt.Fprintf(&b, "\n%s │ [%s]\n", m.editType, m.editor.View())
	}
	if m.confirmWipe {
		b.WriteString("\nУдалить все данные с устройства? (y/n)\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	hotKeys := "s: синхр. │ x: отмена │ a: ответ │ r: показание │ e: изм. │ ctrl+d: удалить │ tab: раздел │ c: копировать отчёт │ W: очистить │ L: выйти"
	if m.editing {
		hotKeys = "enter: сохранить │ esc: отмена"
	}

	title := fmt.Sprintf("STUDY COMPANION │ %s", m.session.UserID)
	return renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
}

func renderRecordLine(item models.SyncableRecord) string {
	mark := "●"
	if item.Synced() {
		mark = "✓"
	}
	raw, err := json.Marshal(item.Payload)
	if err != nil {
		raw = []byte("{}")
	}
	return fmt.Sprintf("%s #%-5d %s", mark, item.LocalID, fitText(string(raw), 60))
}

// syncReport describes the last finished round for the clipboard.
func syncReport(res service.SyncResult) (string, bool) {
	if res.SessionID == "" {
		return "", false
	}

	report := fmt.Sprintf("session=%s round=%s state=%s uploaded=%d downloaded=%d",
		res.SessionID, res.RoundID, res.State, res.Uploaded, res.Downloaded)
	if res.Err != nil {
		report += " error=" + res.Err.Error()
	}
	return report, true
}

func parsePayload(raw string) (models.Payload, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("введите JSON-объект")
	}

	var payload models.Payload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("некорректный JSON: %w", err)
	}
	if payload == nil {
		return nil, errors.New("введите JSON-объект")
	}
	return payload, nil
}

func (m *mainLoopModel) startEditor(dataType models.DataType, id *int64, value string) tea.Cmd {
	m.editType = dataType
	m.editID = id
	m.editor.SetValue(value)
	m.editing = true
	m.errMsg = ""
	return m.editor.Focus()
}

func (m *mainLoopModel) stopEditor() {
	m.editor.Blur()
	m.editor.Reset()
	m.editing = false
	m.editID = nil
}

func (m *mainLoopModel) currentType() models.DataType {
	return dataTabs[m.tab]
}

func (m *mainLoopModel) current() (models.SyncableRecord, bool) {
	if m.idx < 0 || m.idx >= len(m.items) {
		return models.SyncableRecord{}, false
	}
	return m.items[m.idx], true
}

func (m *mainLoopModel) clampIndex() {
	if m.idx >= len(m.items) {
		m.idx = len(m.items) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m *mainLoopModel) cmdLoad() tea.Cmd {
	ctx := m.ctx
	svc := m.services.DataService
	session := m.session
	dataType := m.currentType()

	return func() tea.Msg {
		items, err := svc.GetAll(ctx, session, dataType)
		return recordsLoadedMsg{dataType: dataType, items: items, err: err}
	}
}

func (m *mainLoopModel) cmdSync() tea.Cmd {
	ctx := m.ctx
	svc := m.services.SyncService
	session := m.session
	listener := m.listener

	return func() tea.Msg {
		return syncRequestedMsg{err: svc.Start(ctx, session, listener)}
	}
}

func (m *mainLoopModel) cmdSave(dataType models.DataType, payload models.Payload, id *int64) tea.Cmd {
	ctx := m.ctx
	svc := m.services.DataService
	session := m.session

	return func() tea.Msg {
		_, err := svc.CreateOrUpdate(ctx, session, dataType, payload, id)
		return recordSavedMsg{err: err}
	}
}

func (m *mainLoopModel) cmdDelete(localID int64) tea.Cmd {
	ctx := m.ctx
	svc := m.services.DataService
	session := m.session

	return func() tea.Msg {
		changed, err := svc.Delete(ctx, session, localID)
		return recordDeletedMsg{changed: changed, err: err}
	}
}

func (m *mainLoopModel) cmdWipe() tea.Cmd {
	ctx := m.ctx
	svc := m.services.DataService
	session := m.session

	return func() tea.Msg {
		return wipedMsg{err: svc.WipeForUser(ctx, session)}
	}
}

func cmdCopy(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
