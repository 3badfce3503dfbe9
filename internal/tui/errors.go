// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/study-companion/internal/adapter"
	"github.com/MKhiriev/study-companion/internal/service"
	"github.com/MKhiriev/study-companion/internal/store"
	"github.com/MKhiriev/study-companion/internal/utils"
)

// humanizeError turns service errors into a line for the status bar.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrSyncInProgress):
		return "Синхронизация уже выполняется"
	case errors.Is(err, service.ErrPermission):
		return "Недостаточно прав для работы с данными исследования"
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, utils.ErrTokenExpired):
		return "Сессия истекла, войдите заново"
	case errors.Is(err, service.ErrNotAuthenticated):
		return "Неверный токен"
	case errors.Is(err, store.ErrUnsupportedRead):
		return "Данные сенсоров нельзя просматривать на устройстве"
	case errors.Is(err, store.ErrRecordNotFound):
		return "Запись не найдена"
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Отсутствует сеть или Сервер недоступен"
	}

	return err.Error()
}
