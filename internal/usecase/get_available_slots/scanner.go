package get_available_slots

import (
	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
)

// scanWindow генерирует кандидатные слоты внутри одного рабочего окна.
//
// Курсор стартует от начала окна и движется шагом, равным длительности услуги -
// свободные слоты укладываются вплотную друг к другу, без фиксированной сетки.
// При конфликте курсор прыгает сразу за самый поздний конец среди пересекающихся
// занятых интервалов, а не сканирует окно поминутно: сложность O(число занятых
// интервалов) на окно, а не O(длина окна / длительность).
//
// Хвост окна короче длительности услуги слот не порождает - частичные слоты
// не выдаются никогда.
func scanWindow(window domain.MinuteRange, durationMinutes int, busy []domain.BusyInterval) []domain.MinuteRange {
	slots := make([]domain.MinuteRange, 0)

	if durationMinutes <= 0 || !window.IsValid() {
		return slots
	}

	cursor := window.Start

	for cursor+durationMinutes <= window.End {
		candidate := domain.MinuteRange{Start: cursor, End: cursor + durationMinutes}

		if !domain.OverlapsAny(candidate, busy) {
			slots = append(slots, candidate)
			cursor = candidate.End
			continue
		}

		// Кандидат занят: прыгаем за самый поздний конец среди пересекающихся
		// интервалов. Если несколько занятых интервалов накрывают кандидата,
		// max(end) корректно пропускает их все за один шаг.
		next, ok := domain.MaxOverlappingEnd(candidate, busy)
		if !ok || next <= cursor {
			// Защита от зацикливания на битых данных: по тесту пересечения
			// такого быть не должно, но окно безопаснее оборвать,
			// сохранив уже выданные слоты
			break
		}
		cursor = next
	}

	return slots
}

// scanWindows прогоняет генератор по каждому окну независимо и склеивает
// результаты. Окна приходят отсортированными по началу, поэтому итоговый
// список упорядочен по времени начала без дополнительной сортировки.
// Пересекающиеся окна - ошибка конфигурации: движок её не чинит, но и не падает.
func scanWindows(
	windows []*domain.AvailabilityWindow,
	durationMinutes int,
	busy []domain.BusyInterval,
) []domain.MinuteRange {
	result := make([]domain.MinuteRange, 0)

	for _, w := range windows {
		windowRange, err := w.Range()
		if err != nil {
			// Окно с нечитаемым временем пропускаем, остальные обрабатываем
			continue
		}
		result = append(result, scanWindow(windowRange, durationMinutes, busy)...)
	}

	return result
}

// busyIntervalsFromAppointments строит снимок занятости из активных записей.
// Записи с нечитаемым временем начала пропускаются.
func busyIntervalsFromAppointments(appointments []*domain.Appointment) []domain.BusyInterval {
	busy := make([]domain.BusyInterval, 0, len(appointments))

	for _, appt := range appointments {
		// Репозиторий уже отфильтровал неактивные записи, но снимок занятости
		// не должен зависеть от этого инварианта
		if !appt.IsActive() {
			continue
		}

		r, err := appt.BusyRange()
		if err != nil {
			continue
		}
		busy = append(busy, domain.BusyInterval{Range: r})
	}

	return busy
}
