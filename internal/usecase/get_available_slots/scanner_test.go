package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmit/MDC-AvailabilityService/internal/domain"
	"github.com/avdmit/MDC-AvailabilityService/pkg/types"
)

func mr(start, end int) domain.MinuteRange {
	return domain.MinuteRange{Start: start, End: end}
}

func busyOf(ranges ...domain.MinuteRange) []domain.BusyInterval {
	busy := make([]domain.BusyInterval, 0, len(ranges))
	for _, r := range ranges {
		busy = append(busy, domain.BusyInterval{Range: r})
	}
	return busy
}

func TestScanWindow_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		window   domain.MinuteRange
		duration int
		busy     []domain.BusyInterval
		want     []domain.MinuteRange
	}{
		{
			name:     "free morning tiles exactly",
			window:   mr(540, 720), // 09:00-12:00
			duration: 30,
			want: []domain.MinuteRange{
				mr(540, 570), mr(570, 600), mr(600, 630),
				mr(630, 660), mr(660, 690), mr(690, 720),
			},
		},
		{
			name:     "busy opening leaves the second half",
			window:   mr(540, 600), // 09:00-10:00
			duration: 30,
			busy:     busyOf(mr(540, 570)), // 09:00-09:30
			want:     []domain.MinuteRange{mr(570, 600)},
		},
		{
			name:     "jump lands past the obstruction, tail fits exactly",
			window:   mr(540, 660), // 09:00-11:00
			duration: 45,
			busy:     busyOf(mr(585, 615)), // 09:45-10:15
			want:     []domain.MinuteRange{mr(540, 585), mr(615, 660)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scanWindow(tt.window, tt.duration, tt.busy))
		})
	}
}

func TestScanWindow_EmptyDay(t *testing.T) {
	// Окно 09:00-12:00, услуга 60 минут, записей нет
	slots := scanWindow(mr(540, 720), 60, nil)

	require.Equal(t, []domain.MinuteRange{
		mr(540, 600), // 09:00-10:00
		mr(600, 660), // 10:00-11:00
		mr(660, 720), // 11:00-12:00
	}, slots)
}

func TestScanWindow_JumpsPastBusyInterval(t *testing.T) {
	// Окно 09:00-12:00, услуга 60 минут, занято 10:00-10:30.
	// Следующий слот начинается в 10:30, а не в 11:00
	slots := scanWindow(mr(540, 720), 60, busyOf(mr(600, 630)))

	require.Equal(t, []domain.MinuteRange{
		mr(540, 600), // 09:00-10:00
		mr(630, 690), // 10:30-11:30
	}, slots)
}

func TestScanWindow_JumpsPastMaxEndOfOverlappingIntervals(t *testing.T) {
	// Два занятых интервала накрывают кандидата: прыжок за самый поздний конец
	slots := scanWindow(mr(540, 720), 60, busyOf(mr(550, 580), mr(570, 640)))

	require.Equal(t, []domain.MinuteRange{
		mr(640, 700), // 10:40-11:40
	}, slots)
}

func TestScanWindow_BackToBackAppointmentsDoNotBlock(t *testing.T) {
	// Полуинтервалы: запись, кончающаяся в 10:00, не конфликтует со слотом с 10:00
	slots := scanWindow(mr(540, 660), 60, busyOf(mr(540, 600)))

	require.Equal(t, []domain.MinuteRange{
		mr(600, 660), // 10:00-11:00
	}, slots)
}

func TestScanWindow_TailShorterThanDurationDropped(t *testing.T) {
	// Окно 09:00-10:30, услуга 60 минут: второй слот не помещается
	slots := scanWindow(mr(540, 630), 60, nil)

	require.Equal(t, []domain.MinuteRange{mr(540, 600)}, slots)
}

func TestScanWindow_WindowShorterThanDuration(t *testing.T) {
	slots := scanWindow(mr(540, 570), 60, nil)
	assert.Empty(t, slots)
}

func TestScanWindow_FullyBooked(t *testing.T) {
	slots := scanWindow(mr(540, 660), 60, busyOf(mr(530, 670)))
	assert.Empty(t, slots)
}

func TestScanWindow_BusyOutsideWindowIgnored(t *testing.T) {
	// Записи вне окна не влияют на слоты внутри него
	slots := scanWindow(mr(540, 660), 60, busyOf(mr(480, 540), mr(660, 720)))

	require.Equal(t, []domain.MinuteRange{
		mr(540, 600),
		mr(600, 660),
	}, slots)
}

func TestScanWindow_NonPositiveDuration(t *testing.T) {
	assert.Empty(t, scanWindow(mr(540, 660), 0, nil))
	assert.Empty(t, scanWindow(mr(540, 660), -15, nil))
}

func TestScanWindow_InvalidWindow(t *testing.T) {
	assert.Empty(t, scanWindow(mr(660, 540), 30, nil))
	assert.Empty(t, scanWindow(mr(540, 540), 30, nil))
}

func TestScanWindow_SlotsNeverOverlapBusy(t *testing.T) {
	// Свойство движка: ни один выданный слот не пересекает занятость
	busy := busyOf(mr(555, 575), mr(600, 660), mr(700, 701), mr(650, 680))

	for _, duration := range []int{10, 15, 30, 45, 60, 90} {
		slots := scanWindow(mr(480, 1080), duration, busy)

		for _, slot := range slots {
			assert.Falsef(t, domain.OverlapsAny(slot, busy),
				"duration=%d: slot %v overlaps busy set", duration, slot)
			assert.Equal(t, duration, slot.Duration())
		}

		// Слоты строго упорядочены и не пересекаются между собой
		for i := 1; i < len(slots); i++ {
			assert.LessOrEqual(t, slots[i-1].End, slots[i].Start)
		}
	}
}

func TestScanWindow_Deterministic(t *testing.T) {
	busy := busyOf(mr(555, 575), mr(600, 660))

	first := scanWindow(mr(540, 720), 30, busy)
	second := scanWindow(mr(540, 720), 30, busy)

	assert.Equal(t, first, second)
}

func TestScanWindows_SplitShift(t *testing.T) {
	// Два окна в один день: утро и вечер, слоты в порядке времени начала
	windows := []*domain.AvailabilityWindow{
		makeWindow(t, "09:00", "11:00"),
		makeWindow(t, "14:00", "16:00"),
	}

	slots := scanWindows(windows, 60, nil)

	require.Equal(t, []domain.MinuteRange{
		mr(540, 600),
		mr(600, 660),
		mr(840, 900),
		mr(900, 960),
	}, slots)
}

func TestScanWindows_SkipsMalformedWindow(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		{StartTime: types.TimeString("garbage"), EndTime: types.TimeString("11:00")},
		makeWindow(t, "14:00", "15:00"),
	}

	slots := scanWindows(windows, 60, nil)

	require.Equal(t, []domain.MinuteRange{mr(840, 900)}, slots)
}

func TestBusyIntervalsFromAppointments(t *testing.T) {
	appointments := []*domain.Appointment{
		{StartTime: types.TimeString("10:00"), DurationMinutes: 30, Status: domain.StatusScheduled},
		{StartTime: types.TimeString("12:00"), DurationMinutes: 60, Status: domain.StatusCancelledByPatient},
		{StartTime: types.TimeString("bad"), DurationMinutes: 30, Status: domain.StatusConfirmed},
		{StartTime: types.TimeString("15:00"), DurationMinutes: 45, Status: domain.StatusConfirmed},
	}

	busy := busyIntervalsFromAppointments(appointments)

	// Отменённая и битая записи не попадают в снимок занятости
	require.Equal(t, []domain.BusyInterval{
		{Range: mr(600, 630)},
		{Range: mr(900, 945)},
	}, busy)
}

func makeWindow(t *testing.T, start, end string) *domain.AvailabilityWindow {
	t.Helper()

	startTS, err := types.NewTimeStringFromString(start)
	require.NoError(t, err)
	endTS, err := types.NewTimeStringFromString(end)
	require.NoError(t, err)

	return &domain.AvailabilityWindow{StartTime: startTS, EndTime: endTS}
}
