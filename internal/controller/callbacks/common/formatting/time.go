package formatting

import (
	"fmt"
	"time"
)

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateShort форматирует дату без года
func FormatDateShort(t time.Time) string {
	return t.Format("02.01")
}

// FormatDateWithWeekday форматирует дату с днём недели на русском
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s (%s)", t.Format("02.01.2006"), GetWeekdayShortName(int(t.Weekday())))
}

// FormatHour форматирует час окна как время начала
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// FormatDuration форматирует длительность в минутах
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}

// GetWeekdayShortName возвращает краткое название дня недели на русском
func GetWeekdayShortName(weekday int) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if weekday >= 0 && weekday < len(names) {
		return names[weekday]
	}
	return "?"
}
