package calendar

import (
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var weekdayLabels = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

func monthMarkup(month time.Time) tgbotapi.InlineKeyboardMarkup {
	firstDay := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevMonth := firstDay.AddDate(0, -1, 0)
	nextMonth := firstDay.AddDate(0, 1, 0)

	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("<", navPrefix+prevMonth.Format(monthFormat)),
			tgbotapi.NewInlineKeyboardButtonData(firstDay.Format("January 2006"), noopPayload),
			tgbotapi.NewInlineKeyboardButtonData(">", navPrefix+nextMonth.Format(monthFormat)),
		),
	}

	weekdayRow := make([]tgbotapi.InlineKeyboardButton, 0, len(weekdayLabels))
	for _, label := range weekdayLabels {
		weekdayRow = append(weekdayRow, tgbotapi.NewInlineKeyboardButtonData(label, noopPayload))
	}
	rows = append(rows, weekdayRow)

	rows = append(rows, dayRows(firstDay)...)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func dayRows(firstDay time.Time) [][]tgbotapi.InlineKeyboardButton {
	daysInMonth := firstDay.AddDate(0, 1, -1).Day()

	// Monday-first offset of the month's first day
	offset := (int(firstDay.Weekday()) + 6) % 7

	var rows [][]tgbotapi.InlineKeyboardButton
	row := make([]tgbotapi.InlineKeyboardButton, 0, 7)

	for i := 0; i < offset; i++ {
		row = append(row, blankButton())
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(firstDay.Year(), firstDay.Month(), day, 0, 0, 0, 0, time.UTC)
		payload := dayPrefix + date.Format(dateFormat)

		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(day), payload))

		if len(row) == 7 {
			rows = append(rows, row)
			row = make([]tgbotapi.InlineKeyboardButton, 0, 7)
		}
	}

	if len(row) > 0 {
		for len(row) < 7 {
			row = append(row, blankButton())
		}
		rows = append(rows, row)
	}

	return rows
}

func blankButton() tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(" ", noopPayload)
}
