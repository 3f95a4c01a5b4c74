package common

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"github.com/glebkhl/zapis_bot/internal/model"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth   = 1200
	imageHeight  = 700
	headerHeight = 70
	leftLabels   = 70
	legendHeight = 50
	cellPadding  = 4.0
	cellRadius   = 6.0
)

// Цветовая схема
var (
	bgColor         = color.RGBA{245, 246, 248, 255}
	textColor       = color.RGBA{80, 85, 90, 220}
	gridLineColor   = color.NRGBA{205, 208, 212, 255}
	slotFreeColor   = color.RGBA{133, 193, 85, 220}
	slotBookedColor = color.RGBA{255, 182, 193, 255}
	slotTextColor   = color.RGBA{20, 24, 28, 230}
)

// GenerateScheduleImage рисует сетку расписания: колонки - дни горизонта,
// строки - рабочие часы. Свободные окна зелёные, занятые розовые
// с именем владельца. Для оператора.
func GenerateScheduleImage(start time.Time, days int, workHours []int, slots []model.Slot) ([]byte, error) {
	if days <= 0 || len(workHours) == 0 {
		return nil, fmt.Errorf("empty schedule grid")
	}

	slotByCell := make(map[string]model.Slot, len(slots))
	for _, slot := range slots {
		slotByCell[cellKey(slot.Date, slot.Hour)] = slot
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	gridWidth := float64(imageWidth - leftLabels)
	gridHeight := float64(imageHeight - headerHeight - legendHeight)
	colWidth := gridWidth / float64(days)
	rowHeight := gridHeight / float64(len(workHours))

	drawDayHeaders(dc, start, days, colWidth)
	drawHourLabels(dc, workHours, rowHeight)
	drawCells(dc, start, days, workHours, slotByCell, colWidth, rowHeight)
	drawLegend(dc)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode schedule image: %w", err)
	}
	return buf.Bytes(), nil
}

// drawDayHeaders подписывает колонки датами с днём недели
func drawDayHeaders(dc *gg.Context, start time.Time, days int, colWidth float64) {
	dc.SetColor(textColor)
	for day := 0; day < days; day++ {
		date := start.AddDate(0, 0, day)
		label := fmt.Sprintf("%s %s", date.Format("02.01"), weekdayShort(date.Weekday()))
		x := float64(leftLabels) + float64(day)*colWidth + colWidth/2
		dc.DrawStringAnchored(label, x, headerHeight/2, 0.5, 0.5)
	}
}

// drawHourLabels подписывает строки часами
func drawHourLabels(dc *gg.Context, workHours []int, rowHeight float64) {
	dc.SetColor(textColor)
	for i, hour := range workHours {
		y := float64(headerHeight) + float64(i)*rowHeight + rowHeight/2
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", hour), leftLabels/2, y, 0.5, 0.5)
	}
}

// drawCells рисует сами окна
func drawCells(dc *gg.Context, start time.Time, days int, workHours []int, slotByCell map[string]model.Slot, colWidth, rowHeight float64) {
	for day := 0; day < days; day++ {
		date := start.AddDate(0, 0, day)
		for i, hour := range workHours {
			x := float64(leftLabels) + float64(day)*colWidth + cellPadding
			y := float64(headerHeight) + float64(i)*rowHeight + cellPadding
			w := colWidth - 2*cellPadding
			h := rowHeight - 2*cellPadding

			slot, exists := slotByCell[cellKey(date, hour)]
			if !exists {
				// окна нет (выходная дыра в горизонте) - только контур
				dc.SetColor(gridLineColor)
				dc.DrawRoundedRectangle(x, y, w, h, cellRadius)
				dc.Stroke()
				continue
			}

			if slot.Status == model.SlotStatusBooked {
				dc.SetColor(slotBookedColor)
			} else {
				dc.SetColor(slotFreeColor)
			}
			dc.DrawRoundedRectangle(x, y, w, h, cellRadius)
			dc.Fill()

			dc.SetColor(slotTextColor)
			label := slot.ServiceCode
			if slot.Status == model.SlotStatusBooked && slot.OwnerName != nil {
				label = *slot.OwnerName
			}
			dc.DrawStringAnchored(label, x+w/2, y+h/2, 0.5, 0.5)
		}
	}
}

// drawLegend рисует легенду под сеткой
func drawLegend(dc *gg.Context) {
	y := float64(imageHeight - legendHeight + 15)

	dc.SetColor(slotFreeColor)
	dc.DrawRoundedRectangle(leftLabels, y, 18, 18, 4)
	dc.Fill()
	dc.SetColor(textColor)
	dc.DrawStringAnchored("свободно", leftLabels+60, y+9, 0.5, 0.5)

	dc.SetColor(slotBookedColor)
	dc.DrawRoundedRectangle(leftLabels+130, y, 18, 18, 4)
	dc.Fill()
	dc.SetColor(textColor)
	dc.DrawStringAnchored("занято", leftLabels+180, y+9, 0.5, 0.5)
}

func cellKey(date time.Time, hour int) string {
	return fmt.Sprintf("%s_%d", date.Format("2006-01-02"), hour)
}

func weekdayShort(w time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	return names[int(w)]
}
