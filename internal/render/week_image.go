package render

import (
	"bytes"
	"errors"
	"image/color"
	"strconv"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/schedule"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = "" // Regular
	FontStyleMedium  FontStyle = "medium"
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 120
	dayPaddingX      = 8
	minEntryHeight   = 8.0
	entryRadius      = 6.0
	shadowOffset     = 3.0
	hourPaddingTop   = 1
	hourPaddingBot   = 1
	defaultMinHour   = 8
	defaultMaxHour   = 18
	maxEntryTitleLen = 18
)

// Константы шрифтов
const (
	titleFontSize      = 25.0
	dayFontSize        = 27.0
	hourLabelFontSize  = 18.0
	entryTimeFontSize  = 17.0
	legendItemFontSize = 12.0
)

// Цветовая схема
var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 125}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{220, 220, 220, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	lessonDefaultColor = color.RGBA{133, 193, 85, 220}
	eventColor         = color.RGBA{255, 182, 193, 255}
	entryTextColor     = color.RGBA{20, 24, 28, 230}
	eventTextColor     = color.RGBA{120, 40, 50, 255}
	entryShadowColor   = color.RGBA{0, 0, 0, 20}

	legendTextColor = color.RGBA{90, 95, 100, 220}
	legendItemColor = color.RGBA{70, 74, 78, 220}
)

// Цвета предметов по названию
var subjectColors = map[string]color.RGBA{
	"red":    {239, 117, 117, 220},
	"orange": {255, 183, 77, 220},
	"yellow": {255, 224, 102, 220},
	"green":  {133, 193, 85, 220},
	"blue":   {110, 168, 232, 220},
	"purple": {179, 136, 235, 220},
	"gray":   {158, 158, 158, 200},
}

// ErrWeekLength неделя должна состоять из семи дней
var ErrWeekLength = errors.New("week image needs exactly 7 days")

// hourRange содержит диапазон часов для отображения
type hourRange struct {
	start int
	end   int
	total int
}

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

func fontData(style FontStyle) []byte {
	switch style {
	case FontStyleBold:
		return gobold.TTF
	case FontStyleMedium:
		return gomedium.TTF
	default:
		return goregular.TTF
	}
}

// loadFont загружает шрифт указанного стиля или использует basicfont как fallback
func loadFont(dc *gg.Context, size float64, style ...FontStyle) {
	fontStyle := FontStyleDefault
	if len(style) > 0 {
		fontStyle = style[0]
	}

	fontsMu.Lock()
	parsed, ok := cachedFonts[fontStyle]
	if !ok {
		var err error
		parsed, err = opentype.Parse(fontData(fontStyle))
		if err != nil {
			fontsMu.Unlock()
			dc.SetFontFace(basicfont.Face7x13)
			return
		}
		cachedFonts[fontStyle] = parsed
	}
	fontsMu.Unlock()

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}

// WeekImage рисует неделю (7 дней с понедельника) с уроками и событиями в PNG.
// now нужен для подсветки сегодняшнего дня и линии текущего времени.
func WeekImage(days []*model.CalendarDayEntry, now time.Time) ([]byte, error) {
	if len(days) != schedule.DaysInWeek {
		return nil, ErrWeekLength
	}

	today := schedule.StartOfDay(now)
	highlightToday := !today.Before(days[0].Date) && !today.After(days[len(days)-1].Date)
	hours := calculateHourRange(days)

	dc := createCanvas()
	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / schedule.DaysInWeek
	dayHeight := imageHeight - headerHeight
	cellHeight := float64(dayHeight) / float64(hours.total)

	drawHeader(dc, days[0].Date, days[len(days)-1].Date)
	drawHourLabels(dc, hours, cellHeight)
	for i, day := range days {
		x := float64(leftLabelsWidth + i*dayWidth)
		isToday := highlightToday && day.Date.Equal(today)

		drawDayBackground(dc, x, headerHeight, dayWidth, dayHeight, i, isToday)
		drawDayHeader(dc, day.Date, x, headerHeight, dayWidth)
		drawHourLines(dc, x, headerHeight, dayWidth, hours, cellHeight)
		for _, entry := range day.Entries {
			drawEntry(dc, entry, day.Date, x, headerHeight, dayWidth, hours, cellHeight)
		}
	}
	if highlightToday {
		drawCurrentTimeLine(dc, now, hours, cellHeight, dayWidth)
	}
	drawLegend(dc, dayWidth)

	return encodeImage(dc)
}

// calculateHourRange определяет диапазон часов для отображения
func calculateHourRange(days []*model.CalendarDayEntry) hourRange {
	minHour := 24
	maxHour := 0

	for _, day := range days {
		for _, e := range day.Entries {
			if e.AllDay {
				continue
			}
			startH := e.Start.Hour()
			if !sameDay(e.Start, day.Date) {
				startH = 0
			}
			endH := e.End.Hour()
			if e.End.Minute() > 0 {
				endH++
			}
			if !sameDay(e.End, day.Date) {
				endH = 24
			}
			if startH < minHour {
				minHour = startH
			}
			if endH > maxHour {
				maxHour = endH
			}
		}
	}

	if minHour == 24 {
		minHour = defaultMinHour
		maxHour = defaultMaxHour
	}

	startHour := minHour - hourPaddingTop
	endHour := maxHour + hourPaddingBot
	if startHour < 0 {
		startHour = 0
	}
	if endHour > 24 {
		endHour = 24
	}

	return hourRange{
		start: startHour,
		end:   endHour,
		total: endHour - startHour,
	}
}

// createCanvas создает новый контекст рисования с фоном
func createCanvas() *gg.Context {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	return dc
}

// drawHeader рисует заголовок с названием месяца
func drawHeader(dc *gg.Context, start, end time.Time) {
	title := monthName(start.Month())
	if start.Month() != end.Month() {
		title += " - " + monthName(end.Month())
	}
	title += " " + strconv.Itoa(end.Year())

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	w, h := dc.MeasureString(title)
	dc.DrawStringAnchored(title, w/2+10, float64(headerHeight)/8+h/2, 0, 0)
}

// drawHourLabels рисует колонку с часами слева
func drawHourLabels(dc *gg.Context, hours hourRange, cellHeight float64) {
	loadFont(dc, hourLabelFontSize, FontStyleMedium)
	dc.SetColor(hourLabelColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		y := float64(headerHeight) + float64(hIdx)*cellHeight
		dc.DrawStringAnchored(formatHourLabel(hours.start+hIdx), float64(leftLabelsWidth)-10, y, 1, 0.5)
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// drawDayBackground рисует фон дня
func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

// drawDayHeader рисует название дня недели и дату
func drawDayHeader(dc *gg.Context, date time.Time, x, y float64, dayWidth int) {
	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(date.Format("02.01"), x+float64(dayWidth)/2, y, 0.5, -1)
	dc.DrawStringAnchored(schedule.WeekdayFromTime(date).Short(), x+float64(dayWidth)/2, y, 0.5, -0.2)
}

// drawHourLines рисует горизонтальные линии часов
func drawHourLines(dc *gg.Context, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for hIdx := 0; hIdx <= hours.total; hIdx++ {
		hy := y + float64(hIdx)*cellHeight
		dc.DrawLine(x, hy, x+float64(dayWidth), hy)
		dc.Stroke()
	}
}

// entrySpan часы начала и конца записи в пределах дня date
func entrySpan(e *model.CalendarEvent, date time.Time, hours hourRange) (float64, float64) {
	if e.AllDay {
		return float64(hours.start), float64(hours.end)
	}

	start := float64(e.Start.Hour()) + float64(e.Start.Minute())/60.0
	if !sameDay(e.Start, date) {
		start = 0
	}
	end := float64(e.End.Hour()) + float64(e.End.Minute())/60.0
	if !sameDay(e.End, date) {
		end = 24
	}

	if start < float64(hours.start) {
		start = float64(hours.start)
	}
	if end > float64(hours.end) {
		end = float64(hours.end)
	}
	return start, end
}

// drawEntry рисует урок или событие
func drawEntry(dc *gg.Context, e *model.CalendarEvent, date time.Time, x, y float64, dayWidth int, hours hourRange, cellHeight float64) {
	startHour, endHour := entrySpan(e, date, hours)

	entryY := y + (startHour-float64(hours.start))*cellHeight
	entryHeight := (endHour - startHour) * cellHeight
	if entryHeight < minEntryHeight {
		entryHeight = minEntryHeight
	}

	fillColor := entryColor(e)
	entryWidth := float64(dayWidth) - float64(dayPaddingX*2)

	// Тень
	dc.SetColor(entryShadowColor)
	dc.DrawRoundedRectangle(x+dayPaddingX+shadowOffset, entryY+2+shadowOffset, entryWidth, entryHeight-4, entryRadius)
	dc.Fill()

	dc.SetColor(fillColor)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), entryY+2, entryWidth, entryHeight-4, entryRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fillColor, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x+float64(dayPaddingX), entryY+2, entryWidth, entryHeight-4, entryRadius)
	dc.Stroke()

	txtColor := entryTextColor
	if e.Kind == model.CalendarEventEvent {
		txtColor = eventTextColor
	}

	loadFont(dc, entryTimeFontSize, FontStyleMedium)
	dc.SetColor(txtColor)
	txtX := x + float64(dayPaddingX) + 8
	txtY := entryY + 8 + 10
	timeText := e.Start.Format("15:04")
	if e.AllDay {
		timeText = "весь день"
	}
	dc.DrawStringAnchored(timeText, txtX, txtY, 0, 0)

	if entryHeight > 25 {
		loadFont(dc, entryTimeFontSize-2, FontStyleMedium)
		dc.DrawStringAnchored(truncate(e.Title, maxEntryTitleLen), txtX, txtY+16, 0, 0)
	}
}

// truncate обрезает строку по рунам
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

// entryColor цвет предмета для урока, отдельный цвет для событий
func entryColor(e *model.CalendarEvent) color.RGBA {
	if e.Kind == model.CalendarEventEvent {
		return eventColor
	}
	if c, ok := subjectColors[e.Color]; ok {
		return c
	}
	return lessonDefaultColor
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// drawCurrentTimeLine рисует красную линию текущего времени
func drawCurrentTimeLine(dc *gg.Context, now time.Time, hours hourRange, cellHeight float64, dayWidth int) {
	currentHour := float64(now.Hour()) + float64(now.Minute())/60.0
	if currentHour < float64(hours.start) || currentHour > float64(hours.end) {
		return
	}

	y := float64(headerHeight) + (currentHour-float64(hours.start))*cellHeight
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(float64(leftLabelsWidth), y, float64(leftLabelsWidth+schedule.DaysInWeek*dayWidth), y)
	dc.Stroke()
}

// drawLegend рисует легенду справа
func drawLegend(dc *gg.Context, dayWidth int) {
	legendX := float64(leftLabelsWidth + schedule.DaysInWeek*dayWidth + 10)
	legendY := float64(imageHeight) - 100.0

	dc.SetColor(legendTextColor)

	legendItems := []struct {
		Label string
		Clr   color.Color
	}{
		{"Урок", lessonDefaultColor},
		{"Событие", eventColor},
	}

	boxW := 20.0
	boxH := 14.0
	liY := legendY + 22

	for _, item := range legendItems {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(legendX, liY, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, legendX+boxW+8, liY+boxH/2+1, 0, 0.2)
		liY += boxH + 14
	}
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatHourLabel(h int) string {
	if h < 10 {
		return "0" + strconv.Itoa(h) + ":00"
	}
	return strconv.Itoa(h) + ":00"
}

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

func monthName(m time.Month) string {
	return monthNames[m-1]
}
