// Package calendar renders booked demo slots as an RFC 5545 calendar
// document for email attachment.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"wholesomemarket.io/booking/models"
)

// DemoDurationHours is the fixed length of every in-store demo.
const DemoDurationHours = 3

// defaultStartHour is used when a slot's time label cannot be parsed, so
// every booked slot still yields a well-formed event.
const defaultStartHour = 9

// Render produces one VEVENT per slot. Slots start on the hour; the demo
// runs three hours, capped at 23:59 when the end would pass midnight.
func Render(slots []models.DemoSlot, company, product string) string {
	now := time.Now()
	stamp := now.UTC().Format("20060102T150405Z")

	var b strings.Builder
	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:-//Wholesome Market//Demo Booking//EN")
	writeLine(&b, "CALSCALE:GREGORIAN")
	writeLine(&b, "METHOD:PUBLISH")

	for i, slot := range slots {
		start, end := eventWindow(slot, now)
		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, fmt.Sprintf("UID:%d-%d@wholesomemarket.io", now.UnixMilli(), i))
		writeLine(&b, "DTSTAMP:"+stamp)
		writeLine(&b, "DTSTART:"+start)
		writeLine(&b, "DTEND:"+end)
		writeLine(&b, "SUMMARY:"+Escape(fmt.Sprintf("%s Demo - %s", product, slot.Location)))
		writeLine(&b, "LOCATION:"+Escape(slot.Location))
		writeLine(&b, "DESCRIPTION:"+Escape(fmt.Sprintf(
			"In-store product demo hosted by %s.\nProduct: %s\nTime slot: %s", company, product, slot.Time)))
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")
	return b.String()
}

func eventWindow(slot models.DemoSlot, now time.Time) (string, string) {
	day, err := time.Parse("2006-01-02", slot.Date)
	if err != nil {
		day = now
	}
	date := day.Format("20060102")

	startHour := StartHour(slot.Time)
	endHour, endMinute := startHour+DemoDurationHours, 0
	if endHour > 23 {
		endHour, endMinute = 23, 59
	}

	start := fmt.Sprintf("%sT%02d0000", date, startHour)
	end := fmt.Sprintf("%sT%02d%02d00", date, endHour, endMinute)
	return start, end
}

// StartHour parses a 12-hour clock label such as "11:00 AM" or "3:00 PM"
// into an hour of day. Minute precision is not modeled; demos start on the
// hour.
func StartHour(label string) int {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) < 2 {
		return defaultStartHour
	}

	hour, err := strconv.Atoi(strings.SplitN(fields[0], ":", 2)[0])
	if err != nil || hour < 1 || hour > 12 {
		return defaultStartHour
	}

	switch strings.ToUpper(fields[1]) {
	case "AM":
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour != 12 {
			hour += 12
		}
	default:
		return defaultStartHour
	}

	return hour
}

// Escape encodes a text value for an RFC 5545 property. Raw newlines inside
// a property would corrupt the document, so they become literal \n
// sequences.
func Escape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// Content lines end with CRLF per the calendar interchange format.
func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}
