// Package ics renders the calendar-event file offered to clients after
// a booking is confirmed.
package ics

import (
	"fmt"
	"strings"
	"time"

	"barbershop/internal/pkg/timeslot"
)

const (
	prodID    = "-//Barbearia Joao Angeiras//PT"
	uidDomain = "barbearia-joaoangeiras"
	location  = "R. de 31 de Janeiro 183, Povoa de Varzim"
)

// Event is the minimal booking information an invite needs.
type Event struct {
	Ref      string // booking reference, used as UID
	Name     string // client name
	Service  string
	Price    float64
	Date     string // YYYY-MM-DD
	Time     string // HH:MM
	Duration int    // minutes
}

// Render produces an RFC 5545 VCALENDAR with a single VEVENT carrying a
// one-hour display reminder. Times are floating local times, matching
// how the shop records bookings.
func Render(ev Event) (string, error) {
	day, err := timeslot.ParseDay(ev.Date)
	if err != nil {
		return "", err
	}
	startMin, err := timeslot.ParseClock(ev.Time)
	if err != nil {
		return "", err
	}
	duration := ev.Duration
	if duration <= 0 {
		duration = timeslot.DefaultStep
	}

	start := day.Add(time.Duration(startMin) * time.Minute)
	end := start.Add(time.Duration(duration) * time.Minute)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"BEGIN:VEVENT",
		"DTSTART:" + stamp(start),
		"DTEND:" + stamp(end),
		"SUMMARY:" + escape("Barbearia Joao Angeiras - "+ev.Service),
		"DESCRIPTION:" + escape(fmt.Sprintf("Marcacao confirmada para %s. Preco: %.0fEUR", ev.Name, ev.Price)),
		"LOCATION:" + escape(location),
		fmt.Sprintf("UID:%s@%s", ev.Ref, uidDomain),
		"BEGIN:VALARM",
		"TRIGGER:-PT60M",
		"ACTION:DISPLAY",
		"DESCRIPTION:Lembrete: Marcacao na Barbearia em 1 hora!",
		"END:VALARM",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n"), nil
}

func stamp(t time.Time) string {
	return t.Format("20060102T150405")
}

// escape applies the RFC 5545 TEXT escaping rules.
func escape(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
