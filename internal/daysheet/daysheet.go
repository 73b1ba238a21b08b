// Package daysheet reshapes raw GXWeb booking records into the sorted,
// display-ready schedule for one diary and one calendar day.
package daysheet

import (
	"encoding/json"
	"sort"
	"time"
)

// Booking is the raw record shape returned by GXWeb's /api/booking query,
// including the aliased patient and debtor projections. Fields the backend
// leaves null keep their zero value.
type Booking struct {
	UID               int             `json:"uid"`
	EntityUID         int             `json:"entity_uid"`
	DiaryUID          int             `json:"diary_uid"`
	BookingTypeUID    int             `json:"booking_type_uid"`
	BookingStatusUID  int             `json:"booking_status_uid"`
	PatientUID        int             `json:"patient_uid"`
	StartTime         string          `json:"start_time"`
	Duration          json.RawMessage `json:"duration"`
	TreatingDoctorUID int             `json:"treating_doctor_uid"`
	Reason            string          `json:"reason"`
	InvoiceNr         string          `json:"invoice_nr"`
	Cancelled         bool            `json:"cancelled"`
	UUID              string          `json:"uuid"`
	PatientName       string          `json:"patient_name"`
	PatientSurname    string          `json:"patient_surname"`
	DebtorName        string          `json:"debtor_name"`
	DebtorSurname     string          `json:"debtor_surname"`
}

// Entry is one line of the day sheet. Duration passes through verbatim.
type Entry struct {
	StartTime        string          `json:"start_time"`
	TimePretty       string          `json:"time_pretty"`
	Duration         json.RawMessage `json:"duration"`
	BookingStatusUID int             `json:"booking_status_uid"`
	PatientSurname   string          `json:"patient_surname"`
	PatientName      string          `json:"patient_name"`
	Cancelled        bool            `json:"cancelled"`
	UID              int             `json:"uid"`
}

// startLayouts cover GXWeb's ISO-8601 timestamps with and without a zone
// offset.
var startLayouts = []string{"2006-01-02T15:04:05", time.RFC3339}

func parseStart(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range startLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDay projects raw bookings onto day-sheet entries and sorts them
// ascending by start time, then cancelled (false first), then booking
// status, surname and name. An unparseable start_time sorts as the minimum
// instant and its raw value is kept verbatim in time_pretty.
func FormatDay(bookings []Booking) []Entry {
	type row struct {
		entry Entry
		start time.Time
	}

	rows := make([]row, 0, len(bookings))
	for _, b := range bookings {
		start, ok := parseStart(b.StartTime)

		pretty := ""
		if b.StartTime != "" {
			pretty = b.StartTime
			if ok {
				pretty = start.Format("15:04")
			}
		}

		rows = append(rows, row{
			entry: Entry{
				StartTime:        b.StartTime,
				TimePretty:       pretty,
				Duration:         b.Duration,
				BookingStatusUID: b.BookingStatusUID,
				PatientSurname:   b.PatientSurname,
				PatientName:      b.PatientName,
				Cancelled:        b.Cancelled,
				UID:              b.UID,
			},
			start: start,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.start.Equal(b.start) {
			return a.start.Before(b.start)
		}
		if a.entry.Cancelled != b.entry.Cancelled {
			return !a.entry.Cancelled
		}
		if a.entry.BookingStatusUID != b.entry.BookingStatusUID {
			return a.entry.BookingStatusUID < b.entry.BookingStatusUID
		}
		if a.entry.PatientSurname != b.entry.PatientSurname {
			return a.entry.PatientSurname < b.entry.PatientSurname
		}
		return a.entry.PatientName < b.entry.PatientName
	})

	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = r.entry
	}
	return entries
}
