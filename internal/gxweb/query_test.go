package gxweb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestDiaryQuery(t *testing.T) {
	q := DiaryQuery()

	assert.JSONEq(t,
		`["uid","entity_uid","treating_doctor_uid","service_center_uid","booking_type_uid","name","uuid","disabled"]`,
		marshal(t, q.Fields))
	assert.Nil(t, q.Filter)
}

func TestBookingStatusQuery(t *testing.T) {
	q := BookingStatusQuery(7, 3)

	assert.JSONEq(t,
		`["uid","entity_uid","diary_uid","name","next_booking_status_uid","is_arrived","is_final","disabled"]`,
		marshal(t, q.Fields))
	assert.JSONEq(t,
		`["AND",["=",["I","entity_uid"],["L",7]],["=",["I","diary_uid"],["L",3]],["NOT",["I","disabled"]]]`,
		marshal(t, q.Filter))
}

func TestBookingsForDayQuery(t *testing.T) {
	q := BookingsForDayQuery(12, "2024-01-01")

	assert.JSONEq(t,
		`[
			["AS",["I","patient_uid","name"],"patient_name"],
			["AS",["I","patient_uid","surname"],"patient_surname"],
			["AS",["I","patient_uid","debtor_uid","name"],"debtor_name"],
			["AS",["I","patient_uid","debtor_uid","surname"],"debtor_surname"],
			"uid","entity_uid","diary_uid","booking_type_uid","booking_status_uid",
			"patient_uid","start_time","duration","treating_doctor_uid","reason",
			"invoice_nr","cancelled","uuid"
		]`,
		marshal(t, q.Fields))
	assert.JSONEq(t,
		`["AND",["=",["I","diary_uid"],["L",12]],["=",["::",["I","start_time"],["I","date"]],["L","2024-01-01"]]]`,
		marshal(t, q.Filter))
}

func TestQueryDeterminism(t *testing.T) {
	// the upstream compares serialized queries against its reference
	// client, so repeated construction must serialize byte-identically
	first := marshal(t, BookingStatusQuery(7, 3).Filter)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, marshal(t, BookingStatusQuery(7, 3).Filter))
	}
}
