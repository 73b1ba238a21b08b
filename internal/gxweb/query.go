package gxweb

import "encoding/json"

// GXWeb selects records with prefix-notation JSON trees passed in the
// "fields" and "filter" query parameters. ["I", ...] is an identifier path
// (dotted foreign keys become extra path segments), ["L", v] a literal,
// ["AS", path, alias] an aliased projection and ["::", x, ["I", type]] a
// cast. The server compares the serialized form against its reference
// client, so every constructor below emits a fixed, fully deterministic
// shape.

// Expr is a node of the filter tree.
type Expr interface {
	json.Marshaler
}

// Ident is an identifier path, e.g. Ident{"patient_uid", "name"}.
type Ident []string

func (i Ident) MarshalJSON() ([]byte, error) {
	node := make([]any, 0, len(i)+1)
	node = append(node, "I")
	for _, part := range i {
		node = append(node, part)
	}
	return json.Marshal(node)
}

// Lit is a typed literal leaf.
type Lit struct {
	Value any
}

func (l Lit) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{"L", l.Value})
}

// Eq compares an identifier with a literal.
type Eq struct {
	Left  Expr
	Right Expr
}

func (e Eq) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{"=", e.Left, e.Right})
}

// Not negates a boolean expression or flag field.
type Not struct {
	Expr Expr
}

func (n Not) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{"NOT", n.Expr})
}

// And joins its operands with the backend's variadic AND operator.
type And []Expr

func (a And) MarshalJSON() ([]byte, error) {
	node := make([]any, 0, len(a)+1)
	node = append(node, "AND")
	for _, expr := range a {
		node = append(node, expr)
	}
	return json.Marshal(node)
}

// Cast applies the backend's "::" cast operator, e.g. truncating a
// timestamp to its date.
type Cast struct {
	Expr Expr
	Type string
}

func (c Cast) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{"::", c.Expr, Ident{c.Type}})
}

// Field is one entry of a projection list: either a bare column name or an
// aliased identifier path.
type Field struct {
	Name  string
	Path  Ident
	Alias string
}

func (f Field) MarshalJSON() ([]byte, error) {
	if f.Alias == "" {
		return json.Marshal(f.Name)
	}
	return json.Marshal([]any{"AS", f.Path, f.Alias})
}

// Col returns a bare column projection.
func Col(name string) Field {
	return Field{Name: name}
}

// As returns an aliased projection of an identifier path.
func As(alias string, path ...string) Field {
	return Field{Path: Ident(path), Alias: alias}
}

// Fields is an ordered projection list. Order defines the response keys
// for bare columns.
type Fields []Field

// Query is a ready-to-serialize (fields, filter) pair for one backend
// resource. Filter is nil when the resource is fetched unfiltered.
type Query struct {
	Fields Fields
	Filter Expr
}

// DiaryQuery lists all diaries. Client-supplied parameters are never mixed
// in; the upstream expects exactly this projection.
func DiaryQuery() Query {
	return Query{
		Fields: Fields{
			Col("uid"),
			Col("entity_uid"),
			Col("treating_doctor_uid"),
			Col("service_center_uid"),
			Col("booking_type_uid"),
			Col("name"),
			Col("uuid"),
			Col("disabled"),
		},
	}
}

// BookingStatusQuery selects the active booking statuses of one diary.
func BookingStatusQuery(entityUID, diaryUID int) Query {
	return Query{
		Fields: Fields{
			Col("uid"),
			Col("entity_uid"),
			Col("diary_uid"),
			Col("name"),
			Col("next_booking_status_uid"),
			Col("is_arrived"),
			Col("is_final"),
			Col("disabled"),
		},
		Filter: And{
			Eq{Ident{"entity_uid"}, Lit{entityUID}},
			Eq{Ident{"diary_uid"}, Lit{diaryUID}},
			Not{Ident{"disabled"}},
		},
	}
}

// BookingsForDayQuery selects one diary's bookings for a calendar date
// (YYYY-MM-DD), dereferencing the patient and, through the patient, the
// billing debtor.
func BookingsForDayQuery(diaryUID int, date string) Query {
	return Query{
		Fields: Fields{
			As("patient_name", "patient_uid", "name"),
			As("patient_surname", "patient_uid", "surname"),
			As("debtor_name", "patient_uid", "debtor_uid", "name"),
			As("debtor_surname", "patient_uid", "debtor_uid", "surname"),
			Col("uid"),
			Col("entity_uid"),
			Col("diary_uid"),
			Col("booking_type_uid"),
			Col("booking_status_uid"),
			Col("patient_uid"),
			Col("start_time"),
			Col("duration"),
			Col("treating_doctor_uid"),
			Col("reason"),
			Col("invoice_nr"),
			Col("cancelled"),
			Col("uuid"),
		},
		Filter: And{
			Eq{Ident{"diary_uid"}, Lit{diaryUID}},
			Eq{Cast{Ident{"start_time"}, "date"}, Lit{date}},
		},
	}
}
