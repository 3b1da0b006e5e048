package domain

import (
	"slices"

	"github.com/samber/lo"
)

// reservedFields are attribute names the experiment runtime already owns on
// participants and sessions. Declaring an extra field with one of these
// names would shadow it.
var reservedFields = []string{
	"id", "code", "label", "vars", "payoff", "session", "participant",
	"config", "round_number", "id_in_session", "id_in_group", "id_in_subsession",
	"group", "subsession", "player", "is_bot", "visited", "mturk_worker_id",
	"mturk_assignment_id", "num_participants", "is_demo", "_index_in_pages",
	"_max_page_index", "_current_app_name", "_current_page_name",
	"time_started_utc", "comment", "real_world_currency_per_point",
	"participation_fee",
}

// IsReservedField reports whether name belongs to the runtime.
func IsReservedField(name string) bool {
	return slices.Contains(reservedFields, name)
}

// ReservedFields returns a copy of the reserved attribute names.
func ReservedFields() []string {
	return slices.Clone(reservedFields)
}

// FieldSet is an ordered list of extra attribute names declared for
// participants or sessions.
type FieldSet []string

func (f FieldSet) Contains(name string) bool {
	return slices.Contains(f, name)
}

// Duplicates returns the names declared more than once.
func (f FieldSet) Duplicates() []string {
	return lo.FindDuplicates(f)
}

// Reserved returns the declared names that clash with runtime attributes.
func (f FieldSet) Reserved() []string {
	return lo.Filter(f, func(name string, _ int) bool {
		return IsReservedField(name)
	})
}
