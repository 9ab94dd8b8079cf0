package types

// Standard table names used by the SQLite backend.
const (
	TableJournals      = "journals"
	TableGroups        = "groups"
	TableWords         = "words"
	TableWordsInGroups = "words_in_groups"
)

// StandardTableNames lists all table names for enumeration.
var StandardTableNames = []string{
	TableJournals,
	TableGroups,
	TableWords,
	TableWordsInGroups,
}
