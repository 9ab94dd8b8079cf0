package types

// WordGroupLink is the N:M association between a word and a group. The pair
// (WordID, GroupID) is the composite primary key; there is no surrogate id.
type WordGroupLink struct {
	WordID  int64
	GroupID int64
}
