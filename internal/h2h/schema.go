// Package h2h defines the canonical head-to-head table: the single
// per-match consolidated table every merge must conform to, and the
// default merge policy for the three record kinds that feed it.
package h2h

import (
	"matchlake/internal/domain"
	"matchlake/internal/merge"
	"matchlake/internal/table"
)

// KeyColumn is the primary key of the consolidated table.
const KeyColumn = "MatchId"

// TimestampColumn is the event timestamp used for odds arbitration.
const TimestampColumn = "ModifiedOn"

// Schema returns the canonical ordered column definition. Every
// persisted or returned consolidated table carries exactly these
// columns, correctly typed, in this order (tolerated extras after).
func Schema() table.Schema {
	return table.Schema{
		{Name: "MatchId", Type: table.Int64},
		{Name: "BetType", Type: table.Int64},
		{Name: "HomeId", Type: table.Int64},
		{Name: "AwayId", Type: table.Int64},
		{Name: "HtHomeScore", Type: table.Int64},
		{Name: "HtAwayScore", Type: table.Int64},
		{Name: "FinalHomeScore", Type: table.Int64},
		{Name: "FinalAwayScore", Type: table.Int64},
		{Name: "EventDate", Type: table.String},
		{Name: "KickOffTime", Type: table.String},
		{Name: "LeagueId", Type: table.Int64},
		{Name: "SportId", Type: table.Int64},
		{Name: "FirstOddsId", Type: table.Int64},
		{Name: "LastOddsId", Type: table.Int64},
		{Name: "FirstOdds1", Type: table.Float64},
		{Name: "LastOdds1", Type: table.Float64},
		{Name: "FirstOdds2", Type: table.Float64},
		{Name: "LastOdds2", Type: table.Float64},
		{Name: "FirstCom1", Type: table.Float64},
		{Name: "FirstCom2", Type: table.Float64},
		{Name: "FirstComx", Type: table.Float64},
		{Name: "LastCom1", Type: table.Float64},
		{Name: "LastCom2", Type: table.Float64},
		{Name: "LastComx", Type: table.Float64},
		{Name: "Winlost_SGD", Type: table.Float64},
		{Name: "TurnOver_SGD", Type: table.Float64},
		{Name: "ModifiedOn", Type: table.String},
	}
}

// Empty returns a zero-row consolidated table with the full canonical
// schema, the base used the first time no prior table exists.
func Empty() *table.Table {
	return table.New(Schema())
}

// RecentColumns are the odds columns where the most recent non-null
// value wins: the "last seen" side of the quote history.
func RecentColumns() []string {
	return []string{"BetType", "LastOddsId", "LastOdds1", "LastOdds2", "LastCom1", "LastCom2", "LastComx"}
}

// OldestColumns are the odds columns where the earliest non-null value
// wins: opening quotes that must never be overwritten by later batches.
func OldestColumns() []string {
	return []string{"FirstOddsId", "FirstOdds1", "FirstOdds2", "FirstCom1", "FirstCom2", "FirstComx"}
}

// DefaultPolicy wires the three record kinds to their merge strategies:
// match results replace, bets accumulate, odds arbitrate by ModifiedOn.
func DefaultPolicy() *merge.Policy {
	return PolicyWithOdds(TimestampColumn, RecentColumns(), OldestColumns())
}

// PolicyWithOdds builds the policy table with a custom odds arbitration
// configuration, keeping the bets and match-result strategies fixed.
func PolicyWithOdds(timestampCol string, recent, oldest []string) *merge.Policy {
	canon := Schema()
	p := merge.NewPolicy()
	p.Register(domain.KindMatchResult, merge.Replace{Key: KeyColumn, Canon: canon})
	p.Register(domain.KindBets, merge.Additive{Key: KeyColumn, Canon: canon})
	p.Register(domain.KindOdds, merge.Timestamped{
		Key:          KeyColumn,
		TimestampCol: timestampCol,
		Recent:       recent,
		Oldest:       oldest,
		Canon:        canon,
	})
	return p
}
