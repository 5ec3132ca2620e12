package aggregate

import (
	"matchlake/internal/table"
)

// matchColumns maps the camelCase result-source columns to their
// canonical names, in canonical output order.
var matchColumns = []struct {
	source, target string
	typ            table.Type
}{
	{"homeId", "HomeId", table.Int64},
	{"awayId", "AwayId", table.Int64},
	{"matchId", "MatchId", table.Int64},
	{"eventDate", "EventDate", table.String},
	{"kickOffTime", "KickOffTime", table.String},
	{"finalHomeScore", "FinalHomeScore", table.Int64},
	{"finalAwayScore", "FinalAwayScore", table.Int64},
	{"htHomeScore", "HtHomeScore", table.Int64},
	{"htAwayScore", "HtAwayScore", table.Int64},
	{"leagueId", "LeagueId", table.Int64},
	{"sportId", "SportId", table.Int64},
}

// MatchResults reduces a raw match-result log to one row per match: the
// record with the greatest modifiedOn, for tracked sports only, renamed
// to canonical column names. Matches appear in first-seen order.
func MatchResults(raw *table.Table) (*table.Table, error) {
	required := []string{"modifiedOn"}
	for _, m := range matchColumns {
		required = append(required, m.source)
	}
	cols, err := requireColumns(raw, required...)
	if err != nil {
		return nil, err
	}

	modified := cols["modifiedOn"]
	latest := make(map[int64]int) // match id -> row index of newest record
	var order []int64

	for i := 0; i < raw.NumRows(); i++ {
		sport, ok := asInt(cols["sportId"].Value(i))
		if !ok || !sportIDs[sport] {
			continue
		}
		matchID, ok := asInt(cols["matchId"].Value(i))
		if !ok {
			continue
		}
		prev, seen := latest[matchID]
		if !seen {
			latest[matchID] = i
			order = append(order, matchID)
			continue
		}
		if newer(modified, i, prev) {
			latest[matchID] = i
		}
	}

	out := make([]*table.Column, len(matchColumns))
	for ci, m := range matchColumns {
		col := table.NewColumn(m.target, m.typ)
		src := cols[m.source]
		for _, id := range order {
			row := latest[id]
			if m.typ == table.Int64 {
				appendIntOrNull(col, src.Value(row))
			} else {
				appendStrOrNull(col, src.Value(row))
			}
		}
		out[ci] = col
	}
	return table.FromColumns(out...)
}

// newer reports whether row i carries a strictly greater timestamp than
// row j. A null timestamp never wins, so ties and nulls keep the
// earlier record.
func newer(ts *table.Column, i, j int) bool {
	a, b := ts.Value(i), ts.Value(j)
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	switch av := a.(type) {
	case int64:
		return av > b.(int64)
	case float64:
		return av > b.(float64)
	case string:
		return av > b.(string)
	}
	return false
}
