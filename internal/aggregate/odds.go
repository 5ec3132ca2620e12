package aggregate

import (
	"sort"

	"matchlake/internal/table"
)

// Odds reduces a raw quote log to one summary row per match. Quotes are
// limited to bet types 5 and 11, minus known placeholder rows (type 5
// with every commission at 0.01, type 11 with both odds at 0.01). Rows
// are ordered by modifiedOn within each match; First* columns take the
// first pre-match quote (liveIndicator unset), Last* columns the last
// live quote, with null prices filled as 0. ModifiedOn carries the
// greatest timestamp seen for the match.
func Odds(raw *table.Table) (*table.Table, error) {
	cols, err := requireColumns(raw,
		"matchId", "betType", "oddsId", "odds1", "odds2",
		"com1", "com2", "comX", "liveIndicator", "modifiedOn")
	if err != nil {
		return nil, err
	}

	groups := make(map[int64][]int)
	var order []int64
	for i := 0; i < raw.NumRows(); i++ {
		betType, ok := asInt(cols["betType"].Value(i))
		if !ok || (betType != 5 && betType != 11) {
			continue
		}
		if betType == 5 && placeholder(cols, i, "com1", "com2", "comX") {
			continue
		}
		if betType == 11 && placeholder(cols, i, "odds1", "odds2") {
			continue
		}
		matchID, ok := asInt(cols["matchId"].Value(i))
		if !ok {
			continue
		}
		if _, seen := groups[matchID]; !seen {
			order = append(order, matchID)
		}
		groups[matchID] = append(groups[matchID], i)
	}

	modified := cols["modifiedOn"]
	live := cols["liveIndicator"]

	matchCol := table.NewColumn("MatchId", table.Int64)
	betTypeCol := table.NewColumn("BetType", table.Int64)
	firstOddsID := table.NewColumn("FirstOddsId", table.Int64)
	lastOddsID := table.NewColumn("LastOddsId", table.Int64)
	priceCols := map[string]*table.Column{}
	for _, name := range []string{
		"FirstOdds1", "LastOdds1", "FirstOdds2", "LastOdds2",
		"FirstCom1", "FirstCom2", "FirstComx", "LastCom1", "LastCom2", "LastComx",
	} {
		priceCols[name] = table.NewColumn(name, table.Float64)
	}
	modifiedCol := table.NewColumn("ModifiedOn", table.String)

	for _, matchID := range order {
		rows := groups[matchID]
		// Stable ascending time order, so first()/last() respect time.
		sort.SliceStable(rows, func(a, b int) bool {
			return newer(modified, rows[b], rows[a])
		})

		var pre, liveRows []int
		for _, r := range rows {
			if flag, ok := asInt(live.Value(r)); ok && flag != 0 {
				liveRows = append(liveRows, r)
			} else {
				pre = append(pre, r)
			}
		}

		matchCol.AppendInt(matchID)
		appendIntOrNull(betTypeCol, cols["betType"].Value(rows[0]))
		appendIntOrNull(firstOddsID, firstValue(cols["oddsId"], pre))
		appendIntOrNull(lastOddsID, lastValue(cols["oddsId"], liveRows))

		priceCols["FirstOdds1"].AppendFloat(floatOrZero(firstValue(cols["odds1"], pre)))
		priceCols["LastOdds1"].AppendFloat(floatOrZero(lastValue(cols["odds1"], liveRows)))
		priceCols["FirstOdds2"].AppendFloat(floatOrZero(firstValue(cols["odds2"], pre)))
		priceCols["LastOdds2"].AppendFloat(floatOrZero(lastValue(cols["odds2"], liveRows)))
		priceCols["FirstCom1"].AppendFloat(floatOrZero(firstValue(cols["com1"], pre)))
		priceCols["FirstCom2"].AppendFloat(floatOrZero(firstValue(cols["com2"], pre)))
		priceCols["FirstComx"].AppendFloat(floatOrZero(firstValue(cols["comX"], pre)))
		priceCols["LastCom1"].AppendFloat(floatOrZero(lastValue(cols["com1"], liveRows)))
		priceCols["LastCom2"].AppendFloat(floatOrZero(lastValue(cols["com2"], liveRows)))
		priceCols["LastComx"].AppendFloat(floatOrZero(lastValue(cols["comX"], liveRows)))

		appendStrOrNull(modifiedCol, maxValue(modified, rows))
	}

	return table.FromColumns(
		matchCol, betTypeCol, firstOddsID, lastOddsID,
		priceCols["FirstOdds1"], priceCols["LastOdds1"],
		priceCols["FirstOdds2"], priceCols["LastOdds2"],
		priceCols["FirstCom1"], priceCols["FirstCom2"], priceCols["FirstComx"],
		priceCols["LastCom1"], priceCols["LastCom2"], priceCols["LastComx"],
		modifiedCol,
	)
}

// placeholder reports whether every named price on row i equals 0.01,
// the feed's "no real quote" marker.
func placeholder(cols map[string]*table.Column, i int, names ...string) bool {
	for _, name := range names {
		f, ok := asFloat(cols[name].Value(i))
		if !ok || f != 0.01 {
			return false
		}
	}
	return true
}

// firstValue returns the first row's cell, nil when rows is empty.
func firstValue(c *table.Column, rows []int) any {
	if len(rows) == 0 {
		return nil
	}
	return c.Value(rows[0])
}

// lastValue returns the last row's cell, nil when rows is empty.
func lastValue(c *table.Column, rows []int) any {
	if len(rows) == 0 {
		return nil
	}
	return c.Value(rows[len(rows)-1])
}

// maxValue returns the greatest non-null cell across rows.
func maxValue(c *table.Column, rows []int) any {
	var best any
	for _, r := range rows {
		v := c.Value(r)
		if v == nil {
			continue
		}
		if best == nil || greater(v, best) {
			best = v
		}
	}
	return best
}

func greater(a, b any) bool {
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
