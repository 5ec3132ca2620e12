package aggregate

import (
	"matchlake/internal/table"
)

// Bets rolls settled bet records up into per-match money totals:
//
//	TurnOver_SGD = sum(Actual_Stake * ActualRate)
//	Winlost_SGD  = sum((Actual_Stake - Winlost) * ActualRate)
//
// Only tracked sports with a settled status (WON, LOSE, DRAW) count.
// Null numeric inputs are treated as zero. Matches appear in first-seen
// order.
func Bets(raw *table.Table) (*table.Table, error) {
	cols, err := requireColumns(raw, "MatchId", "Actual_Stake", "ActualRate", "Winlost", "SportId", "Status")
	if err != nil {
		return nil, err
	}

	settled := map[string]bool{"WON": true, "LOSE": true, "DRAW": true}

	type totals struct {
		turnover float64
		winlost  float64
	}
	sums := make(map[int64]*totals)
	var order []int64

	for i := 0; i < raw.NumRows(); i++ {
		sport, ok := asInt(cols["SportId"].Value(i))
		if !ok || !sportIDs[sport] {
			continue
		}
		status, ok := asString(cols["Status"].Value(i))
		if !ok || !settled[status] {
			continue
		}
		matchID, ok := asInt(cols["MatchId"].Value(i))
		if !ok {
			continue
		}

		stake := floatOrZero(cols["Actual_Stake"].Value(i))
		rate := floatOrZero(cols["ActualRate"].Value(i))
		winlost := floatOrZero(cols["Winlost"].Value(i))

		t := sums[matchID]
		if t == nil {
			t = &totals{}
			sums[matchID] = t
			order = append(order, matchID)
		}
		t.turnover += stake * rate
		t.winlost += (stake - winlost) * rate
	}

	matchCol := table.NewColumn("MatchId", table.Int64)
	turnoverCol := table.NewColumn("TurnOver_SGD", table.Float64)
	winlostCol := table.NewColumn("Winlost_SGD", table.Float64)
	for _, id := range order {
		matchCol.AppendInt(id)
		turnoverCol.AppendFloat(sums[id].turnover)
		winlostCol.AppendFloat(sums[id].winlost)
	}
	return table.FromColumns(matchCol, turnoverCol, winlostCol)
}
