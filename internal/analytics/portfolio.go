package analytics

import (
	"errors"

	"cryptofeed/internal/market"
)

var ErrNoHoldings = errors.New("no series to analyze")

// Holding is one symbol's figures inside a portfolio.
type Holding struct {
	Symbol     market.Symbol
	Source     string
	Degraded   bool
	Price      float64
	ReturnPct  float64
	Volatility Metric
}

// Portfolio holds unweighted averages across holdings. Sharpe is
// AvgReturn / AvgVolatility with no risk-free rate; it is invalid when the
// average volatility is zero.
type Portfolio struct {
	Holdings      []Holding
	AvgReturn     float64
	AvgVolatility float64
	Sharpe        Metric
}

func AnalyzePortfolio(series []*market.Series) (Portfolio, error) {
	var p Portfolio
	var returns, vols []float64
	for _, s := range series {
		a, err := AnalyzeSingle(s)
		if err != nil {
			continue
		}
		h := Holding{
			Symbol:     a.Symbol,
			Source:     a.Source,
			Degraded:   a.Degraded,
			Price:      a.LatestClose,
			ReturnPct:  a.ChangePct.Value,
			Volatility: a.Volatility,
		}
		p.Holdings = append(p.Holdings, h)
		returns = append(returns, h.ReturnPct)
		if h.Volatility.Valid {
			vols = append(vols, h.Volatility.Value)
		}
	}
	if len(p.Holdings) == 0 {
		return Portfolio{}, ErrNoHoldings
	}
	p.AvgReturn = Mean(returns)
	p.AvgVolatility = Mean(vols)
	if p.AvgVolatility > 0 {
		p.Sharpe = some(p.AvgReturn / p.AvgVolatility)
	}
	return p, nil
}
