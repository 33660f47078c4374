package ticker

// Popular is the curated fallback list used when dynamic discovery is
// unavailable or fails.
var Popular = []string{
	// Tech giants
	"AAPL", "MSFT", "GOOGL", "AMZN", "META", "NVDA", "TSLA",
	// Other major tech
	"NFLX", "AMD", "INTC", "ORCL", "ADBE", "CRM", "CSCO",
	// Finance
	"JPM", "BAC", "WFC", "GS", "MS", "V", "MA",
	// Healthcare
	"JNJ", "UNH", "PFE", "ABBV", "MRK", "TMO", "LLY",
	// Consumer
	"WMT", "HD", "DIS", "NKE", "MCD", "SBUX", "COST",
	// Industrial
	"BA", "CAT", "GE", "MMM", "HON", "UPS", "RTX",
	// Energy
	"XOM", "CVX", "COP", "SLB", "EOG",
	// Telecom
	"T", "VZ", "TMUS",
	// Popular growth
	"PLTR", "COIN", "RBLX", "SNOW", "DKNG", "SQ", "SHOP",
}

// Static returns up to limit symbols from the curated list.
func Static(limit int) []string {
	if limit <= 0 || limit > len(Popular) {
		limit = len(Popular)
	}
	out := make([]string, limit)
	copy(out, Popular[:limit])
	return out
}
