package entity

// DefaultSymbols returns the catalog inserted into an empty database.
// Quotes are reference values until the first refresh.
func DefaultSymbols() []Symbol {
	return []Symbol{
		{Code: "AAPL", Name: "Apple Inc.", Market: "NASDAQ", Price: 184.92, Change: 0.65, ChangePercent: 0.35, IsActive: true, SortKey: 1},
		{Code: "MSFT", Name: "Microsoft Corporation", Market: "NASDAQ", Price: 406.87, Change: -2.13, ChangePercent: -0.52, IsActive: true, SortKey: 2},
		{Code: "GOOGL", Name: "Alphabet Inc.", Market: "NASDAQ", Price: 147.60, Change: 1.36, ChangePercent: 0.93, IsActive: true, SortKey: 3},
		{Code: "AMZN", Name: "Amazon.com Inc.", Market: "NASDAQ", Price: 178.75, Change: -1.05, ChangePercent: -0.58, IsActive: true, SortKey: 4},
		{Code: "TSLA", Name: "Tesla, Inc.", Market: "NASDAQ", Price: 177.80, Change: 2.30, ChangePercent: 1.31, IsActive: true, SortKey: 5},
		{Code: "META", Name: "Meta Platforms, Inc.", Market: "NASDAQ", Price: 476.28, Change: -3.72, ChangePercent: -0.77, IsActive: true, SortKey: 6},
		{Code: "NVDA", Name: "NVIDIA Corporation", Market: "NASDAQ", Price: 900.50, Change: 10.20, ChangePercent: 1.15, IsActive: true, SortKey: 7},
		{Code: "JPM", Name: "JPMorgan Chase & Co.", Market: "NYSE", Price: 190.75, Change: -0.50, ChangePercent: -0.26, IsActive: true, SortKey: 8},
	}
}
