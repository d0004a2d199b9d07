package config

// SearchSettings configures the search core and its caches, binding
// directly to the UCI options spec.md §6 lists (hash, multi_pv,
// use_book, use_egbb, verbose, output_delay).
type SearchSettings struct {
	HashSizeMB     int
	PawnHashSizeMB int
	MultiPV        int
	UseBook        bool
	UseEgbb        bool
	Verbose        bool
	OutputDelayMS  int
}
