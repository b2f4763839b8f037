package repositories

// RepositoryProvider bundles the repository implementations handed to the
// service layer.
type RepositoryProvider struct {
	MappingRepo  MappingRepository
	JournalRepo  JournalEntryRepository
	ClosureRepo  ClosureRepository
	BalanceRepo  BalanceHistoryProvider
	InterestRepo InterestPostingRepository
}
