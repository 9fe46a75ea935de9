package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Prices() PriceRepository
	Requests() RequestRepository
	Settlements() SettlementRepository
}
