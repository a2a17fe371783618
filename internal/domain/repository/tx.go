package repository

// Tx agrupa los repositorios atados a una misma transacción de BD.
// Los TxRunner de cada caso de uso reciben este bundle para garantizar que
// todas las mutaciones de una operación compartan Commit/Rollback.
type Tx struct {
	Parties     PartyRepository
	Ledger      LedgerRepository
	Products    ProductRepository
	Containers  ContainerRepository
	Intakes     GoodsIntakeRepository
	Outflows    SalesOutflowRepository
	Collections CollectionRepository
	Payments    PaymentRepository
	Treasury    TreasuryRepository
	Checks      CheckRepository
	Effects     EffectRepository
}
