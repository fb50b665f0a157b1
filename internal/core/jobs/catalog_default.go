package jobs

// DefaultCatalog builds the standard room catalog. Order matters for equal
// priorities: it is the tie-break of the spawn scan.
func DefaultCatalog(env *Env) (*Catalog, error) {
	return NewCatalog(
		NewHarvester(env),
		NewMiner(env),
		NewUpgrader(env),
		NewBuilder(env),
		NewGuard(env),
		NewUndertaker(env),
	)
}
