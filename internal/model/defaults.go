package model

// DefaultChart returns the minimal BAS chart a new company ledger is seeded
// with. Importing an SIE file adds whatever further accounts it references.
func DefaultChart() []Account {
	return []Account{
		NewAccount("1510", "Kundfordringar"),
		NewAccount("1930", "Företagskonto"),
		NewAccount("2010", "Eget kapital"),
		NewAccount("2440", "Leverantörsskulder"),
		NewAccount("2610", "Utgående moms"),
		NewAccount("2640", "Ingående moms"),
		NewAccount("3010", "Försäljning"),
		NewAccount("4010", "Inköp av varor"),
		NewAccount("5010", "Lokalhyra"),
		NewAccount("6110", "Kontorsmateriel"),
		NewAccount("6570", "Banktjänster"),
		NewAccount("8310", "Ränteintäkter"),
		NewAccount("8999", "Årets resultat"),
	}
}
