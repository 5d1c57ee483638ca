package registry

// Token categories. Closed set; the synthetic generator keys its price
// bands and volatility tables on these values.
const (
	CategoryUtility   = "utility"
	CategoryResource  = "resource"
	CategoryMetal     = "metal"
	CategoryOrganic   = "organic"
	CategoryCrafted   = "crafted"
	CategoryGas       = "gas"
	CategoryEnergy    = "energy"
	CategoryChemical  = "chemical"
	CategoryExplosive = "explosive"
)

// Descriptor identifies one tracked in-game token on the Ronin chain.
type Descriptor struct {
	Name     string
	Symbol   string
	Contract string
	Decimals int
	Category string
}

// tokens is the fixed tracked set. Order matters: resolution, the output
// array, and best-swap tie-breaking all follow this order.
var tokens = []Descriptor{
	{Name: "COIN", Symbol: "COIN", Contract: "0x7DC167E270D5EF683CEAF4AFCDF2EFBDD667A9A7", Decimals: 18, Category: CategoryUtility},
	{Name: "EARTH", Symbol: "EARTH", Contract: "0xC89384CD2970C916DC75DA8E11524EBE6D77FA07", Decimals: 18, Category: CategoryResource},
	{Name: "WATER", Symbol: "WATER", Contract: "0x57A8EB80D6813AEEEB9C8E770011C016F980D581", Decimals: 18, Category: CategoryResource},
	{Name: "FIRE", Symbol: "FIRE", Contract: "0x0E8EDC6F5CAC5DCAE036AD77FC0DE4E72404E2FB", Decimals: 18, Category: CategoryResource},
	{Name: "MUD", Symbol: "MUD", Contract: "0x1CC30B8FC5D4480B1740B1676E3636FB1270C524", Decimals: 18, Category: CategoryResource},
	{Name: "CLAY", Symbol: "CLAY", Contract: "0xA1AF0DFA0884C7433F82BBA89CB36E5B7B90A5C1", Decimals: 18, Category: CategoryResource},
	{Name: "SAND", Symbol: "SAND", Contract: "0xAC861E0D31080E3B491747A968DF567F81BC8605", Decimals: 18, Category: CategoryResource},
	{Name: "COPPER", Symbol: "COPPER", Contract: "0x64AC88024E1BCC49E3EE145C165914F58998EC9B", Decimals: 18, Category: CategoryMetal},
	{Name: "SEAWATER", Symbol: "SEAWATER", Contract: "0x84A162DFA5D818151BD8C8E804DAE8CD96A0E15D", Decimals: 18, Category: CategoryResource},
	{Name: "ALGAE", Symbol: "ALGAE", Contract: "0x9ACDDDE6564924042E8ACFD5BD137374AF9DFAE5", Decimals: 18, Category: CategoryOrganic},
	{Name: "CERAMICS", Symbol: "CERAMICS", Contract: "0x581E54C7A521519E98D256D39852E4C214CAD697", Decimals: 18, Category: CategoryCrafted},
	{Name: "OXYGEN", Symbol: "O2", Contract: "0xCF2BD4CDDCE432090D6A9725BEC7A6AED77B41F0", Decimals: 18, Category: CategoryGas},
	{Name: "STONE", Symbol: "STONE", Contract: "0xE7AD0FD3C832769437CC1240BFFE5DFF94FC9CF1", Decimals: 18, Category: CategoryResource},
	{Name: "HEAT", Symbol: "HEAT", Contract: "0x415363B5C4600AA776B6C39FED866DEE15179AB8", Decimals: 18, Category: CategoryEnergy},
	{Name: "LAVA", Symbol: "LAVA", Contract: "0x78EB25B148995A4EE373E65E93474EF0ED0FCC9A", Decimals: 18, Category: CategoryResource},
	{Name: "GAS", Symbol: "GAS", Contract: "0x91720484FC3569AF94D5049835048C83A1D32FA2", Decimals: 18, Category: CategoryGas},
	{Name: "CEMENT", Symbol: "CEMENT", Contract: "0x04A581CF47CCC244A5AB715C7A105D63BBCB57CA", Decimals: 18, Category: CategoryCrafted},
	{Name: "GLASS", Symbol: "GLASS", Contract: "0xF7604075A0ED6B4F6537BA2BAB19F1F44F5E7AA4", Decimals: 18, Category: CategoryCrafted},
	{Name: "STEAM", Symbol: "STEAM", Contract: "0x5F146DFF3B6A3E89188A3953D621637452BA4407", Decimals: 18, Category: CategoryGas},
	{Name: "STEEL", Symbol: "STEEL", Contract: "0x798239FEE069E2B5B3C58978AEA92A3D0E16950C", Decimals: 18, Category: CategoryMetal},
	{Name: "FUEL", Symbol: "FUEL", Contract: "0x677203F3FCC63FE85A5ABC8E6479A88DEB86717B", Decimals: 18, Category: CategoryEnergy},
	{Name: "ACID", Symbol: "ACID", Contract: "0xCD0C9F170E395CA1ADC16AE9AE8107D50273E2E8", Decimals: 18, Category: CategoryChemical},
	{Name: "SULFUR", Symbol: "SULFUR", Contract: "0x85120A3D815E95FB8D68129593084BF97905F543", Decimals: 18, Category: CategoryChemical},
	{Name: "ENERGY", Symbol: "ENERGY", Contract: "0xA3F0F293AEE7CE8B4A3807BF9CC07942DA4E51E8", Decimals: 18, Category: CategoryEnergy},
	{Name: "SCREWS", Symbol: "SCREWS", Contract: "0xCC34D8E6A6F61358219D8E8A967ED7F191638449", Decimals: 18, Category: CategoryCrafted},
	{Name: "OIL", Symbol: "OIL", Contract: "0x27908A7052980B7537BCB72757CD59B57D5FAE0B", Decimals: 18, Category: CategoryEnergy},
	{Name: "PLASTICS", Symbol: "PLASTICS", Contract: "0x8EABB6A3A05AF9FB514482A677B12008A2ED6422", Decimals: 18, Category: CategoryCrafted},
	{Name: "FIBERGLASS", Symbol: "FIBERGLASS", Contract: "0xAB6B550C661862E637249D55207125EE6AFE0AAA", Decimals: 18, Category: CategoryCrafted},
	{Name: "HYDROGEN", Symbol: "H2", Contract: "0xB7D11863D0D9C39764F981A95AB8AF0AED714C48", Decimals: 18, Category: CategoryGas},
	{Name: "DYNAMITE", Symbol: "DYNAMITE", Contract: "0x2918938CFDE254CC76B68A4F6992927EE779104A", Decimals: 18, Category: CategoryExplosive},
}

// All returns the tracked token set in canonical order. Callers must not
// mutate the returned slice.
func All() []Descriptor {
	return tokens
}

// Len returns the number of tracked tokens.
func Len() int {
	return len(tokens)
}

// BySymbol returns the descriptor for a ticker symbol, if tracked.
func BySymbol(symbol string) (Descriptor, bool) {
	for _, t := range tokens {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return Descriptor{}, false
}
