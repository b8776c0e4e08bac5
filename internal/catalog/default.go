package catalog

// defaultBookmakers is the built-in catalog. Brazil and International share
// the "int" short code upstream; it is kept as-is.
var defaultBookmakers = []Bookmaker{
	{Name: "sportybet", Country: "Nigeria", CountryShortCode: "ng"},
	{Name: "sportybet", Country: "Ghana", CountryShortCode: "gh"},
	{Name: "sportybet", Country: "Uganda", CountryShortCode: "ug"},
	{Name: "sportybet", Country: "Tanzania", CountryShortCode: "tz"},
	{Name: "sportybet", Country: "Zambia", CountryShortCode: "zm"},
	{Name: "sportybet", Country: "Brazil", CountryShortCode: "int"},
	{Name: "sportybet", Country: "International", CountryShortCode: "int"},
	{Name: "football", Country: "Nigeria", CountryShortCode: "ng"},
	{Name: "football", Country: "Ghana", CountryShortCode: "gh"},
	{Name: "msport", Country: "Nigeria", CountryShortCode: "ng"},
	{Name: "msport", Country: "Ghana", CountryShortCode: "gh"},
	{Name: "msport", Country: "Uganda", CountryShortCode: "ug"},
	{Name: "bangbet", Country: "Global", CountryShortCode: "global", OutputDisabled: true},
	{Name: "stake", Country: "Global", CountryShortCode: "global", OutputDisabled: true},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, _ := New(defaultBookmakers)
	return c
}
