package domain

// CurrencyCode is a 3-letter ISO-4217 style currency code.
type CurrencyCode string

// Supported currency codes. The set is compiled in; there is no runtime
// registration of currencies.
const (
	CRC CurrencyCode = "CRC"
	USD CurrencyCode = "USD"
	EUR CurrencyCode = "EUR"
	CAD CurrencyCode = "CAD"
)

// BaseCurrency is the designated local currency. Conversion into it uses the
// Buy rate, conversion out of it uses the Sell rate.
const BaseCurrency = CRC

// Currency holds the compiled-in metadata for a supported currency.
type Currency struct {
	CurrencyCode CurrencyCode `json:"currencyCode"` // e.g., "USD"
	Name         string       `json:"name"`         // e.g., "US Dollar"
	Symbol       string       `json:"symbol"`       // e.g., "$"
	Precision    int          `json:"precision"`    // minor-unit exponent (decimal places)
}

// supportedCurrencies is the closed currency set. The slice order is
// significant: chain conversion tries intermediate currencies in this order
// and stops at the first that resolves.
var supportedCurrencies = []Currency{
	{CurrencyCode: CRC, Name: "Costa Rican Colon", Symbol: "₡", Precision: 2},
	{CurrencyCode: USD, Name: "US Dollar", Symbol: "$", Precision: 2},
	{CurrencyCode: EUR, Name: "Euro", Symbol: "€", Precision: 2},
	{CurrencyCode: CAD, Name: "Canadian Dollar", Symbol: "C$", Precision: 2},
}

// SupportedCurrencies returns the compiled-in currency set in enumeration order.
func SupportedCurrencies() []Currency {
	out := make([]Currency, len(supportedCurrencies))
	copy(out, supportedCurrencies)
	return out
}

// CurrencyByCode looks up the metadata for a currency code.
func CurrencyByCode(code CurrencyCode) (Currency, bool) {
	for _, c := range supportedCurrencies {
		if c.CurrencyCode == code {
			return c, true
		}
	}
	return Currency{}, false
}

// IsSupportedCurrency reports whether code is part of the compiled-in set.
func IsSupportedCurrency(code CurrencyCode) bool {
	_, ok := CurrencyByCode(code)
	return ok
}

// MustCurrency returns the metadata for code and panics if the code is not
// supported. Callers validate codes at the API boundary; an unsupported code
// reaching this point is a programming error, not a runtime condition.
func MustCurrency(code CurrencyCode) Currency {
	c, ok := CurrencyByCode(code)
	if !ok {
		panic("unsupported currency code: " + string(code))
	}
	return c
}
