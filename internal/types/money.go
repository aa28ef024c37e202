// README: Currency code and rupee formatting shared by pricing, ledger and receipts.
package types

import "strconv"

const CurrencyINR = "INR"

// Rupees renders an amount the way breakdown lines show it: "₹3500", "-₹60".
func Rupees(amount int64) string {
	if amount < 0 {
		return "-₹" + strconv.FormatInt(-amount, 10)
	}
	return "₹" + strconv.FormatInt(amount, 10)
}

// SignedRupees always carries a sign: "+₹875", "-₹100".
func SignedRupees(amount int64) string {
	if amount < 0 {
		return Rupees(amount)
	}
	return "+" + Rupees(amount)
}
