// Package units converts between satoshis (the smallest on-chain unit) and
// BTC, and translates fiat thresholds into satoshi thresholds. All functions
// are pure.
package units

import "math"

// SatoshisPerBTC is the fixed smallest-unit ratio: 1 BTC = 10^8 satoshis.
const SatoshisPerBTC = 100_000_000

// ToBTC converts a satoshi amount to BTC.
func ToBTC(sats uint64) float64 {
	return float64(sats) / SatoshisPerBTC
}

// ToSatoshis converts a BTC amount to satoshis, rounding to the nearest
// whole satoshi to absorb float representation error.
func ToSatoshis(btc float64) uint64 {
	return uint64(math.Round(btc * SatoshisPerBTC))
}

// ThresholdSats converts a fiat threshold into a satoshi threshold at the
// given fiat-per-BTC rate. The BTC amount is rounded up, so a transaction
// worth exactly the fiat threshold always qualifies. rate must be positive;
// callers are expected to fall back to a static satoshi threshold when no
// usable rate is available.
func ThresholdSats(fiatThreshold, rate float64) uint64 {
	btc := math.Ceil(fiatThreshold / rate)
	return ToSatoshis(btc)
}
