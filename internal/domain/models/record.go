package models

import "time"

// LiquidityRecord is one published row of the HKMA daily interbank
// liquidity series. Records are immutable once fetched.
type LiquidityRecord struct {
	EndOfDate              time.Time
	OpeningBalance         float64
	ClosingBalance         float64
	ForecastAggregateBalT1 float64
	ForecastAggregateBalT2 float64
	ForecastAggregateBalT3 float64
	ForecastAggregateBalT4 float64
	ForecastAggregateBalU  float64
}

// UserAccount is a registered dashboard user. The password hash is a
// PHC-encoded Argon2id string; the plaintext never leaves the handler.
type UserAccount struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
