package api

// AnalyzeRequest carries swap/counterparty parameters in desk units
// (notional in millions, rates in percent, spread in bp). Omitted
// simulation/model fields take the scenario package defaults.
type AnalyzeRequest struct {
	Counterparty string `json:"counterparty"`

	NotionalMM    float64 `json:"notional_mm" binding:"required,gt=0"`
	FixedRatePct  float64 `json:"fixed_rate_pct"`
	MaturityYears float64 `json:"maturity_years" binding:"gte=0"`

	SpreadBP    float64 `json:"spread_bp" binding:"gte=0"`
	RecoveryPct float64 `json:"recovery_pct" binding:"gte=0,lte=100"`

	Simulations    int     `json:"simulations" binding:"gte=0"`
	Seed           uint64  `json:"seed"`
	InitialRatePct float64 `json:"initial_rate_pct"`
	VolatilityPct  float64 `json:"volatility_pct" binding:"gte=0"`
	Kappa          float64 `json:"kappa"`
	ThetaPct       float64 `json:"theta_pct"`
	RiskFreePct    float64 `json:"risk_free_pct"`

	// IncludePaths adds a sample of swap value rows for chart rendering.
	IncludePaths bool `json:"include_paths"`
}

type AnalyzeResponse struct {
	Counterparty string `json:"counterparty,omitempty"`

	CVA    float64 `json:"cva"`
	CVABps float64 `json:"cva_bps"`

	MaxEPE float64 `json:"max_epe"`
	AvgEPE float64 `json:"avg_epe"`
	MaxENE float64 `json:"max_ene"`
	AvgENE float64 `json:"avg_ene"`

	TimeGrid []float64 `json:"time_grid"`
	EPE      []float64 `json:"epe"`
	ENE      []float64 `json:"ene"`
	EPE95    []float64 `json:"epe_95"`
	ENE5     []float64 `json:"ene_5"`

	SamplePaths [][]float64 `json:"sample_paths,omitempty"`
}

type CounterpartyResponse struct {
	Name        string  `json:"name"`
	SpreadBP    float64 `json:"spread_bp"`
	RecoveryPct float64 `json:"recovery_pct"`
}
