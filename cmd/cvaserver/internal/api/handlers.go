package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meenmo/cvalib/cva"
	"github.com/meenmo/cvalib/marketdata"
	"github.com/meenmo/cvalib/report"
	"github.com/meenmo/cvalib/scenario"
)

type Handlers struct {
	Health         *HealthHandler
	Analysis       *AnalysisHandler
	Counterparties *CounterpartyHandler
}

func NewHandlers(cache ResultCache, feed marketdata.CreditFeed) *Handlers {
	return &Handlers{
		Health:         &HealthHandler{cache: cache},
		Analysis:       &AnalysisHandler{cache: cache},
		Counterparties: &CounterpartyHandler{feed: feed},
	}
}

type HealthHandler struct {
	cache ResultCache
}

func (h *HealthHandler) Check(c *gin.Context) {
	cacheStatus := "connected"
	if p, ok := h.cache.(interface{ Ping() error }); ok {
		if err := p.Ping(); err != nil {
			cacheStatus = "disconnected"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"cache_backend": h.cache.Name(),
		"cache_status":  cacheStatus,
	})
}

type AnalysisHandler struct {
	cache ResultCache
}

func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request format",
			"details": err.Error(),
		})
		return
	}

	key, err := requestKey(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if cached, ok := h.cache.Get(key); ok {
		c.Data(http.StatusOK, "application/json", cached)
		return
	}

	contract, credit, cfg := req.analysis().Inputs()
	res, err := cva.Analyze(contract, credit, cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, cva.ErrValidation) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	s := report.Summarize(res)
	resp := AnalyzeResponse{
		Counterparty: req.Counterparty,
		CVA:          s.CVA,
		CVABps:       s.CVABps,
		MaxEPE:       s.MaxEPE,
		AvgEPE:       s.AvgEPE,
		MaxENE:       s.MaxENE,
		AvgENE:       s.AvgENE,
		TimeGrid:     res.TimeGrid,
		EPE:          res.Profile.EPE,
		ENE:          res.Profile.ENE,
		EPE95:        res.Profile.EPE95,
		ENE5:         res.Profile.ENE5,
	}
	if req.IncludePaths {
		resp.SamplePaths = report.SamplePaths(res, report.DefaultSamplePaths)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	// Best effort: a cache write failure must not fail the request.
	_ = h.cache.Set(key, body)

	c.Data(http.StatusOK, "application/json", body)
}

// requestKey digests the canonical JSON encoding of the request.
func requestKey(req AnalyzeRequest) (string, error) {
	canonical, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return "cva:" + hex.EncodeToString(sum[:]), nil
}

func (req AnalyzeRequest) analysis() scenario.Analysis {
	return scenario.Analysis{
		Counterparty:   req.Counterparty,
		NotionalMM:     req.NotionalMM,
		FixedRatePct:   req.FixedRatePct,
		MaturityYears:  req.MaturityYears,
		SpreadBP:       req.SpreadBP,
		RecoveryPct:    req.RecoveryPct,
		Simulations:    req.Simulations,
		Seed:           req.Seed,
		InitialRatePct: req.InitialRatePct,
		VolatilityPct:  req.VolatilityPct,
		Kappa:          req.Kappa,
		ThetaPct:       req.ThetaPct,
		RiskFreePct:    req.RiskFreePct,
	}
}

type CounterpartyHandler struct {
	feed marketdata.CreditFeed
}

func (h *CounterpartyHandler) List(c *gin.Context) {
	entries, err := h.feed.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]CounterpartyResponse, len(entries))
	for i, cp := range entries {
		out[i] = CounterpartyResponse{Name: cp.Name, SpreadBP: cp.SpreadBP, RecoveryPct: cp.RecoveryPct}
	}
	c.JSON(http.StatusOK, gin.H{"counterparties": out})
}

func (h *CounterpartyHandler) Get(c *gin.Context) {
	name := c.Param("name")
	cp, err := h.feed.Counterparty(name)
	if err != nil {
		if errors.Is(err, marketdata.ErrUnknownCounterparty) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown counterparty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, CounterpartyResponse{Name: cp.Name, SpreadBP: cp.SpreadBP, RecoveryPct: cp.RecoveryPct})
}
