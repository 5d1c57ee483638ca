package synth

import (
	"math"
	"time"

	"github.com/roninwatch/tokendash/internal/model"
	"github.com/roninwatch/tokendash/internal/registry"
)

// Band is the USD price range synthetic prices are drawn from for one
// token category.
type Band struct {
	Min float64
	Max float64
}

// priceBands maps each category to its USD band. Unknown categories fall
// back to the resource band.
var priceBands = map[string]Band{
	registry.CategoryUtility:   {Min: 0.001, Max: 0.01},
	registry.CategoryResource:  {Min: 0.0001, Max: 0.005},
	registry.CategoryMetal:     {Min: 0.0005, Max: 0.008},
	registry.CategoryOrganic:   {Min: 0.0002, Max: 0.003},
	registry.CategoryCrafted:   {Min: 0.001, Max: 0.015},
	registry.CategoryGas:       {Min: 0.0003, Max: 0.006},
	registry.CategoryEnergy:    {Min: 0.0008, Max: 0.012},
	registry.CategoryChemical:  {Min: 0.0004, Max: 0.007},
	registry.CategoryExplosive: {Min: 0.002, Max: 0.025},
}

// maxVolatility is the per-category amplitude cap (in percent) for the
// synthetic change vector. Unknown categories default to 15.
var maxVolatility = map[string]float64{
	registry.CategoryUtility:   8,
	registry.CategoryResource:  15,
	registry.CategoryMetal:     12,
	registry.CategoryOrganic:   20,
	registry.CategoryCrafted:   10,
	registry.CategoryGas:       18,
	registry.CategoryEnergy:    16,
	registry.CategoryChemical:  14,
	registry.CategoryExplosive: 25,
}

const (
	defaultMaxVolatility = 15.0
	maxInt32             = 2147483647.0
	dayMillis            = 86400000.0
)

// Generator derives deterministic prices and percent-change vectors from
// token identity, modulated by a slow time oscillation. Two calls with
// the same (category, name) in the same coarse time window return the
// same values, which keeps the dashboard stable across nearby refreshes.
type Generator struct {
	now func() time.Time
}

// New returns a Generator on the real clock.
func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock returns a Generator on an injected clock, for tests.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// nameHash is a polynomial hash of the token name with signed 32-bit
// wraparound. The wraparound is load-bearing: reference fixtures were
// generated with these exact overflow semantics.
func nameHash(name string) int32 {
	var h int32
	for i := 0; i < len(name); i++ {
		h = h*31 + int32(name[i])
	}
	return h
}

// seed normalizes the name hash into [0,1).
func seed(name string) float64 {
	return math.Abs(float64(nameHash(name))) / maxInt32
}

// BandFor returns the price band for a category.
func BandFor(category string) Band {
	if b, ok := priceBands[category]; ok {
		return b
	}
	return priceBands[registry.CategoryResource]
}

// Price returns a deterministic USD price for the token inside its
// category band, drifted by at most ±10% by the time oscillation.
func (g *Generator) Price(category, name string) float64 {
	band := BandFor(category)
	base := band.Min + seed(name)*(band.Max-band.Min)

	nowMs := float64(g.now().UnixMilli())
	variation := 1 + math.Sin(nowMs/100000)*0.1

	return base * variation
}

// Changes returns the deterministic 24h/7d/30d percent-change vector for
// the token, each horizon rounded to 2 decimal places.
func (g *Generator) Changes(category, name string) model.PriceChanges {
	s := seed(name)

	maxVol, ok := maxVolatility[category]
	if !ok {
		maxVol = defaultMaxVolatility
	}

	t := float64(g.now().UnixMilli())

	h24 := math.Sin(s*1000+t/dayMillis)*maxVol*0.8 +
		math.Cos(s*1500+t/(dayMillis*0.5))*maxVol*0.3
	d7 := math.Sin(s*2000+t/(dayMillis*7))*maxVol*1.2 +
		math.Cos(s*2500+t/(dayMillis*3))*maxVol*0.4
	d30 := math.Sin(s*3000+t/(dayMillis*30))*maxVol*1.8 +
		math.Cos(s*3500+t/(dayMillis*15))*maxVol*0.6

	return model.PriceChanges{
		H24: round2(h24),
		D7:  round2(d7),
		D30: round2(d30),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
