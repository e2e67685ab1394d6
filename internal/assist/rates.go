package assist

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// baseRates are mid-market USD rates the mock provider fluctuates around.
var baseRates = map[string]struct {
	rate   float64
	jitter float64
}{
	"USD": {1, 0},
	"EUR": {0.85, 0.02},
	"GBP": {0.73, 0.02},
	"JPY": {110, 2},
	"CAD": {1.25, 0.03},
	"AUD": {1.35, 0.03},
	"CHF": {0.92, 0.02},
	"CNY": {6.45, 0.1},
	"INR": {74.5, 1},
}

// MockRateProvider quotes USD-anchored rates with small random fluctuations
// so repeated fetches look live.
type MockRateProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockRateProvider creates a provider seeded from the clock.
func NewMockRateProvider() *MockRateProvider {
	return NewMockRateProviderWithSeed(time.Now().UnixNano())
}

// NewMockRateProviderWithSeed creates a deterministic provider for tests.
func NewMockRateProviderWithSeed(seed int64) *MockRateProvider {
	return &MockRateProvider{rng: rand.New(rand.NewSource(seed))}
}

// Quote returns rates for every supported currency expressed in the base
// currency. Base must itself be a supported code.
func (p *MockRateProvider) Quote(_ context.Context, base string) (RateQuote, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	baseUSD, ok := baseRates[base]
	if !ok {
		return RateQuote{}, fmt.Errorf("unsupported base currency %q", base)
	}

	p.mu.Lock()
	usdRates := make(map[string]float64, len(baseRates))
	for code, r := range baseRates {
		usdRates[code] = r.rate + (p.rng.Float64()-0.5)*r.jitter
	}
	baseRate := baseUSD.rate + (p.rng.Float64()-0.5)*baseUSD.jitter
	p.mu.Unlock()

	if base == "USD" {
		baseRate = 1
	}

	rates := make(map[string]float64, len(usdRates))
	for code, r := range usdRates {
		if code == base {
			rates[code] = 1
			continue
		}
		rates[code] = r / baseRate
	}

	return RateQuote{
		Base:      base,
		Rates:     rates,
		FetchedAt: time.Now().UTC(),
	}, nil
}
