package assist

import (
	"context"
	"strings"
	"testing"
)

func TestMockReceiptExtractor_Extract(t *testing.T) {
	e := NewMockReceiptExtractorWithSeed(42)

	receipt, err := e.Extract(context.Background(), "receipt.jpg", 1024)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if receipt.Merchant == "" {
		t.Error("Extract() returned empty merchant")
	}
	if receipt.Total < 10 || receipt.Total > 125 {
		t.Errorf("Total = %v, want within the 10-125 pattern range", receipt.Total)
	}
	if receipt.Confidence < 92 || receipt.Confidence > 99 {
		t.Errorf("Confidence = %d, want 92-99", receipt.Confidence)
	}
	if receipt.Currency != "USD" {
		t.Errorf("Currency = %v, want USD", receipt.Currency)
	}
	if len(receipt.Items) == 0 {
		t.Error("Extract() returned no line items")
	}
}

func TestMockReceiptExtractor_Rejections(t *testing.T) {
	e := NewMockReceiptExtractorWithSeed(42)
	ctx := context.Background()

	if _, err := e.Extract(ctx, "receipt.jpg", 0); err == nil {
		t.Error("Extract() should reject an empty upload")
	}
	if _, err := e.Extract(ctx, "receipt.pdf", 1024); err == nil {
		t.Error("Extract() should reject a non-image upload")
	}
}

func TestKeywordResponder_Respond(t *testing.T) {
	r := NewKeywordResponderWithSeed(42)
	ctx := context.Background()

	fin := ChatContext{
		TotalSpent:  250.50,
		TotalBudget: 500,
		CategorySpending: map[string]float64{
			"Food & Dining": 150.50,
			"Transportation": 100,
		},
		RecentItems: []RecentItem{{Item: "Coffee", Amount: 4.50}},
	}

	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{"spending question", "how much have I spent?", "$250.50"},
		{"spending names top category", "what is my spending like?", "Food & Dining"},
		{"budget question", "how is my budget?", "$500.00"},
		{"budget remaining", "am I near my limit?", "$249.50 remaining"},
		{"category breakdown", "show my categories", "Food & Dining: $150.50"},
		{"recent expenses", "what were my latest purchases?", "$4.50 on Coffee"},
		{"saving advice", "how do I save more?", "automatic transfers"},
		{"help", "help", "spending patterns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Respond(ctx, tt.message, fin)
			if err != nil {
				t.Fatalf("Respond() error = %v", err)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("Respond(%q) = %q, want it to contain %q", tt.message, got, tt.contains)
			}
		})
	}
}

func TestKeywordResponder_NoBudgets(t *testing.T) {
	r := NewKeywordResponderWithSeed(42)

	got, err := r.Respond(context.Background(), "what is my budget?", ChatContext{})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if !strings.Contains(got, "haven't set any budgets") {
		t.Errorf("Respond() = %q, want the no-budget answer", got)
	}
}

func TestKeywordResponder_Tip(t *testing.T) {
	r := NewKeywordResponderWithSeed(42)

	got, err := r.Respond(context.Background(), "give me a tip", ChatContext{})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	found := false
	for _, tip := range budgetingTips {
		if got == tip {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Respond() = %q, want one of the canned tips", got)
	}
}

func TestKeywordResponder_Fallback(t *testing.T) {
	r := NewKeywordResponderWithSeed(42)

	got, err := r.Respond(context.Background(), "tell me about the weather", ChatContext{})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}

	found := false
	for _, reply := range fallbackResponses {
		if got == reply {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Respond() = %q, want one of the fallback replies", got)
	}
}

func TestMockRateProvider_Quote(t *testing.T) {
	p := NewMockRateProviderWithSeed(42)

	quote, err := p.Quote(context.Background(), "USD")
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}

	if quote.Base != "USD" {
		t.Errorf("Base = %v, want USD", quote.Base)
	}
	if quote.Rates["USD"] != 1 {
		t.Errorf("USD rate = %v, want 1", quote.Rates["USD"])
	}
	if eur := quote.Rates["EUR"]; eur < 0.83 || eur > 0.87 {
		t.Errorf("EUR rate = %v, want near 0.85", eur)
	}
	if jpy := quote.Rates["JPY"]; jpy < 108 || jpy > 112 {
		t.Errorf("JPY rate = %v, want near 110", jpy)
	}
}

func TestMockRateProvider_NonUSDBase(t *testing.T) {
	p := NewMockRateProviderWithSeed(42)

	quote, err := p.Quote(context.Background(), "eur")
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if quote.Base != "EUR" {
		t.Errorf("Base = %v, want EUR", quote.Base)
	}
	if quote.Rates["EUR"] != 1 {
		t.Errorf("EUR rate against itself = %v, want 1", quote.Rates["EUR"])
	}
	if usd := quote.Rates["USD"]; usd < 1.1 || usd > 1.3 {
		t.Errorf("USD rate in EUR base = %v, want near 1.18", usd)
	}
}

func TestMockRateProvider_UnsupportedBase(t *testing.T) {
	p := NewMockRateProviderWithSeed(42)

	if _, err := p.Quote(context.Background(), "XYZ"); err == nil {
		t.Error("Quote() should reject an unsupported base currency")
	}
}
