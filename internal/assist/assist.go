// Package assist provides the receipt extraction, chat, and exchange rate
// surfaces behind small interfaces. The bundled implementations return
// deterministic-shaped canned data so the rest of the system can be built and
// exercised without a paid inference or market data dependency.
package assist

import (
	"context"
	"time"
)

// Receipt is the structured result of scanning a receipt image.
type Receipt struct {
	Merchant      string   `json:"merchant"`
	Total         float64  `json:"total"`
	Date          string   `json:"date"`
	Category      string   `json:"category"`
	Items         []string `json:"items"`
	Currency      string   `json:"currency"`
	Confidence    int      `json:"confidence"`
	PaymentMethod string   `json:"payment_method"`
	Location      string   `json:"location"`
}

// RateQuote is a snapshot of exchange rates against a base currency.
type RateQuote struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// ChatContext is the financial snapshot a responder grounds its answers in.
type ChatContext struct {
	TotalSpent       float64
	TotalBudget      float64
	CategorySpending map[string]float64
	RecentItems      []RecentItem
}

// RecentItem is one recent expense in a chat answer.
type RecentItem struct {
	Item   string
	Amount float64
}

// ReceiptExtractor turns an uploaded receipt into structured expense data.
type ReceiptExtractor interface {
	Extract(ctx context.Context, filename string, size int64) (Receipt, error)
}

// ConversationResponder answers a free-form question about the owner's
// finances using the supplied context.
type ConversationResponder interface {
	Respond(ctx context.Context, message string, fin ChatContext) (string, error)
}

// RateProvider quotes exchange rates for a base currency.
type RateProvider interface {
	Quote(ctx context.Context, base string) (RateQuote, error)
}
