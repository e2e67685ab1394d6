package assist

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"
)

type merchantPattern struct {
	merchant      string
	category      string
	items         []string
	location      string
	paymentMethod string
	minAmount     float64
	maxAmount     float64
}

var merchantPatterns = []merchantPattern{
	{
		merchant:      "Starbucks Coffee #1234",
		category:      "Food & Dining",
		items:         []string{"Venti Pike Place Roast", "Chocolate Croissant", "Extra Shot Espresso"},
		location:      "Downtown Plaza",
		paymentMethod: "Visa *1234",
		minAmount:     10, maxAmount: 50,
	},
	{
		merchant:      "Whole Foods Market",
		category:      "Groceries",
		items:         []string{"Organic Bananas", "Greek Yogurt", "Sourdough Bread", "Avocados", "Spinach"},
		location:      "Main Street Store",
		paymentMethod: "Mastercard *5678",
		minAmount:     20, maxAmount: 100,
	},
	{
		merchant:      "Shell Gas Station",
		category:      "Transportation",
		items:         []string{"Regular Unleaded - 12.4 gal", "Car Wash Premium"},
		location:      "Highway 101",
		paymentMethod: "Debit Card *9012",
		minAmount:     15, maxAmount: 75,
	},
	{
		merchant:      "Target Store #0987",
		category:      "Shopping",
		items:         []string{"Household Cleaning Supplies", "Personal Care Items", "Office Supplies"},
		location:      "Shopping Center",
		paymentMethod: "Target RedCard",
		minAmount:     15, maxAmount: 65,
	},
	{
		merchant:      "McDonald's Restaurant",
		category:      "Food & Dining",
		items:         []string{"Big Mac Meal", "Large Fries", "Coca-Cola Large", "Apple Pie"},
		location:      "Drive-Thru",
		paymentMethod: "Cash",
		minAmount:     10, maxAmount: 50,
	},
	{
		merchant:      "CVS Pharmacy #2156",
		category:      "Healthcare",
		items:         []string{"Prescription Medication", "Vitamins", "First Aid Supplies"},
		location:      "Main Avenue",
		paymentMethod: "Insurance + Card",
		minAmount:     25, maxAmount: 125,
	},
	{
		merchant:      "Uber Trip",
		category:      "Transportation",
		items:         []string{"Ride from Downtown to Airport", "Uber Black"},
		location:      "City Center",
		paymentMethod: "App Payment",
		minAmount:     15, maxAmount: 75,
	},
}

// MockReceiptExtractor fabricates plausible receipt data from a fixed set of
// merchant patterns with category-appropriate price ranges.
type MockReceiptExtractor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockReceiptExtractor creates an extractor seeded from the clock.
func NewMockReceiptExtractor() *MockReceiptExtractor {
	return NewMockReceiptExtractorWithSeed(time.Now().UnixNano())
}

// NewMockReceiptExtractorWithSeed creates a deterministic extractor for tests.
func NewMockReceiptExtractorWithSeed(seed int64) *MockReceiptExtractor {
	return &MockReceiptExtractor{rng: rand.New(rand.NewSource(seed))}
}

// Extract returns fabricated receipt data for the uploaded image. The
// filename must look like an image; size guards against empty uploads.
func (e *MockReceiptExtractor) Extract(_ context.Context, filename string, size int64) (Receipt, error) {
	if size <= 0 {
		return Receipt{}, fmt.Errorf("empty receipt upload %q", filename)
	}
	if !isImageFilename(filename) {
		return Receipt{}, fmt.Errorf("unsupported receipt format %q, expected an image", filename)
	}

	e.mu.Lock()
	pattern := merchantPatterns[e.rng.Intn(len(merchantPatterns))]
	total := pattern.minAmount + e.rng.Float64()*(pattern.maxAmount-pattern.minAmount)
	confidence := 92 + e.rng.Intn(8)
	e.mu.Unlock()

	return Receipt{
		Merchant:      pattern.merchant,
		Total:         math.Round(total*100) / 100,
		Date:          time.Now().Format("2006-01-02"),
		Category:      pattern.category,
		Items:         pattern.items,
		Currency:      "USD",
		Confidence:    confidence,
		PaymentMethod: pattern.paymentMethod,
		Location:      pattern.location,
	}, nil
}

func isImageFilename(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp", ".heic"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
