package assist

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
)

var budgetingTips = []string{
	"Track every expense, no matter how small. Small purchases add up quickly!",
	"Use the 50/30/20 rule: 50% for needs, 30% for wants, 20% for savings.",
	"Review your spending weekly to stay on track with your goals.",
	"Set up separate budgets for different categories to better control spending.",
	"Consider using cash for discretionary spending to avoid overspending.",
	"Look for subscription services you're not using and cancel them.",
	"Plan your meals to reduce food waste and dining out expenses.",
}

var fallbackResponses = []string{
	"That's an interesting question! Based on your spending data, I'd recommend reviewing your budget regularly and tracking expenses consistently.",
	"I'm here to help with your financial questions! You can ask me about your spending, budgets, or request financial tips.",
	"Good financial habits include tracking expenses, setting realistic budgets, and reviewing your spending regularly. What specific area would you like help with?",
}

// KeywordResponder answers questions by keyword matching against the owner's
// financial snapshot. It is a stand-in with the same contract a real language
// model integration would have.
type KeywordResponder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewKeywordResponder creates a responder seeded from the clock.
func NewKeywordResponder() *KeywordResponder {
	return NewKeywordResponderWithSeed(time.Now().UnixNano())
}

// NewKeywordResponderWithSeed creates a deterministic responder for tests.
func NewKeywordResponderWithSeed(seed int64) *KeywordResponder {
	return &KeywordResponder{rng: rand.New(rand.NewSource(seed))}
}

func (r *KeywordResponder) pick(options []string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return options[r.rng.Intn(len(options))]
}

// Respond matches the message against known topics and grounds the answer in
// the supplied snapshot.
func (r *KeywordResponder) Respond(_ context.Context, message string, fin ChatContext) (string, error) {
	msg := strings.ToLower(message)

	switch {
	case containsAny(msg, "spending", "spent", "expense"):
		topCategory, topAmount := topSpendingCategory(fin.CategorySpending)
		if topCategory == "" {
			topCategory = "N/A"
		}
		return fmt.Sprintf("You've spent a total of $%.2f so far. Your top spending category is %s with $%.2f spent.",
			fin.TotalSpent, topCategory, topAmount), nil

	case containsAny(msg, "budget", "limit"):
		if fin.TotalBudget == 0 {
			return "You haven't set any budgets yet. Setting budgets helps you control your spending and reach your financial goals. Would you like some tips on budget planning?", nil
		}
		remaining := fin.TotalBudget - fin.TotalSpent
		state := "remaining"
		if remaining < 0 {
			state = "over budget"
		}
		return fmt.Sprintf("Your total budget is $%.2f. You've spent $%.2f, leaving you with $%.2f %s.",
			fin.TotalBudget, fin.TotalSpent, remaining, state), nil

	case containsAny(msg, "tip", "advice", "suggest"):
		return r.pick(budgetingTips), nil

	case containsAny(msg, "category", "categories"):
		if len(fin.CategorySpending) == 0 {
			return "You haven't recorded expenses in any categories yet. Start tracking to see your spending breakdown!", nil
		}
		return "Here's your spending breakdown by category: " + formatCategories(fin.CategorySpending), nil

	case containsAny(msg, "recent", "latest", "last"):
		if len(fin.RecentItems) == 0 {
			return "You don't have any recent expenses recorded.", nil
		}
		parts := make([]string, len(fin.RecentItems))
		for i, item := range fin.RecentItems {
			parts[i] = fmt.Sprintf("$%.2f on %s", item.Amount, item.Item)
		}
		return "Your recent expenses include: " + strings.Join(parts, ", "), nil

	case containsAny(msg, "save", "saving"):
		return "Here are some saving tips: Set up automatic transfers to savings, track your expenses to identify areas to cut back, and consider the 24-hour rule before making non-essential purchases.", nil

	case containsAny(msg, "help", "what can you do"):
		return "I can help you with: analyzing your spending patterns, providing budgeting advice, explaining your expense categories, giving saving tips, and answering questions about your financial data. Just ask me anything about your finances!", nil
	}

	return r.pick(fallbackResponses), nil
}

func containsAny(msg string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}

func topSpendingCategory(spending map[string]float64) (string, float64) {
	var topCategory string
	var topAmount float64
	for category, amount := range spending {
		if amount > topAmount {
			topCategory, topAmount = category, amount
		}
	}
	return topCategory, topAmount
}

func formatCategories(spending map[string]float64) string {
	categories := make([]string, 0, len(spending))
	for category := range spending {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	parts := make([]string, len(categories))
	for i, category := range categories {
		parts[i] = fmt.Sprintf("%s: $%.2f", category, spending[category])
	}
	return strings.Join(parts, ", ")
}
