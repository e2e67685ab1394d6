package services

import (
	"context"
	"fmt"

	"fintrack/internal/assist"
	"fintrack/internal/ports"
)

// maxRecentItems caps how many expenses a chat answer quotes back.
const maxRecentItems = 3

// AssistService grounds the assist surfaces in the owner's stored data.
type AssistService struct {
	store     ports.Store
	extractor assist.ReceiptExtractor
	responder assist.ConversationResponder
	rates     assist.RateProvider
}

func NewAssistService(store ports.Store, extractor assist.ReceiptExtractor, responder assist.ConversationResponder, rates assist.RateProvider) *AssistService {
	return &AssistService{
		store:     store,
		extractor: extractor,
		responder: responder,
		rates:     rates,
	}
}

// ScanReceipt extracts structured expense data from an uploaded receipt.
func (s *AssistService) ScanReceipt(ctx context.Context, filename string, size int64) (assist.Receipt, error) {
	return s.extractor.Extract(ctx, filename, size)
}

// Chat answers a question using the owner's expenses and budgets as context.
func (s *AssistService) Chat(ctx context.Context, owner, message string) (string, error) {
	expenses, err := s.store.ListExpenses(ctx, owner)
	if err != nil {
		return "", fmt.Errorf("list expenses: %w", err)
	}

	budgets, err := s.store.ListBudgets(ctx, owner)
	if err != nil {
		return "", fmt.Errorf("list budgets: %w", err)
	}

	fin := assist.ChatContext{
		CategorySpending: make(map[string]float64),
	}
	for _, e := range expenses {
		amount := e.Amount.Float()
		fin.TotalSpent += amount
		fin.CategorySpending[e.Category] += amount
		if len(fin.RecentItems) < maxRecentItems {
			fin.RecentItems = append(fin.RecentItems, assist.RecentItem{
				Item:   e.Item,
				Amount: amount,
			})
		}
	}
	for _, b := range budgets {
		fin.TotalBudget += b.Amount.Float()
	}

	return s.responder.Respond(ctx, message, fin)
}

// Rates quotes exchange rates for a base currency.
func (s *AssistService) Rates(ctx context.Context, base string) (assist.RateQuote, error) {
	return s.rates.Quote(ctx, base)
}
