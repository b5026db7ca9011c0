// Package reports serves the financial summaries and report exports.
// Revenue figures are fixed sample series.
package reports

import (
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"smartisp.net/console/internal/clock"
	"smartisp.net/console/internal/models"
	"smartisp.net/console/internal/seed"
	"smartisp.net/console/pkg/logger"
)

// DefaultTimeframe is used for unknown timeframe names.
const DefaultTimeframe = "This Month"

var ErrExportInProgress = errors.New("an export is already in progress")

type Service struct {
	timeframes   []seed.Timeframe
	distribution []models.PackageShare
	transactions []models.Transaction

	clock       clock.Clock
	exportDelay time.Duration
	exporting   atomic.Bool
	logger      *logger.Logger
}

func NewService(timeframes []seed.Timeframe, distribution []models.PackageShare, transactions []models.Transaction, clk clock.Clock, exportDelay time.Duration, log *logger.Logger) *Service {
	return &Service{
		timeframes:   timeframes,
		distribution: distribution,
		transactions: transactions,
		clock:        clk,
		exportDelay:  exportDelay,
		logger:       log.With("component", "reports"),
	}
}

func (s *Service) Timeframes() []string {
	names := make([]string, 0, len(s.timeframes))
	for _, tf := range s.timeframes {
		names = append(names, tf.Name)
	}
	return names
}

// Series returns the resolved timeframe name and its points.
func (s *Service) Series(timeframe string) (string, []models.RevenuePoint) {
	var fallback *seed.Timeframe
	for i, tf := range s.timeframes {
		if tf.Name == timeframe {
			return tf.Name, append([]models.RevenuePoint(nil), tf.Points...)
		}
		if tf.Name == DefaultTimeframe {
			fallback = &s.timeframes[i]
		}
	}
	if fallback == nil {
		return DefaultTimeframe, nil
	}
	return fallback.Name, append([]models.RevenuePoint(nil), fallback.Points...)
}

type Totals struct {
	Timeframe string `json:"timeframe"`
	Revenue   int64  `json:"revenue"`
	Expenses  int64  `json:"expenses"`
	Profit    int64  `json:"profit"`
}

func (s *Service) Totals(timeframe string) Totals {
	name, points := s.Series(timeframe)
	t := Totals{Timeframe: name}
	for _, p := range points {
		t.Revenue += p.Revenue
		t.Expenses += p.Expense
	}
	t.Profit = t.Revenue - t.Expenses
	return t
}

func (s *Service) Distribution() []models.PackageShare {
	return append([]models.PackageShare(nil), s.distribution...)
}

// TransactionFilter keeps Type ("" or "All" for both) entries whose party
// contains Query case-insensitively or whose id contains it.
type TransactionFilter struct {
	Type  string
	Query string
}

func (s *Service) Transactions(f TransactionFilter) []models.Transaction {
	q := strings.ToLower(f.Query)
	out := make([]models.Transaction, 0, len(s.transactions))
	for _, txn := range s.transactions {
		if f.Type != "" && f.Type != "All" && string(txn.Type) != f.Type {
			continue
		}
		if !strings.Contains(strings.ToLower(txn.Client), q) && !strings.Contains(txn.ID, f.Query) {
			continue
		}
		out = append(out, txn)
	}
	return out
}

type CashFlow struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
}

// Flow sums a transaction list by type.
func Flow(txns []models.Transaction) CashFlow {
	var c CashFlow
	for _, txn := range txns {
		switch txn.Type {
		case models.TransactionIncome:
			c.Income += txn.Amount
		case models.TransactionExpense:
			c.Expense += txn.Amount
		}
	}
	return c
}
