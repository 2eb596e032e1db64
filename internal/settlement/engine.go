// Package settlement computes net balances for shared trip expenses and the
// payments that settle them.
//
// The engine is a pure function of its inputs: it performs no I/O, keeps no
// state between calls and is safe for concurrent use.
package settlement

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultPlaces is the currency minor-unit precision (cents).
	DefaultPlaces int32 = 2
)

// DefaultTolerance is the largest absolute balance treated as settled.
var DefaultTolerance = decimal.New(1, -2)

// Expense is an expense in normalized form: one payer and the participants
// splitting the amount equally. See Normalize for converting stored expenses.
type Expense struct {
	Amount    decimal.Decimal
	Payer     string
	SplitWith []string
}

// Transaction is a suggested payment that reduces the group imbalance.
type Transaction struct {
	From   string // Participant who owes
	To     string // Participant who is owed
	Amount decimal.Decimal
}

// Balance is one participant's net position.
type Balance struct {
	Participant string
	Amount      decimal.Decimal // Positive = is owed money, Negative = owes money
}

// Result is the output of a settlement computation.
type Result struct {
	// Balances maps every participant to their rounded net balance.
	Balances map[string]decimal.Decimal

	// Transactions settles every balance outside the tolerance.
	Transactions []Transaction

	// Total is the sum of the counted expense amounts.
	Total decimal.Decimal

	// Skipped counts expenses excluded for a missing payer, an empty split
	// or a negative amount.
	Skipped int
}

// SortedBalances returns the balance table ordered by participant name.
func (r Result) SortedBalances() []Balance {
	out := make([]Balance, 0, len(r.Balances))
	for name, amount := range r.Balances {
		out = append(out, Balance{Participant: name, Amount: amount})
	}
	slices.SortFunc(out, func(a, b Balance) int {
		return strings.Compare(a.Participant, b.Participant)
	})
	return out
}

// Option configures an Engine.
type Option func(*Engine)

// WithPlaces sets the minor-unit precision amounts are rounded and split at.
func WithPlaces(places int32) Option {
	return func(e *Engine) {
		if places >= 0 {
			e.places = places
		}
	}
}

// WithTolerance sets the largest absolute balance treated as settled.
// Zero means only exactly-zero balances are settled.
func WithTolerance(tolerance decimal.Decimal) Option {
	return func(e *Engine) {
		if !tolerance.IsNegative() {
			e.tolerance = tolerance
		}
	}
}

// Engine computes settlements. The zero value is not usable; use NewEngine.
type Engine struct {
	places    int32
	tolerance decimal.Decimal
}

// NewEngine creates an Engine with cent precision and a one-cent tolerance,
// adjusted by opts.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		places:    DefaultPlaces,
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Compute runs the default engine. See Engine.Compute.
func Compute(expenses []Expense, participants []string) Result {
	return defaultEngine.Compute(expenses, participants)
}

// Compute returns every participant's net balance and the payments that
// settle them.
//
// Algorithm:
//   - Every participant starts at zero.
//   - For each expense, in input order: the payer is credited the full
//     amount and each member of SplitWith is charged an equal share. The
//     payer is charged a share too when listed in SplitWith.
//   - Shares are whole minor units; leftover units go one each to the
//     members first by name, so balances always sum to exactly zero and do
//     not depend on the order SplitWith lists them.
//   - Balances within the tolerance are settled. The rest are matched
//     greedily: largest debtor pays largest creditor until one side is
//     exhausted.
//
// The greedy matching is deterministic but not always the fewest possible
// payments; finding the true minimum is a subset-sum problem.
//
// If participants is empty the result is empty, whatever the expenses.
func (e *Engine) Compute(expenses []Expense, participants []string) Result {
	result := Result{
		Balances:     make(map[string]decimal.Decimal),
		Transactions: []Transaction{},
		Total:        decimal.Zero,
	}
	if len(participants) == 0 {
		return result
	}

	balances := make(map[string]decimal.Decimal, len(participants))
	for _, p := range participants {
		if p == "" {
			continue
		}
		balances[p] = decimal.Zero
	}

	for _, exp := range expenses {
		members := uniqueParticipants(exp.SplitWith)

		// Skip expenses that can't be attributed
		if exp.Payer == "" || len(members) == 0 || exp.Amount.IsNegative() {
			result.Skipped++
			continue
		}

		amount := exp.Amount.Round(e.places)
		shares := Shares(amount, len(members), e.places)
		result.Total = result.Total.Add(amount)

		// Payer fronted the full amount
		balances[exp.Payer] = balanceOf(balances, exp.Payer).Add(amount)

		// Each member owes their share; leftover units by name
		slices.Sort(members)
		for i, member := range members {
			balances[member] = balanceOf(balances, member).Sub(shares[i])
		}
	}

	for name, amount := range balances {
		result.Balances[name] = amount.Round(e.places)
	}
	result.Transactions = e.match(result.Balances)

	return result
}

// memberBalance is a mutable balance used during matching.
type memberBalance struct {
	name   string
	amount decimal.Decimal
}

// match pairs debtors with creditors, largest first.
func (e *Engine) match(balances map[string]decimal.Decimal) []Transaction {
	var debtors, creditors []memberBalance
	for name, amount := range balances {
		switch {
		case amount.LessThan(e.tolerance.Neg()):
			debtors = append(debtors, memberBalance{name: name, amount: amount})
		case amount.GreaterThan(e.tolerance):
			creditors = append(creditors, memberBalance{name: name, amount: amount})
		}
	}

	// Most negative debtor first; equal balances by name
	slices.SortFunc(debtors, func(a, b memberBalance) int {
		if c := a.amount.Cmp(b.amount); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})
	// Largest creditor first; equal balances by name
	slices.SortFunc(creditors, func(a, b memberBalance) int {
		if c := b.amount.Cmp(a.amount); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})

	transactions := []Transaction{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := decimal.Min(debtor.amount.Abs(), creditor.amount)
		if amount.IsPositive() {
			transactions = append(transactions, Transaction{
				From:   debtor.name,
				To:     creditor.name,
				Amount: amount,
			})
		}

		debtor.amount = debtor.amount.Add(amount)
		creditor.amount = creditor.amount.Sub(amount)

		// Move to next debtor/creditor if fully settled
		if e.settled(debtor.amount) {
			i++
		}
		if e.settled(creditor.amount) {
			j++
		}
	}

	return transactions
}

func (e *Engine) settled(amount decimal.Decimal) bool {
	return amount.IsZero() || amount.Abs().LessThan(e.tolerance)
}

func balanceOf(balances map[string]decimal.Decimal, name string) decimal.Decimal {
	if b, ok := balances[name]; ok {
		return b
	}
	return decimal.Zero
}

// uniqueParticipants drops blank and repeated names, keeping first-seen order.
func uniqueParticipants(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
