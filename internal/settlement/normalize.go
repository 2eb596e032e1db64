package settlement

import (
	"strings"

	"github.com/mmynk/tripsplit/internal/models"
)

// Directory resolves collaborator user IDs to participant display strings.
type Directory interface {
	Resolve(userID string) (string, bool)
}

// DirectoryFunc adapts an ordinary function to a Directory.
type DirectoryFunc func(userID string) (string, bool)

// Resolve calls f(userID).
func (f DirectoryFunc) Resolve(userID string) (string, bool) {
	return f(userID)
}

// collaboratorDirectory maps user IDs to collaborator labels.
type collaboratorDirectory map[string]string

func (d collaboratorDirectory) Resolve(userID string) (string, bool) {
	label, ok := d[userID]
	return label, ok && label != ""
}

// NewCollaboratorDirectory builds a Directory that resolves each
// collaborator's user ID to their display name, falling back to email.
func NewCollaboratorDirectory(collaborators []models.Collaborator) Directory {
	d := make(collaboratorDirectory, len(collaborators))
	for _, c := range collaborators {
		d[c.UserID] = strings.TrimSpace(c.Label())
	}
	return d
}

// expenseAdapter converts one stored expense shape into engine form.
type expenseAdapter func(models.Expense, Directory) Expense

func adapterFor(e models.Expense) expenseAdapter {
	if e.IsLegacy() {
		return fromLegacy
	}
	return fromLinked
}

// fromLegacy uses the display names stored on the expense.
func fromLegacy(e models.Expense, _ Directory) Expense {
	split := make([]string, 0, len(e.SplitWith))
	for _, name := range e.SplitWith {
		split = append(split, strings.TrimSpace(name))
	}
	return Expense{
		Amount:    e.Amount,
		Payer:     strings.TrimSpace(e.PaidBy),
		SplitWith: split,
	}
}

// fromLinked resolves collaborator user IDs. An unknown payer leaves Payer
// empty and unknown split members are dropped; the engine skips the expense
// if nothing attributable remains.
func fromLinked(e models.Expense, dir Directory) Expense {
	out := Expense{Amount: e.Amount}
	if payer, ok := dir.Resolve(e.PaidByUserID); ok {
		out.Payer = payer
	}
	for _, id := range e.SplitWithUserIDs {
		if name, ok := dir.Resolve(id); ok {
			out.SplitWith = append(out.SplitWith, name)
		}
	}
	return out
}

// Normalize converts stored expenses of either shape into engine form,
// preserving order.
func Normalize(expenses []models.Expense, dir Directory) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, adapterFor(e)(e, dir))
	}
	return out
}

// Participants returns the union of collaborator labels and the legacy names
// referenced by expenses, deduplicated by display string in first-seen order.
func Participants(collaborators []models.Collaborator, expenses []models.Expense) []string {
	var names []string
	for _, c := range collaborators {
		names = append(names, strings.TrimSpace(c.Label()))
	}
	for _, e := range expenses {
		if !e.IsLegacy() {
			continue
		}
		names = append(names, strings.TrimSpace(e.PaidBy))
		for _, n := range e.SplitWith {
			names = append(names, strings.TrimSpace(n))
		}
	}
	return uniqueParticipants(names)
}
