// Package aggregate derives the daily dashboard view model from a fetched
// snapshot. Every function is pure: the clock and the entity sets are inputs,
// nothing here touches the store.
package aggregate

import (
	"math"
	"sort"
	"time"

	"dayboard/internal/store"
)

// Feed item kinds.
const (
	FeedTime     = "time"
	FeedExpense  = "expense"
	FeedIncome   = "income"
	FeedTransfer = "transfer"
)

const unknownLabel = "unknown"

// DayBounds returns [start, end) of the calendar day containing date.
func DayBounds(date time.Time) (time.Time, time.Time) {
	year, month, day := date.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}

type CategoryMinutes struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Emoji      string `json:"emoji"`
	Color      string `json:"color"`
	Minutes    int    `json:"minutes"`
}

type TimeDistribution struct {
	Tracked        []CategoryMinutes `json:"tracked"`
	TrackedMinutes int               `json:"tracked_minutes"`
	IdleMinutes    int               `json:"idle_minutes"`
	ElapsedMinutes int               `json:"elapsed_minutes"`
}

// Distribution sums tracked minutes per time category over logs whose
// start_time falls inside [rangeStart, rangeEnd). A log spanning midnight is
// attributed entirely to its start day. Open logs are measured against now.
// Idle minutes never go negative.
func Distribution(categories []store.Category, logs []store.TimeLog, rangeStart, rangeEnd, now time.Time) TimeDistribution {
	elapsed := minutesBetween(rangeStart, minTime(now, rangeEnd))
	if elapsed < 0 {
		elapsed = 0
	}

	tracked := make([]CategoryMinutes, 0)
	total := 0
	for _, cat := range categories {
		if cat.Kind != store.CategoryTime {
			continue
		}
		var duration time.Duration
		for _, log := range logs {
			if log.CategoryID != cat.ID {
				continue
			}
			if log.StartTime.Before(rangeStart) || !log.StartTime.Before(rangeEnd) {
				continue
			}
			duration += logDuration(log, now)
		}
		minutes := int(math.Round(duration.Minutes()))
		if minutes <= 0 {
			continue
		}
		tracked = append(tracked, CategoryMinutes{
			CategoryID: cat.ID,
			Name:       cat.Name,
			Emoji:      cat.Emoji,
			Color:      cat.Color,
			Minutes:    minutes,
		})
		total += minutes
	}

	idle := elapsed - total
	if idle < 0 {
		idle = 0
	}
	return TimeDistribution{
		Tracked:        tracked,
		TrackedMinutes: total,
		IdleMinutes:    idle,
		ElapsedMinutes: elapsed,
	}
}

// NetWorth sums stored balances over the user-selected account subset.
// Nothing selected means zero, not an error.
func NetWorth(accounts []store.Account, selectedIDs []string) int64 {
	selected := make(map[string]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = struct{}{}
	}
	var total int64
	for _, account := range accounts {
		if _, ok := selected[account.ID]; ok {
			total += account.Balance
		}
	}
	return total
}

// CompletionPercent is completed/total as an integer percentage.
// An empty set is 0, never NaN.
func CompletionPercent(todos []store.Todo) int {
	if len(todos) == 0 {
		return 0
	}
	completed := 0
	for _, todo := range todos {
		if todo.IsCompleted {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(todos)) * 100))
}

// Backlog returns pending todos created before startOfDay, oldest first.
func Backlog(todos []store.Todo, startOfDay time.Time) []store.Todo {
	overdue := make([]store.Todo, 0)
	for _, todo := range todos {
		if !todo.IsCompleted && todo.CreatedAt.Before(startOfDay) {
			overdue = append(overdue, todo)
		}
	}
	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].CreatedAt.Before(overdue[j].CreatedAt)
	})
	return overdue
}

// DayList returns todos created at or after startOfDay, i.e. the selected
// day's own list as opposed to the backlog.
func DayList(todos []store.Todo, startOfDay time.Time) []store.Todo {
	current := make([]store.Todo, 0)
	for _, todo := range todos {
		if !todo.CreatedAt.Before(startOfDay) {
			current = append(current, todo)
		}
	}
	return current
}

// FeedItem is the tagged variant merged into the activity feed.
type FeedItem struct {
	Kind        string    `json:"kind"`
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Label       string    `json:"label"`
	Emoji       string    `json:"emoji,omitempty"`
	Minutes     int       `json:"minutes,omitempty"`
	Amount      int64     `json:"amount,omitempty"`
	Description string    `json:"description,omitempty"`
}

// MergedFeed unions closed time logs, ledger entries and transfers into one
// sequence sorted non-increasing by timestamp, ties keeping fetch order, and
// truncated to window items. Open logs are excluded; a session enters the
// feed when it ends.
func MergedFeed(categories []store.Category, logs []store.TimeLog, entries []store.EntryWithNames, transfers []store.TransferWithNames, window int) []FeedItem {
	byID := make(map[string]store.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	items := make([]FeedItem, 0, len(logs)+len(entries)+len(transfers))
	for _, log := range logs {
		if log.EndTime == nil {
			continue
		}
		label := unknownLabel
		emoji := ""
		if cat, ok := byID[log.CategoryID]; ok {
			label = cat.Name
			emoji = cat.Emoji
		}
		items = append(items, FeedItem{
			Kind:      FeedTime,
			ID:        log.ID,
			Timestamp: *log.EndTime,
			Label:     label,
			Emoji:     emoji,
			Minutes:   int(math.Round(log.EndTime.Sub(log.StartTime).Minutes())),
		})
	}
	for _, entry := range entries {
		kind := FeedExpense
		if entry.Kind == store.EntryIncome {
			kind = FeedIncome
		}
		items = append(items, FeedItem{
			Kind:        kind,
			ID:          entry.ID,
			Timestamp:   entry.CreatedAt,
			Label:       deref(entry.CategoryName),
			Emoji:       deref(entry.CategoryEmoji),
			Amount:      entry.Amount,
			Description: entry.Description,
		})
	}
	for _, transfer := range transfers {
		items = append(items, FeedItem{
			Kind:      FeedTransfer,
			ID:        transfer.ID,
			Timestamp: transfer.CreatedAt,
			Label:     deref(transfer.FromAccountName) + " → " + deref(transfer.ToAccountName),
			Amount:    transfer.Amount,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if window > 0 && len(items) > window {
		items = items[:window]
	}
	return items
}

// HistoryItem is one signed movement in a single account's history view:
// incomes and incoming transfers positive, expenses and outgoing negative.
type HistoryItem struct {
	Kind        string    `json:"kind"`
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Label       string    `json:"label"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description,omitempty"`
}

// AccountHistory merges an account's entries and transfers into one signed,
// descending sequence.
func AccountHistory(accountID string, entries []store.EntryWithNames, transfers []store.TransferWithNames) []HistoryItem {
	items := make([]HistoryItem, 0, len(entries)+len(transfers))
	for _, entry := range entries {
		if entry.AccountID != accountID {
			continue
		}
		amount := entry.Amount
		kind := FeedIncome
		if entry.Kind == store.EntryExpense {
			amount = -amount
			kind = FeedExpense
		}
		items = append(items, HistoryItem{
			Kind:        kind,
			ID:          entry.ID,
			Timestamp:   entry.CreatedAt,
			Label:       deref(entry.CategoryName),
			Amount:      amount,
			Description: entry.Description,
		})
	}
	for _, transfer := range transfers {
		var amount int64
		var label string
		switch accountID {
		case transfer.FromAccountID:
			amount = -transfer.Amount
			label = "to " + deref(transfer.ToAccountName)
		case transfer.ToAccountID:
			amount = transfer.Amount
			label = "from " + deref(transfer.FromAccountName)
		default:
			continue
		}
		items = append(items, HistoryItem{
			Kind:      FeedTransfer,
			ID:        transfer.ID,
			Timestamp: transfer.CreatedAt,
			Label:     label,
			Amount:    amount,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	return items
}

func logDuration(log store.TimeLog, now time.Time) time.Duration {
	end := now
	if log.EndTime != nil && log.EndTime.Before(now) {
		end = *log.EndTime
	}
	if end.Before(log.StartTime) {
		return 0
	}
	return end.Sub(log.StartTime)
}

func minutesBetween(from, to time.Time) int {
	return int(to.Sub(from).Minutes())
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func deref(value *string) string {
	if value == nil || *value == "" {
		return unknownLabel
	}
	return *value
}
