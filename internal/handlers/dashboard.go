package handlers

import (
	"net/http"

	"dayboard/internal/aggregate"
	"dayboard/internal/money"
	"dayboard/internal/store"
)

// Dashboard assembles the full day view in one response: time distribution,
// tracker state, todos with backlog, net worth, the activity feed and recent
// notes. ?date=YYYY-MM-DD selects the day, ?accounts=id1,id2 narrows the
// net-worth subset: absent means every account counts, present but empty
// means none do.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	date, err := parseDate(r.URL.Query().Get("date"), now)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_date")
		return
	}

	snap, err := h.snapshots.Load(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load dashboard")
		return
	}

	startOfDay, endOfDay := aggregate.DayBounds(date)
	selected, filtered := parseIDList(r.URL.Query(), "accounts")
	if !filtered {
		for _, account := range snap.Accounts {
			selected = append(selected, account.ID)
		}
	}

	distribution := aggregate.Distribution(snap.Categories, snap.TimeLogs, startOfDay, endOfDay, now)
	netWorth := aggregate.NetWorth(snap.Accounts, selected)
	dayTodos := aggregate.DayList(snap.Todos, startOfDay)
	backlog := aggregate.Backlog(snap.Todos, startOfDay)
	feed := aggregate.MergedFeed(snap.Categories, snap.TimeLogs, snap.Entries, snap.Transfers, h.cfg.FeedWindow)

	notes, err := h.notes.ListRecent(r.Context(), h.cfg.RecentNotesLimit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load notes")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"date":    startOfDay.Format("2006-01-02"),
		"tracker": h.tracker.Status(),
		"time":    distribution,
		"net_worth": map[string]any{
			"minor":     netWorth,
			"formatted": money.FormatMinor(netWorth),
			"accounts":  selected,
		},
		"accounts": normalizeAccounts(snap.Accounts),
		"todos": map[string]any{
			"items":              normalizeTodos(dayTodos),
			"backlog":            normalizeTodos(backlog),
			"completion_percent": aggregate.CompletionPercent(dayTodos),
		},
		"feed":  normalizeFeed(feed),
		"notes": normalizeNotes(notes),
	})
}

func normalizeFeed(items []aggregate.FeedItem) []map[string]any {
	normalized := make([]map[string]any, 0, len(items))
	for _, item := range items {
		row := map[string]any{
			"kind":      item.Kind,
			"id":        item.ID,
			"timestamp": item.Timestamp,
			"label":     item.Label,
		}
		if item.Emoji != "" {
			row["emoji"] = item.Emoji
		}
		if item.Kind == aggregate.FeedTime {
			row["minutes"] = item.Minutes
		} else {
			row["amount"] = money.FormatMinor(item.Amount)
			row["amount_minor"] = item.Amount
		}
		if item.Description != "" {
			row["description"] = item.Description
		}
		normalized = append(normalized, row)
	}
	return normalized
}

func normalizeNotes(notes []store.Note) []map[string]any {
	normalized := make([]map[string]any, 0, len(notes))
	for _, note := range notes {
		normalized = append(normalized, map[string]any{
			"id":         note.ID,
			"content":    note.Content,
			"created_at": note.CreatedAt,
		})
	}
	return normalized
}
