package ui

import (
	"context"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"lifeos/app"
	"lifeos/domain/core"
	"lifeos/domain/goal"
	"lifeos/domain/insight"
	"lifeos/domain/journal"
	"lifeos/domain/wellness"
	"lifeos/internal/errors"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// trackerDays is the calendar shown on the tracker page
const trackerDays = 28

// trackerUrges is how many recent urges the tracker page lists
const trackerUrges = 10

// excerptRunes bounds a journal list excerpt
const excerptRunes = 280

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	today := a.svc.Insights.Today()
	var (
		summary insight.WeeklySummary
		top     []insight.Insight
		stats   wellness.SmokeFreeStats
		checkin *wellness.EnergyCheckIn
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		summary, err = a.svc.Insights.WeeklySummary(ctx)
		return err
	})
	g.Go(func() (err error) {
		top, err = a.svc.Insights.Dashboard(ctx)
		return err
	})
	g.Go(func() (err error) {
		stats, err = a.svc.Tracker.Stats(ctx)
		return err
	})
	g.Go(func() error {
		c, err := a.svc.Daily.GetCheckIn(ctx, today)
		if core.IsNotFoundError(err) {
			return nil
		}
		checkin = c
		return err
	})
	if err := g.Wait(); err != nil {
		a.renderError(w, err)
		return
	}

	a.renderTemplate(w, "index.html", map[string]interface{}{
		"Page":         "home",
		"Today":        today,
		"Top":          top,
		"Summary":      summary,
		"Stats":        stats,
		"CheckIn":      checkin,
		"Energies":     []wellness.EnergyLevel{wellness.EnergyHigh, wellness.EnergyMedium, wellness.EnergyLow},
		"States":       []wellness.NervousSystemState{wellness.NervousCalm, wellness.NervousWired, wellness.NervousAnxious, wellness.NervousNumb},
		"HighPriority": insight.CountByPriority(summary.Insights, insight.PriorityHigh),
	})
}

// handleCheckIn records today's check-in from the home page form
func (a *App) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderError(w, errors.InvalidInput("invalid form"))
		return
	}
	_, err := a.svc.Daily.RecordCheckIn(r.Context(), wellness.EnergyCheckIn{
		Date:          core.Day(r.FormValue("date")),
		Energy:        wellness.EnergyLevel(r.FormValue("energy")),
		NervousSystem: wellness.NervousSystemState(r.FormValue("nervousSystem")),
		Factors:       strings.Split(r.FormValue("factors"), ","),
		Note:          strings.TrimSpace(r.FormValue("note")),
	})
	if err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type trackerDay struct {
	Day    core.Day
	Status wellness.SmokeStatus
	Today  bool
}

func (a *App) handleTracker(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	today := a.svc.Insights.Today()
	from := today.AddDays(-(trackerDays - 1))

	stats, err := a.svc.Tracker.Stats(ctx)
	if err != nil {
		a.renderError(w, err)
		return
	}
	statuses, err := a.svc.Tracker.Statuses(ctx, from, today)
	if err != nil {
		a.renderError(w, err)
		return
	}
	urges, err := a.svc.Tracker.ListUrges(ctx, from, today, trackerUrges)
	if err != nil {
		a.renderError(w, err)
		return
	}

	days := make([]trackerDay, 0, trackerDays)
	for _, day := range core.Range(from, today) {
		days = append(days, trackerDay{Day: day, Status: statuses.StatusOn(day), Today: day == today})
	}

	a.renderTemplate(w, "tracker.html", map[string]interface{}{
		"Page":     "tracker",
		"Stats":    stats,
		"Days":     days,
		"Statuses": []wellness.SmokeStatus{wellness.StatusClean, wellness.StatusVape, wellness.StatusCigarette},
		"Urges":    urges,
		"Levels": []wellness.UrgeIntensity{
			wellness.UrgeMild, wellness.UrgeLowMedium, wellness.UrgeMedium, wellness.UrgeStrong, wellness.UrgeExtreme,
		},
		"DefaultLevel": wellness.DefaultUrgeIntensity,
		"Triggers":     wellness.CommonUrgeTriggers,
		"Replacements": wellness.CommonUrgeReplacements,
	})
}

func (a *App) handleLogUrge(w http.ResponseWriter, r *http.Request) {
	in := app.UrgeInput{
		Trigger:     r.FormValue("trigger"),
		Replacement: r.FormValue("replacement"),
		Notes:       r.FormValue("notes"),
	}
	if raw := r.FormValue("intensity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			a.renderError(w, errors.InvalidInput("intensity must be a number"))
			return
		}
		in.Intensity = wellness.UrgeIntensity(n)
	}
	if _, err := a.svc.Tracker.LogUrge(r.Context(), in); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/tracker", http.StatusSeeOther)
}

func (a *App) handleDeleteUrge(w http.ResponseWriter, r *http.Request) {
	if err := a.svc.Tracker.DeleteUrge(r.Context(), core.UrgeID(chi.URLParam(r, "id"))); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/tracker", http.StatusSeeOther)
}

func (a *App) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	day, err := core.ParseDay(chi.URLParam(r, "date"))
	if err != nil {
		a.renderError(w, err)
		return
	}
	status, err := wellness.ParseSmokeStatus(r.FormValue("status"))
	if err != nil {
		a.renderError(w, err)
		return
	}
	if err := a.svc.Tracker.SetDayStatus(r.Context(), day, status); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/tracker", http.StatusSeeOther)
}

type journalItem struct {
	Entry   *journal.Entry
	Excerpt template.HTML
}

func (a *App) handleJournal(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := journal.Filter{
		Mood:  journal.Mood(q.Get("mood")),
		Tag:   q.Get("tag"),
		Query: q.Get("q"),
	}
	entries, err := a.svc.Journal.List(r.Context(), filter)
	if err != nil {
		a.renderError(w, err)
		return
	}

	items := make([]journalItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, journalItem{Entry: e, Excerpt: excerpt(e.Content, excerptRunes)})
	}
	a.renderTemplate(w, "journal.html", map[string]interface{}{
		"Page":   "journal",
		"Items":  items,
		"Filter": filter,
		"Moods":  []journal.Mood{journal.MoodGreat, journal.MoodGood, journal.MoodOkay, journal.MoodDown, journal.MoodTerrible},
	})
}

func (a *App) handleJournalCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.renderError(w, errors.InvalidInput("invalid form"))
		return
	}
	entry, err := a.svc.Journal.Create(r.Context(), app.JournalInput{
		Date:    core.Day(r.FormValue("date")),
		Content: r.FormValue("content"),
		Mood:    journal.Mood(r.FormValue("mood")),
		Tags:    strings.Split(r.FormValue("tags"), ","),
	})
	if err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/journal/"+entry.ID.String(), http.StatusSeeOther)
}

func (a *App) handleJournalEntry(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseJournalEntryID(chi.URLParam(r, "id"))
	if err != nil {
		a.renderError(w, err)
		return
	}
	entry, err := a.svc.Journal.Get(r.Context(), id)
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.renderTemplate(w, "entry.html", map[string]interface{}{
		"Page":  "journal",
		"Entry": entry,
		"Body":  renderMarkdown(entry.Content),
	})
}

func (a *App) handleGoals(w http.ResponseWriter, r *http.Request) {
	status := goal.Status(r.URL.Query().Get("status"))
	goals, err := a.svc.Goals.List(r.Context(), status)
	if err != nil {
		a.renderError(w, err)
		return
	}

	byTimeframe := map[goal.Timeframe][]*goal.Goal{}
	for _, g := range goals {
		byTimeframe[g.Timeframe] = append(byTimeframe[g.Timeframe], g)
	}
	a.renderTemplate(w, "goals.html", map[string]interface{}{
		"Page":      "goals",
		"ShortTerm": byTimeframe[goal.ShortTerm],
		"LongTerm":  byTimeframe[goal.LongTerm],
		"Status":    status,
	})
}

func (a *App) handleToggleMilestone(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseGoalID(chi.URLParam(r, "id"))
	if err != nil {
		a.renderError(w, err)
		return
	}
	if _, err := a.svc.Goals.ToggleMilestone(r.Context(), id, chi.URLParam(r, "milestoneID")); err != nil {
		a.renderError(w, err)
		return
	}
	http.Redirect(w, r, "/goals", http.StatusSeeOther)
}

func (a *App) handleDigests(w http.ResponseWriter, r *http.Request) {
	digests, err := a.loadDigests(r.Context())
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.renderTemplate(w, "digests.html", map[string]interface{}{
		"Page":    "digests",
		"Digests": digests,
	})
}

func (a *App) loadDigests(ctx context.Context) ([]*insight.WeeklyDigest, error) {
	if a.svc.Digests == nil {
		return nil, nil
	}
	return a.svc.Digests.List(ctx, 12)
}
