// Package browserdump reads a dump of the browser storage the first Life OS
// frontend kept its data in, so users can carry that history over.
//
// A dump is one JSON object keyed by storage key. Values may be the parsed
// JSON or the raw string the browser stored.
package browserdump

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"lifeos/domain/core"
	"lifeos/domain/goal"
	"lifeos/domain/journal"
	"lifeos/domain/snapshot"
	"lifeos/domain/wellness"

	"github.com/tidwall/gjson"
)

// Storage keys written by the browser app
const (
	KeyCheckIns    = "lifeos_energy_checkins"
	KeyExpressions = "lifeos_self_expression"
	KeyTrackers    = "lifeos_trackers"
	KeyJournal     = "lifeos_journal"
	KeyGoals       = "lifeos_goals"
	KeyUrges       = "lifeos_urge_log"
)

// Reader converts a dump into a snapshot
type Reader struct {
	// Location turns journal timestamps back into the calendar day the user
	// picked. Nil means time.Local.
	Location *time.Location
	// Now stamps the snapshot
	Now func() time.Time
}

// NewReader creates a reader for dumps taken in loc
func NewReader(loc *time.Location) *Reader {
	return &Reader{Location: loc, Now: time.Now}
}

// Read parses a dump. Records that cannot be understood are skipped and
// logged; a document that is not a JSON object is an error.
func (r *Reader) Read(src io.Reader) (*snapshot.Snapshot, error) {
	body, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: dump is not valid JSON", core.ErrValidation)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: dump must be a JSON object keyed by storage key", core.ErrValidation)
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	snap := snapshot.New(now().UTC())

	snap.CheckIns = r.checkIns(value(root, KeyCheckIns))
	snap.Expressions = r.expressions(value(root, KeyExpressions))
	snap.Profile, snap.DayStatuses = r.smokeFree(value(root, KeyTrackers).Get("smokeFree"))
	snap.Journal = r.journal(value(root, KeyJournal))
	snap.Goals = r.goals(value(root, KeyGoals))
	snap.Urges = r.urges(value(root, KeyUrges))

	log.Printf("Read browser dump: %s", snap.Counts())
	return snap, nil
}

// value returns key's content, decoding values the browser stored as strings
func value(root gjson.Result, key string) gjson.Result {
	v := root.Get(key)
	if v.Type == gjson.String && gjson.Valid(v.Str) {
		return gjson.Parse(v.Str)
	}
	return v
}

func (r *Reader) checkIns(v gjson.Result) []wellness.EnergyCheckIn {
	out := []wellness.EnergyCheckIn{}
	v.ForEach(func(_, item gjson.Result) bool {
		c := wellness.EnergyCheckIn{
			Date:          r.day(item.Get("date").String()),
			Energy:        wellness.EnergyLevel(strings.ToLower(item.Get("energy").String())),
			NervousSystem: wellness.NervousSystemState(strings.ToLower(item.Get("nervousSystem").String())),
			Factors:       stringList(item.Get("factors")),
			Note:          item.Get("note").String(),
		}
		if err := c.Validate(); err != nil {
			log.Printf("Skipping check-in %s: %v", item.Raw, err)
			return true
		}
		out = append(out, c)
		return true
	})
	return out
}

func (r *Reader) expressions(v gjson.Result) []wellness.SelfExpression {
	out := []wellness.SelfExpression{}
	v.ForEach(func(_, item gjson.Result) bool {
		e := wellness.SelfExpression{
			Date:      r.day(item.Get("date").String()),
			Expressed: item.Get("expressed").Bool(),
			Types:     stringList(item.Get("types")),
			Note:      item.Get("note").String(),
		}
		if e.Date.IsZero() {
			log.Printf("Skipping self-expression record without a date: %s", item.Raw)
			return true
		}
		out = append(out, e)
		return true
	})
	return out
}

// smokeFree reads the tracker. Early versions stored a boolean per day,
// true for clean and false for vape.
func (r *Reader) smokeFree(v gjson.Result) (*wellness.SmokeFreeProfile, wellness.DayStatuses) {
	statuses := wellness.DayStatuses{}
	if !v.Exists() {
		return nil, statuses
	}

	v.Get("dayStatuses").ForEach(func(key, item gjson.Result) bool {
		day := r.day(key.String())
		if day.IsZero() {
			return true
		}
		switch item.Type {
		case gjson.True:
			statuses[day] = wellness.StatusClean
		case gjson.False:
			statuses[day] = wellness.StatusVape
		default:
			status, err := wellness.ParseSmokeStatus(item.String())
			if err != nil {
				log.Printf("Skipping status for %s: %v", day, err)
				return true
			}
			statuses[day] = status
		}
		return true
	})

	quit := v.Get("quitVapeDate").String()
	if quit == "" {
		quit = v.Get("quitDate").String()
	}
	quitDay := r.day(quit)
	if quitDay.IsZero() {
		return nil, statuses
	}
	profile := wellness.SmokeFreeProfile{QuitDate: quitDay}.WithDefaults()
	return &profile, statuses
}

func (r *Reader) journal(v gjson.Result) []*journal.Entry {
	out := []*journal.Entry{}
	v.ForEach(func(_, item gjson.Result) bool {
		e := &journal.Entry{
			ID:        core.JournalEntryID(item.Get("id").String()),
			Date:      r.day(item.Get("date").String()),
			Content:   item.Get("content").String(),
			Mood:      journal.Mood(strings.ToLower(item.Get("mood").String())),
			Tags:      stringList(item.Get("tags")),
			CreatedAt: timestamp(item.Get("createdAt").String()),
			UpdatedAt: timestamp(item.Get("updatedAt").String()),
		}
		if err := e.Validate(); err != nil {
			log.Printf("Skipping journal entry %s: %v", e.ID, err)
			return true
		}
		out = append(out, e)
		return true
	})
	return out
}

// goals accepts both the typed goal records and the simpler ones the goals
// page saved (type instead of timeframe, no status or milestones).
func (r *Reader) goals(v gjson.Result) []*goal.Goal {
	out := []*goal.Goal{}
	v.ForEach(func(_, item gjson.Result) bool {
		g := &goal.Goal{
			ID:          core.GoalID(item.Get("id").String()),
			Title:       item.Get("title").String(),
			Description: item.Get("description").String(),
			Category:    goal.Category(strings.ToLower(item.Get("category").String())),
			Timeframe:   goal.Timeframe(firstOf(item, "timeframe", "type")),
			Status:      goal.Status(firstOf(item, "status")),
			StartDate:   r.day(item.Get("startDate").String()),
			TargetDate:  r.day(item.Get("targetDate").String()),
			Priority:    int(item.Get("priority").Int()),
			CreatedAt:   timestamp(item.Get("createdAt").String()),
			UpdatedAt:   timestamp(item.Get("updatedAt").String()),
		}
		if g.Category == "" {
			g.Category = goal.CategoryOther
		}
		if g.Status == "" {
			g.Status = goal.StatusActive
		}
		if item.Get("archived").Bool() {
			g.Status = goal.StatusArchived
		}
		if g.Priority == 0 {
			g.Priority = 3
		}
		if g.StartDate.IsZero() && !g.CreatedAt.IsZero() {
			g.StartDate = core.DayOf(g.CreatedAt.In(r.location()))
		}

		item.Get("milestones").ForEach(func(_, m gjson.Result) bool {
			milestone := goal.Milestone{
				ID:          m.Get("id").String(),
				Title:       m.Get("title").String(),
				TargetValue: m.Get("targetValue").Float(),
				Completed:   m.Get("completed").Bool(),
			}
			if at := timestamp(m.Get("completedAt").String()); !at.IsZero() {
				milestone.CompletedAt = &at
			}
			g.Milestones = append(g.Milestones, milestone)
			return true
		})

		if err := g.Validate(); err != nil {
			log.Printf("Skipping goal %s: %v", g.ID, err)
			return true
		}
		out = append(out, g)
		return true
	})
	return out
}

// urges are stamped with a UTC timestamp; the day is taken in the
// reader's location.
func (r *Reader) urges(v gjson.Result) []wellness.UrgeEntry {
	out := []wellness.UrgeEntry{}
	v.ForEach(func(_, item gjson.Result) bool {
		at := timestamp(item.Get("timestamp").String())
		u := wellness.UrgeEntry{
			ID:          core.UrgeID(item.Get("id").String()),
			At:          at,
			Intensity:   wellness.UrgeIntensity(item.Get("intensity").Int()),
			Trigger:     item.Get("trigger").String(),
			Replacement: item.Get("replacement").String(),
			Notes:       item.Get("notes").String(),
		}
		if !at.IsZero() {
			u.Day = core.DayOf(at.In(r.location()))
		}
		u.Normalize()
		if err := u.Validate(); err != nil {
			log.Printf("Skipping urge %s: %v", item.Raw, err)
			return true
		}
		out = append(out, u)
		return true
	})
	wellness.SortUrges(out)
	return out
}

func (r *Reader) location() *time.Location {
	if r.Location == nil {
		return time.Local
	}
	return r.Location
}

// day accepts YYYY-MM-DD or a full timestamp. Timestamps are read in the
// reader's location since the browser stored local midnight as UTC.
func (r *Reader) day(s string) core.Day {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if d, err := core.ParseDay(s); err == nil {
		return d
	}
	if t := timestamp(s); !t.IsZero() {
		return core.DayOf(t.In(r.location()))
	}
	return ""
}

func timestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

func firstOf(item gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := item.Get(p); v.Exists() && v.String() != "" {
			return strings.ToLower(v.String())
		}
	}
	return ""
}

func stringList(v gjson.Result) []string {
	var out []string
	v.ForEach(func(_, item gjson.Result) bool {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}
