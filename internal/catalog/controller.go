package catalog

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"jobcatalog-engine/internal/domain"
)

type State int

const (
	StateEmpty State = iota
	StateLoaded
)

func (s State) String() string {
	if s == StateLoaded {
		return "loaded"
	}
	return "empty"
}

type ChangeKind string

const (
	ChangeLoaded ChangeKind = "catalog_loaded"
	ChangeView   ChangeKind = "view_changed"
)

// Change describes one successful state transition. Version increases by
// one per transition; hooks run outside the lock and may see changes out of
// order, so consumers compare versions.
type Change struct {
	Version  uint64     `json:"version"`
	Kind     ChangeKind `json:"kind"`
	Total    int        `json:"total"`
	Visible  int        `json:"visible"`
	Criteria Criteria   `json:"criteria"`
	Sort     SortKey    `json:"sort"`
}

type Option func(*Controller)

// WithOnChange registers a hook called after every successful transition,
// outside the controller's lock.
func WithOnChange(fn func(Change)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller owns the loaded catalog and the view derived from it. The full
// set is replaced only by Load; the view is always recomputed from it.
type Controller struct {
	mu       sync.RWMutex
	state    State
	all      []domain.Job
	byID     map[string]int
	view     []domain.Job
	criteria Criteria
	sortKey  SortKey
	loadedAt time.Time
	version  uint64

	logger   *slog.Logger
	onChange func(Change)
}

func NewController(logger *slog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Controller{
		criteria: Criteria{},
		sortKey:  SortTime,
		view:     []domain.Job{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load validates payload and, on success, replaces the catalog, clears the
// filter and resets the sort to most recent first. On failure nothing changes.
func (c *Controller) Load(payload []byte) error {
	jobs, err := DecodePayload(payload)
	if err != nil {
		c.logger.Warn("catalog.load.rejected", "size", humanize.Bytes(uint64(len(payload))), "error", err)
		return err
	}
	c.replace(jobs)
	c.logger.Info("catalog.load.ok", "count", len(jobs), "size", humanize.Bytes(uint64(len(payload))))
	return nil
}

// LoadRecords is Load for records that were already decoded.
func (c *Controller) LoadRecords(raws []domain.RawJob) error {
	jobs, err := buildJobs(raws)
	if err != nil {
		c.logger.Warn("catalog.load.rejected", "records", len(raws), "error", err)
		return err
	}
	c.replace(jobs)
	c.logger.Info("catalog.load.ok", "count", len(jobs))
	return nil
}

func (c *Controller) replace(jobs []domain.Job) {
	byID := make(map[string]int, len(jobs))
	for i, j := range jobs {
		byID[j.ID] = i
	}

	c.mu.Lock()
	c.all = jobs
	c.byID = byID
	c.criteria = Criteria{}
	c.sortKey = SortTime
	c.state = StateLoaded
	c.loadedAt = time.Now().UTC()
	c.recompute()
	ch := c.changeLocked(ChangeLoaded)
	c.mu.Unlock()

	c.notify(ch)
}

// SetFilter replaces the criteria wholesale.
func (c *Controller) SetFilter(criteria Criteria) error {
	if err := criteria.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	c.criteria = criteria.Active()
	c.recompute()
	ch := c.changeLocked(ChangeView)
	c.mu.Unlock()

	c.notify(ch)
	return nil
}

func (c *Controller) SetSort(key SortKey) error {
	if !key.Valid() {
		return invalid("sort", fmt.Sprintf("unknown sort key %q", key), nil)
	}

	c.mu.Lock()
	c.sortKey = key
	c.recompute()
	ch := c.changeLocked(ChangeView)
	c.mu.Unlock()

	c.notify(ch)
	return nil
}

// recompute requires c.mu held for writing.
func (c *Controller) recompute() {
	c.view = Sort(Filter(c.all, c.criteria), c.sortKey)
}

// changeLocked requires c.mu held for writing.
func (c *Controller) changeLocked(kind ChangeKind) Change {
	c.version++
	return Change{
		Version:  c.version,
		Kind:     kind,
		Total:    len(c.all),
		Visible:  len(c.view),
		Criteria: c.criteria.clone(),
		Sort:     c.sortKey,
	}
}

func (c *Controller) notify(ch Change) {
	if c.onChange != nil {
		c.onChange(ch)
	}
}

// View returns a copy of the current view.
func (c *Controller) View() []domain.Job {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.view)
}

// DistinctValues returns the sorted unique non-empty values of attr across
// the whole catalog, ignoring the current filter.
func (c *Controller) DistinctValues(attr string) ([]string, error) {
	if !slices.Contains(Attributes, attr) {
		return nil, invalid("distinct", fmt.Sprintf("unknown attribute %q", attr), nil)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.distinctLocked(attr), nil
}

// distinctLocked requires c.mu held.
func (c *Controller) distinctLocked(attr string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, j := range c.all {
		v, _ := j.Attr(attr)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Job looks a posting up by ID in the full catalog, not just the view.
func (c *Controller) Job(id string) (domain.Job, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return domain.Job{}, false
	}
	return c.all[i], true
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Controller) Criteria() Criteria {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.criteria.clone()
}

func (c *Controller) SortKey() SortKey {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sortKey
}

func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.all)
}

// Snapshot is a consistent read of the controller's state. Options holds
// the distinct values of every filterable attribute.
type Snapshot struct {
	Version  uint64              `json:"version"`
	State    string              `json:"state"`
	Total    int                 `json:"total"`
	LoadedAt *time.Time          `json:"loaded_at,omitempty"`
	Criteria Criteria            `json:"criteria"`
	Sort     SortKey             `json:"sort"`
	View     []domain.Job        `json:"view"`
	Options  map[string][]string `json:"options"`
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := Snapshot{
		Version:  c.version,
		State:    c.state.String(),
		Total:    len(c.all),
		Criteria: c.criteria.clone(),
		Sort:     c.sortKey,
		View:     slices.Clone(c.view),
		Options:  make(map[string][]string, len(Attributes)),
	}
	for _, attr := range Attributes {
		s.Options[attr] = c.distinctLocked(attr)
	}
	if c.state == StateLoaded {
		t := c.loadedAt
		s.LoadedAt = &t
	}
	return s
}
