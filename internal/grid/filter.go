package grid

// FilterValues maps column ids to filter values. A present key with a nil
// value means the column filter was explicitly cleared.
type FilterValues map[string]any

// Clone returns an independent copy.
func (f FilterValues) Clone() FilterValues {
	out := make(FilterValues, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Active reports whether a column has a non-nil value.
func (f FilterValues) Active(id string) bool {
	v, ok := f[id]
	return ok && v != nil
}

// Cleared returns a snapshot holding every key of f set to nil.
func (f FilterValues) Cleared() FilterValues {
	out := make(FilterValues, len(f))
	for k := range f {
		out[k] = nil
	}
	return out
}

// FilterVariant selects how filters are edited.
type FilterVariant int

const (
	// VariantOverlay edits one column at a time in a per-column popover.
	VariantOverlay FilterVariant = iota
	// VariantAside edits every column in a single drawer.
	VariantAside
)

func (v FilterVariant) String() string {
	if v == VariantAside {
		return "aside"
	}
	return "overlay"
}

// CommitTiming decides when draft edits reach the caller.
type CommitTiming int

const (
	// CommitStaged surfaces values only on apply or reset.
	CommitStaged CommitTiming = iota
	// CommitLive surfaces every draft edit while the drawer is open.
	CommitLive
)

// DefaultTiming returns the commit timing a variant uses unless overridden.
func (v FilterVariant) DefaultTiming() CommitTiming {
	if v == VariantAside {
		return CommitLive
	}
	return CommitStaged
}

// FilterPhase is the state of the filter state machine.
type FilterPhase int

const (
	PhaseClosed FilterPhase = iota
	PhaseColumn
	PhaseAll
)

// FilterUIState is what the rendering layer needs to draw filter controls.
type FilterUIState struct {
	Phase          FilterPhase
	ActiveColumnID string
	DrawerOpen     bool
	Variant        FilterVariant
	Timing         CommitTiming
}

// FilterCoordinator keeps draft and committed filter values. Committed is only
// ever replaced by a full snapshot, never merged.
type FilterCoordinator struct {
	variant   FilterVariant
	timing    CommitTiming
	phase     FilterPhase
	active    string
	draft     FilterValues
	committed FilterValues
	onChange  func(FilterValues)
}

func newFilterCoordinator(variant FilterVariant, timing CommitTiming, initial FilterValues) *FilterCoordinator {
	committed := initial.Clone()
	return &FilterCoordinator{
		variant:   variant,
		timing:    timing,
		draft:     committed.Clone(),
		committed: committed,
	}
}

// UI returns the current UI state.
func (f *FilterCoordinator) UI() FilterUIState {
	return FilterUIState{
		Phase:          f.phase,
		ActiveColumnID: f.active,
		DrawerOpen:     f.phase == PhaseAll,
		Variant:        f.variant,
		Timing:         f.timing,
	}
}

// Committed returns a copy of the last snapshot surfaced to the caller.
func (f *FilterCoordinator) Committed() FilterValues { return f.committed.Clone() }

// Draft returns a copy of the working values.
func (f *FilterCoordinator) Draft() FilterValues { return f.draft.Clone() }

// DraftValue returns the working value of one column.
func (f *FilterCoordinator) DraftValue(id string) any { return f.draft[id] }

func (f *FilterCoordinator) commit(snapshot FilterValues) {
	f.committed = snapshot
	if f.onChange != nil {
		f.onChange(snapshot.Clone())
	}
}

// OpenColumn opens the overlay for one column. The column's draft is reseeded
// from its committed value; pending drafts of other columns are kept.
func (f *FilterCoordinator) OpenColumn(id string) {
	f.phase = PhaseColumn
	f.active = id
	f.draft[id] = f.committed[id]
}

// OpenAll opens the drawer with a full copy of the committed values.
func (f *FilterCoordinator) OpenAll() {
	f.phase = PhaseAll
	f.draft = f.committed.Clone()
}

// Close dismisses the overlay or drawer without committing.
func (f *FilterCoordinator) Close() {
	f.phase = PhaseClosed
	f.active = ""
}

// EditDraft writes a draft value. It is a no-op unless the overlay for id or
// the drawer is open. Live timing surfaces the draft right away while the
// drawer is open.
func (f *FilterCoordinator) EditDraft(id string, value any) {
	switch {
	case f.phase == PhaseColumn && f.active == id:
		f.draft[id] = value
	case f.phase == PhaseAll:
		f.draft[id] = value
		if f.timing == CommitLive {
			f.commit(f.draft.Clone())
		}
	}
}

// ApplyColumn commits the whole draft, not only id, and closes the overlay.
func (f *FilterCoordinator) ApplyColumn(id string) {
	if f.phase != PhaseColumn || f.active != id {
		return
	}
	f.commit(f.draft.Clone())
	f.draft = f.committed.Clone()
	f.Close()
}

// ResetColumn commits a snapshot with every committed key cleared and closes
// the overlay.
func (f *FilterCoordinator) ResetColumn(id string) {
	if f.phase != PhaseColumn || f.active != id {
		return
	}
	f.commit(f.committed.Cleared())
	f.draft = f.committed.Clone()
	f.Close()
}

// ApplyAll commits the draft and closes the drawer.
func (f *FilterCoordinator) ApplyAll() {
	if f.phase != PhaseAll {
		return
	}
	f.commit(f.draft.Clone())
	f.Close()
}

// ResetAll commits a snapshot with every committed key cleared, empties the
// draft and closes whatever is open.
func (f *FilterCoordinator) ResetAll() {
	f.commit(f.committed.Cleared())
	f.draft = FilterValues{}
	f.Close()
}
