package grid

// ColumnEditor owns the committed ViewState and the two flows that mutate it:
// instant single toggles and a staged session with explicit apply/cancel.
type ColumnEditor struct {
	committed ViewState
	defaults  ViewState
	persist   viewPersistence
	onChange  func(ViewState)

	staged  ViewState
	session bool
	drag    *dragState
}

type dragState struct {
	from int
	over int
}

func newColumnEditor(committed, defaults ViewState, p viewPersistence) *ColumnEditor {
	return &ColumnEditor{committed: committed, defaults: defaults, persist: p}
}

// State returns a copy of the committed view.
func (e *ColumnEditor) State() ViewState { return e.committed.Clone() }

// OnChange registers a callback invoked after every commit.
func (e *ColumnEditor) OnChange(fn func(ViewState)) { e.onChange = fn }

func (e *ColumnEditor) commit(next ViewState) {
	e.persist.save(next)
	e.committed = next
	if e.onChange != nil {
		e.onChange(next.Clone())
	}
}

// ToggleVisible flips one column and commits immediately.
func (e *ColumnEditor) ToggleVisible(id string) {
	if e.committed.IndexOf(id) < 0 {
		return
	}
	e.commit(e.committed.WithToggled(id))
}

// Open starts a staged session from a fresh copy of the committed view.
// Unapplied edits of a previous session are discarded.
func (e *ColumnEditor) Open() {
	e.staged = e.committed.Clone()
	e.session = true
	e.drag = nil
}

// Staged returns the staged copy and whether a session is open.
func (e *ColumnEditor) Staged() (ViewState, bool) {
	if !e.session {
		return nil, false
	}
	return e.staged.Clone(), true
}

// StagedToggle flips one column of the staged copy.
func (e *ColumnEditor) StagedToggle(id string) {
	if !e.session {
		return
	}
	e.staged = e.staged.WithToggled(id)
}

// StagedReorder moves a staged entry from one index to another.
func (e *ColumnEditor) StagedReorder(from, to int) {
	if !e.session {
		return
	}
	e.staged = Move(e.staged, from, to)
}

// StagedAllChecked reports whether every declared column is present and
// visible in the staged copy.
func (e *ColumnEditor) StagedAllChecked() bool {
	if !e.session {
		return false
	}
	return e.staged.VisibleCount() == len(e.defaults)
}

// StagedToggleAll shows every staged column when not all are visible,
// otherwise hides them all. Order is kept.
func (e *ColumnEditor) StagedToggleAll() {
	if !e.session {
		return
	}
	e.staged = e.staged.WithAllVisible(!e.StagedAllChecked())
}

// Apply commits the staged copy and ends the session.
func (e *ColumnEditor) Apply() bool {
	if !e.session {
		return false
	}
	next := e.staged
	e.closeSession()
	e.commit(next)
	return true
}

// Cancel ends the session without side effects.
func (e *ColumnEditor) Cancel() bool {
	if !e.session {
		return false
	}
	e.closeSession()
	return true
}

func (e *ColumnEditor) closeSession() {
	e.staged = nil
	e.session = false
	e.drag = nil
}

// BeginDrag starts moving the staged entry at index.
func (e *ColumnEditor) BeginDrag(index int) bool {
	if !e.session || index < 0 || index >= len(e.staged) {
		return false
	}
	e.drag = &dragState{from: index, over: index}
	return true
}

// DragOver records the current drop target.
func (e *ColumnEditor) DragOver(index int) {
	if e.drag == nil || index < 0 || index >= len(e.staged) {
		return
	}
	e.drag.over = index
}

// Dragging returns the source and target of an in-progress drag.
func (e *ColumnEditor) Dragging() (from, over int, ok bool) {
	if e.drag == nil {
		return 0, 0, false
	}
	return e.drag.from, e.drag.over, true
}

// Drop applies the in-progress drag to the staged copy.
func (e *ColumnEditor) Drop() {
	if e.drag == nil {
		return
	}
	from, to := e.drag.from, e.drag.over
	e.drag = nil
	e.StagedReorder(from, to)
}

// CancelDrag discards the in-progress drag.
func (e *ColumnEditor) CancelDrag() { e.drag = nil }
