package engine

import "github.com/piwi3910/panelgrid/internal/model"

const defaultMaxDepth = 50

// Snapshot captures an arrangement at a point in time.
type Snapshot struct {
	Regions []model.Region
	Label   string // Step that produced the following state (e.g. "split 2")
}

// MakeSnapshot copies regions so later steps cannot alter the snapshot.
func MakeSnapshot(regions []model.Region, label string) Snapshot {
	return Snapshot{Regions: copyRegions(regions), Label: label}
}

func copyRegions(regions []model.Region) []model.Region {
	if regions == nil {
		return nil
	}
	cp := make([]model.Region, len(regions))
	copy(cp, regions)
	return cp
}

// History manages undo/redo stacks of arrangement snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

// NewHistory creates a History that keeps at most 50 undo steps.
func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// Push saves the state before a step onto the undo stack and clears the redo
// stack.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo pops the most recent snapshot and moves current onto the redo stack.
// current takes over the label of the popped snapshot, so a step keeps its
// label across undo and redo. It returns false when there is nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	current.Label = last.Label
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo is the inverse of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	current.Label = last.Label
	h.undoStack = append(h.undoStack, current)
	return last, true
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}
