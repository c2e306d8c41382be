package engine

import (
	"fmt"

	"github.com/piwi3910/panelgrid/internal/grid"
	"github.com/piwi3910/panelgrid/internal/model"
)

// Session applies a sequence of split and absorb steps to a labelled
// arrangement and keeps the history needed to undo them. A failed step
// leaves the arrangement and the history unchanged.
type Session struct {
	arranger *Arranger
	regions  []model.Region
	history  *History
}

// NewSession starts a session on a copy of regions.
func NewSession(container grid.Size, regions []model.Region) *Session {
	return &Session{
		arranger: New(container),
		regions:  copyRegions(regions),
		history:  NewHistory(),
	}
}

// Regions returns a copy of the current arrangement.
func (s *Session) Regions() []model.Region {
	return copyRegions(s.regions)
}

// Split splits region i. The halves are labelled "<label>.1" and "<label>.2".
func (s *Session) Split(i int) error {
	panels, err := s.arranger.SplitAt(model.Panels(s.regions), i)
	if err != nil {
		return err
	}

	next := make([]model.Region, 0, len(panels))
	next = append(next, s.regions[:i]...)
	next = append(next,
		model.NewRegion(s.regions[i].Label+".1", panels[i]),
		model.NewRegion(s.regions[i].Label+".2", panels[i+1]))
	next = append(next, s.regions[i+1:]...)

	s.commit(next, fmt.Sprintf("split %d", i))
	return nil
}

// Absorb merges region j into region i. Both keep their identity; region j
// is dropped when nothing of it remains.
func (s *Session) Absorb(i, j int) error {
	panels, err := s.arranger.AbsorbAt(model.Panels(s.regions), i, j)
	if err != nil {
		return err
	}

	dropped := len(panels) < len(s.regions)
	next := make([]model.Region, 0, len(panels))
	k := 0
	for idx, r := range s.regions {
		if idx == j && dropped {
			continue
		}
		r.Panel = panels[k]
		k++
		next = append(next, r)
	}

	s.commit(next, fmt.Sprintf("absorb %d %d", i, j))
	return nil
}

func (s *Session) commit(next []model.Region, label string) {
	s.history.Push(MakeSnapshot(s.regions, label))
	s.regions = next
}

// Undo restores the arrangement before the last step and returns the label
// of the undone step.
func (s *Session) Undo() (string, bool) {
	prev, ok := s.history.Undo(MakeSnapshot(s.regions, ""))
	if !ok {
		return "", false
	}
	s.regions = prev.Regions
	return prev.Label, true
}

// Redo re-applies the last undone step and returns its label.
func (s *Session) Redo() (string, bool) {
	next, ok := s.history.Redo(MakeSnapshot(s.regions, ""))
	if !ok {
		return "", false
	}
	s.regions = next.Regions
	return next.Label, true
}
