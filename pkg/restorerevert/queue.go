package restorerevert

import (
	"fmt"

	"github.com/gammazero/toposort"
)

// StepID uniquely identifies a step within a queue
type StepID string

// SwapStep is a single filesystem action of a swap.
type SwapStep struct {
	ID   StepID
	Step Step
	Pair RevertPair
	// From is the renamed or deleted path, To the rename target.
	From      string
	To        string
	DependsOn []StepID
}

// Describe renders the step as an intended action.
func (s *SwapStep) Describe() string {
	if s.Step == StepDiscard {
		return fmt.Sprintf("delete %q", s.From)
	}
	return fmt.Sprintf("rename %q to %q", s.From, s.To)
}

// Queue orders swap steps by their dependencies.
type Queue struct {
	steps     []*SwapStep
	index     map[StepID]int
	originals map[string]StepID
	pairs     int
	last      StepID
	resolved  bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		index:     make(map[StepID]int),
		originals: make(map[string]StepID),
	}
}

// AddPair queues stash, promote and discard for pair. Each pair depends on
// the previous one so discovery order is kept. A second pair for an
// original that is already queued is rejected.
func (q *Queue) AddPair(pair RevertPair) error {
	if first, exists := q.originals[pair.Original]; exists {
		prev := q.steps[q.index[first]].Pair
		return &CollisionError{Originals: map[string][]string{
			pair.Original: {prev.Backup, pair.Backup},
		}}
	}

	q.pairs++
	id := func(step Step) StepID {
		return StepID(fmt.Sprintf("pair-%d/%s", q.pairs, step))
	}

	stash := &SwapStep{
		ID:   id(StepStash),
		Step: StepStash,
		Pair: pair,
		From: pair.Original,
		To:   pair.Stash(),
	}
	if q.last != "" {
		stash.DependsOn = []StepID{q.last}
	}
	promote := &SwapStep{
		ID:        id(StepPromote),
		Step:      StepPromote,
		Pair:      pair,
		From:      pair.Backup,
		To:        pair.Original,
		DependsOn: []StepID{stash.ID},
	}
	discard := &SwapStep{
		ID:        id(StepDiscard),
		Step:      StepDiscard,
		Pair:      pair,
		From:      pair.Stash(),
		DependsOn: []StepID{promote.ID},
	}

	if err := q.add(stash, promote, discard); err != nil {
		return err
	}
	q.originals[pair.Original] = stash.ID
	q.last = discard.ID
	return nil
}

func (q *Queue) add(steps ...*SwapStep) error {
	for _, step := range steps {
		if step == nil {
			return fmt.Errorf("cannot add nil step to queue")
		}
		if _, exists := q.index[step.ID]; exists {
			return fmt.Errorf("step with ID %s already exists in queue", step.ID)
		}
		q.index[step.ID] = len(q.steps)
		q.steps = append(q.steps, step)
		q.resolved = false
	}
	return nil
}

// Len returns the number of queued steps.
func (q *Queue) Len() int {
	return len(q.steps)
}

// Steps returns the queued steps, in execution order once resolved.
func (q *Queue) Steps() []*SwapStep {
	stepsCopy := make([]*SwapStep, len(q.steps))
	copy(stepsCopy, q.steps)
	return stepsCopy
}

// Resolve orders the steps topologically.
func (q *Queue) Resolve() error {
	if q.resolved || len(q.steps) == 0 {
		q.resolved = true
		return nil
	}

	for _, step := range q.steps {
		for _, dep := range step.DependsOn {
			if _, exists := q.index[dep]; !exists {
				return fmt.Errorf("step %s depends on unknown step %s", step.ID, dep)
			}
		}
	}

	edges := make([]toposort.Edge, 0, len(q.steps))
	for _, step := range q.steps {
		for _, dep := range step.DependsOn {
			// dependency -> step: element 0 comes before element 1
			edges = append(edges, toposort.Edge{string(dep), string(step.ID)})
		}
	}

	sortedIDs, err := toposort.Toposort(edges)
	if err != nil {
		return fmt.Errorf("circular dependency detected: %w", err)
	}

	resolved := make([]*SwapStep, 0, len(q.steps))
	newIndex := make(map[StepID]int, len(q.steps))
	for _, idInterface := range sortedIDs {
		idStr, ok := idInterface.(string)
		if !ok {
			return fmt.Errorf("unexpected type in topological sort result: %T", idInterface)
		}
		id := StepID(idStr)
		if oldIndex, exists := q.index[id]; exists {
			newIndex[id] = len(resolved)
			resolved = append(resolved, q.steps[oldIndex])
		}
	}

	// Every queued pair links its three steps, so each step is on an edge.
	if len(resolved) != len(q.steps) {
		return fmt.Errorf("queue holds %d steps but only %d are ordered", len(q.steps), len(resolved))
	}

	q.steps = resolved
	q.index = newIndex
	q.resolved = true
	return nil
}
