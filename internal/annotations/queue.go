package annotations

import "reflect"

// queue hands out each type it is given at most once.
type queue struct {
	needs []reflect.Type
	done  map[reflect.Type]struct{}
}

func (q *queue) Next() (t reflect.Type, ok bool) {
	for len(q.needs) > 0 {
		t, q.needs = q.needs[0], q.needs[1:]

		if _, exists := q.done[t]; !exists {
			q.Done(t)
			return t, true
		}
	}

	return nil, false
}

func (q *queue) Needs(t reflect.Type) {
	if _, exists := q.done[t]; !exists {
		q.needs = append(q.needs, t)
	}
}

func (q *queue) Done(t reflect.Type) {
	if q.done == nil {
		q.done = make(map[reflect.Type]struct{})
	}

	q.done[t] = struct{}{}
}
