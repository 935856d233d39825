package ephem

import "testing"

// The dependency declarations must cover every field and must form a
// DAG, or demand-driven resolution could recurse forever.
func TestFieldDepsAcyclic(t *testing.T) {
	if len(fieldDeps) != numFields {
		t.Fatalf("fieldDeps has %d entries, want %d", len(fieldDeps), numFields)
	}

	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[Field]int, numFields)

	var visit func(f Field) bool
	visit = func(f Field) bool {
		switch state[f] {
		case done:
			return true
		case inProgress:
			return false
		}
		state[f] = inProgress
		for _, dep := range fieldDeps[f] {
			if !visit(dep) {
				t.Errorf("cycle through %v -> %v", f, dep)
				return false
			}
		}
		state[f] = done
		return true
	}

	for f := Field(0); int(f) < numFields; f++ {
		if !visit(f) {
			t.Fatalf("dependency graph is not a DAG (at %v)", f)
		}
	}
}

func TestFieldNamesComplete(t *testing.T) {
	for f := Field(0); int(f) < numFields; f++ {
		if fieldNames[f] == "" {
			t.Errorf("field %d has no name", int(f))
		}
	}
	if got := Field(-1).String(); got != "invalid field" {
		t.Errorf("Field(-1).String() = %q", got)
	}
	if got := Field(numFields).String(); got != "invalid field" {
		t.Errorf("Field(numFields).String() = %q", got)
	}
}

// Body-level fields must never depend on an event field, and
// observation-level fields must not depend on body fields.
func TestFieldDepsLayering(t *testing.T) {
	isEvent := func(f Field) bool {
		return f >= FieldRiseTime && f <= FieldAstronomicalDusk
	}
	for f, deps := range fieldDeps {
		for _, dep := range deps {
			if isEvent(dep) {
				t.Errorf("%v depends on event field %v", f, dep)
			}
			if f.observationLevel() && !dep.observationLevel() {
				t.Errorf("observation field %v depends on body field %v", f, dep)
			}
		}
	}
}
