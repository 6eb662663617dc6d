package explore

import "fmt"

// obj is a scriptable handle for core tests: the fake provider answers
// every query from its fields.
type obj struct {
	label      string
	attrNames  []string       // enumeration order; may list names absent from attrs
	attrs      map[string]any // fetchable members
	kind       ContainerKind
	entries    []RawEntry
	facts      Facts
	selectable bool
}

type fakeProvider struct{}

func (fakeProvider) Members(h any) []string {
	if o, ok := h.(*obj); ok {
		return o.attrNames
	}
	return nil
}

func (fakeProvider) Member(h any, name string) (any, error) {
	o, ok := h.(*obj)
	if !ok {
		return nil, fmt.Errorf("no members on %T", h)
	}
	child, ok := o.attrs[name]
	if !ok {
		return nil, fmt.Errorf("member %q reported but not fetchable", name)
	}
	return child, nil
}

func (fakeProvider) ContainerKind(h any) ContainerKind {
	if o, ok := h.(*obj); ok {
		return o.kind
	}
	return KindNone
}

func (fakeProvider) Entries(h any) []RawEntry {
	if o, ok := h.(*obj); ok {
		return o.entries
	}
	return nil
}

func (fakeProvider) Describe(h any) Facts {
	if o, ok := h.(*obj); ok {
		return o.facts
	}
	return Facts{
		TypeLabel: fmt.Sprintf("%T", h),
		Repr:      fmt.Sprint(h),
		Doc:       NoDoc,
	}
}

func (fakeProvider) Selectable(h any) bool {
	if o, ok := h.(*obj); ok {
		return o.selectable
	}
	return false
}

func newTestEngine(opts ...Option) *Engine {
	return New(fakeProvider{}, opts...)
}

// scalar builds a plain selectable=false leaf handle.
func scalar(label string) *obj {
	return &obj{
		label: label,
		facts: Facts{TypeLabel: "scalar", Repr: label, Doc: NoDoc},
	}
}

// callableObj builds a leaf handle flagged callable.
func callableObj(label string) *obj {
	o := scalar(label)
	o.facts.Callable = true
	o.facts.Function = true
	return o
}

// selectableObj builds an empty selectable handle.
func selectableObj(label string) *obj {
	o := scalar(label)
	o.selectable = true
	return o
}

// mappingObj builds a selectable mapping with the given ordered entries.
func mappingObj(label string, entries ...RawEntry) *obj {
	return &obj{
		label:      label,
		kind:       KindMapping,
		entries:    entries,
		facts:      Facts{TypeLabel: "mapping", Repr: label, Doc: NoDoc, Length: fmt.Sprint(len(entries))},
		selectable: true,
	}
}

// sequenceObj builds a selectable sequence with the given elements.
func sequenceObj(label string, elems ...any) *obj {
	entries := make([]RawEntry, 0, len(elems))
	for i, el := range elems {
		entries = append(entries, RawEntry{KeyLabel: fmt.Sprint(i), Handle: el})
	}
	return &obj{
		label:      label,
		kind:       KindSequence,
		entries:    entries,
		facts:      Facts{TypeLabel: "sequence", Repr: label, Doc: NoDoc, Length: fmt.Sprint(len(elems))},
		selectable: true,
	}
}
