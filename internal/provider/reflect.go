// Package provider implements the introspection provider over live Go
// values using reflection. It is the only package that knows how facts
// about a handle are obtained; the explore core consumes the answers
// through the explore.Provider interface.
package provider

import (
	"fmt"
	"os"
	"reflect"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/oakwood-commons/objex/internal/format"
	"github.com/oakwood-commons/objex/pkg/explore"
)

// Documented lets a value supply its own documentation text to the
// overview pane.
type Documented interface {
	Doc() string
}

// Reflect answers introspection queries about arbitrary Go values.
type Reflect struct {
	MaxReprWidth   int // display cells before the repr is cut
	MaxSourceLines int // cap on the source listing for functions
}

// New returns a Reflect provider with the default display bounds.
func New() *Reflect {
	return &Reflect{
		MaxReprWidth:   200,
		MaxSourceLines: 200,
	}
}

// Members enumerates the handle's exported methods plus, for structs, all
// field names. Unexported fields are enumerated but refuse fetching, so
// callers see them skipped rather than half-read.
func (p *Reflect) Members(handle any) []string {
	rv := reflect.ValueOf(handle)
	if !rv.IsValid() {
		return nil
	}

	var names []string
	t := rv.Type()
	for i := 0; i < t.NumMethod(); i++ {
		names = append(names, t.Method(i).Name)
	}
	if elem := deref(rv); elem.IsValid() && elem.Kind() == reflect.Struct {
		et := elem.Type()
		for i := 0; i < et.NumField(); i++ {
			names = append(names, et.Field(i).Name)
		}
	}
	return names
}

// Member fetches one member by name: a bound method value or a struct
// field. Unexported fields cannot be handed out as interface values and
// fail per-name.
func (p *Reflect) Member(handle any, name string) (child any, err error) {
	defer func() {
		if r := recover(); r != nil {
			child, err = nil, fmt.Errorf("fetching %q panicked: %v", name, r)
		}
	}()

	rv := reflect.ValueOf(handle)
	if !rv.IsValid() {
		return nil, fmt.Errorf("no members on nil")
	}
	if m := rv.MethodByName(name); m.IsValid() {
		return m.Interface(), nil
	}
	if elem := deref(rv); elem.IsValid() && elem.Kind() == reflect.Struct {
		if f := elem.FieldByName(name); f.IsValid() {
			if !f.CanInterface() {
				return nil, fmt.Errorf("field %q is unexported", name)
			}
			return f.Interface(), nil
		}
	}
	return nil, fmt.Errorf("no member %q on %s", name, typeLabel(handle))
}

// ContainerKind recognizes maps (set-like when the element type is
// struct{}) and slices/arrays, through any pointer indirection.
func (p *Reflect) ContainerKind(handle any) explore.ContainerKind {
	elem := deref(reflect.ValueOf(handle))
	if !elem.IsValid() {
		return explore.KindNone
	}
	switch elem.Kind() { //nolint:exhaustive // only container kinds matter here
	case reflect.Map:
		if elem.Type().Elem() == reflect.TypeOf(struct{}{}) {
			return explore.KindSet
		}
		return explore.KindMapping
	case reflect.Slice, reflect.Array:
		return explore.KindSequence
	default:
		return explore.KindNone
	}
}

// Entries lists container entries. Go maps iterate in random order, so
// mapping and set entries are sorted by their formatted key to stay stable
// from one cache pass to the next.
func (p *Reflect) Entries(handle any) []explore.RawEntry {
	elem := deref(reflect.ValueOf(handle))
	if !elem.IsValid() {
		return nil
	}

	switch p.ContainerKind(handle) { //nolint:exhaustive // KindNone yields nil below
	case explore.KindMapping:
		keys := sortedMapKeys(elem)
		entries := make([]explore.RawEntry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, explore.RawEntry{
				KeyLabel: k.label,
				Handle:   elem.MapIndex(k.value).Interface(),
			})
		}
		return entries

	case explore.KindSet:
		keys := sortedMapKeys(elem)
		entries := make([]explore.RawEntry, 0, len(keys))
		for i, k := range keys {
			entries = append(entries, explore.RawEntry{
				KeyLabel: strconv.Itoa(i),
				Handle:   k.value.Interface(),
			})
		}
		return entries

	case explore.KindSequence:
		entries := make([]explore.RawEntry, 0, elem.Len())
		for i := 0; i < elem.Len(); i++ {
			entries = append(entries, explore.RawEntry{
				KeyLabel: strconv.Itoa(i),
				Handle:   elem.Index(i).Interface(),
			})
		}
		return entries

	default:
		return nil
	}
}

// Describe derives display facts, degrading each field independently: a
// repr or doc that panics never takes down the others.
func (p *Reflect) Describe(handle any) explore.Facts {
	f := explore.Facts{
		Doc:       explore.NoDoc,
		TypeLabel: typeLabel(handle),
		Repr:      format.Truncate(safeRepr(handle), p.MaxReprWidth),
	}

	if d, ok := handle.(Documented); ok {
		f.Doc = safeDoc(d)
	}

	rv := reflect.ValueOf(handle)
	if !rv.IsValid() {
		return f
	}

	if elem := deref(rv); elem.IsValid() {
		switch elem.Kind() { //nolint:exhaustive // only sized kinds report a length
		case reflect.Map, reflect.Slice, reflect.Array, reflect.String, reflect.Chan:
			f.Length = strconv.Itoa(elem.Len())
		}
		if isBasic(elem.Kind()) && elem.Type().PkgPath() == "" {
			f.Builtin = true
		}
	}

	if rv.Kind() == reflect.Func && !rv.IsNil() {
		f.Callable = true
		// Method values compile to a "-fm" wrapper, and ones minted through
		// reflection run via methodValueCall; those names are the only
		// runtime trace of a receiver.
		name := funcName(rv)
		f.Method = strings.HasSuffix(name, "-fm") || strings.Contains(name, "methodValueCall")
		f.Function = !f.Method
		if !f.Method {
			f.Source = p.funcSource(rv)
		}
	}

	if _, ok := handle.(reflect.Type); ok {
		f.Class = true
	}

	return f
}

// Selectable reports containers, structs, and method-bearing values as
// navigable; leaf scalars, functions, and nils are not.
func (p *Reflect) Selectable(handle any) bool {
	rv := reflect.ValueOf(handle)
	if !rv.IsValid() {
		return false
	}
	elem := deref(rv)
	if !elem.IsValid() {
		return false
	}
	switch elem.Kind() { //nolint:exhaustive // remaining kinds fall through to the method check
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	case reflect.Func:
		return false
	default:
		return rv.Type().NumMethod() > 0
	}
}

func deref(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func isBasic(k reflect.Kind) bool {
	switch k { //nolint:exhaustive // predeclared scalar kinds only
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	default:
		return false
	}
}

func typeLabel(handle any) (label string) {
	defer func() {
		if r := recover(); r != nil {
			label = "<unknown type>"
		}
	}()
	if handle == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", handle)
}

func safeRepr(handle any) (repr string) {
	defer func() {
		if r := recover(); r != nil {
			repr = "<unrepresentable " + typeLabel(handle) + ">"
		}
	}()
	return format.Stringify(handle)
}

func safeDoc(d Documented) (doc string) {
	defer func() {
		if r := recover(); r != nil {
			doc = explore.NoDoc
		}
	}()
	if s := d.Doc(); s != "" {
		return s
	}
	return explore.NoDoc
}

type mapKey struct {
	label string
	value reflect.Value
}

func sortedMapKeys(elem reflect.Value) []mapKey {
	keys := make([]mapKey, 0, elem.Len())
	for _, k := range elem.MapKeys() {
		keys = append(keys, mapKey{label: format.KeyLabel(k.Interface()), value: k})
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].label < keys[j].label })
	return keys
}

func funcName(rv reflect.Value) string {
	fn := runtime.FuncForPC(rv.Pointer())
	if fn == nil {
		return ""
	}
	return fn.Name()
}

// funcSource lists the function's source when the file it was compiled
// from is still readable, headed by its location. Brace counting is a
// heuristic; it stops at the first balanced closing brace or the line cap.
func (p *Reflect) funcSource(rv reflect.Value) string {
	fn := runtime.FuncForPC(rv.Pointer())
	if fn == nil {
		return ""
	}
	file, line := fn.FileLine(rv.Pointer())
	if file == "" || line <= 0 {
		return ""
	}
	location := "// " + file + ":" + strconv.Itoa(line)

	data, err := os.ReadFile(file)
	if err != nil {
		return location
	}
	lines := strings.Split(string(data), "\n")
	if line > len(lines) {
		return location
	}

	var b strings.Builder
	b.WriteString(location)
	depth := 0
	opened := false
	for i := line - 1; i < len(lines) && i < line-1+p.MaxSourceLines; i++ {
		b.WriteByte('\n')
		b.WriteString(lines[i])
		for _, ch := range lines[i] {
			switch ch {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			break
		}
	}
	return b.String()
}
