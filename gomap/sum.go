package gomap

import (
	"fmt"
	"reflect"
	"sync"
)

// A sum type is a Go interface with a closed, registered set of
// variant types. A variant is encoded as an array holding the variant
// name followed by its fields in declaration order, so
//
//	Blue{S: "x", N: 1}  =>  ["Blue", "x", 1]
//	Red{}               =>  ["Red"]
//
// A variant that is not a struct contributes its value as the single
// field. On decode the first element may also be the variant's
// position in the registration list.
type sum struct {
	iface    reflect.Type
	variants []*variant
	byName   map[string]*variant
}

type variant struct {
	sum   *sum
	index int
	name  string
	typ   reflect.Type
}

var sums = struct {
	sync.RWMutex
	byIface   map[reflect.Type]*sum
	byVariant map[reflect.Type]*variant
}{
	byIface:   map[reflect.Type]*sum{},
	byVariant: map[reflect.Type]*variant{},
}

// RegisterSum registers the dynamic types of variants as the variants
// of interface type I. Variant names are the Go type names. It panics
// if I is not an interface, if two variants share a name or if a
// type is registered twice.
func RegisterSum[I any](variants ...I) {
	iface := reflect.TypeFor[I]()
	if iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("gomap: RegisterSum: %s is not an interface", iface))
	}
	s := &sum{iface: iface, byName: map[string]*variant{}}
	for i, v := range variants {
		typ := reflect.TypeOf(v)
		if typ == nil {
			panic(fmt.Sprintf("gomap: RegisterSum[%s]: nil variant", iface))
		}
		base := typ
		if base.Kind() == reflect.Pointer {
			base = base.Elem()
		}
		name := base.Name()
		if name == "" {
			panic(fmt.Sprintf("gomap: RegisterSum[%s]: variant %s has no name", iface, typ))
		}
		if _, dup := s.byName[name]; dup {
			panic(fmt.Sprintf("gomap: RegisterSum[%s]: duplicate variant name %q", iface, name))
		}
		vt := &variant{sum: s, index: i, name: name, typ: typ}
		s.variants = append(s.variants, vt)
		s.byName[name] = vt
	}

	sums.Lock()
	defer sums.Unlock()
	if _, ok := sums.byIface[iface]; ok {
		panic(fmt.Sprintf("gomap: RegisterSum: %s registered twice", iface))
	}
	for _, vt := range s.variants {
		if prev, ok := sums.byVariant[vt.typ]; ok {
			panic(fmt.Sprintf("gomap: RegisterSum[%s]: %s already a variant of %s", iface, vt.typ, prev.sum.iface))
		}
	}
	sums.byIface[iface] = s
	for _, vt := range s.variants {
		sums.byVariant[vt.typ] = vt
	}
}

func lookupSum(iface reflect.Type) *sum {
	sums.RLock()
	defer sums.RUnlock()
	return sums.byIface[iface]
}

func lookupVariant(typ reflect.Type) *variant {
	sums.RLock()
	defer sums.RUnlock()
	return sums.byVariant[typ]
}

// variantOf finds the variant for typ, also matching a value type
// whose pointer type was registered.
func variantOf(typ reflect.Type) *variant {
	if vt := lookupVariant(typ); vt != nil {
		return vt
	}
	if typ.Kind() != reflect.Pointer {
		return lookupVariant(reflect.PointerTo(typ))
	}
	return nil
}
