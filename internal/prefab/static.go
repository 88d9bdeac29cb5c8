package prefab

import (
	"errors"
	"math/big"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// addStaticValues loads the values of well-known non-basic types.
// Basic kinds, time.Time and time.Duration come from the primitive table.
func addStaticValues(v *Values) {
	redErr := errors.New("red")

	must(AddFor(v,
		uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8"),
		uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
	))
	must(AddFor(v, redErr, errors.New("black"), redErr))
	must(AddFor(v, big.NewInt(1), big.NewInt(2), big.NewInt(1)))
	must(AddFor(v, big.NewFloat(0.5), big.NewFloat(1.5), big.NewFloat(0.5)))
	must(AddFor(v, time.UTC, time.FixedZone("black", 3600), time.UTC))
	must(AddFor(v, reflect.TypeFor[int](), reflect.TypeFor[string](), reflect.TypeFor[int]()))

	// Synchronization primitives hold runtime state, not data: any value but
	// the zero one is a corrupt lock.
	for _, t := range []reflect.Type{
		reflect.TypeFor[sync.Mutex](),
		reflect.TypeFor[sync.RWMutex](),
		reflect.TypeFor[sync.Once](),
		reflect.TypeFor[sync.WaitGroup](),
		reflect.TypeFor[sync.Cond](),
		reflect.TypeFor[sync.Map](),
		reflect.TypeFor[sync.Pool](),
	} {
		v.addStateless(t)
	}

	addAtomic[atomic.Bool](v, true, false)
	addAtomic[atomic.Int32](v, int32(1), int32(2))
	addAtomic[atomic.Int64](v, int64(1), int64(2))
	addAtomic[atomic.Uint32](v, uint32(1), uint32(2))
	addAtomic[atomic.Uint64](v, uint64(1), uint64(2))
	addAtomic[atomic.Uintptr](v, uintptr(1), uintptr(2))
	addAtomic[atomic.Value](v, any("red"), any("black"))
}

// addAtomic registers atomics holding red and black. The values are built
// through Store so the hidden fields stay consistent.
func addAtomic[T any, P interface {
	*T
	Store(V)
}, V any](v *Values, red, black V) {
	r, b, c := P(new(T)), P(new(T)), P(new(T))
	r.Store(red)
	b.Store(black)
	c.Store(red)

	v.put(Tuple{
		Red:     reflect.ValueOf(r).Elem(),
		Black:   reflect.ValueOf(b).Elem(),
		RedCopy: reflect.ValueOf(c).Elem(),
	})
}

func must(err error) {
	if err != nil {
		panic("prefab: invalid static values: " + err.Error())
	}
}
