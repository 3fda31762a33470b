package dispatch

// Comparator is the per-element capability shared by comparison operations.
// Kernels compute the three-way order of two elements (-1, 0 or 1) and ask
// Holds whether the comparison is true; when either element is NaN the
// result is Unordered instead.
type Comparator interface {
	Op() OpID
	Holds(order int) bool
	Unordered() bool
}

type comparator struct {
	op        OpID
	holds     func(order int) bool
	unordered bool
}

func (c comparator) Op() OpID             { return c.op }
func (c comparator) Holds(order int) bool { return c.holds(order) }
func (c comparator) Unordered() bool      { return c.unordered }

// Comparators for each comparison operation.
var (
	Less         Comparator = comparator{OpLt, func(o int) bool { return o < 0 }, false}
	LessEqual    Comparator = comparator{OpLe, func(o int) bool { return o <= 0 }, false}
	Greater      Comparator = comparator{OpGt, func(o int) bool { return o > 0 }, false}
	GreaterEqual Comparator = comparator{OpGe, func(o int) bool { return o >= 0 }, false}
	Equal        Comparator = comparator{OpEq, func(o int) bool { return o == 0 }, false}
	NotEqual     Comparator = comparator{OpNe, func(o int) bool { return o != 0 }, true}
)

// Comparators returns every comparator in operation order.
func Comparators() []Comparator {
	return []Comparator{Less, LessEqual, Greater, GreaterEqual, Equal, NotEqual}
}

// ComparatorFor returns the comparator implementing op.
func ComparatorFor(op OpID) (Comparator, bool) {
	for _, c := range Comparators() {
		if c.Op() == op {
			return c, true
		}
	}
	return nil, false
}
