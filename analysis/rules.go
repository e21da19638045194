package analysis

// rule is one row of a decision table. Tables are evaluated top to bottom
// and the first rule whose predicate holds produces the outcome.
type rule[In, Out any] struct {
	when func(In) bool
	then func(In) Out
}

func decide[In, Out any](table []rule[In, Out], in In) (Out, bool) {
	for _, r := range table {
		if r.when(in) {
			return r.then(in), true
		}
	}
	var zero Out
	return zero, false
}

func decideOr[In, Out any](table []rule[In, Out], in In, fallback Out) Out {
	if out, ok := decide(table, in); ok {
		return out
	}
	return fallback
}

func is[In, Out any](v Out) func(In) Out {
	return func(In) Out { return v }
}

func atLeast(min float64) func(float64) bool {
	return func(v float64) bool { return v >= min }
}

func above(min float64) func(float64) bool {
	return func(v float64) bool { return v > min }
}

// tierTable builds an inclusive lower-bound threshold ladder.
func tierTable(bounds []float64, labels []string) []rule[float64, string] {
	table := make([]rule[float64, string], len(bounds))
	for i := range bounds {
		table[i] = rule[float64, string]{when: atLeast(bounds[i]), then: is[float64](labels[i])}
	}
	return table
}
