package catalog

// SeekOp is a comparison inside the seek predicate.
type SeekOp int

const (
	SeekEq SeekOp = iota
	SeekGt
	SeekLt
	SeekIsNull
)

// SeekCond is one comparison of the seek predicate. OrNull widens a strict
// comparison on a nulls-last key to `(col > v OR col IS NULL)`: rows with a
// NULL key sort after every non-null value, so they always lie ahead of a
// non-null cursor position.
type SeekCond struct {
	Field  Field
	Op     SeekOp
	Value  any
	OrNull bool
}

// SeekExpr is a disjunction of conjunctions: the standard n-ary keyset
// expansion. nil means no constraint (first page).
type SeekExpr [][]SeekCond

// BuildSeek converts (sort chain, cursor values) into the seek predicate
//
//	OR over i: (AND over j<i: fj = vj) AND (fi > vi | fi < vi)
//
// This exact OR-of-AND shape, tie-breaker included, is what guarantees no
// row is skipped or repeated when leading sort keys carry duplicates.
func BuildSeek(chain SortChain, cursor CursorValues) SeekExpr {
	if len(cursor) == 0 {
		return nil
	}

	var expr SeekExpr
	for i, key := range chain {
		value, ok := cursor[key.Field]
		if !ok {
			// The codec rejects chain-mismatched tokens before this point.
			return nil
		}

		strict, valid := strictCond(key, value)
		if !valid {
			continue
		}

		conj := make([]SeekCond, 0, i+1)
		for _, prev := range chain[:i] {
			conj = append(conj, equalityCond(prev, cursor[prev.Field]))
		}
		conj = append(conj, strict)
		expr = append(expr, conj)
	}

	return expr
}

// strictCond builds the advancing comparison for one key. A NULL cursor
// value on a nulls-last key has no strictly-later value on that key, so the
// disjunct is dropped and only deeper tie-breaker disjuncts can advance.
func strictCond(key SortKey, value any) (SeekCond, bool) {
	if value == nil {
		return SeekCond{}, false
	}

	op := SeekGt
	if key.Desc {
		op = SeekLt
	}
	return SeekCond{
		Field:  key.Field,
		Op:     op,
		Value:  value,
		OrNull: key.NullsLast && key.Field.Nullable(),
	}, true
}

func equalityCond(key SortKey, value any) SeekCond {
	if value == nil {
		return SeekCond{Field: key.Field, Op: SeekIsNull}
	}
	return SeekCond{Field: key.Field, Op: SeekEq, Value: value}
}
