package tensor

// undefinedType marks a promotion tier with no operands yet.
const undefinedType DataType = -1

// PromoteTypes returns the smallest dtype both a and b convert to without
// changing category:
//
//	bool  + x        -> x
//	uint8 + int8     -> int16
//	int   + int      -> the wider int
//	int   + float    -> the float
//	float16 + bfloat16 -> float32
//	float + float    -> the wider float
func PromoteTypes(a, b DataType) (DataType, error) {
	if !a.Valid() || !b.Valid() {
		return undefinedType, Errorf("", ErrDTypePromotion, "cannot promote %s and %s", a, b)
	}
	if a == b {
		return a, nil
	}
	if a == Bool {
		return b, nil
	}
	if b == Bool {
		return a, nil
	}

	aFloat, bFloat := a.IsFloating(), b.IsFloating()
	switch {
	case aFloat && bFloat:
		if a.Size() == b.Size() {
			// Float16 and BFloat16 share no common 16-bit type.
			return Float32, nil
		}
		return widest(a, b), nil
	case aFloat:
		return a, nil
	case bFloat:
		return b, nil
	}

	if a == Uint8 || b == Uint8 {
		other := a
		if a == Uint8 {
			other = b
		}
		if other == Int8 {
			return Int16, nil
		}
		return other, nil
	}
	return widest(a, b), nil
}

func widest(a, b DataType) DataType {
	if a.Size() >= b.Size() {
		return a
	}
	return b
}

// category orders dtypes as bool < integral < floating.
func category(dt DataType) int {
	switch {
	case dt == Bool:
		return 0
	case dt.IsFloating():
		return 2
	default:
		return 1
	}
}

// ResultType computes the common dtype of the operands.
//
// Operands are split into three tiers: tensors with dimensions, 0-dim
// tensors, and wrapped numbers. A lower tier only influences the result when
// it belongs to a higher category than the tiers above it, so an int8 tensor
// plus a wrapped int stays int8 while an int8 tensor plus a wrapped float
// becomes DefaultFloat. Wrapped floats count as DefaultFloat.
func ResultType(operands ...*RawTensor) (DataType, error) {
	dimResult, zeroResult, wrappedResult := undefinedType, undefinedType, undefinedType
	var err error

	for _, t := range operands {
		if t == nil {
			continue
		}
		current := t.DType()
		switch {
		case t.IsWrappedNumber():
			if current.IsFloating() {
				current = DefaultFloat
			}
			wrappedResult, err = promoteDefined(wrappedResult, current)
		case t.Dim() == 0:
			zeroResult, err = promoteDefined(zeroResult, current)
		default:
			dimResult, err = promoteDefined(dimResult, current)
		}
		if err != nil {
			return undefinedType, err
		}
	}

	lower, err := combineCategories(zeroResult, wrappedResult)
	if err != nil {
		return undefinedType, err
	}
	result, err := combineCategories(dimResult, lower)
	if err != nil {
		return undefinedType, err
	}
	if result == undefinedType {
		return undefinedType, Errorf("", ErrDTypePromotion, "no operands to promote")
	}
	return result, nil
}

func promoteDefined(acc, dt DataType) (DataType, error) {
	if acc == undefinedType {
		return dt, nil
	}
	return PromoteTypes(acc, dt)
}

func combineCategories(higher, lower DataType) (DataType, error) {
	switch {
	case higher == undefinedType:
		return lower, nil
	case lower == undefinedType:
		return higher, nil
	case category(higher) >= category(lower) && higher != Bool:
		return higher, nil
	default:
		return PromoteTypes(higher, lower)
	}
}

// CanCast reports whether values of type from may be written into a tensor
// of type to: floats never narrow into integers, and only bools write into bools.
func CanCast(from, to DataType) bool {
	if from.IsFloating() && to.IsIntegral(true) {
		return false
	}
	if from != Bool && to == Bool {
		return false
	}
	return true
}
