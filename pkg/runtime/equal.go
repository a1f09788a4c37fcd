package runtime

// Equal reports deep value equality. Entities compare by type name, fields,
// props and reserved element; Empty equals only Empty.
func Equal(a, b Value) bool {
	if a == nil {
		a = Empty
	}
	if b == nil {
		b = Empty
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case TextValue:
		return av.Val == b.(TextValue).Val
	case NumberValue:
		return av.Val == b.(NumberValue).Val
	case DateValue:
		return av.Val == b.(DateValue).Val
	case EnumValue:
		bv := b.(EnumValue)
		return av.Val == bv.Val && stringsEqual(av.Choices, bv.Choices)
	case *ListValue:
		bv := b.(*ListValue)
		if len(av.Items) != len(bv.Items) {
			return false
		}
		for idx := range av.Items {
			if !Equal(av.Items[idx], bv.Items[idx]) {
				return false
			}
		}
		return true
	case *DictValue:
		return RecordsEqual(av.Entries, b.(*DictValue).Entries)
	case RefValue:
		bv := b.(RefValue)
		return av.Scope == bv.Scope && av.Name == bv.Name && stringsEqual(av.Path, bv.Path)
	case *EntityValue:
		bv := b.(*EntityValue)
		if av == bv {
			return true
		}
		return av.TypeName == bv.TypeName &&
			RecordsEqual(av.Fields, bv.Fields) &&
			RecordsEqual(av.Props, bv.Props) &&
			Equal(av.Reserved, bv.Reserved)
	case EmptyValue:
		return true
	default:
		return false
	}
}

// RecordsEqual compares keys (in order) and values.
func RecordsEqual(a, b *Record) bool {
	if a.Len() != b.Len() {
		return false
	}
	for idx := 0; idx < a.Len(); idx++ {
		ak, av, _ := a.At(idx)
		bk, bv, _ := b.At(idx)
		if ak != bk || !Equal(av, bv) {
			return false
		}
	}
	return true
}

// TypeDefsEqual compares two TypeDefs by content.
func TypeDefsEqual(a, b *TypeDef) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name != b.Name || !stringsEqual(a.Params, b.Params) {
		return false
	}
	for idx := range a.Params {
		ak, bk := a.KindOf(idx), b.KindOf(idx)
		if ak.Tag != bk.Tag || !stringsEqual(ak.Choices, bk.Choices) {
			return false
		}
		if a.NestedType(a.Params[idx]) != b.NestedType(b.Params[idx]) {
			return false
		}
	}
	return Equal(a.Reserved, b.Reserved)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if a[idx] != b[idx] {
			return false
		}
	}
	return true
}
