package argv

import (
	"reflect"
	"testing"
)

func positional(name string, a Arity) *PositionalSpec {
	return &PositionalSpec{name: name, arity: a}
}

// TestGroupReservation tests that later minimums are held back
func TestGroupReservation(t *testing.T) {
	specs := []*PositionalSpec{
		positional("src", AtLeast(1)),
		positional("dst", Exactly(1)),
	}
	out, perr := groupPositionals(specs, []string{"a", "b", "c"}, []int{0, 1, 2}, 3)
	if perr != nil {
		t.Fatalf("Grouping failed: %v", perr)
	}
	if got := out["src"].Flatten(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Expected src=[a b], got %v", got)
	}
	if out["dst"].Str() != "c" {
		t.Errorf("Expected dst='c', got %q", out["dst"].Str())
	}
}

// TestGroupBoundedChain tests caps across several bounded specs
func TestGroupBoundedChain(t *testing.T) {
	specs := []*PositionalSpec{
		positional("first", Between(0, 2)),
		positional("second", Exactly(1)),
		positional("third", Between(1, 2)),
	}
	out, perr := groupPositionals(specs, []string{"a", "b", "c", "d"}, []int{0, 1, 2, 3}, 4)
	if perr != nil {
		t.Fatalf("Grouping failed: %v", perr)
	}
	if got := out["first"].Flatten(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Expected first=[a b], got %v", got)
	}
	if out["second"].Str() != "c" {
		t.Errorf("Expected second='c', got %q", out["second"].Str())
	}
	if got := out["third"].Flatten(); !reflect.DeepEqual(got, []string{"d"}) {
		t.Errorf("Expected third=[d], got %v", got)
	}
}

// TestGroupInsufficient tests the global precheck
func TestGroupInsufficient(t *testing.T) {
	specs := []*PositionalSpec{
		positional("src", Exactly(2)),
		positional("dst", Exactly(1)),
	}
	_, perr := groupPositionals(specs, []string{"a", "b"}, []int{0, 1}, 5)
	if perr == nil || perr.Type != ErrorTypeInsufficientValues {
		t.Fatalf("Expected insufficient_values, got %v", perr)
	}
	if perr.Index != 1 {
		t.Errorf("Expected index of last collected token, got %d", perr.Index)
	}

	// No tokens at all points at the end of the vector.
	_, perr = groupPositionals(specs, nil, nil, 5)
	if perr == nil || perr.Index != 5 {
		t.Fatalf("Expected index 5 with no tokens, got %v", perr)
	}
}

// TestGroupLeftovers tests surplus past the last bounded spec
func TestGroupLeftovers(t *testing.T) {
	specs := []*PositionalSpec{positional("only", Exactly(1))}
	_, perr := groupPositionals(specs, []string{"a", "b"}, []int{3, 7}, 8)
	if perr == nil || perr.Type != ErrorTypeUnexpectedArgument {
		t.Fatalf("Expected unexpected_argument, got %v", perr)
	}
	if perr.Index != 7 {
		t.Errorf("Expected source index 7 of the first leftover, got %d", perr.Index)
	}
}

// TestGroupZeroMin tests optional positionals left empty
func TestGroupZeroMin(t *testing.T) {
	specs := []*PositionalSpec{
		positional("maybe", Between(0, 1)),
		positional("rest", AtLeast(0)),
	}
	out, perr := groupPositionals(specs, []string{"a"}, []int{0}, 1)
	if perr != nil {
		t.Fatalf("Grouping failed: %v", perr)
	}
	if got := out["maybe"].Flatten(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Expected maybe=[a], got %v", got)
	}
	if got := out["rest"].Flatten(); len(got) != 0 {
		t.Errorf("Expected rest empty, got %v", got)
	}

	out, perr = groupPositionals(specs, nil, nil, 0)
	if perr != nil {
		t.Fatalf("Grouping of nothing failed: %v", perr)
	}
	if out["maybe"].Kind() != KindList || out["maybe"].Len() != 0 {
		t.Errorf("Expected empty list for maybe, got %+v", out["maybe"])
	}
}
