package resolver

import "testing"

func TestRegisterAndLookup(t *testing.T) {
	Register("test-type", func(Deps) Resolver { return nil })

	f, ok := Lookup("test-type")
	if !ok {
		t.Fatal("Lookup(test-type) = false after Register")
	}
	if f == nil {
		t.Fatal("Lookup returned nil factory")
	}

	if _, ok := Lookup("unknown"); ok {
		t.Error("Lookup(unknown) = true, want false")
	}
}

func TestTypesSorted(t *testing.T) {
	Register("zeta", func(Deps) Resolver { return nil })
	Register("alpha", func(Deps) Resolver { return nil })

	names := Types()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Types() not sorted: %v", names)
		}
	}
}
