package registry

import (
	"testing"

	"circuitgo/component"
)

func dummyBuilder(params map[string]any) (*component.Component, error) {
	return nil, nil
}

func TestRegisterAndLookup(t *testing.T) {
	RegisterBuilder("registry_test_dummy", dummyBuilder)

	b, ok := Lookup("registry_test_dummy")
	if !ok {
		t.Fatal("Lookup: expected registered type to be found")
	}
	if b == nil {
		t.Fatal("Lookup: returned nil builder for a registered type")
	}

	if _, ok := Lookup("registry_test_nonexistent"); ok {
		t.Fatal("Lookup: unexpected hit for an unregistered type")
	}
}

func TestRegisterBuilderPanicsOnDuplicate(t *testing.T) {
	RegisterBuilder("registry_test_dup", dummyBuilder)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	RegisterBuilder("registry_test_dup", dummyBuilder)
}

func TestRegisterBuilderPanicsOnEmptyType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on empty component type")
		}
	}()
	RegisterBuilder("", dummyBuilder)
}

func TestRegisterBuilderPanicsOnNilBuilder(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on nil builder")
		}
	}()
	RegisterBuilder("registry_test_nil", nil)
}

func TestTypesIncludesRegistered(t *testing.T) {
	RegisterBuilder("registry_test_types", dummyBuilder)

	found := false
	for _, typ := range Types() {
		if typ == "registry_test_types" {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("Types() did not include a just-registered type")
	}
}
