package classify

import (
	"testing"

	"git.home.luguber.info/inful/thedoc/internal/model"
)

func TestKotlinClassification(t *testing.T) {
	tests := []struct {
		anchor string
		kind   model.Kind
		name   string
		ok     bool
	}{
		{"class Widget {", model.KindClass, "Widget", true},
		{"public class Widget {", model.KindClass, "Widget", true},
		{"class Box<T> {", model.KindType, "Box", true},
		{"enum class Color {", model.KindEnum, "Color", true},
		{"interface Renderer {", model.KindInterface, "Renderer", true},
		{"fun add(a: Int, b: Int): Int {", model.KindFunction, "add", true},
		{"val count: Int = 0", model.KindProperty, "count", true},
		{"var mutable = true", model.KindProperty, "mutable", true},
		{"import kotlin.math", "", "", false},
		{"", "", "", false},
	}

	c := Kotlin()
	for _, test := range tests {
		kind, name, ok := c.Classify(test.anchor)
		if ok != test.ok || kind != test.kind || name != test.name {
			t.Errorf("Classify(%q) = (%q, %q, %v), want (%q, %q, %v)",
				test.anchor, kind, name, ok, test.kind, test.name, test.ok)
		}
	}
}

func TestSwiftClassification(t *testing.T) {
	tests := []struct {
		anchor string
		kind   model.Kind
		name   string
		ok     bool
	}{
		{"class NetworkManager {", model.KindClass, "NetworkManager", true},
		{"public class NetworkManager {", model.KindClass, "NetworkManager", true},
		{"class Stack<Element> {", model.KindType, "Stack", true},
		{"enum Direction {", model.KindEnum, "Direction", true},
		{"protocol Drawable {", model.KindInterface, "Drawable", true},
		{"func fetchData() async throws -> Data {", model.KindFunction, "fetchData", true},
		{"private(set) var state: State", model.KindProperty, "state", true},
		{"let baseURL = URL(string: \"https://example.com\")!", model.KindProperty, "baseURL", true},
		{"case north", model.KindEnumCase, "north", true},
		{"case red = \"FF0000\"", model.KindEnumCase, "red", true},
		{"} // end", "", "", false},
	}

	c := Swift()
	for _, test := range tests {
		kind, name, ok := c.Classify(test.anchor)
		if ok != test.ok || kind != test.kind || name != test.name {
			t.Errorf("Classify(%q) = (%q, %q, %v), want (%q, %q, %v)",
				test.anchor, kind, name, ok, test.kind, test.name, test.ok)
		}
	}
}

// Generic forms must win over the plain forms they would otherwise match as.
func TestPriorityOrderIsDeterministic(t *testing.T) {
	kind, name, ok := Swift().Classify("public class Cache<Key, Value> {")
	if !ok || kind != model.KindType || name != "Cache" {
		t.Fatalf("generic class classified as (%q, %q, %v), want type Cache", kind, name, ok)
	}

	kind, name, ok = Kotlin().Classify("enum class Status { ACTIVE }")
	if !ok || kind != model.KindEnum || name != "Status" {
		t.Fatalf("enum class classified as (%q, %q, %v), want enum Status", kind, name, ok)
	}
}
