package store

import (
	"bytes"
	"testing"

	"github.com/odvcencio/colim/pkg/quotient"
)

func TestPutGet_RoundTrip(t *testing.T) {
	s := New(t.TempDir())

	payload := []byte(`{"shape": "pushout"}`)
	h, err := s.Put(KindDiagram, payload)
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if !s.Has(h) {
		t.Fatal("Has() = false after Put")
	}

	kind, data, err := s.Get(h)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if kind != KindDiagram {
		t.Errorf("kind = %q, want %q", kind, KindDiagram)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("payload = %q, want %q", data, payload)
	}
}

func TestPut_Idempotent(t *testing.T) {
	s := New(t.TempDir())
	h1, err := s.Put(KindClasses, []byte("x"))
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	h2, err := s.Put(KindClasses, []byte("x"))
	if err != nil {
		t.Fatalf("second Put() error: %v", err)
	}
	if h1 != h2 {
		t.Errorf("same payload hashed differently: %s vs %s", h1, h2)
	}
}

func TestHash_KindSeparatesContent(t *testing.T) {
	if HashEntry(KindDiagram, []byte("x")) == HashEntry(KindClasses, []byte("x")) {
		t.Error("entries of different kinds share an address")
	}
}

func TestGet_Missing(t *testing.T) {
	s := New(t.TempDir())
	if _, _, err := s.Get("0123456789abcdef"); err == nil {
		t.Fatal("Get() = nil error for a missing entry")
	}
	if _, _, err := s.Get("xy"); err == nil {
		t.Fatal("Get() = nil error for a malformed hash")
	}
}

func TestClasses_RoundTrip(t *testing.T) {
	cls := &quotient.Classes{
		RepOf: map[quotient.Element]string{
			{Index: "i", Object: "a1"}: "i::a1",
			{Index: "j", Object: "b1"}: "i::a1",
			{Index: "i", Object: "a2"}: "i::a2",
		},
		Members: map[string][]quotient.Element{
			"i::a1": {{Index: "i", Object: "a1"}, {Index: "j", Object: "b1"}},
			"i::a2": {{Index: "i", Object: "a2"}},
		},
	}

	s := New(t.TempDir())
	h, err := s.PutClasses(cls)
	if err != nil {
		t.Fatalf("PutClasses() error: %v", err)
	}

	back, err := s.GetClasses(h)
	if err != nil {
		t.Fatalf("GetClasses() error: %v", err)
	}
	for e, rep := range cls.RepOf {
		if back.RepOf[e] != rep {
			t.Errorf("rep of %v = %q, want %q", e, back.RepOf[e], rep)
		}
	}
	if len(back.Members) != len(cls.Members) {
		t.Errorf("got %d classes, want %d", len(back.Members), len(cls.Members))
	}
}

func TestGetClasses_WrongKind(t *testing.T) {
	s := New(t.TempDir())
	h, err := s.Put(KindDiagram, []byte("{}"))
	if err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if _, err := s.GetClasses(h); err == nil {
		t.Fatal("GetClasses() accepted a diagram entry")
	}
}
