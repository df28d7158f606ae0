package registry

import (
	"errors"
	"testing"
)

func TestAddAndList(t *testing.T) {
	r := New()
	if err := r.Add(Server{Name: "web-1", URL: "http://web-1:8080/"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.Add(Server{Name: "web-2", URL: "https://web-2:8080"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	list := r.List()
	if len(list) != 2 || list[0].Name != "web-1" || list[1].Name != "web-2" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list[0].URL != "http://web-1:8080" {
		t.Fatalf("trailing slash should be trimmed: %q", list[0].URL)
	}
}

func TestAddDuplicate(t *testing.T) {
	r := New()
	if err := r.Add(Server{Name: "web-1", URL: "http://a:1"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := r.Add(Server{Name: "web-1", URL: "http://b:2"}); !errors.Is(err, ErrExists) {
		t.Fatalf("want ErrExists, got %v", err)
	}
}

func TestAddInvalid(t *testing.T) {
	r := New()
	if err := r.Add(Server{Name: "", URL: "http://a:1"}); err == nil {
		t.Fatalf("empty name should fail")
	}
	if err := r.Add(Server{Name: "x", URL: "not a url"}); err == nil {
		t.Fatalf("bad url should fail")
	}
	if err := r.Add(Server{Name: "x", URL: "ftp://a:1"}); err == nil {
		t.Fatalf("non-http scheme should fail")
	}
}

func TestRemove(t *testing.T) {
	r := New()
	_ = r.Add(Server{Name: "web-1", URL: "http://a:1"})
	if err := r.Remove("web-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(r.List()) != 0 {
		t.Fatalf("registry should be empty")
	}
	if err := r.Remove("web-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGet(t *testing.T) {
	r := New()
	_ = r.Add(Server{Name: "web-1", URL: "http://a:1", Description: "primary web"})
	s, err := r.Get("web-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.Description != "primary web" {
		t.Fatalf("unexpected server: %+v", s)
	}
	if _, err := r.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	r := New()
	_ = r.Add(Server{Name: "a", URL: "http://a:1"})
	_ = r.Add(Server{Name: "b", URL: "http://b:1"})
	_ = r.Add(Server{Name: "c", URL: "http://c:1"})

	all := r.Select(nil)
	if len(all) != 3 {
		t.Fatalf("nil names should select all")
	}
	some := r.Select([]string{"c", " a ", "ghost"})
	if len(some) != 2 || some[0].Name != "a" || some[1].Name != "c" {
		t.Fatalf("unexpected selection: %+v", some)
	}
}
