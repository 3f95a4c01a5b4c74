package config

import "testing"

func TestParseWorkHours_Default(t *testing.T) {
	hours, err := parseWorkHours("")
	if err != nil {
		t.Fatalf("parse default: %v", err)
	}

	want := []int{10, 12, 14, 16, 18}
	if len(hours) != len(want) {
		t.Fatalf("expected %d hours, got %d", len(want), len(hours))
	}
	for i, h := range hours {
		if h != want[i] {
			t.Fatalf("expected hour %d at %d, got %d", want[i], i, h)
		}
	}
}

func TestParseWorkHours_SortsAndDedupes(t *testing.T) {
	hours, err := parseWorkHours("14, 10, 14, 12")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []int{10, 12, 14}
	if len(hours) != len(want) {
		t.Fatalf("expected %v, got %v", want, hours)
	}
	for i, h := range hours {
		if h != want[i] {
			t.Fatalf("expected %v, got %v", want, hours)
		}
	}
}

func TestParseWorkHours_RejectsOutOfRange(t *testing.T) {
	if _, err := parseWorkHours("10,24"); err == nil {
		t.Fatal("expected error for hour 24")
	}
	if _, err := parseWorkHours("-1"); err == nil {
		t.Fatal("expected error for negative hour")
	}
}

func TestParseInt64List(t *testing.T) {
	ids, err := parseInt64List("123, 456")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ids) != 2 || ids[0] != 123 || ids[1] != 456 {
		t.Fatalf("unexpected ids: %v", ids)
	}

	ids, err = parseInt64List("")
	if err != nil || ids != nil {
		t.Fatalf("empty list must parse to nil, got %v, %v", ids, err)
	}

	if _, err := parseInt64List("abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}
