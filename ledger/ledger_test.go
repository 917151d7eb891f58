package ledger

import "testing"

func TestRememberThreshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold Level
		infos     int
		warnings  int
		errors    int
	}{
		{"error only", Error, 0, 0, 1},
		{"with warnings", Warning, 0, 1, 1},
		{"everything", Info, 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.threshold)
			l.Remember(Entry{Level: Info, Message: "i"})
			l.Remember(Entry{Level: Warning, Message: "w"})
			l.Remember(Entry{Level: Error, Message: "e"})

			if got := len(l.Infos()); got != tt.infos {
				t.Errorf("infos = %d, want %d", got, tt.infos)
			}
			if got := len(l.Warnings()); got != tt.warnings {
				t.Errorf("warnings = %d, want %d", got, tt.warnings)
			}
			if got := len(l.Errors()); got != tt.errors {
				t.Errorf("errors = %d, want %d", got, tt.errors)
			}
			if !l.HasErrors() || !l.HasProblems() {
				t.Error("expected problems")
			}
		})
	}
}

func TestRememberWrongLevel(t *testing.T) {
	l := New(Info)
	l.Remember(Entry{Level: Level(7), Message: "odd"})
	if l.HasProblems() {
		t.Error("entry with unknown level must not be recorded as a finding")
	}
	if len(l.Failures()) != 1 {
		t.Fatalf("failures = %d, want 1", len(l.Failures()))
	}
}

func TestFailIgnoresThreshold(t *testing.T) {
	l := New(Error)
	l.Fail("broken", "returned nothing")
	if len(l.Failures()) != 1 {
		t.Fatal("failure not recorded")
	}
	if l.HasProblems() {
		t.Error("failures are not findings")
	}
	if s := l.Failures()[0].String(); s != "[TOOL] broken: returned nothing" {
		t.Errorf("String() = %q", s)
	}
}

func TestBucketsOrder(t *testing.T) {
	l := New(Info)
	l.Remember(Entry{Level: Error, Message: "e"})
	l.Remember(Entry{Level: Info, Message: "i"})
	b := l.Buckets()
	if len(b[0]) != 1 || b[0][0].Message != "i" {
		t.Errorf("bucket 0 = %v", b[0])
	}
	if len(b[2]) != 1 || b[2][0].Message != "e" {
		t.Errorf("bucket 2 = %v", b[2])
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d", l.Len())
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"error": Error, "1": Warning, "LOG": Info, " info ": Info} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("fatal"); err == nil {
		t.Error("expected error")
	}
}
