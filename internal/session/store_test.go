package session

import (
	"testing"
	"time"

	"github.com/jskoglund/lottrace/internal/report"
)

func TestFingerprintOrderAndNameIndependent(t *testing.T) {
	a := report.InputFile{Name: "a.csv", Data: []byte("one")}
	b := report.InputFile{Name: "b.csv", Data: []byte("two")}

	fp1 := Fingerprint([]report.InputFile{a, b})
	fp2 := Fingerprint([]report.InputFile{b, a})
	if fp1 != fp2 {
		t.Error("fingerprint should not depend on file order")
	}

	renamed := report.InputFile{Name: "c.csv", Data: []byte("one")}
	fp3 := Fingerprint([]report.InputFile{renamed, b})
	if fp1 != fp3 {
		t.Error("fingerprint should not depend on file names")
	}

	changed := report.InputFile{Name: "a.csv", Data: []byte("three")}
	fp4 := Fingerprint([]report.InputFile{changed, b})
	if fp1 == fp4 {
		t.Error("fingerprint must change when content changes")
	}
}

func TestSessionInvalidate(t *testing.T) {
	st := NewStore(time.Hour)
	sess := st.GetOrCreate("")
	if sess.ID == "" {
		t.Fatal("expected generated session ID")
	}

	if !sess.Invalidate("fp1") {
		t.Fatal("fresh session must report a rebuild needed")
	}
	sess.SetModel(&report.Model{}, "fp1")

	if sess.Invalidate("fp1") {
		t.Error("unchanged fingerprint must keep the model")
	}
	if sess.Model() == nil {
		t.Fatal("model dropped despite unchanged fingerprint")
	}

	if !sess.Invalidate("fp2") {
		t.Error("changed fingerprint must drop the model")
	}
	if sess.Model() != nil {
		t.Error("expected model discarded wholesale")
	}
}

func TestStoreGetOrCreateReuses(t *testing.T) {
	st := NewStore(time.Hour)
	s1 := st.GetOrCreate("abc")
	s2 := st.GetOrCreate("abc")
	if s1 != s2 {
		t.Error("expected the same session instance for the same ID")
	}
	if st.Get("missing") != nil {
		t.Error("expected nil for unknown session")
	}
}

func TestStoreCleanupEvictsIdleSessions(t *testing.T) {
	st := NewStore(10 * time.Millisecond)
	st.GetOrCreate("old")

	time.Sleep(25 * time.Millisecond)
	st.Cleanup()

	if st.Get("old") != nil {
		t.Fatal("expected idle session evicted")
	}

	fresh := st.GetOrCreate("fresh")
	st.Cleanup()
	if st.Get("fresh") == nil || fresh == nil {
		t.Fatal("expected fresh session to survive cleanup")
	}
}

func TestDelete(t *testing.T) {
	st := NewStore(time.Hour)
	st.GetOrCreate("x")
	st.Delete("x")
	if st.Get("x") != nil {
		t.Error("expected session removed")
	}
}
