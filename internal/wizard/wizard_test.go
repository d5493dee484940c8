package wizard_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"inkform/internal/form"
	"inkform/internal/store"
	"inkform/internal/wizard"
)

type fakeSubmitter struct {
	err   error
	calls int
	last  form.Document
}

func (f *fakeSubmitter) Submit(_ context.Context, doc form.Document) error {
	f.calls++
	f.last = doc
	return f.err
}

func TestStepClamping(t *testing.T) {
	w := wizard.New(store.NewMemStore(), &fakeSubmitter{})

	w.Prev()
	if w.Step() != wizard.StepIdentity {
		t.Fatalf("prev from first step moved to %d", w.Step())
	}
	for i := 0; i < 10; i++ {
		w.Next()
	}
	if w.Step() != wizard.StepSignature {
		t.Fatalf("next past last step moved to %d", w.Step())
	}
	w.Next()
	if w.Step() != wizard.StepSignature {
		t.Fatalf("next from last step moved to %d", w.Step())
	}
}

func TestStepControlMapping(t *testing.T) {
	cases := []struct {
		step               wizard.Step
		prev, next, submit bool
	}{
		{wizard.StepIdentity, false, true, false},
		{wizard.StepDemographics, true, true, false},
		{wizard.StepBio, true, true, false},
		{wizard.StepItems, true, true, false},
		{wizard.StepSignature, true, false, true},
	}
	for _, tc := range cases {
		t.Run(tc.step.Title(), func(t *testing.T) {
			if tc.step.HasPrev() != tc.prev || tc.step.HasNext() != tc.next || tc.step.CanSubmit() != tc.submit {
				t.Fatalf("controls for step %d: prev=%v next=%v submit=%v",
					tc.step, tc.step.HasPrev(), tc.step.HasNext(), tc.step.CanSubmit())
			}
		})
	}
}

func TestRestore_MalformedStoredDataFallsBackToDefaults(t *testing.T) {
	st := store.NewMemStore()
	if err := st.Set("form", []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	w := wizard.New(st, &fakeSubmitter{})
	w.Restore() // must not panic or error out

	doc := w.Document()
	if doc.Identity.Name != "" || doc.Bio != "" || doc.Items == nil || len(doc.Items) != 0 {
		t.Fatalf("expected default document, got %+v", doc)
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	st := store.NewMemStore()

	w := wizard.New(st, &fakeSubmitter{})
	if err := w.Mutate(func(d *form.Document) { d.Identity.Name = "Ada" }); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	it := w.Ledger().Add()
	w.Ledger().SetUnitPrice(it.ID, "1,000")
	if err := w.Persist(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	w2 := wizard.New(st, &fakeSubmitter{})
	w2.Restore()
	doc := w2.Document()
	if doc.Identity.Name != "Ada" || len(doc.Items) != 1 || doc.Items[0].UnitPrice != "1,000" {
		t.Fatalf("restored document mismatch: %+v", doc)
	}
	// Fresh ids keep increasing after restore.
	if next := w2.Ledger().Add(); next.ID <= it.ID {
		t.Fatalf("restored ledger reused id %d", next.ID)
	}
}

func TestSubmit_SuccessClearsStorage(t *testing.T) {
	st := store.NewMemStore()
	sub := &fakeSubmitter{}
	w := wizard.New(st, sub)
	if err := w.Mutate(func(d *form.Document) { d.Bio = "hello" }); err != nil {
		t.Fatal(err)
	}

	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sub.calls != 1 || sub.last.Bio != "hello" {
		t.Fatalf("submitter saw calls=%d doc=%+v", sub.calls, sub.last)
	}
	if _, ok, _ := st.Get("form"); ok {
		t.Fatal("storage still holds the form after successful submission")
	}
}

func TestSubmit_FailureLeavesStorageByteForByte(t *testing.T) {
	st := store.NewMemStore()
	sub := &fakeSubmitter{err: errors.New("boom")}
	w := wizard.New(st, sub)
	if err := w.Mutate(func(d *form.Document) { d.Bio = "keep me" }); err != nil {
		t.Fatal(err)
	}
	before, ok, _ := st.Get("form")
	if !ok {
		t.Fatal("expected persisted form before submit")
	}

	if err := w.Submit(context.Background()); err == nil {
		t.Fatal("expected submit failure")
	}
	after, ok, _ := st.Get("form")
	if !ok || !bytes.Equal(before, after) {
		t.Fatalf("stored form changed on failed submit:\nbefore=%s\nafter=%s", before, after)
	}
}

func TestSubmit_InFlightGuard(t *testing.T) {
	w := wizard.New(store.NewMemStore(), &fakeSubmitter{})

	if _, err := w.BeginSubmit(); err != nil {
		t.Fatalf("first begin: %v", err)
	}
	if _, err := w.BeginSubmit(); !errors.Is(err, wizard.ErrSubmitInFlight) {
		t.Fatalf("second begin: %v", err)
	}
	if err := w.FinishSubmit(nil); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, err := w.BeginSubmit(); err != nil {
		t.Fatalf("begin after finish: %v", err)
	}
}

func TestPersist_WritesWholeDocumentAsJSON(t *testing.T) {
	st := store.NewMemStore()
	w := wizard.New(st, &fakeSubmitter{})
	if err := w.Mutate(func(d *form.Document) {
		d.Identity.Email = "ada@example.com"
		d.Demographics.City = "London"
	}); err != nil {
		t.Fatal(err)
	}

	b, ok, _ := st.Get("form")
	if !ok {
		t.Fatal("nothing persisted")
	}
	var doc form.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("persisted bytes not json: %v", err)
	}
	if doc.Identity.Email != "ada@example.com" || doc.Demographics.City != "London" {
		t.Fatalf("persisted document mismatch: %+v", doc)
	}
}
