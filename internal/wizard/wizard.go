// Package wizard owns the step state machine and the working form
// document: restore from storage, persist after every mutation, submit at
// the end.
package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"inkform/internal/form"
	"inkform/internal/store"
)

// Step is one page of the wizard, numbered 1-5, linear, no branching.
type Step int

const (
	StepIdentity Step = iota + 1
	StepDemographics
	StepBio
	StepItems
	StepSignature
)

const (
	firstStep = StepIdentity
	lastStep  = StepSignature

	// StepCount is the number of wizard pages.
	StepCount = int(lastStep)

	// storageKey is the single key the whole document lives under.
	storageKey = "form"
)

func (s Step) Title() string {
	switch s {
	case StepIdentity:
		return "Identity"
	case StepDemographics:
		return "Demographics"
	case StepBio:
		return "Bio"
	case StepItems:
		return "Billing items"
	case StepSignature:
		return "Signature"
	}
	return fmt.Sprintf("Step %d", int(s))
}

// HasNext reports whether the Next control is shown (steps 1-4).
func (s Step) HasNext() bool { return s < lastStep }

// HasPrev reports whether the Previous control is actionable.
func (s Step) HasPrev() bool { return s > firstStep }

// CanSubmit reports whether the Submit control replaces Next (step 5).
func (s Step) CanSubmit() bool { return s == lastStep }

// ErrSubmitInFlight rejects a second submission while one is running.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// Submitter sends a finished document to the backend.
type Submitter interface {
	Submit(ctx context.Context, doc form.Document) error
}

// Wizard is the aggregate form state: current step, working document and
// its ledger view over the document's items.
type Wizard struct {
	step   Step
	doc    form.Document
	ledger *form.Ledger

	store      store.Store
	client     Submitter
	submitting bool
}

func New(st store.Store, client Submitter) *Wizard {
	doc := form.NewDocument()
	return &Wizard{
		step:   firstStep,
		doc:    doc,
		ledger: form.NewLedger(doc.Items),
		store:  st,
		client: client,
	}
}

func (w *Wizard) Step() Step              { return w.step }
func (w *Wizard) Document() form.Document { return w.doc }
func (w *Wizard) Ledger() *form.Ledger    { return w.ledger }
func (w *Wizard) Submitting() bool        { return w.submitting }

// Next advances one step, staying put at the last step.
func (w *Wizard) Next() {
	if w.step < lastStep {
		w.step++
	}
}

// Prev goes back one step, staying put at the first step.
func (w *Wizard) Prev() {
	if w.step > firstStep {
		w.step--
	}
}

// Restore loads the persisted document if present. Malformed stored data is
// treated the same as no stored data: the defaults win and the wizard never
// fails to come up.
func (w *Wizard) Restore() {
	b, ok, err := w.store.Get(storageKey)
	if err != nil || !ok {
		if err != nil {
			log.Printf("restore: %v; starting from defaults", err)
		}
		return
	}
	var doc form.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		log.Printf("restore: stored form is malformed (%v); starting from defaults", err)
		return
	}
	doc.Normalize()
	w.doc = doc
	w.ledger = form.NewLedger(doc.Items)
}

// Mutate applies fn to the working document and persists the result.
// Called after every field edit.
func (w *Wizard) Mutate(fn func(*form.Document)) error {
	fn(&w.doc)
	return w.Persist()
}

// Persist writes the entire document under the storage key. Ledger rows are
// folded back into the document first.
func (w *Wizard) Persist() error {
	w.doc.Items = w.ledger.Items()
	b, err := json.Marshal(w.doc)
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}
	if err := w.store.Set(storageKey, b); err != nil {
		return fmt.Errorf("persist form: %w", err)
	}
	return nil
}

// BeginSubmit marks a submission in flight and returns the document to
// send. The actual network call happens outside the event loop; FinishSubmit
// settles the result.
func (w *Wizard) BeginSubmit() (form.Document, error) {
	if w.submitting {
		return form.Document{}, ErrSubmitInFlight
	}
	w.doc.Items = w.ledger.Items()
	w.submitting = true
	return w.doc, nil
}

// FinishSubmit records the submission outcome. Success clears the persisted
// form; failure leaves storage untouched so the user can retry without
// losing anything.
func (w *Wizard) FinishSubmit(submitErr error) error {
	w.submitting = false
	if submitErr != nil {
		return submitErr
	}
	if err := w.store.Remove(storageKey); err != nil {
		log.Printf("clear stored form: %v", err)
	}
	return nil
}

// Submit runs the whole submission synchronously.
func (w *Wizard) Submit(ctx context.Context) error {
	doc, err := w.BeginSubmit()
	if err != nil {
		return err
	}
	return w.FinishSubmit(w.client.Submit(ctx, doc))
}
