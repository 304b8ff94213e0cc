package fleet

import (
	"context"
	"net/mail"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/opsdesk/core"
)

const DefaultVehicle = "default"

var (
	NowFunc = time.Now // mockable
	newID   = func() string { return uuid.New().String() }
)

// Key returns the store key of a vehicle's log book.
func Key(vehicle string) string {
	return "fleet:" + vehicle
}

// CleanVehicle normalizes a vehicle name; the empty name is DefaultVehicle.
func CleanVehicle(vehicle string) string {
	if vehicle = core.CleanString(vehicle, true /* lower */); vehicle == "" {
		return DefaultVehicle
	}
	return vehicle
}

type Service struct {
	store      core.DocumentStore
	planner    *Planner
	validate   *validator.Validate
	mailSvc    core.EmailService
	recipients []mail.Address
}

func NewService(
	store core.DocumentStore,
	planner *Planner,
	validate *validator.Validate,
	mailSvc core.EmailService,
	recipients []mail.Address,
) *Service {
	return &Service{
		store:      store,
		planner:    planner,
		validate:   validate,
		mailSvc:    mailSvc,
		recipients: recipients,
	}
}

func (svc *Service) Planner() *Planner { return svc.planner }

func (svc *Service) load(ctx context.Context, vehicle string) (State, error) {
	state := NewSession()
	found, err := svc.store.Load(ctx, Key(vehicle), &state)
	if err != nil {
		return State{}, errors.Wrap(err, "loading log book")
	}
	if !found || state.History == nil {
		state.History = []Event{}
	}
	return state, nil
}

// Session returns the log book of vehicle; a new one if it was never saved.
func (svc *Service) Session(ctx context.Context, vehicle string) (State, error) {
	return svc.load(ctx, CleanVehicle(vehicle))
}

// Record validates and appends a new event to the log book of vehicle, then saves the whole log book.
// Fleet managers are emailed about components the event made due.
func (svc *Service) Record(ctx context.Context, vehicle string, ne NewEvent) (Recorded, error) {
	ne.Component = core.CleanString(ne.Component)
	if err := svc.validate.Struct(ne); err != nil {
		return Recorded{}, err
	}

	vehicle = CleanVehicle(vehicle)
	state, err := svc.load(ctx, vehicle)
	if err != nil {
		return Recorded{}, err
	}
	before := svc.planner.StatusReport(state)

	date := ne.Date
	if date.IsZero() {
		date = NowFunc()
	}
	e := Event{
		ID:        newID(),
		Date:      date.UTC(),
		Category:  ne.Category,
		Component: ne.Component,
		Odometer:  *ne.Odometer,
		Cost:      ne.Cost,
		Volume:    ne.Volume,
	}
	state = RecordEvent(state, e)
	if err = svc.store.Save(ctx, Key(vehicle), state); err != nil {
		return Recorded{}, errors.Wrap(err, "saving log book")
	}

	rec := Recorded{Event: e, Report: svc.report(vehicle, state)}
	if e.Category == CategoryMaintenance {
		if _, ok := svc.planner.Rule(e.Component); !ok {
			rec.Suggestion = svc.planner.Suggest(e.Component)
		}
	}
	svc.sendDueAlert(vehicle, state.CurrentOdometer, newlyDue(before, rec.Report.Components))
	return rec, nil
}

func (svc *Service) report(vehicle string, state State) Report {
	report := Report{
		Vehicle:         vehicle,
		CurrentOdometer: state.CurrentOdometer,
		Components:      svc.planner.StatusReport(state),
	}
	if eff, ok := FuelEfficiency(state); ok {
		report.FuelEfficiency = &eff
	}
	return report
}

// Report returns the maintenance status of vehicle.
func (svc *Service) Report(ctx context.Context, vehicle string) (Report, error) {
	vehicle = CleanVehicle(vehicle)
	state, err := svc.load(ctx, vehicle)
	if err != nil {
		return Report{}, err
	}
	return svc.report(vehicle, state), nil
}

// Costs returns the spending of vehicle per category.
func (svc *Service) Costs(ctx context.Context, vehicle string) ([]CategoryCost, error) {
	state, err := svc.load(ctx, CleanVehicle(vehicle))
	if err != nil {
		return nil, err
	}
	return Costs(state), nil
}
