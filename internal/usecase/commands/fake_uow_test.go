//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"parklot/internal/domain/lot"
	"parklot/internal/domain/reservation"
	"parklot/internal/domain/user"
	"parklot/internal/infra"
	"parklot/internal/usecase/queries"
	"parklot/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory UnitOfWork double. Within holds one big lock for the whole
// transaction, which serializes concurrent callers the same way row
// locks do against a single spot pool, and restores a snapshot of the
// state when the function fails so rollbacks behave like the real thing.

type fakeJob struct {
	kind  string
	topic string
	runAt time.Time
}

type fakeState struct {
	users        map[uuid.UUID]shared.UserSnapshot
	lots         map[uuid.UUID]shared.LotSnapshot
	spots        map[uuid.UUID]shared.SpotSnapshot
	reservations map[uuid.UUID]shared.ReservationSnapshot
	idempotency  map[string]shared.IdempotencyRecord
	jobs         []fakeJob
}

func newFakeState() *fakeState {
	return &fakeState{
		users:        make(map[uuid.UUID]shared.UserSnapshot),
		lots:         make(map[uuid.UUID]shared.LotSnapshot),
		spots:        make(map[uuid.UUID]shared.SpotSnapshot),
		reservations: make(map[uuid.UUID]shared.ReservationSnapshot),
		idempotency:  make(map[string]shared.IdempotencyRecord),
	}
}

func (s *fakeState) clone() *fakeState {
	c := newFakeState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.lots {
		c.lots[k] = v
	}
	for k, v := range s.spots {
		c.spots[k] = v
	}
	for k, v := range s.reservations {
		c.reservations[k] = v
	}
	for k, v := range s.idempotency {
		c.idempotency[k] = v
	}
	c.jobs = append(c.jobs, s.jobs...)
	return c
}

func idemKey(key, userID uuid.UUID) string {
	return key.String() + "/" + userID.String()
}

type fakeUoW struct {
	mu    sync.Mutex
	state *fakeState
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{state: newFakeState()}
}

func (f *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	backup := f.state.clone()
	if err := fn(ctx, &fakeTx{s: f.state}); err != nil {
		f.state = backup
		return err
	}
	return nil
}

func (f *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{s: f.state}
}

type fakeTx struct {
	s *fakeState
}

func (t *fakeTx) Lots() shared.LotRepository                   { return &fakeLots{s: t.s} }
func (t *fakeTx) Spots() shared.SpotRepository                 { return &fakeSpots{s: t.s} }
func (t *fakeTx) Reservations() shared.ReservationRepository   { return &fakeReservations{s: t.s} }
func (t *fakeTx) Idempotency() shared.IdempotencyRepository    { return &fakeIdempotency{s: t.s} }
func (t *fakeTx) Notifications() shared.NotificationRepository { return &fakeNotifications{s: t.s} }
func (t *fakeTx) Users() shared.UserRepository                 { return &fakeUsers{s: t.s} }
func (t *fakeTx) Reads() shared.CommandReads                   { return &fakeReads{s: t.s} }

type fakeLots struct{ s *fakeState }

func (r *fakeLots) Create(_ context.Context, l *lot.Lot) error {
	r.s.lots[l.ID()] = shared.LotSnapshot{
		ID:                l.ID(),
		Name:              l.Name(),
		PricePerHourCents: l.PricePerHourCents(),
		Capacity:          l.Capacity(),
	}
	return nil
}

func (r *fakeLots) UpdatePrice(_ context.Context, id uuid.UUID, pricePerHourCents int64) (bool, error) {
	l, ok := r.s.lots[id]
	if !ok {
		return false, nil
	}
	l.PricePerHourCents = pricePerHourCents
	r.s.lots[id] = l
	return true, nil
}

// Lock variants are no-ops beyond the lookup: Within's mutex already
// serializes whole transactions, which is stricter than row locks.

func (r *fakeLots) LockForUpdate(_ context.Context, id uuid.UUID) (*shared.LotSnapshot, error) {
	l, ok := r.s.lots[id]
	if !ok {
		return nil, infra.WrapRepoErr("lot not found", nil, infra.KindNotFound)
	}
	return &l, nil
}

func (r *fakeLots) LockShared(ctx context.Context, id uuid.UUID) (*shared.LotSnapshot, error) {
	return r.LockForUpdate(ctx, id)
}

func (r *fakeLots) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.s.lots[id]; !ok {
		return false, nil
	}
	delete(r.s.lots, id)
	for spotID, sp := range r.s.spots {
		if sp.LotID == id {
			delete(r.s.spots, spotID)
		}
	}
	// FK SET NULL: history rows lose their lot and spot references.
	for resID, res := range r.s.reservations {
		if res.LotID != nil && *res.LotID == id {
			res.LotID = nil
			res.SpotID = nil
			r.s.reservations[resID] = res
		}
	}
	return true, nil
}

type fakeSpots struct{ s *fakeState }

func (r *fakeSpots) BulkCreate(_ context.Context, lotID uuid.UUID, count int32) error {
	for n := int32(1); n <= count; n++ {
		id := uuid.New()
		r.s.spots[id] = shared.SpotSnapshot{ID: id, LotID: lotID, Number: n, Status: "available"}
	}
	return nil
}

func (r *fakeSpots) LockFirstAvailable(_ context.Context, lotID uuid.UUID) (*shared.SpotSnapshot, error) {
	var best *shared.SpotSnapshot
	for _, sp := range r.s.spots {
		if sp.LotID != lotID || sp.Status != "available" {
			continue
		}
		sp := sp
		if best == nil || sp.Number < best.Number {
			best = &sp
		}
	}
	return best, nil
}

func (r *fakeSpots) Claim(_ context.Context, spotID uuid.UUID) (bool, error) {
	sp, ok := r.s.spots[spotID]
	if !ok || sp.Status != "available" {
		return false, nil
	}
	sp.Status = "occupied"
	r.s.spots[spotID] = sp
	return true, nil
}

func (r *fakeSpots) Free(_ context.Context, spotID uuid.UUID) (bool, error) {
	sp, ok := r.s.spots[spotID]
	if !ok || sp.Status != "occupied" {
		return false, nil
	}
	sp.Status = "available"
	r.s.spots[spotID] = sp
	return true, nil
}

func (r *fakeSpots) CountOccupied(_ context.Context, lotID uuid.UUID) (int64, error) {
	var n int64
	for _, sp := range r.s.spots {
		if sp.LotID == lotID && sp.Status == "occupied" {
			n++
		}
	}
	return n, nil
}

type fakeReservations struct{ s *fakeState }

func (r *fakeReservations) Create(_ context.Context, res *reservation.Reservation) (uuid.UUID, error) {
	for _, existing := range r.s.reservations {
		if existing.SpotID != nil && *existing.SpotID == res.SpotID() && existing.LeavingTime == nil {
			return uuid.Nil, infra.WrapRepoErr("open reservation already exists for spot", nil, infra.KindConflict)
		}
	}
	spotID := res.SpotID()
	lotID := res.LotID()
	r.s.reservations[res.ID()] = shared.ReservationSnapshot{
		ID:               res.ID(),
		SpotID:           &spotID,
		LotID:            &lotID,
		UserID:           res.UserID(),
		SpotNumber:       res.SpotNumber(),
		ParkingTime:      res.ParkingTime(),
		CostPerHourCents: res.CostPerHour().Cents(),
	}
	return res.ID(), nil
}

func (r *fakeReservations) Close(_ context.Context, id uuid.UUID, leavingTime time.Time, costCents int64) (bool, error) {
	res, ok := r.s.reservations[id]
	if !ok || res.LeavingTime != nil {
		return false, nil
	}
	lt := leavingTime
	cc := costCents
	res.LeavingTime = &lt
	res.CostCents = &cc
	r.s.reservations[id] = res
	return true, nil
}

type fakeIdempotency struct{ s *fakeState }

func (r *fakeIdempotency) TryInsert(_ context.Context, key, userID uuid.UUID, _ string, requestHash string, expiresAt time.Time) (bool, error) {
	k := idemKey(key, userID)
	if _, ok := r.s.idempotency[k]; ok {
		return false, nil
	}
	r.s.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Status:      "processing",
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *fakeIdempotency) UpdateStatusCompleted(_ context.Context, key, userID uuid.UUID, resultReservationID uuid.UUID) error {
	k := idemKey(key, userID)
	rec, ok := r.s.idempotency[k]
	if !ok {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	id := resultReservationID
	rec.Status = "completed"
	rec.ResultReservationID = &id
	r.s.idempotency[k] = rec
	return nil
}

type fakeNotifications struct{ s *fakeState }

func (r *fakeNotifications) CreateJob(_ context.Context, kind, topic string, _ []byte, runAt time.Time) error {
	r.s.jobs = append(r.s.jobs, fakeJob{kind: kind, topic: topic, runAt: runAt})
	return nil
}

type fakeUsers struct{ s *fakeState }

func (r *fakeUsers) Create(_ context.Context, u *user.User) (uuid.UUID, error) {
	for _, existing := range r.s.users {
		if existing.Email == u.Email().Value() {
			return uuid.Nil, infra.WrapRepoErr("email already registered", nil, infra.KindDuplicateKey)
		}
	}
	r.s.users[u.ID()] = shared.UserSnapshot{
		ID:       u.ID(),
		Email:    u.Email().Value(),
		Role:     u.Role().String(),
		IsActive: u.IsActive(),
	}
	return u.ID(), nil
}

func (r *fakeUsers) UpdateLastLogin(_ context.Context, _ uuid.UUID) error {
	return nil
}

type fakeReads struct{ s *fakeState }

func (r *fakeReads) ReservationByID(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return &res, nil
}

func (r *fakeReads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return &u, nil
}

func (r *fakeReads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.s.idempotency[idemKey(key, userID)]
	if !ok {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return &rec, nil
}

// fakeReservationQueries serves the post-commit read-after-write the
// commands do, straight from the fake state.
type fakeReservationQueries struct {
	u *fakeUoW
}

func (q *fakeReservationQueries) GetByIDSystem(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	q.u.mu.Lock()
	defer q.u.mu.Unlock()

	res, ok := q.u.state.reservations[id]
	if !ok {
		return nil, queries.ErrReservationNotFound
	}
	view := &queries.ReservationView{
		ID:               res.ID,
		LotID:            res.LotID,
		SpotID:           res.SpotID,
		SpotNumber:       res.SpotNumber,
		UserID:           res.UserID,
		ParkingTime:      res.ParkingTime,
		LeavingTime:      res.LeavingTime,
		CostPerHourCents: res.CostPerHourCents,
		CostCents:        res.CostCents,
		Status:           "open",
	}
	if res.LeavingTime != nil {
		view.Status = "closed"
	}
	if res.LotID != nil {
		if l, ok := q.u.state.lots[*res.LotID]; ok {
			name := l.Name
			view.LotName = &name
		}
	}
	if u, ok := q.u.state.users[res.UserID]; ok {
		view.UserEmail = u.Email
	}
	return view, nil
}

func (q *fakeReservationQueries) GetByID(ctx context.Context, _ uuid.UUID, _ string, id uuid.UUID) (*queries.ReservationView, error) {
	return q.GetByIDSystem(ctx, id)
}

func (q *fakeReservationQueries) ListByUser(_ context.Context, _ uuid.UUID, _ *queries.Cursor, _ int) ([]*queries.ReservationListItem, *queries.Cursor, error) {
	return nil, nil, nil
}

func (q *fakeReservationQueries) ListActiveByLot(_ context.Context, _ uuid.UUID) ([]*queries.ReservationView, error) {
	return nil, nil
}
