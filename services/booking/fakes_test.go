package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	appointmentRepo "mindwell/database/repository/appointment"
	providerRepo "mindwell/database/repository/provider"
	"mindwell/models"
)

type fakeProviderRepo struct {
	mu        sync.Mutex
	providers map[string]*models.Provider
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{providers: make(map[string]*models.Provider)}
}

func (f *fakeProviderRepo) Create(_ context.Context, p *models.Provider) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.providers[p.ID] = &cp
	return nil
}

func (f *fakeProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.providers[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Availability = append([]models.Slot(nil), p.Availability...)
	return &cp, nil
}

func (f *fakeProviderRepo) GetByEmail(_ context.Context, email string) (*models.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.providers {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProviderRepo) GetAll(_ context.Context) ([]models.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Provider
	for _, p := range f.providers {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProviderRepo) Update(_ context.Context, p *models.Provider) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.providers[p.ID]; !ok {
		return providerRepo.ErrNoMatch
	}
	cp := *p
	f.providers[p.ID] = &cp
	return nil
}

func (f *fakeProviderRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.providers, id)
	return nil
}

func (f *fakeProviderRepo) UpdateTokenHash(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.providers[id]; ok {
		p.TokenHash = hash
	}
	return nil
}

func (f *fakeProviderRepo) PushSlot(_ context.Context, providerID string, slot models.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.providers[providerID]
	if !ok {
		return providerRepo.ErrNoMatch
	}
	p.Availability = append(p.Availability, slot)
	return nil
}

func (f *fakeProviderRepo) ReplaceSlot(_ context.Context, providerID, slotID string, updated models.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.providers[providerID]
	if !ok {
		return providerRepo.ErrNoMatch
	}
	for i, s := range p.Availability {
		if s.ID == slotID {
			p.Availability[i] = updated
			return nil
		}
	}
	return providerRepo.ErrNoMatch
}

func (f *fakeProviderRepo) PullSlot(_ context.Context, providerID, slotID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.providers[providerID]
	if !ok {
		return providerRepo.ErrNoMatch
	}
	for i, s := range p.Availability {
		if s.ID == slotID {
			p.Availability = append(p.Availability[:i], p.Availability[i+1:]...)
			return nil
		}
	}
	return providerRepo.ErrNoMatch
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) UpdateTokenHash(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.TokenHash = hash
	}
	return nil
}

// fakeAppointmentRepo mimics the transactional semantics of the mongo
// implementation: Reserve checks the unique interval constraint and the
// slot precondition before mutating anything.
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]*models.Appointment
	providers    *fakeProviderRepo
}

func newFakeAppointmentRepo(providers *fakeProviderRepo) *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: make(map[string]*models.Appointment),
		providers:    providers,
	}
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAppointmentRepo) FindByInterval(_ context.Context, providerID string, iv models.Interval) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a := f.findByInterval(providerID, iv); a != nil {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) findByInterval(providerID string, iv models.Interval) *models.Appointment {
	for _, a := range f.appointments {
		if a.ProviderID == providerID && a.Date == iv.Date &&
			a.StartTime == iv.StartTime && a.EndTime == iv.EndTime {
			return a
		}
	}
	return nil
}

func (f *fakeAppointmentRepo) ListByProvider(_ context.Context, providerID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.ProviderID == providerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) ListByRequester(_ context.Context, requesterID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.RequesterID == requesterID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.appointments[appt.ID]
	if !ok {
		return errors.New("appointment not stored")
	}
	stored.Status = appt.Status
	stored.SessionToken = appt.SessionToken
	stored.UpdatedAt = appt.UpdatedAt
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.appointments, id)
	return nil
}

func (f *fakeAppointmentRepo) Reserve(_ context.Context, providerID string, slot models.Slot, remainders []models.Slot, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.providers.mu.Lock()
	defer f.providers.mu.Unlock()

	if f.findByInterval(providerID, appt.Interval()) != nil {
		return appointmentRepo.ErrDuplicate
	}

	p, ok := f.providers.providers[providerID]
	if !ok {
		return appointmentRepo.ErrSlotTaken
	}
	idx := -1
	for i, s := range p.Availability {
		if s.ID == slot.ID && s.Interval == slot.Interval {
			idx = i
			break
		}
	}
	if idx < 0 {
		return appointmentRepo.ErrSlotTaken
	}

	p.Availability = append(p.Availability[:idx], p.Availability[idx+1:]...)
	p.Availability = append(p.Availability, remainders...)

	cp := *appt
	f.appointments[appt.ID] = &cp
	return nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []models.Notification
}

func (f *fakeNotifier) Notify(_ context.Context, userID, message, ntype, appointmentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, models.Notification{
		UserID:        userID,
		Message:       message,
		Type:          ntype,
		AppointmentID: appointmentID,
	})
	return nil
}

func (f *fakeNotifier) ListForUser(_ context.Context, userID string) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.sent {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifier) MarkRead(_ context.Context, _, _ string) error { return nil }

type scheduledReminder struct {
	payload models.ReminderPayload
	fireAt  time.Time
}

type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []scheduledReminder
}

func (f *fakeScheduler) Schedule(payload models.ReminderPayload, fireAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, scheduledReminder{payload: payload, fireAt: fireAt})
	return nil
}
