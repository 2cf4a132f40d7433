package availability

import (
	"context"
	"sync"
	"testing"
	"time"

	providerRepo "mindwell/database/repository/provider"
	"mindwell/models"
	"mindwell/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProviderRepo struct {
	mu        sync.Mutex
	providers map[string]*models.Provider
}

func newMemProviderRepo() *memProviderRepo {
	return &memProviderRepo{providers: make(map[string]*models.Provider)}
}

func (m *memProviderRepo) Create(_ context.Context, p *models.Provider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.providers[p.ID] = &cp
	return nil
}

func (m *memProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.providers[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Availability = append([]models.Slot(nil), p.Availability...)
	return &cp, nil
}

func (m *memProviderRepo) GetByEmail(_ context.Context, email string) (*models.Provider, error) {
	return nil, nil
}

func (m *memProviderRepo) GetAll(_ context.Context) ([]models.Provider, error) { return nil, nil }

func (m *memProviderRepo) Update(_ context.Context, p *models.Provider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.providers[p.ID] = &cp
	return nil
}

func (m *memProviderRepo) Delete(_ context.Context, id string) error {
	delete(m.providers, id)
	return nil
}

func (m *memProviderRepo) UpdateTokenHash(_ context.Context, _, _ string) error { return nil }

func (m *memProviderRepo) PushSlot(_ context.Context, providerID string, slot models.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.providers[providerID]
	if !ok {
		return providerRepo.ErrNoMatch
	}
	p.Availability = append(p.Availability, slot)
	return nil
}

func (m *memProviderRepo) ReplaceSlot(_ context.Context, providerID, slotID string, updated models.Slot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.providers[providerID]
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

func (m *memProviderRepo) PullSlot(_ context.Context, providerID, slotID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.providers[providerID]
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

func newServiceFixture(t *testing.T) (*DefaultAvailabilityService, *memProviderRepo) {
	t.Helper()
	repo := newMemProviderRepo()
	require.NoError(t, repo.Create(context.Background(), &models.Provider{ID: "prov-1", Name: "Dr. Okafor"}))
	svc := &DefaultAvailabilityService{
		ProviderRepo: repo,
		Now: func() time.Time {
			return time.Date(2025, 1, 5, 12, 0, 0, 0, time.Local)
		},
	}
	return svc, repo
}

func TestAddSlot(t *testing.T) {
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	slot, err := svc.AddSlot(ctx, "prov-1", "2025-01-10", "09:00", "10:00")
	require.NoError(t, err)
	assert.NotEmpty(t, slot.ID)
	assert.Equal(t, "09:00", slot.StartTime)

	slots, err := svc.ListSlots(ctx, "prov-1")
	require.NoError(t, err)
	require.Len(t, slots, 1)
}

func TestAddSlot_Rejections(t *testing.T) {
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	var ve *utils.ValidationError
	_, err := svc.AddSlot(ctx, "prov-1", "2025-01-10", "10:00", "09:00")
	assert.ErrorAs(t, err, &ve, "inverted range")

	_, err = svc.AddSlot(ctx, "prov-1", "2025-01-10", "9am", "10:00")
	assert.ErrorAs(t, err, &ve, "malformed time")

	_, err = svc.AddSlot(ctx, "prov-1", "2025-01-04", "09:00", "10:00")
	assert.ErrorAs(t, err, &ve, "past date")

	var nf *utils.NotFoundError
	_, err = svc.AddSlot(ctx, "prov-missing", "2025-01-10", "09:00", "10:00")
	assert.ErrorAs(t, err, &nf)
}

func TestAddSlot_OverlapConflict(t *testing.T) {
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	_, err := svc.AddSlot(ctx, "prov-1", "2025-01-10", "09:00", "10:00")
	require.NoError(t, err)

	var ce *utils.ConflictError
	_, err = svc.AddSlot(ctx, "prov-1", "2025-01-10", "09:30", "10:30")
	assert.ErrorAs(t, err, &ce)

	// Adjacent and different-date slots are fine.
	_, err = svc.AddSlot(ctx, "prov-1", "2025-01-10", "10:00", "11:00")
	assert.NoError(t, err)
	_, err = svc.AddSlot(ctx, "prov-1", "2025-01-11", "09:00", "10:00")
	assert.NoError(t, err)
}

func TestUpdateSlot(t *testing.T) {
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	added, err := svc.AddSlot(ctx, "prov-1", "2025-01-10", "09:00", "10:00")
	require.NoError(t, err)

	updated, err := svc.UpdateSlot(ctx, "prov-1", 0, "2025-01-10", "09:30", "11:00")
	require.NoError(t, err)
	// The stable ID survives the update.
	assert.Equal(t, added.ID, updated.ID)
	assert.Equal(t, "09:30", updated.StartTime)

	var nf *utils.NotFoundError
	_, err = svc.UpdateSlot(ctx, "prov-1", 5, "2025-01-10", "09:00", "10:00")
	assert.ErrorAs(t, err, &nf)

	// Updating a slot onto itself does not count as overlap.
	_, err = svc.UpdateSlot(ctx, "prov-1", 0, "2025-01-10", "09:45", "10:45")
	assert.NoError(t, err)
}

func TestRemoveSlot(t *testing.T) {
	svc, _ := newServiceFixture(t)
	ctx := context.Background()

	_, err := svc.AddSlot(ctx, "prov-1", "2025-01-10", "09:00", "10:00")
	require.NoError(t, err)
	_, err = svc.AddSlot(ctx, "prov-1", "2025-01-10", "10:00", "11:00")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveSlot(ctx, "prov-1", 0))

	slots, err := svc.ListSlots(ctx, "prov-1")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "10:00", slots[0].StartTime)

	var nf *utils.NotFoundError
	err = svc.RemoveSlot(ctx, "prov-1", 1)
	assert.ErrorAs(t, err, &nf, "indices shift after removal")
}

func TestFindCoveringSlot(t *testing.T) {
	slots := []models.Slot{
		{ID: "a", Interval: models.Interval{Date: "2025-01-10", StartTime: "09:00", EndTime: "10:00"}},
		{ID: "b", Interval: models.Interval{Date: "2025-01-10", StartTime: "13:00", EndTime: "17:00"}},
		{ID: "c", Interval: models.Interval{Date: "2025-01-10", StartTime: "13:00", EndTime: "18:00"}},
	}

	idx, ok := FindCoveringSlot(slots, models.Interval{Date: "2025-01-10", StartTime: "14:00", EndTime: "15:00"})
	require.True(t, ok)
	// First covering slot in stored order wins.
	assert.Equal(t, 1, idx)

	_, ok = FindCoveringSlot(slots, models.Interval{Date: "2025-01-10", StartTime: "09:30", EndTime: "10:30"})
	assert.False(t, ok)

	_, ok = FindCoveringSlot(nil, models.Interval{Date: "2025-01-10", StartTime: "09:00", EndTime: "10:00"})
	assert.False(t, ok)
}
