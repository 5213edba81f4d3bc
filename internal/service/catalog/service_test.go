package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type mockCatalogRepo struct {
	services          map[int64]*domain.Service
	categories        map[int64]*domain.Category
	incompatibilities []*domain.CategoryIncompatibility
	comboRules        []*domain.ComboEligibleRule
}

func (m *mockCatalogRepo) GetServicesByIDs(_ context.Context, ids []int64) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := m.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) GetCategoryByID(_ context.Context, id int64) (*domain.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, catalogRepo.ErrCategoryNotFound
}

func (m *mockCatalogRepo) GetIncompatibilities(_ context.Context) ([]*domain.CategoryIncompatibility, error) {
	return m.incompatibilities, nil
}

func (m *mockCatalogRepo) GetComboEligibleRules(_ context.Context) ([]*domain.ComboEligibleRule, error) {
	return m.comboRules, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestCheckComboEligible(t *testing.T) {
	repo := &mockCatalogRepo{
		services: map[int64]*domain.Service{
			10: {ID: 10, Name: "Маникюр + педикюр комбо", DurationMinutes: 90, Price: ptr.Ptr(120.0)},
		},
		comboRules: []*domain.ComboEligibleRule{
			{ID: 1, ServiceIDs: []int64{1, 2}, ExtraPrice: 15, SuggestedComboServiceID: ptr.Ptr(int64(10)), IsActive: true},
			{ID: 2, ServiceIDs: []int64{1, 2, 3}, ExtraPrice: 25, IsActive: true},
		},
	}
	svc := NewService(repo, noopLogger{})

	t.Run("exact match", func(t *testing.T) {
		resp, err := svc.CheckComboEligible(context.Background(), &models.CheckComboEligibleRequest{
			ServiceIDs: []int64{2, 1},
		})
		require.NoError(t, err)
		require.True(t, resp.IsEligible)
		require.NotNil(t, resp.MatchedRule)
		assert.Equal(t, int64(1), resp.MatchedRule.RuleID)
		assert.Equal(t, 15.0, resp.MatchedRule.ExtraPrice)
		require.NotNil(t, resp.SuggestedCombo)
		assert.Equal(t, int64(10), resp.SuggestedCombo.ServiceID)
	})

	t.Run("duplicates collapse before matching", func(t *testing.T) {
		resp, err := svc.CheckComboEligible(context.Background(), &models.CheckComboEligibleRequest{
			ServiceIDs: []int64{1, 2, 1, 2},
		})
		require.NoError(t, err)
		assert.True(t, resp.IsEligible)
	})

	t.Run("subset does not match", func(t *testing.T) {
		resp, err := svc.CheckComboEligible(context.Background(), &models.CheckComboEligibleRequest{
			ServiceIDs: []int64{1},
		})
		require.NoError(t, err)
		assert.False(t, resp.IsEligible)
		assert.Nil(t, resp.MatchedRule)
	})

	t.Run("superset does not match", func(t *testing.T) {
		resp, err := svc.CheckComboEligible(context.Background(), &models.CheckComboEligibleRequest{
			ServiceIDs: []int64{1, 2, 3, 4},
		})
		require.NoError(t, err)
		assert.False(t, resp.IsEligible)
	})

	t.Run("empty input rejected", func(t *testing.T) {
		_, err := svc.CheckComboEligible(context.Background(), &models.CheckComboEligibleRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCheckIncompatibilities(t *testing.T) {
	repo := &mockCatalogRepo{
		incompatibilities: []*domain.CategoryIncompatibility{
			{CategoryID: 1, IncompatibleCategoryID: 2},
			{CategoryID: 3, IncompatibleCategoryID: 4},
		},
	}
	svc := NewService(repo, noopLogger{})

	t.Run("conflicting pair reported", func(t *testing.T) {
		resp, err := svc.CheckIncompatibilities(context.Background(), &models.CheckIncompatibilitiesRequest{
			CategoryIDs: []int64{1, 2, 5},
		})
		require.NoError(t, err)
		assert.True(t, resp.Incompatible)
		require.Len(t, resp.Pairs, 1)
		assert.Equal(t, int64(1), resp.Pairs[0].CategoryID)
		assert.Equal(t, int64(2), resp.Pairs[0].IncompatibleCategoryID)
	})

	t.Run("no conflict", func(t *testing.T) {
		resp, err := svc.CheckIncompatibilities(context.Background(), &models.CheckIncompatibilitiesRequest{
			CategoryIDs: []int64{1, 4},
		})
		require.NoError(t, err)
		assert.False(t, resp.Incompatible)
		assert.Empty(t, resp.Pairs)
	})

	t.Run("direction matters only for pair listing", func(t *testing.T) {
		// Хранится только 1 -> 2: выбор {2, 1} все равно конфликтен
		resp, err := svc.CheckIncompatibilities(context.Background(), &models.CheckIncompatibilitiesRequest{
			CategoryIDs: []int64{2, 1},
		})
		require.NoError(t, err)
		assert.True(t, resp.Incompatible)
	})
}

func TestCheckRequiresRemoval(t *testing.T) {
	repo := &mockCatalogRepo{
		categories: map[int64]*domain.Category{
			1: {ID: 1, Name: "Гель-лак", RequiresRemoval: true, RemovalServiceID: ptr.Ptr(int64(7))},
			2: {ID: 2, Name: "Стрижка", RequiresRemoval: false},
		},
	}
	svc := NewService(repo, noopLogger{})

	t.Run("removal required", func(t *testing.T) {
		resp, err := svc.CheckRequiresRemoval(context.Background(), &models.CheckRequiresRemovalRequest{
			CategoryIDs: []int64{1, 2},
		})
		require.NoError(t, err)
		assert.True(t, resp.RequiresRemoval)
		require.Len(t, resp.Services, 1)
		assert.Equal(t, int64(1), resp.Services[0].CategoryID)
		require.NotNil(t, resp.Services[0].RemovalServiceID)
		assert.Equal(t, int64(7), *resp.Services[0].RemovalServiceID)
	})

	t.Run("no removal needed", func(t *testing.T) {
		resp, err := svc.CheckRequiresRemoval(context.Background(), &models.CheckRequiresRemovalRequest{
			CategoryIDs: []int64{2},
		})
		require.NoError(t, err)
		assert.False(t, resp.RequiresRemoval)
		assert.Empty(t, resp.Services)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		_, err := svc.CheckRequiresRemoval(context.Background(), &models.CheckRequiresRemovalRequest{
			CategoryIDs: []int64{99},
		})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}
