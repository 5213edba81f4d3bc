package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/service/catalog/models"
)

// Service сервис каталога: правила комбо-апсейла и совместимость категорий
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// CheckComboEligible проверяет, совпадает ли выбранный набор услуг с одним из
// правил комбо-апсейла. Сопоставление строго по равенству множеств: подмножества
// и надмножества правил не срабатывают. Вход дедуплицируется.
func (s *Service) CheckComboEligible(ctx context.Context, req *models.CheckComboEligibleRequest) (*models.CheckComboEligibleResponse, error) {
	if len(req.ServiceIDs) == 0 {
		return nil, fmt.Errorf("%w: serviceIds must not be empty", ErrInvalidInput)
	}

	selected := dedupe(req.ServiceIDs)
	s.logger.Info("CheckComboEligible: checking %d unique services", len(selected))

	rules, err := s.catalogRepo.GetComboEligibleRules(ctx)
	if err != nil {
		s.logger.Error("CheckComboEligible: repository error: %v", err)
		return nil, fmt.Errorf("%w: CheckComboEligible - repository error: %v", ErrInternal, err)
	}

	for _, rule := range rules {
		if !rule.MatchesExactly(selected) {
			continue
		}

		resp := &models.CheckComboEligibleResponse{
			IsEligible: true,
			MatchedRule: &models.MatchedRule{
				RuleID:     rule.ID,
				ServiceIDs: rule.ServiceIDs,
				ExtraPrice: rule.ExtraPrice,
			},
		}

		// Подтягиваем карточку предлагаемой комбо-услуги, если правило её задает
		if rule.SuggestedComboServiceID != nil {
			combo, err := s.catalogRepo.GetServicesByIDs(ctx, []int64{*rule.SuggestedComboServiceID})
			if err != nil {
				s.logger.Error("CheckComboEligible: failed to load suggested combo %d: %v",
					*rule.SuggestedComboServiceID, err)
				return nil, fmt.Errorf("%w: CheckComboEligible - repository error: %v", ErrInternal, err)
			}
			if len(combo) > 0 {
				resp.SuggestedCombo = &models.SuggestedCombo{
					ServiceID:       combo[0].ID,
					Name:            combo[0].Name,
					DurationMinutes: combo[0].DurationMinutes,
					Price:           combo[0].Price,
				}
			}
		}

		s.logger.Info("CheckComboEligible: rule %d matched", rule.ID)
		return resp, nil
	}

	s.logger.Info("CheckComboEligible: no rule matched")
	return &models.CheckComboEligibleResponse{IsEligible: false}, nil
}

// CheckIncompatibilities проверяет выбранные категории на несовместимые пары.
// Проверка рекомендательная: ответ перечисляет конфликтующие пары, но запись
// сервер не блокирует.
func (s *Service) CheckIncompatibilities(ctx context.Context, req *models.CheckIncompatibilitiesRequest) (*models.CheckIncompatibilitiesResponse, error) {
	if len(req.CategoryIDs) == 0 {
		return nil, fmt.Errorf("%w: categoryIds must not be empty", ErrInvalidInput)
	}

	selected := dedupe(req.CategoryIDs)
	s.logger.Info("CheckIncompatibilities: checking %d unique categories", len(selected))

	pairs, err := s.catalogRepo.GetIncompatibilities(ctx)
	if err != nil {
		s.logger.Error("CheckIncompatibilities: repository error: %v", err)
		return nil, fmt.Errorf("%w: CheckIncompatibilities - repository error: %v", ErrInternal, err)
	}

	set := make(map[int64]struct{}, len(selected))
	for _, id := range selected {
		set[id] = struct{}{}
	}

	found := make([]models.IncompatiblePair, 0)
	for _, pair := range pairs {
		if _, ok := set[pair.CategoryID]; !ok {
			continue
		}
		if _, ok := set[pair.IncompatibleCategoryID]; !ok {
			continue
		}
		found = append(found, models.IncompatiblePair{
			CategoryID:             pair.CategoryID,
			IncompatibleCategoryID: pair.IncompatibleCategoryID,
		})
	}

	s.logger.Info("CheckIncompatibilities: found %d conflicting pairs", len(found))
	return &models.CheckIncompatibilitiesResponse{
		Incompatible: len(found) > 0,
		Pairs:        found,
	}, nil
}

// CheckRequiresRemoval проверяет, требуют ли выбранные категории
// подготовительного шага снятия, и возвращает услуги снятия
func (s *Service) CheckRequiresRemoval(ctx context.Context, req *models.CheckRequiresRemovalRequest) (*models.CheckRequiresRemovalResponse, error) {
	if len(req.CategoryIDs) == 0 {
		return nil, fmt.Errorf("%w: categoryIds must not be empty", ErrInvalidInput)
	}

	selected := dedupe(req.CategoryIDs)
	s.logger.Info("CheckRequiresRemoval: checking %d unique categories", len(selected))

	services := make([]models.RemovalService, 0)
	for _, id := range selected {
		category, err := s.catalogRepo.GetCategoryByID(ctx, id)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrCategoryNotFound) {
				s.logger.Warn("CheckRequiresRemoval: category id=%d not found", id)
				return nil, ErrCategoryNotFound
			}
			s.logger.Error("CheckRequiresRemoval: repository error for category id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: CheckRequiresRemoval - repository error: %v", ErrInternal, err)
		}

		if category.RequiresRemoval {
			services = append(services, models.RemovalService{
				CategoryID:       category.ID,
				RemovalServiceID: category.RemovalServiceID,
				CategoryName:     category.Name,
			})
		}
	}

	s.logger.Info("CheckRequiresRemoval: %d categories require a removal step", len(services))
	return &models.CheckRequiresRemovalResponse{
		RequiresRemoval: len(services) > 0,
		Services:        services,
	}, nil
}

// dedupe убирает дубликаты, сохраняя порядок первого вхождения
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
