package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"members-lounge-backend/internal/domain"
	"members-lounge-backend/internal/repository"
)

type VisitPlanInput struct {
	VisitDate  string            `json:"visit_date" validate:"required,datetime=2006-01-02"`
	StartTime  string            `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string            `json:"end_time" validate:"omitempty,datetime=15:04"`
	Visibility domain.Visibility `json:"visibility" validate:"required,oneof=public members_only anonymous private"`
	Message    string            `json:"message" validate:"max=500"`
}

// visibleScopes lists the visibilities a tier may see in cross-user listings.
// private is never listed.
func visibleScopes(tier domain.Tier) []domain.Visibility {
	switch tier {
	case domain.TierPaid:
		return []domain.Visibility{domain.VisibilityPublic, domain.VisibilityMembersOnly, domain.VisibilityAnonymous}
	case domain.TierFree:
		return []domain.Visibility{domain.VisibilityPublic, domain.VisibilityMembersOnly}
	default:
		return []domain.Visibility{domain.VisibilityPublic}
	}
}

type visitPlanService struct {
	planRepo      repository.VisitPlanRepository
	membershipSvc MembershipService
	maxRangeDays  int
}

func NewVisitPlanService(planRepo repository.VisitPlanRepository, membershipSvc MembershipService, maxRangeDays int) VisitPlanService {
	return &visitPlanService{
		planRepo:      planRepo,
		membershipSvc: membershipSvc,
		maxRangeDays:  maxRangeDays,
	}
}

func (s *visitPlanService) CreatePlan(ctx context.Context, ownerID uuid.UUID, in VisitPlanInput) (*domain.VisitPlan, error) {
	if err := checkPlanInput(&in); err != nil {
		return nil, err
	}
	plan := &domain.VisitPlan{
		UserID:     ownerID,
		VisitDate:  in.VisitDate,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Visibility: in.Visibility,
		Message:    in.Message,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, domain.Remote("planRepo.Create", err)
	}
	return plan, nil
}

func (s *visitPlanService) UpdatePlan(ctx context.Context, ownerID, planID uuid.UUID, in VisitPlanInput) (*domain.VisitPlan, error) {
	if err := checkPlanInput(&in); err != nil {
		return nil, err
	}
	plan, err := s.ownedPlan(ctx, ownerID, planID)
	if err != nil {
		return nil, err
	}
	if plan.IsCancelled {
		return nil, fmt.Errorf("%w: visit plan is cancelled", domain.ErrInvalidState)
	}

	plan.VisitDate = in.VisitDate
	plan.StartTime = in.StartTime
	plan.EndTime = in.EndTime
	plan.Visibility = in.Visibility
	plan.Message = in.Message
	if err := s.planRepo.Update(ctx, plan); err != nil {
		return nil, domain.Remote("planRepo.Update", err)
	}
	return plan, nil
}

func (s *visitPlanService) CancelPlan(ctx context.Context, ownerID, planID uuid.UUID) error {
	plan, err := s.ownedPlan(ctx, ownerID, planID)
	if err != nil {
		return err
	}
	if plan.IsCancelled {
		return nil
	}
	return domain.Remote("planRepo.Cancel", s.planRepo.Cancel(ctx, planID, ownerID))
}

func (s *visitPlanService) GetPlan(ctx context.Context, ownerID, planID uuid.UUID) (*domain.VisitPlan, error) {
	return s.ownedPlan(ctx, ownerID, planID)
}

func (s *visitPlanService) ListMine(ctx context.Context, ownerID uuid.UUID, r domain.DateRange) ([]domain.VisitPlan, error) {
	if err := s.checkRange(r); err != nil {
		return nil, err
	}
	plans, err := s.planRepo.ListByOwner(ctx, ownerID, r)
	if err != nil {
		return nil, domain.Remote("planRepo.ListByOwner", err)
	}
	return plans, nil
}

func (s *visitPlanService) Query(ctx context.Context, viewerID uuid.UUID, r domain.DateRange) ([]domain.VisitPlanEntry, error) {
	if err := s.checkRange(r); err != nil {
		return nil, err
	}
	tier, err := s.membershipSvc.ViewerTier(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	scopes := visibleScopes(tier)
	plans, err := s.planRepo.ListVisible(ctx, r, scopes)
	if err != nil {
		return nil, domain.Remote("planRepo.ListVisible", err)
	}
	return filterVisible(plans, scopes), nil
}

func (s *visitPlanService) Calendar(ctx context.Context, viewerID uuid.UUID, r domain.DateRange) ([]domain.CalendarDay, error) {
	entries, err := s.Query(ctx, viewerID, r)
	if err != nil {
		return nil, err
	}
	return groupByDate(entries), nil
}

func (s *visitPlanService) ownedPlan(ctx context.Context, ownerID, planID uuid.UUID) (*domain.VisitPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, domain.Remote("planRepo.GetByID", err)
	}
	if plan.UserID != ownerID {
		return nil, fmt.Errorf("%w: visit plan belongs to another member", domain.ErrAuthorization)
	}
	return plan, nil
}

func (s *visitPlanService) checkRange(r domain.DateRange) error {
	from, err := time.Parse("2006-01-02", r.From)
	if err != nil {
		return domain.Validationf("from must use the format 2006-01-02")
	}
	to, err := time.Parse("2006-01-02", r.To)
	if err != nil {
		return domain.Validationf("to must use the format 2006-01-02")
	}
	if to.Before(from) {
		return domain.Validationf("to must not be before from")
	}
	if days := int(to.Sub(from).Hours()/24) + 1; s.maxRangeDays > 0 && days > s.maxRangeDays {
		return domain.Validationf("date range must not exceed %d days", s.maxRangeDays)
	}
	return nil
}

func checkPlanInput(in *VisitPlanInput) error {
	in.Message = strings.TrimSpace(in.Message)
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.EndTime != "" && in.EndTime <= in.StartTime {
		return domain.Validationf("end_time must be after start_time")
	}
	return nil
}

// filterVisible drops rows outside scopes and redacts anonymous owners.
func filterVisible(plans []domain.VisitPlan, scopes []domain.Visibility) []domain.VisitPlanEntry {
	allowed := make(map[domain.Visibility]bool, len(scopes))
	for _, v := range scopes {
		allowed[v] = true
	}

	entries := make([]domain.VisitPlanEntry, 0, len(plans))
	for _, p := range plans {
		if p.IsCancelled || p.Visibility == domain.VisibilityPrivate || !allowed[p.Visibility] {
			continue
		}
		entry := domain.VisitPlanEntry{
			ID:         p.ID,
			VisitDate:  p.VisitDate,
			StartTime:  p.StartTime,
			EndTime:    p.EndTime,
			Visibility: p.Visibility,
			Message:    p.Message,
		}
		if p.Visibility == domain.VisibilityAnonymous {
			entry.DisplayName = domain.AnonymousDisplayName
		} else {
			uid := p.UserID
			entry.UserID = &uid
			if p.Owner != nil {
				entry.DisplayName = p.Owner.DisplayName
				entry.AvatarURL = p.Owner.AvatarURL
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// groupByDate buckets entries per visit date, dates ascending.
func groupByDate(entries []domain.VisitPlanEntry) []domain.CalendarDay {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b domain.VisitPlanEntry) int {
		return strings.Compare(a.VisitDate, b.VisitDate)
	})

	days := []domain.CalendarDay{}
	for _, e := range sorted {
		if n := len(days); n > 0 && days[n-1].Date == e.VisitDate {
			days[n-1].Entries = append(days[n-1].Entries, e)
			continue
		}
		days = append(days, domain.CalendarDay{Date: e.VisitDate, Entries: []domain.VisitPlanEntry{e}})
	}
	return days
}
