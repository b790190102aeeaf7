package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"clearcause/internal/domain"
	"clearcause/internal/events"
)

const (
	minTitleLength = 5
	maxTitleLength = 200
)

// MilestoneInput is one milestone of a campaign form.
type MilestoneInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	TargetAmount int64  `json:"targetAmount"`
}

// CampaignInput is the create and update form of a campaign. On update a nil
// Milestones leaves the existing milestones untouched.
type CampaignInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	GoalAmount  int64            `json:"goalAmount"`
	ImageURL    string           `json:"imageUrl"`
	StartDate   *time.Time       `json:"startDate"`
	EndDate     *time.Time       `json:"endDate"`
	Milestones  []MilestoneInput `json:"milestones"`
}

func (in *CampaignInput) normalize() {
	in.Title = trim(in.Title)
	in.Description = trim(in.Description)
	in.Category = normalizeCategory(in.Category)
	in.ImageURL = trim(in.ImageURL)
	for i := range in.Milestones {
		in.Milestones[i].Title = trim(in.Milestones[i].Title)
		in.Milestones[i].Description = trim(in.Milestones[i].Description)
	}
}

func (in CampaignInput) validate() error {
	if n := len([]rune(in.Title)); n < minTitleLength || n > maxTitleLength {
		return domain.Validation("title must be %d to %d characters", minTitleLength, maxTitleLength)
	}
	if in.GoalAmount <= 0 {
		return domain.Validation("goalAmount must be greater than zero")
	}
	if in.StartDate != nil && in.EndDate != nil && !in.EndDate.After(*in.StartDate) {
		return domain.Validation("endDate must be after startDate")
	}
	if err := validateURL("imageUrl", in.ImageURL); err != nil {
		return err
	}
	var sum int64
	for i, m := range in.Milestones {
		if m.Title == "" {
			return domain.Validation("milestones[%d].title is required", i)
		}
		if m.TargetAmount <= 0 {
			return domain.Validation("milestones[%d].targetAmount must be greater than zero", i)
		}
		sum += m.TargetAmount
	}
	if sum > in.GoalAmount {
		return domain.Validation("milestone targets exceed the goal amount")
	}
	return nil
}

func (in CampaignInput) milestones() []domain.Milestone {
	if in.Milestones == nil {
		return nil
	}
	out := make([]domain.Milestone, 0, len(in.Milestones))
	for _, m := range in.Milestones {
		out = append(out, domain.Milestone{Title: m.Title, Description: m.Description, TargetAmount: m.TargetAmount})
	}
	return out
}

func normalizeCategory(raw string) string {
	raw = strings.Join(strings.Fields(raw), " ")
	if raw == "" {
		return ""
	}
	return cases.Title(language.English).String(raw)
}

// publicStatuses are the campaign states visible to everyone.
var publicStatuses = map[domain.CampaignStatus]bool{
	domain.CampaignActive:    true,
	domain.CampaignPaused:    true,
	domain.CampaignCompleted: true,
}

// ownerTransitions are the moves a charity may make on its own campaign.
// Anything else in the table needs an admin.
var ownerTransitions = map[domain.CampaignStatus][]domain.CampaignStatus{
	domain.CampaignDraft:    {domain.CampaignPending, domain.CampaignCancelled},
	domain.CampaignPending:  {domain.CampaignDraft},
	domain.CampaignRejected: {domain.CampaignDraft},
	domain.CampaignActive:   {domain.CampaignPaused, domain.CampaignCompleted, domain.CampaignCancelled},
	domain.CampaignPaused:   {domain.CampaignActive, domain.CampaignCancelled},
}

func ownerMayMove(from, to domain.CampaignStatus) bool {
	for _, s := range ownerTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CampaignService manages campaigns and their lifecycle.
type CampaignService struct {
	Base
	campaigns domain.CampaignRepository
	charities domain.CharityRepository
}

func NewCampaignService(campaigns domain.CampaignRepository, charities domain.CharityRepository, base Base) *CampaignService {
	return &CampaignService{Base: base, campaigns: campaigns, charities: charities}
}

// Create stores a draft campaign for the caller's approved charity.
func (s *CampaignService) Create(ctx context.Context, actor domain.Actor, in CampaignInput) (*domain.Campaign, error) {
	if err := requireRole(actor, domain.UserRoleCharity); err != nil {
		return nil, err
	}
	charity, err := s.charities.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Forbidden("register a charity before creating campaigns")
		}
		return nil, err
	}
	if !charity.IsApproved() {
		return nil, domain.Forbidden("charity is not verified")
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	c := &domain.Campaign{
		CharityID:   charity.ID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		GoalAmount:  in.GoalAmount,
		ImageURL:    in.ImageURL,
		Status:      domain.CampaignDraft,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Milestones:  in.milestones(),
	}
	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, "campaign.created", "campaign", c.ID, map[string]any{"title": c.Title, "goalAmount": c.GoalAmount})
	return c, nil
}

// Get returns a campaign with its milestones. Non-public campaigns are only
// visible to their owner and admins.
func (s *CampaignService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "campaign")
	}
	if !publicStatuses[c.Status] && !actor.IsAdmin() {
		if ok, err := s.ownsCharity(ctx, actor, c.CharityID); err != nil || !ok {
			return nil, domain.NotFound("campaign")
		}
	}
	return c, nil
}

// List returns campaigns. Without a status the public sees active ones; a
// charity listing its own campaigns and admins see every status.
func (s *CampaignService) List(ctx context.Context, actor domain.Actor, filter domain.CampaignFilter) ([]domain.Campaign, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.Validation("unknown status %q", filter.Status)
	}
	filter.Category = normalizeCategory(filter.Category)
	filter.Search = trim(filter.Search)
	filter.Page = filter.Page.Normalize()

	privileged := actor.IsAdmin()
	if !privileged && filter.CharityID != "" {
		owns, err := s.ownsCharity(ctx, actor, filter.CharityID)
		if err != nil {
			return nil, err
		}
		privileged = owns
	}
	if !privileged {
		if filter.Status == "" {
			filter.Status = domain.CampaignActive
		}
		if !publicStatuses[filter.Status] {
			return []domain.Campaign{}, nil
		}
	}
	return s.campaigns.List(ctx, filter)
}

// Update edits a campaign while it is still a draft, pending or rejected.
func (s *CampaignService) Update(ctx context.Context, actor domain.Actor, id string, in CampaignInput) (*domain.Campaign, error) {
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !c.Status.Editable() {
		return nil, domain.Conflict(domain.ErrInvalidTransition, "campaign can no longer be edited")
	}
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Milestones == nil {
		var sum int64
		for _, m := range c.Milestones {
			sum += m.TargetAmount
		}
		if sum > in.GoalAmount {
			return nil, domain.Validation("milestone targets exceed the goal amount")
		}
	}
	c.Title = in.Title
	c.Description = in.Description
	c.Category = in.Category
	c.GoalAmount = in.GoalAmount
	c.ImageURL = in.ImageURL
	c.StartDate = in.StartDate
	c.EndDate = in.EndDate
	c.Milestones = in.milestones()
	if err := s.campaigns.Update(ctx, c); err != nil {
		return nil, lookup(err, "campaign")
	}
	s.audit(ctx, actor, "campaign.updated", "campaign", c.ID, nil)
	return c, nil
}

// UpdateStatus moves a campaign along the transition table. Owners are limited
// to ownerTransitions; admins may make any permitted move.
func (s *CampaignService) UpdateStatus(ctx context.Context, actor domain.Actor, id string, to domain.CampaignStatus) (*domain.Campaign, error) {
	if err := requireRole(actor, domain.UserRoleCharity, domain.UserRoleAdmin); err != nil {
		return nil, err
	}
	if !to.Valid() {
		return nil, domain.Validation("unknown status %q", to)
	}
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "campaign")
	}
	if !actor.IsAdmin() {
		owns, err := s.ownsCharity(ctx, actor, c.CharityID)
		if err != nil {
			return nil, err
		}
		if !owns {
			return nil, domain.Forbidden("you do not own this campaign")
		}
	}
	from := c.Status
	if !domain.CanTransition(from, to) {
		return nil, domain.Conflict(domain.ErrInvalidTransition, "cannot move campaign from "+string(from)+" to "+string(to))
	}
	if !actor.IsAdmin() && !ownerMayMove(from, to) {
		return nil, domain.Forbidden("only an administrator can move a campaign from " + string(from) + " to " + string(to))
	}
	if err := s.campaigns.UpdateStatus(ctx, id, from, to); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Conflict(domain.ErrInvalidTransition, "campaign status changed concurrently")
		}
		return nil, err
	}
	c.Status = to
	c.UpdatedAt = s.now()
	s.audit(ctx, actor, "campaign.status_changed", "campaign", id, map[string]any{"from": from, "to": to})
	s.publish(ctx, events.CampaignStatusChanged, map[string]any{"campaignId": id, "from": from, "to": to})
	return c, nil
}

// Delete removes a draft campaign.
func (s *CampaignService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	c, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if c.Status != domain.CampaignDraft {
		return domain.Conflict(domain.ErrInvalidTransition, "only draft campaigns can be deleted")
	}
	if err := s.campaigns.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Conflict(domain.ErrInvalidTransition, "only draft campaigns can be deleted")
		}
		return err
	}
	s.audit(ctx, actor, "campaign.deleted", "campaign", id, map[string]any{"title": c.Title})
	return nil
}

// ExpireEnded completes active campaigns whose end date has passed. It
// returns how many were moved.
func (s *CampaignService) ExpireEnded(ctx context.Context, now time.Time) (int, error) {
	ended, err := s.campaigns.ListEndedActive(ctx, now)
	if err != nil {
		return 0, err
	}
	moved := 0
	for _, c := range ended {
		if err := s.campaigns.UpdateStatus(ctx, c.ID, domain.CampaignActive, domain.CampaignCompleted); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				continue
			}
			return moved, err
		}
		moved++
		s.audit(ctx, domain.Actor{}, "campaign.expired", "campaign", c.ID, map[string]any{"endDate": c.EndDate})
		s.publish(ctx, events.CampaignStatusChanged, map[string]any{
			"campaignId": c.ID, "from": domain.CampaignActive, "to": domain.CampaignCompleted,
		})
	}
	return moved, nil
}

func (s *CampaignService) owned(ctx context.Context, actor domain.Actor, id string) (*domain.Campaign, error) {
	if err := requireRole(actor, domain.UserRoleCharity); err != nil {
		return nil, err
	}
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "campaign")
	}
	owns, err := s.ownsCharity(ctx, actor, c.CharityID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, domain.Forbidden("you do not own this campaign")
	}
	return c, nil
}

// ownsCharity reports whether actor is the account behind charityID.
func (s *CampaignService) ownsCharity(ctx context.Context, actor domain.Actor, charityID string) (bool, error) {
	if actor.Anonymous() || actor.Role != domain.UserRoleCharity {
		return false, nil
	}
	charity, err := s.charities.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return charity.ID == charityID, nil
}
