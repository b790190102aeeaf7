package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"clearcause/internal/domain"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type auditEntry struct {
	actorID, action, entityType, entityID string
}

type recordingAuditor struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (a *recordingAuditor) Record(_ context.Context, actorID, action, entityType, entityID string, _ any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, auditEntry{actorID, action, entityType, entityID})
}

func (a *recordingAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.action)
	}
	return out
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingPublisher) Close() {}

func newBase() (Base, *recordingAuditor, *recordingPublisher) {
	a := &recordingAuditor{}
	p := &recordingPublisher{}
	return Base{Audit: a, Events: p, Logger: zerolog.Nop(), Now: func() time.Time { return fixedNow }}, a, p
}

var (
	admin      = domain.Actor{UserID: "admin-1", Role: domain.UserRoleAdmin}
	donor      = domain.Actor{UserID: "donor-1", Role: domain.UserRoleDonor}
	charityAcc = domain.Actor{UserID: "charity-user-1", Role: domain.UserRoleCharity}
	otherOrg   = domain.Actor{UserID: "charity-user-2", Role: domain.UserRoleCharity}
)

// stubCharities keeps charities in memory keyed by id.
type stubCharities struct {
	domain.CharityRepository
	byID map[string]*domain.Charity
}

func newStubCharities(list ...domain.Charity) *stubCharities {
	s := &stubCharities{byID: map[string]*domain.Charity{}}
	for i := range list {
		c := list[i]
		s.byID[c.ID] = &c
	}
	return s
}

func (s *stubCharities) GetByID(_ context.Context, id string) (*domain.Charity, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubCharities) GetByUserID(_ context.Context, userID string) (*domain.Charity, error) {
	for _, c := range s.byID {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCharities) Create(_ context.Context, c *domain.Charity) error {
	for _, existing := range s.byID {
		if existing.UserID == c.UserID {
			return domain.ErrConflict
		}
	}
	c.ID = fmt.Sprintf("charity-%d", len(s.byID)+1)
	c.VerificationStatus = domain.VerificationPending
	cp := *c
	s.byID[c.ID] = &cp
	return nil
}

func (s *stubCharities) Update(_ context.Context, c *domain.Charity) error {
	if _, ok := s.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	s.byID[c.ID] = &cp
	return nil
}

func (s *stubCharities) SetVerification(_ context.Context, id string, status domain.VerificationStatus, notes string) (*domain.Charity, error) {
	c, ok := s.byID[id]
	if !ok || c.VerificationStatus != domain.VerificationPending {
		return nil, domain.ErrConflict
	}
	c.VerificationStatus = status
	c.VerificationNotes = notes
	cp := *c
	return &cp, nil
}

func (s *stubCharities) List(_ context.Context, filter domain.CharityFilter) ([]domain.Charity, error) {
	var out []domain.Charity
	for _, c := range s.byID {
		if filter.Status == "" || c.VerificationStatus == filter.Status {
			out = append(out, *c)
		}
	}
	return out, nil
}

// stubCampaigns keeps campaigns and milestones in memory. GetByID attaches
// milestones the way the Postgres repository does.
type stubCampaigns struct {
	domain.CampaignRepository
	byID       map[string]*domain.Campaign
	milestones map[string]*domain.Milestone
	created    []*domain.Campaign
	lastFilter domain.CampaignFilter

	listMilestoneCalls int
}

func newStubCampaigns(list ...domain.Campaign) *stubCampaigns {
	s := &stubCampaigns{byID: map[string]*domain.Campaign{}, milestones: map[string]*domain.Milestone{}}
	for i := range list {
		c := list[i]
		for j := range c.Milestones {
			m := c.Milestones[j]
			s.milestones[m.ID] = &m
		}
		c.Milestones = nil
		s.byID[c.ID] = &c
	}
	return s
}

func (s *stubCampaigns) Create(_ context.Context, c *domain.Campaign) error {
	c.ID = fmt.Sprintf("campaign-%d", len(s.byID)+1)
	cp := *c
	s.byID[c.ID] = &cp
	s.created = append(s.created, &cp)
	return nil
}

func (s *stubCampaigns) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	cp.Milestones, _ = s.ListMilestones(ctx, id)
	return &cp, nil
}

func (s *stubCampaigns) List(_ context.Context, filter domain.CampaignFilter) ([]domain.Campaign, error) {
	s.lastFilter = filter
	var out []domain.Campaign
	for _, c := range s.byID {
		if filter.Status == "" || c.Status == filter.Status {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubCampaigns) Update(_ context.Context, c *domain.Campaign) error {
	cp := *c
	s.byID[c.ID] = &cp
	return nil
}

func (s *stubCampaigns) UpdateStatus(_ context.Context, id string, from, to domain.CampaignStatus) error {
	c, ok := s.byID[id]
	if !ok || c.Status != from {
		return domain.ErrConflict
	}
	c.Status = to
	return nil
}

func (s *stubCampaigns) Delete(_ context.Context, id string) error {
	c, ok := s.byID[id]
	if !ok || c.Status != domain.CampaignDraft {
		return domain.ErrConflict
	}
	delete(s.byID, id)
	return nil
}

func (s *stubCampaigns) ListEndedActive(_ context.Context, now time.Time) ([]domain.Campaign, error) {
	var out []domain.Campaign
	for _, c := range s.byID {
		if c.Status == domain.CampaignActive && c.EndDate != nil && c.EndDate.Before(now) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubCampaigns) ListMilestones(_ context.Context, campaignID string) ([]domain.Milestone, error) {
	s.listMilestoneCalls++
	var out []domain.Milestone
	for _, m := range s.milestones {
		if m.CampaignID == campaignID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *stubCampaigns) GetMilestone(_ context.Context, id string) (*domain.Milestone, error) {
	m, ok := s.milestones[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *stubCampaigns) SubmitMilestoneProof(_ context.Context, id, proofURL, description string) (*domain.Milestone, error) {
	m, ok := s.milestones[id]
	if !ok || !m.AcceptsProof() {
		return nil, domain.ErrInvalidTransition
	}
	m.Status = domain.MilestoneProofSubmitted
	m.ProofURL = proofURL
	m.ProofDescription = description
	cp := *m
	return &cp, nil
}

// stubDonations answers eligibility questions and records settlement.
type stubDonations struct {
	domain.DonationRepository
	byID            map[string]*domain.Donation
	completedByPair map[string]bool // userID|campaignID or userID|charityID
	staleCutoff     time.Time
	staleCount      int64
	created         []*domain.Donation
}

func newStubDonations() *stubDonations {
	return &stubDonations{byID: map[string]*domain.Donation{}, completedByPair: map[string]bool{}}
}

func (s *stubDonations) HasCompletedForCampaign(_ context.Context, userID, campaignID string) (bool, error) {
	return s.completedByPair[userID+"|"+campaignID], nil
}

func (s *stubDonations) HasCompletedForCharity(_ context.Context, userID, charityID string) (bool, error) {
	return s.completedByPair[userID+"|"+charityID], nil
}

func (s *stubDonations) Create(_ context.Context, d *domain.Donation) error {
	d.ID = fmt.Sprintf("donation-%d", len(s.byID)+1)
	d.Status = domain.DonationPending
	cp := *d
	s.byID[d.ID] = &cp
	s.created = append(s.created, &cp)
	return nil
}

func (s *stubDonations) GetByID(_ context.Context, id string) (*domain.Donation, error) {
	d, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *stubDonations) Complete(_ context.Context, id, ref string) (*domain.Donation, error) {
	d, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if d.Status != domain.DonationPending {
		return nil, domain.ErrInvalidTransition
	}
	d.Status = domain.DonationCompleted
	d.PaymentReference = ref
	cp := *d
	return &cp, nil
}

func (s *stubDonations) MarkFailed(_ context.Context, id, _ string) (*domain.Donation, error) {
	d, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if d.Status != domain.DonationPending {
		return nil, domain.ErrInvalidTransition
	}
	d.Status = domain.DonationFailed
	cp := *d
	return &cp, nil
}

func (s *stubDonations) ListByCampaign(_ context.Context, campaignID string, _ domain.Page) ([]domain.Donation, error) {
	var out []domain.Donation
	for _, d := range s.byID {
		if d.CampaignID == campaignID && d.Status == domain.DonationCompleted {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *stubDonations) FailStalePending(_ context.Context, before time.Time) (int64, error) {
	s.staleCutoff = before
	return s.staleCount, nil
}

// stubReviews enforces the one-review-per-user rule like the unique index.
type stubReviews struct {
	domain.ReviewRepository
	byID map[string]*domain.CampaignReview
}

func newStubReviews() *stubReviews {
	return &stubReviews{byID: map[string]*domain.CampaignReview{}}
}

func (s *stubReviews) Exists(_ context.Context, campaignID, userID string) (bool, error) {
	for _, r := range s.byID {
		if r.CampaignID == campaignID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubReviews) Create(ctx context.Context, r *domain.CampaignReview) error {
	if ok, _ := s.Exists(ctx, r.CampaignID, r.UserID); ok {
		return domain.ErrDuplicateReview
	}
	r.ID = fmt.Sprintf("review-%d", len(s.byID)+1)
	r.Status = domain.ReviewPending
	cp := *r
	s.byID[r.ID] = &cp
	return nil
}

func (s *stubReviews) GetByID(_ context.Context, id string) (*domain.CampaignReview, error) {
	r, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *stubReviews) Delete(_ context.Context, id string) error {
	if _, ok := s.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *stubReviews) List(_ context.Context, filter domain.ReviewFilter) ([]domain.CampaignReview, error) {
	var out []domain.CampaignReview
	for _, r := range s.byID {
		if (filter.TargetID == "" || r.CampaignID == filter.TargetID) && (filter.Status == "" || r.Status == filter.Status) {
			out = append(out, *r)
		}
	}
	return out, nil
}

type stubFeedback struct {
	domain.FeedbackRepository
	byID map[string]*domain.CharityFeedback
}

func newStubFeedback() *stubFeedback {
	return &stubFeedback{byID: map[string]*domain.CharityFeedback{}}
}

func (s *stubFeedback) Exists(_ context.Context, charityID, userID string) (bool, error) {
	for _, f := range s.byID {
		if f.CharityID == charityID && f.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubFeedback) Create(ctx context.Context, f *domain.CharityFeedback) error {
	if ok, _ := s.Exists(ctx, f.CharityID, f.UserID); ok {
		return domain.ErrDuplicateReview
	}
	f.ID = fmt.Sprintf("feedback-%d", len(s.byID)+1)
	f.Status = domain.ReviewPending
	cp := *f
	s.byID[f.ID] = &cp
	return nil
}

// stubWithdrawals debits and refunds the shared charity store.
type stubWithdrawals struct {
	domain.WithdrawalRepository
	charities *stubCharities
	byID      map[string]*domain.WithdrawalTransaction
}

func newStubWithdrawals(charities *stubCharities) *stubWithdrawals {
	return &stubWithdrawals{charities: charities, byID: map[string]*domain.WithdrawalTransaction{}}
}

func (s *stubWithdrawals) Create(_ context.Context, w *domain.WithdrawalTransaction) error {
	c := s.charities.byID[w.CharityID]
	if c.AvailableBalance < w.Amount {
		return domain.ErrInsufficientFunds
	}
	c.AvailableBalance -= w.Amount
	w.ID = fmt.Sprintf("withdrawal-%d", len(s.byID)+1)
	w.Status = domain.WithdrawalPending
	cp := *w
	s.byID[w.ID] = &cp
	return nil
}

func (s *stubWithdrawals) GetByID(_ context.Context, id string) (*domain.WithdrawalTransaction, error) {
	w, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (s *stubWithdrawals) Transition(_ context.Context, id string, from, to domain.WithdrawalStatus, reason string) (*domain.WithdrawalTransaction, error) {
	w, ok := s.byID[id]
	if !ok || w.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	w.Status = to
	w.FailureReason = reason
	if to.Refunds() {
		s.charities.byID[w.CharityID].AvailableBalance += w.Amount
	}
	cp := *w
	return &cp, nil
}

func (s *stubWithdrawals) List(_ context.Context, filter domain.WithdrawalFilter) ([]domain.WithdrawalTransaction, error) {
	var out []domain.WithdrawalTransaction
	for _, w := range s.byID {
		if filter.CharityID == "" || w.CharityID == filter.CharityID {
			out = append(out, *w)
		}
	}
	return out, nil
}

// stubDisbursements mimics the seed_released guard and milestone verification.
type stubDisbursements struct {
	domain.DisbursementRepository
	campaigns *stubCampaigns
	charities *stubCharities
	released  []domain.Disbursement
}

func (s *stubDisbursements) ReleaseSeed(_ context.Context, d *domain.Disbursement) error {
	c := s.campaigns.byID[d.CampaignID]
	if c.SeedReleased {
		return domain.ErrAlreadyReleased
	}
	c.SeedReleased = true
	s.charities.byID[d.CharityID].AvailableBalance += d.Amount
	d.ID = fmt.Sprintf("disbursement-%d", len(s.released)+1)
	s.released = append(s.released, *d)
	return nil
}

func (s *stubDisbursements) ReleaseMilestone(_ context.Context, d *domain.Disbursement, notes string) (*domain.Milestone, error) {
	m := s.campaigns.milestones[*d.MilestoneID]
	if m.Status != domain.MilestoneProofSubmitted {
		return nil, domain.ErrAlreadyReleased
	}
	m.Status = domain.MilestoneVerified
	m.ReviewNotes = notes
	s.charities.byID[d.CharityID].AvailableBalance += d.Amount
	s.released = append(s.released, *d)
	cp := *m
	return &cp, nil
}

func (s *stubDisbursements) RejectMilestone(_ context.Context, id, notes string) (*domain.Milestone, error) {
	m := s.campaigns.milestones[id]
	if m.Status != domain.MilestoneProofSubmitted {
		return nil, domain.ErrInvalidTransition
	}
	m.Status = domain.MilestoneRejected
	m.ReviewNotes = notes
	cp := *m
	return &cp, nil
}

func approvedCharity() domain.Charity {
	return domain.Charity{
		ID:                 "charity-a",
		UserID:             charityAcc.UserID,
		OrganizationName:   "Bayanihan Relief",
		ContactEmail:       "ops@bayanihan.org",
		VerificationStatus: domain.VerificationApproved,
	}
}
