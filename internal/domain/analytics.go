package domain

// PlatformStats feeds the admin dashboard.
type PlatformStats struct {
	TotalUsers            int64            `json:"totalUsers"`
	CharitiesByStatus     map[string]int64 `json:"charitiesByStatus"`
	CampaignsByStatus     map[string]int64 `json:"campaignsByStatus"`
	TotalRaised           int64            `json:"totalRaised"`
	TotalDisbursed        int64            `json:"totalDisbursed"`
	PendingWithdrawals    int64            `json:"pendingWithdrawals"`
	PendingMilestoneProof int64            `json:"pendingMilestoneProofs"`
	DonationsLast24h      int64            `json:"donationsLast24h"`
}

// CharityStats feeds the charity dashboard.
type CharityStats struct {
	CharityID        string `json:"charityId"`
	TotalRaised      int64  `json:"totalRaised"`
	AvailableBalance int64  `json:"availableBalance"`
	TotalWithdrawn   int64  `json:"totalWithdrawn"`
	ActiveCampaigns  int64  `json:"activeCampaigns"`
	DonorsCount      int64  `json:"donorsCount"`
}
