package sqlinline

const QPlatformTotals = `--sql e8684743-2505-4ee8-b287-73feb9778fa0
select
    (select count(*) from users) as total_users,
    (select coalesce(sum(amount), 0) from donations where status = 'completed') as total_raised,
    (select coalesce(sum(amount), 0) from disbursements) as total_disbursed,
    (select count(*) from withdrawal_transactions where status in ('pending', 'processing')) as pending_withdrawals,
    (select count(*) from milestones where status = 'proof_submitted') as pending_proofs,
    (select count(*) from donations where status = 'completed' and created_at > now() - interval '24 hours') as donations_last24h;
`

const QCharitiesByStatus = `--sql d68c9aa6-7bd2-4721-a372-8d1f02745f5a
select verification_status, count(*)
from charities
group by verification_status;
`

const QCampaignsByStatus = `--sql fd002f30-a951-44c3-8312-4613815c5fbd
select status, count(*)
from campaigns
group by status;
`

const QCharityTotals = `--sql e882dee6-02c4-422c-9d38-aa901344afbc
select
    c.total_received,
    c.available_balance,
    (select coalesce(sum(w.amount), 0) from withdrawal_transactions w
      where w.charity_id = c.id and w.status = 'completed') as total_withdrawn,
    (select count(*) from campaigns k where k.charity_id = c.id and k.status = 'active') as active_campaigns,
    (select count(distinct d.user_id) from donations d join campaigns k on k.id = d.campaign_id
      where k.charity_id = c.id and d.status = 'completed') as donors_count
from charities c
where c.id = $1::uuid;
`
