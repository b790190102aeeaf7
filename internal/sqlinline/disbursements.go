package sqlinline

const QInsertDisbursement = `--sql ae0d539e-f9cf-452a-b667-f4c6a9b69d7e
insert into disbursements (campaign_id, charity_id, milestone_id, kind, amount, released_by)
values ($1::uuid, $2::uuid, nullif($3::text, '')::uuid, $4::text, $5::bigint, nullif($6::text, '')::uuid)
returning id, created_at;
`

const QListDisbursementsByCampaign = `--sql c12eaab5-6dde-4d17-99a8-2e0d6e990515
select id, campaign_id, charity_id, milestone_id::text, kind, amount, coalesce(released_by::text, ''), created_at
from disbursements
where campaign_id = $1::uuid
order by created_at asc;
`
