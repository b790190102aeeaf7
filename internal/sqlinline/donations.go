package sqlinline

const QInsertDonation = `--sql 718a79c3-de40-459f-ae36-192330499270
insert into donations (user_id, campaign_id, amount, payment_method, is_anonymous, message, donor_country)
values (nullif($1::text, '')::uuid, $2::uuid, $3::bigint, $4::text, $5::boolean, $6::text, $7::text)
returning id, status, created_at, updated_at;
`

const QSelectDonationByID = `--sql 635cc905-7d70-4fcb-9999-2659840145d1
select d.id, d.user_id::text, d.campaign_id, d.amount, d.status, d.payment_method, d.payment_reference,
       d.is_anonymous, d.message, d.donor_country, coalesce(u.full_name, ''), d.created_at, d.updated_at
from donations d
left join users u on u.id = d.user_id
where d.id = $1::uuid;
`

const QLockDonation = `--sql 6edf965d-bb08-48a1-8b93-5021ab4fb50e
select status, campaign_id, amount
from donations
where id = $1::uuid
for update;
`

const QCompleteDonation = `--sql 2914acc0-32d4-4c11-8fa0-08e751392b73
update donations
set status = 'completed',
    payment_reference = coalesce(nullif($2::text, ''), payment_reference),
    updated_at = now()
where id = $1::uuid
  and status = 'pending';
`

const QFailDonation = `--sql 3f28e0b4-955d-40b5-9e19-a2fd62d8c0d8
update donations
set status = 'failed',
    failure_reason = $2::text,
    updated_at = now()
where id = $1::uuid
  and status = 'pending';
`

const QAddCharityReceived = `--sql bb3c1ada-8710-443c-9ed0-adebfc19e87c
update charities
set total_received = total_received + $2::bigint,
    updated_at = now()
where id = $1::uuid;
`

const QListDonationsByUser = `--sql 89bf09e5-a3a8-4eb3-83ea-37af39f52e67
select d.id, d.user_id::text, d.campaign_id, d.amount, d.status, d.payment_method, d.payment_reference,
       d.is_anonymous, d.message, d.donor_country, coalesce(u.full_name, ''), d.created_at, d.updated_at
from donations d
left join users u on u.id = d.user_id
where d.user_id = $1::uuid
order by d.created_at desc
limit $2::int offset $3::int;
`

const QListDonationsByCampaign = `--sql 28abbad9-8709-4523-b526-aa2b82637539
select d.id, d.user_id::text, d.campaign_id, d.amount, d.status, d.payment_method, d.payment_reference,
       d.is_anonymous, d.message, d.donor_country, coalesce(u.full_name, ''), d.created_at, d.updated_at
from donations d
left join users u on u.id = d.user_id
where d.campaign_id = $1::uuid
  and d.status = 'completed'
order by d.created_at desc
limit $2::int offset $3::int;
`

const QHasCompletedDonationForCampaign = `--sql f144f4e9-6cb5-4b62-966b-25180617ad47
select exists (
    select 1
    from donations
    where user_id = $1::uuid
      and campaign_id = $2::uuid
      and status = 'completed'
);
`

const QHasCompletedDonationForCharity = `--sql 665cf26a-420b-4d14-9755-7750d14801c8
select exists (
    select 1
    from donations d
    join campaigns c on c.id = d.campaign_id
    where d.user_id = $1::uuid
      and c.charity_id = $2::uuid
      and d.status = 'completed'
);
`

const QFailStalePendingDonations = `--sql eb638d7d-1d44-407e-b45d-295a8eba33f0
update donations
set status = 'failed',
    failure_reason = 'payment not confirmed in time',
    updated_at = now()
where status = 'pending'
  and created_at < $1::timestamptz;
`
