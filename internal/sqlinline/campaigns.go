package sqlinline

const QInsertCampaign = `--sql f861c3e2-7b53-4f09-88c8-1ff895919748
insert into campaigns (charity_id, title, description, category, goal_amount, image_url, status, start_date, end_date)
values ($1::uuid, $2::text, $3::text, $4::text, $5::bigint, $6::text, $7::text, $8::timestamptz, $9::timestamptz)
returning id, current_amount, donors_count, seed_released, created_at, updated_at;
`

const QSelectCampaignByID = `--sql ef96a464-6955-4c7d-84ec-fe347d555811
select id, charity_id, title, description, category, goal_amount, current_amount, donors_count, image_url,
       status, start_date, end_date, seed_released, created_at, updated_at
from campaigns
where id = $1::uuid;
`

const QListCampaigns = `--sql c9366073-dbc3-486d-973e-ea23d99bbd46
select id, charity_id, title, description, category, goal_amount, current_amount, donors_count, image_url,
       status, start_date, end_date, seed_released, created_at, updated_at
from campaigns
where ($1::text = '' or status = $1::text)
  and ($2::text = '' or category = $2::text)
  and ($3::text = '' or charity_id = nullif($3::text, '')::uuid)
  and ($4::text = '' or title ilike '%' || $4::text || '%' or description ilike '%' || $4::text || '%')
order by created_at desc
limit $5::int offset $6::int;
`

const QUpdateCampaign = `--sql b312a0df-aa12-4f47-844f-5dc2029bf6f1
update campaigns
set title = $2::text,
    description = $3::text,
    category = $4::text,
    goal_amount = $5::bigint,
    image_url = $6::text,
    start_date = $7::timestamptz,
    end_date = $8::timestamptz,
    updated_at = now()
where id = $1::uuid
returning updated_at;
`

const QUpdateCampaignStatus = `--sql 8879cda2-2657-47fa-bfd9-1ac95b744baf
update campaigns
set status = $3::text, updated_at = now()
where id = $1::uuid
  and status = $2::text;
`

const QDeleteDraftCampaign = `--sql 36840caf-8fe5-4fb6-8013-ac9bedc777d9
delete from campaigns
where id = $1::uuid
  and status = 'draft';
`

const QListEndedActiveCampaigns = `--sql c782829e-e8cd-4b3a-ba29-d287d2952f52
select id, charity_id, title, description, category, goal_amount, current_amount, donors_count, image_url,
       status, start_date, end_date, seed_released, created_at, updated_at
from campaigns
where status = 'active'
  and end_date is not null
  and end_date < $1::timestamptz
order by end_date asc;
`

const QMarkSeedReleased = `--sql f67370c5-aabc-438b-94b8-0bc06e5bc16b
update campaigns
set seed_released = true, updated_at = now()
where id = $1::uuid
  and seed_released = false;
`

const QAddCampaignDonation = `--sql ce73093e-1db8-42d1-8f4d-7b49facc9f83
update campaigns
set current_amount = current_amount + $2::bigint,
    donors_count = (
        select count(distinct coalesce(d.user_id::text, d.id::text))
        from donations d
        where d.campaign_id = $1::uuid
          and d.status = 'completed'
    ),
    updated_at = now()
where id = $1::uuid
returning charity_id;
`
