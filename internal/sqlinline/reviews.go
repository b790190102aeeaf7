package sqlinline

const QInsertCampaignReview = `--sql e4a06e57-9981-4c9d-ba1a-6416f1ce0f35
insert into campaign_reviews (campaign_id, user_id, rating, comment)
values ($1::uuid, $2::uuid, $3::int, $4::text)
returning id, status, created_at, updated_at;
`

const QSelectCampaignReviewByID = `--sql b49d644c-23c3-4d90-8fe9-b29b07fb3dd0
select r.id, r.campaign_id, r.user_id, coalesce(u.full_name, ''), r.rating, r.comment, r.status, r.created_at, r.updated_at
from campaign_reviews r
left join users u on u.id = r.user_id
where r.id = $1::uuid;
`

const QCampaignReviewExists = `--sql 58fd4e9d-6996-4a28-bfb3-1a7c222ccbee
select exists (
    select 1 from campaign_reviews where campaign_id = $1::uuid and user_id = $2::uuid
);
`

const QListCampaignReviews = `--sql e99f7cad-53f6-4b5a-897f-ad67ac048c5e
select r.id, r.campaign_id, r.user_id, coalesce(u.full_name, ''), r.rating, r.comment, r.status, r.created_at, r.updated_at
from campaign_reviews r
left join users u on u.id = r.user_id
where ($1::text = '' or r.campaign_id = nullif($1::text, '')::uuid)
  and ($2::text = '' or r.user_id = nullif($2::text, '')::uuid)
  and ($3::text = '' or r.status = $3::text)
order by r.created_at desc
limit $4::int offset $5::int;
`

const QUpdateCampaignReview = `--sql 91acc4a7-cdf6-44ff-a366-e327f852b4cb
update campaign_reviews
set rating = $2::int,
    comment = $3::text,
    status = 'pending',
    updated_at = now()
where id = $1::uuid
returning id, campaign_id, user_id, '', rating, comment, status, created_at, updated_at;
`

const QSetCampaignReviewStatus = `--sql 3058974e-f0b0-4abd-aabc-911e0a9be376
update campaign_reviews
set status = $2::text, updated_at = now()
where id = $1::uuid
returning id, campaign_id, user_id, '', rating, comment, status, created_at, updated_at;
`

const QDeleteCampaignReview = `--sql 6d743a0b-a93f-446e-9fda-2614983a8a42
delete from campaign_reviews
where id = $1::uuid;
`

const QCampaignRatingBreakdown = `--sql 4435963d-ec40-496c-a33b-01aaf9ecd108
select rating, count(*)
from campaign_reviews
where campaign_id = $1::uuid
  and status = 'approved'
group by rating;
`
