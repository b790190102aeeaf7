package sqlinline

const QInsertCharityFeedback = `--sql 5eee26db-84d6-4c02-b453-f64a7861b077
insert into charity_feedback (charity_id, user_id, rating, comment)
values ($1::uuid, $2::uuid, $3::int, $4::text)
returning id, status, created_at, updated_at;
`

const QSelectCharityFeedbackByID = `--sql be39de42-0953-47d6-a6d9-598eb3da5e6d
select f.id, f.charity_id, f.user_id, coalesce(u.full_name, ''), f.rating, f.comment, f.status, f.created_at, f.updated_at
from charity_feedback f
left join users u on u.id = f.user_id
where f.id = $1::uuid;
`

const QCharityFeedbackExists = `--sql 2207ed9a-342c-456d-bdfd-59a2b6730761
select exists (
    select 1 from charity_feedback where charity_id = $1::uuid and user_id = $2::uuid
);
`

const QListCharityFeedback = `--sql 0b82a2c7-511b-4360-81ac-91381cf74d72
select f.id, f.charity_id, f.user_id, coalesce(u.full_name, ''), f.rating, f.comment, f.status, f.created_at, f.updated_at
from charity_feedback f
left join users u on u.id = f.user_id
where ($1::text = '' or f.charity_id = nullif($1::text, '')::uuid)
  and ($2::text = '' or f.user_id = nullif($2::text, '')::uuid)
  and ($3::text = '' or f.status = $3::text)
order by f.created_at desc
limit $4::int offset $5::int;
`

const QUpdateCharityFeedback = `--sql d25d24de-168f-4654-b9d9-06a36491f92f
update charity_feedback
set rating = $2::int,
    comment = $3::text,
    status = 'pending',
    updated_at = now()
where id = $1::uuid
returning id, charity_id, user_id, '', rating, comment, status, created_at, updated_at;
`

const QSetCharityFeedbackStatus = `--sql 82415eae-2131-4e25-acc3-43aa5f59d4c4
update charity_feedback
set status = $2::text, updated_at = now()
where id = $1::uuid
returning id, charity_id, user_id, '', rating, comment, status, created_at, updated_at;
`

const QDeleteCharityFeedback = `--sql b9427348-fab1-45d6-b084-b89f9e0ca98e
delete from charity_feedback
where id = $1::uuid;
`

const QCharityRatingBreakdown = `--sql 19173d8c-db08-443d-aff4-478bdb243552
select rating, count(*)
from charity_feedback
where charity_id = $1::uuid
  and status = 'approved'
group by rating;
`
