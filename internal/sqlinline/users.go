package sqlinline

const QInsertUser = `--sql b6571e8e-4891-4896-969e-2c1bb9c5eae6
insert into users (email, password_hash, full_name, role)
values (lower($1::text), $2::text, $3::text, $4::text)
returning id, is_active, created_at, updated_at;
`

const QSelectUserByID = `--sql bd705195-698a-4d47-ac7d-6ce657ae3111
select id, email, password_hash, full_name, role, avatar_url, is_active, created_at, updated_at
from users
where id = $1::uuid;
`

const QSelectUserByEmail = `--sql f9a851d6-7709-4d1c-b9c3-7e73a53f83fc
select id, email, password_hash, full_name, role, avatar_url, is_active, created_at, updated_at
from users
where email = lower($1::text);
`

const QUpdateUserProfile = `--sql ede6d3be-6601-45a1-9393-a44861f79d56
update users
set full_name = coalesce(nullif($2::text, ''), full_name),
    avatar_url = coalesce(nullif($3::text, ''), avatar_url),
    updated_at = now()
where id = $1::uuid
returning id, email, password_hash, full_name, role, avatar_url, is_active, created_at, updated_at;
`

const QUpdateUserRole = `--sql 61527d7a-5858-4be2-9365-f6a3353f243c
update users
set role = $2::text, updated_at = now()
where id = $1::uuid;
`

const QUpdateUserActive = `--sql 8d9a8921-fc40-4b7c-a849-88ab52b2afaa
update users
set is_active = $2::boolean, updated_at = now()
where id = $1::uuid;
`

const QListUsers = `--sql b7eeae23-75d3-47e7-b53f-2d8336c0e292
select id, email, password_hash, full_name, role, avatar_url, is_active, created_at, updated_at
from users
where ($1::text = '' or role = $1::text)
  and ($2::text = '' or email ilike '%' || $2::text || '%' or full_name ilike '%' || $2::text || '%')
order by created_at desc
limit $3::int offset $4::int;
`
