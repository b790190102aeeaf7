package sqlinline

const QInsertCharity = `--sql b401fc20-4dc3-46db-8409-3df68f4a0353
insert into charities (user_id, organization_name, description, website_url, contact_email, registration_number, document_url)
values ($1::uuid, $2::text, $3::text, $4::text, lower($5::text), $6::text, $7::text)
returning id, verification_status, available_balance, total_received, created_at, updated_at;
`

const QSelectCharityByID = `--sql f3b1c3f8-aa42-4a6e-834b-42e0fb239c95
select id, user_id, organization_name, description, website_url, contact_email, registration_number, document_url,
       verification_status, verification_notes, available_balance, total_received, created_at, updated_at
from charities
where id = $1::uuid;
`

const QSelectCharityByUserID = `--sql 0abc5d13-384b-4ae2-aa2a-6b5414b5aee1
select id, user_id, organization_name, description, website_url, contact_email, registration_number, document_url,
       verification_status, verification_notes, available_balance, total_received, created_at, updated_at
from charities
where user_id = $1::uuid;
`

const QListCharities = `--sql 1ce6f646-997a-4c66-a5c1-32f5571b651f
select id, user_id, organization_name, description, website_url, contact_email, registration_number, document_url,
       verification_status, verification_notes, available_balance, total_received, created_at, updated_at
from charities
where ($1::text = '' or verification_status = $1::text)
  and ($2::text = '' or organization_name ilike '%' || $2::text || '%')
order by organization_name asc
limit $3::int offset $4::int;
`

const QUpdateCharity = `--sql 1a1494f1-0850-4e4e-a5d4-59f9b3b24ccc
update charities
set organization_name = $2::text,
    description = $3::text,
    website_url = $4::text,
    contact_email = lower($5::text),
    registration_number = $6::text,
    document_url = $7::text,
    verification_status = $8::text,
    verification_notes = $9::text,
    updated_at = now()
where id = $1::uuid
returning updated_at;
`

const QSetCharityVerification = `--sql c389d5cf-aab3-4f10-8898-ce639caf2cd9
update charities
set verification_status = $2::text,
    verification_notes = $3::text,
    updated_at = now()
where id = $1::uuid
  and verification_status = 'pending'
returning id, user_id, organization_name, description, website_url, contact_email, registration_number, document_url,
          verification_status, verification_notes, available_balance, total_received, created_at, updated_at;
`

const QCreditCharityBalance = `--sql 148ee25a-13c1-4d7e-9502-178ebfb76f8a
update charities
set available_balance = available_balance + $2::bigint,
    updated_at = now()
where id = $1::uuid;
`

const QDebitCharityBalance = `--sql 2701b8ab-2fbd-4336-9d38-4edb74f51250
update charities
set available_balance = available_balance - $2::bigint,
    updated_at = now()
where id = $1::uuid
  and available_balance >= $2::bigint;
`
