package sqlinline

const QInsertWithdrawal = `--sql 2d6692d9-92f9-4dd2-b769-f17976088c8d
insert into withdrawal_transactions (charity_id, amount, bank_name, account_number, account_name, requested_by)
values ($1::uuid, $2::bigint, $3::text, $4::text, $5::text, $6::uuid)
returning id, status, created_at, updated_at;
`

const QSelectWithdrawalByID = `--sql a3646960-a770-4d0d-bb34-60e238da9e7c
select id, charity_id, amount, status, bank_name, account_number, account_name, requested_by,
       failure_reason, processed_at, created_at, updated_at
from withdrawal_transactions
where id = $1::uuid;
`

const QListWithdrawals = `--sql c176fbd9-7ec3-47dc-a4df-b4cce8c1c5e9
select id, charity_id, amount, status, bank_name, account_number, account_name, requested_by,
       failure_reason, processed_at, created_at, updated_at
from withdrawal_transactions
where ($1::text = '' or charity_id = nullif($1::text, '')::uuid)
  and ($2::text = '' or status = $2::text)
order by created_at desc
limit $3::int offset $4::int;
`

const QTransitionWithdrawal = `--sql f63cadbf-0ea4-4379-b305-40cf9aa2ea0d
update withdrawal_transactions
set status = $3::text,
    failure_reason = $4::text,
    processed_at = case when $3::text in ('completed', 'failed') then now() else processed_at end,
    updated_at = now()
where id = $1::uuid
  and status = $2::text
returning id, charity_id, amount, status, bank_name, account_number, account_name, requested_by,
          failure_reason, processed_at, created_at, updated_at;
`
