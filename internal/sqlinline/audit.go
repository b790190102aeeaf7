package sqlinline

const QInsertAuditLog = `--sql 0c438e79-e6af-4357-9a1a-1247801e6408
insert into audit_logs (actor_id, action, entity_type, entity_id, details)
values (nullif($1::text, '')::uuid, $2::text, $3::text, $4::text, $5::jsonb)
returning id, created_at;
`

const QListAuditLogs = `--sql ad8925a6-55d1-43a6-a47b-c38ab7b69b06
select id, coalesce(actor_id::text, ''), action, entity_type, entity_id, details, created_at
from audit_logs
where ($1::text = '' or actor_id = nullif($1::text, '')::uuid)
  and ($2::text = '' or entity_type = $2::text)
  and ($3::text = '' or entity_id = $3::text)
  and ($4::text = '' or action = $4::text)
order by created_at desc
limit $5::int offset $6::int;
`
