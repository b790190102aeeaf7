package sqlinline

const QInsertMilestone = `--sql 830916df-2c39-433d-be81-f881436a995b
insert into milestones (campaign_id, title, description, target_amount, position)
values ($1::uuid, $2::text, $3::text, $4::bigint, $5::int)
returning id, status, created_at;
`

const QDeleteCampaignMilestones = `--sql 8b4ab897-f1c8-4800-a044-ee020082df2b
delete from milestones
where campaign_id = $1::uuid;
`

const QListMilestones = `--sql e51ad5f6-717e-4b14-979e-565e61c86b66
select id, campaign_id, title, description, target_amount, position, status, proof_url, proof_description,
       review_notes, verified_at, created_at
from milestones
where campaign_id = $1::uuid
order by position asc, created_at asc;
`

const QSelectMilestoneByID = `--sql 11bc40d7-6531-46f1-8e39-59be1c2dd156
select id, campaign_id, title, description, target_amount, position, status, proof_url, proof_description,
       review_notes, verified_at, created_at
from milestones
where id = $1::uuid;
`

const QSubmitMilestoneProof = `--sql 27414dca-6799-4489-9a3a-f965cf429623
update milestones
set status = 'proof_submitted',
    proof_url = $2::text,
    proof_description = $3::text,
    review_notes = ''
where id = $1::uuid
  and status in ('pending', 'rejected')
returning id, campaign_id, title, description, target_amount, position, status, proof_url, proof_description,
          review_notes, verified_at, created_at;
`

const QVerifyMilestone = `--sql 9c08ef8a-19fa-40c0-8b4c-7eea32de82b9
update milestones
set status = 'verified',
    review_notes = $2::text,
    verified_at = now()
where id = $1::uuid
  and status = 'proof_submitted'
returning id, campaign_id, title, description, target_amount, position, status, proof_url, proof_description,
          review_notes, verified_at, created_at;
`

const QRejectMilestone = `--sql 6abdd950-0c69-4551-871c-e34c7477d9db
update milestones
set status = 'rejected',
    review_notes = $2::text
where id = $1::uuid
  and status = 'proof_submitted'
returning id, campaign_id, title, description, target_amount, position, status, proof_url, proof_description,
          review_notes, verified_at, created_at;
`
