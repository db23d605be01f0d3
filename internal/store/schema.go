package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    taken_at           TEXT PRIMARY KEY,
    balance            REAL,
    has_balance        INTEGER NOT NULL DEFAULT 0,
    total_requests     INTEGER NOT NULL,
    input_tokens       INTEGER NOT NULL,
    output_tokens      INTEGER NOT NULL,
    total_tokens       INTEGER NOT NULL,
    provider_cost      REAL NOT NULL,
    vuzo_cost          REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_usage (
    date               TEXT NOT NULL,
    model              TEXT NOT NULL,
    provider           TEXT NOT NULL,
    total_requests     INTEGER NOT NULL,
    input_tokens       INTEGER NOT NULL,
    output_tokens      INTEGER NOT NULL,
    total_cost         REAL NOT NULL,
    fetched_at         TEXT NOT NULL,
    PRIMARY KEY (date, model, provider)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_taken ON snapshots(taken_at);
`
