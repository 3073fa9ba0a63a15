package sqlite

import "github.com/steveyegge/mocktab/internal/storage/migrations"

// schemaMigrations is the ordered schema history. Append new versions;
// never edit an applied one.
var schemaMigrations = []migrations.Migration{
	{
		Version:     1,
		Description: "ranking rows and teams",
		Up: `
-- One row per ranking-range row. row_index is the row's position in the
-- source range so reports can point back at ballots.
CREATE TABLE IF NOT EXISTS rankings (
    row_index INTEGER PRIMARY KEY,
    team TEXT NOT NULL,
    side TEXT NOT NULL,
    competitor_name TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rankings_group ON rankings(team, side);

CREATE TABLE IF NOT EXISTS teams (
    number TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    school TEXT NOT NULL DEFAULT '',
    emails TEXT NOT NULL DEFAULT '[]',
    ballot_folder_link TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`,
		Down: `
DROP TABLE IF EXISTS teams;
DROP INDEX IF EXISTS idx_rankings_group;
DROP TABLE IF EXISTS rankings;
`,
	},
	{
		Version:     2,
		Description: "typo reports",
		Up: `
CREATE TABLE IF NOT EXISTS reports (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    row_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);

CREATE TABLE IF NOT EXISTS report_rows (
    report_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    team TEXT NOT NULL,
    side TEXT NOT NULL,
    name TEXT NOT NULL,
    matched_name TEXT NOT NULL,
    score REAL NOT NULL CHECK(score >= 0.0 AND score <= 1.0),
    PRIMARY KEY (report_id, position),
    FOREIGN KEY (report_id) REFERENCES reports(id) ON DELETE CASCADE
);
`,
		Down: `
DROP TABLE IF EXISTS report_rows;
DROP INDEX IF EXISTS idx_reports_created_at;
DROP TABLE IF EXISTS reports;
`,
	},
}
