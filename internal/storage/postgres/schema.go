package postgres

const schema = `
CREATE TABLE IF NOT EXISTS trivia_categories (
	id   INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trivia_questions (
	id                SERIAL PRIMARY KEY,
	category_id       INTEGER NOT NULL REFERENCES trivia_categories (id),
	type              TEXT NOT NULL DEFAULT 'multiple',
	difficulty        TEXT NOT NULL DEFAULT 'medium',
	question          TEXT NOT NULL,
	correct_answer    TEXT NOT NULL,
	incorrect_answers TEXT[] NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS trivia_questions_category_idx ON trivia_questions (category_id, difficulty);
`
