package mysql

// The id of a new row is the table's row count + 1. Counting with FOR UPDATE
// takes next-key locks over the whole index, so concurrent creates serialise.
const countDestinationsForUpdateSQL = `SELECT COUNT(*) FROM destinations FOR UPDATE`
const countUsersForUpdateSQL = `SELECT COUNT(*) FROM users FOR UPDATE`
const countCommentsForUpdateSQL = `SELECT COUNT(*) FROM comments FOR UPDATE`

// -----------------------------------------------------------------------------
// DESTINATIONS
// -----------------------------------------------------------------------------

const listDestinationsSQL = `
SELECT id, name, description, image
FROM destinations
ORDER BY seq
`

// Rows with a NULL name never match: LOWER(NULL) LIKE ... is NULL.
const listDestinationsByNameSQL = `
SELECT id, name, description, image
FROM destinations
WHERE LOWER(name) LIKE ?
ORDER BY seq
`

const getDestinationSQL = `
SELECT seq, id, name, description, image
FROM destinations
WHERE id = ?
ORDER BY seq
LIMIT 1
`

const insertDestinationSQL = `
INSERT INTO destinations (id, name, description, image)
VALUES (?, ?, ?, ?)
`

const updateDestinationSQL = `
UPDATE destinations
SET name = ?, description = ?, image = ?
WHERE seq = ?
`

const deleteDestinationSQL = `DELETE FROM destinations WHERE id = ? ORDER BY seq LIMIT 1`

// -----------------------------------------------------------------------------
// USERS
// -----------------------------------------------------------------------------

const listUsersSQL = `SELECT id, username, email FROM users ORDER BY seq`

const getUserSQL = `
SELECT seq, id, username, email
FROM users
WHERE id = ?
ORDER BY seq
LIMIT 1
`

const insertUserSQL = `INSERT INTO users (id, username, email) VALUES (?, ?, ?)`

const updateUserSQL = `UPDATE users SET username = ?, email = ? WHERE seq = ?`

const deleteUserSQL = `DELETE FROM users WHERE id = ? ORDER BY seq LIMIT 1`

// -----------------------------------------------------------------------------
// COMMENTS
// Note: `text` is reserved; keep it quoted everywhere.
// -----------------------------------------------------------------------------

const listCommentsSQL = "SELECT id, destination_id, user_id, `text` FROM comments ORDER BY seq"

const listCommentsByDestinationSQL = "SELECT id, destination_id, user_id, `text` FROM comments WHERE destination_id = ? ORDER BY seq"

const getCommentSQL = "SELECT seq, id, destination_id, user_id, `text` FROM comments WHERE id = ? ORDER BY seq LIMIT 1"

const insertCommentSQL = "INSERT INTO comments (id, destination_id, user_id, `text`) VALUES (?, ?, ?, ?)"

const updateCommentSQL = "UPDATE comments SET `text` = ? WHERE seq = ?"

const deleteCommentSQL = `DELETE FROM comments WHERE id = ? ORDER BY seq LIMIT 1`
