package store

const (
	createUser = `INSERT INTO users (id, name, email, password_hash, otp, otp_expires_at)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id, name, email, password_hash, is_verified, otp, otp_expires_at, refresh_token, created_at;`

	findUserByEmail = `SELECT id, name, email, password_hash, is_verified, otp, otp_expires_at, refresh_token, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, name, email, password_hash, is_verified, otp, otp_expires_at, refresh_token, created_at
    FROM users
    WHERE id = $1;`

	setOTP = `UPDATE users
    SET otp = $2, otp_expires_at = $3
    WHERE id = $1;`

	// The WHERE clause is the whole verification check: code match plus
	// expiry, evaluated atomically so a racing consume cannot succeed twice.
	consumeOTP = `UPDATE users
    SET is_verified = TRUE, otp = NULL, otp_expires_at = NULL
    WHERE email = $1 AND otp = $2 AND otp_expires_at > $3
    RETURNING id, name, email, password_hash, is_verified, otp, otp_expires_at, refresh_token, created_at;`

	setRefreshToken = `UPDATE users
    SET refresh_token = $2
    WHERE id = $1;`

	// Compare-and-swap on the stored value, the sole revocation mechanism:
	// a superseded token matches zero rows.
	rotateRefreshToken = `UPDATE users
    SET refresh_token = $3
    WHERE id = $1 AND refresh_token = $2;`

	clearRefreshTokenByValue = `UPDATE users
    SET refresh_token = NULL
    WHERE refresh_token = $1;`

	clearExpiredOTPs = `UPDATE users
    SET otp = NULL, otp_expires_at = NULL
    WHERE otp_expires_at IS NOT NULL AND otp_expires_at <= $1;`

	deleteTasksOwnedBy = `DELETE FROM tasks
    WHERE owner_id = $1;`

	deleteProjectsOwnedBy = `DELETE FROM projects
    WHERE owner_id = $1;`

	deleteUserByID = `DELETE FROM users
    WHERE id = $1;`

	createProject = `INSERT INTO projects (id, owner_id, name)
    VALUES ($1, $2, $3)
    RETURNING id, owner_id, name, created_at;`

	createTask = `INSERT INTO tasks (id, project_id, owner_id, title, done)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, project_id, owner_id, title, done, created_at;`

	countProjectsOwnedBy = `SELECT COUNT(*) FROM projects WHERE owner_id = $1;`
	countTasksOwnedBy    = `SELECT COUNT(*) FROM tasks WHERE owner_id = $1;`
)
