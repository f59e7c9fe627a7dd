package repository

// WithUserID filters by the "user_id" column.
func WithUserID(userID int64) Option {
	return WithCondition("user_id", userID)
}

// WithEmail filters by the "email" column.
func WithEmail(email string) Option {
	return WithCondition("email", email)
}

// WithRole filters by the "role" column.
func WithRole(role string) Option {
	return WithCondition("role", role)
}

// WithStatus filters by the "status" column.
func WithStatus(status string) Option {
	return WithCondition("status", status)
}
